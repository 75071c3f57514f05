// Package render turns encoded payloads into scannable QR images.
package render

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const DefaultSize = 160

// Renderer draws payload as an image of size x size pixels.
type Renderer interface {
	Render(payload string, size int) ([]byte, error)
}

// PNG renders QR codes as PNG images.
type PNG struct {
	Level qrcode.RecoveryLevel
}

// NewPNG returns a PNG renderer with medium error recovery.
func NewPNG() *PNG {
	return &PNG{Level: qrcode.Medium}
}

func (p *PNG) Render(payload string, size int) ([]byte, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, fmt.Errorf("payload is empty")
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(payload, p.Level, size)
	if err != nil {
		return nil, fmt.Errorf("render qr code: %w", err)
	}
	return png, nil
}

// Text renders the QR code as terminal-friendly block characters.
func Text(payload string, level qrcode.RecoveryLevel) (string, error) {
	q, err := qrcode.New(payload, level)
	if err != nil {
		return "", fmt.Errorf("render qr code: %w", err)
	}
	return q.ToSmallString(false), nil
}
