package brcode

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
)

type KeyMode int

const (
	// KeyModeDigits strips every non-digit from the pix key. This matches
	// payloads already issued by existing deployments, but breaks e-mail
	// and random (EVP) keys.
	KeyModeDigits KeyMode = iota
	// KeyModeTyped detects the key type and only normalizes what the key
	// type allows: e-mail and EVP keys are kept, phone and tax ids lose
	// their punctuation.
	KeyModeTyped
)

type ValidationLevel int

const (
	ValidationNone ValidationLevel = iota
	ValidationBasic
	ValidationStrict
)

// Request holds the merchant and transaction attributes of one payload.
type Request struct {
	PixKey        string           `json:"pix_key" validate:"required,notblank"`
	MerchantName  string           `json:"merchant_name" validate:"required,notblank"`
	MerchantCity  string           `json:"merchant_city" validate:"required,notblank"`
	TransactionID string           `json:"transaction_id,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	QRSize        int              `json:"qr_size,omitempty" validate:"gte=0,lte=4096"`
}

// ReferenceLabel returns the transaction id, falling back to DefaultTransactionID.
func (r Request) ReferenceLabel() string {
	if strings.TrimSpace(r.TransactionID) == "" {
		return DefaultTransactionID
	}
	return r.TransactionID
}

// Size returns the rendering size hint, falling back to DefaultQRSize.
func (r Request) Size() int {
	if r.QRSize <= 0 {
		return DefaultQRSize
	}
	return r.QRSize
}

// IsStatic reports whether the request describes a reusable code.
func (r Request) IsStatic() bool {
	return r.ReferenceLabel() == DefaultTransactionID
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r Request) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("merchant_name", r.MerchantName)
	enc.AddString("merchant_city", r.MerchantCity)
	enc.AddString("transaction_id", r.ReferenceLabel())
	if r.Amount != nil {
		enc.AddString("amount", r.Amount.StringFixed(2))
	}
	enc.AddInt("qr_size", r.Size())
	return nil
}

// TLV is a single tag-length-value field. A TLV with Children is a
// template: its value is the concatenation of the encoded children.
type TLV struct {
	Tag      string
	Value    string
	Children []TLV
}

// FieldLimit constrains a single field during strict validation.
type FieldLimit struct {
	MaxLength int    `json:"max_length"`
	Mandatory bool   `json:"mandatory"`
	Charset   string `json:"charset,omitempty"`
}

// Profile carries the fixed values of the payload grammar.
type Profile struct {
	PayloadFormat string `json:"payload_format"`
	GUID          string `json:"guid"`
	MCC           string `json:"mcc"`
	Currency      string `json:"currency"`
	Country       string `json:"country"`
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	type Alias Profile
	aux := &struct {
		*Alias
	}{
		Alias: (*Alias)(p),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.GUID = strings.ToUpper(strings.TrimSpace(p.GUID))
	p.Country = strings.ToUpper(strings.TrimSpace(p.Country))
	return nil
}
