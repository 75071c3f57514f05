package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mkadit/brcode"
)

func init() {
	godotenv.Load()
}

type App struct {
	Env             string
	Port            string
	ShutdownTimeout int
	LogLevel        string
	AllowedOrigins  []string
}

// Merchant holds the default payee used when a request leaves it out.
type Merchant struct {
	PixKey string
	Name   string
	City   string
	QRSize int
}

type Encoder struct {
	ValidationLevel string
	KeyMode         string
	ASCIIFold       bool
	ProfilePath     string
}

type Config struct {
	App      App
	Merchant Merchant
	Encoder  Encoder
}

func NewConfig() *Config {
	return &Config{
		App: App{
			Env:             GetEnvString("APP_ENV", "development"),
			Port:            GetEnvString("HTTP_PORT", ":8080"),
			ShutdownTimeout: GetEnvInt("SHUTDOWN_TIMEOUT", 10),
			LogLevel:        GetEnvString("LOG_LEVEL", "info"),
			AllowedOrigins:  GetEnvStrings("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Merchant: Merchant{
			PixKey: GetEnvString("PIX_KEY", ""),
			Name:   GetEnvString("MERCHANT_NAME", ""),
			City:   GetEnvString("MERCHANT_CITY", ""),
			QRSize: GetEnvInt("QR_SIZE", brcode.DefaultQRSize),
		},
		Encoder: Encoder{
			ValidationLevel: GetEnvString("VALIDATION_LEVEL", "basic"),
			KeyMode:         GetEnvString("KEY_MODE", "digits"),
			ASCIIFold:       GetEnvBool("ASCII_FOLD", false),
			ProfilePath:     GetEnvString("PROFILE_PATH", ""),
		},
	}
}

// Validate rejects settings the encoder cannot use.
func (c *Config) Validate() error {
	if _, err := ParseValidationLevel(c.Encoder.ValidationLevel); err != nil {
		return err
	}
	if _, err := ParseKeyMode(c.Encoder.KeyMode); err != nil {
		return err
	}
	if c.Merchant.QRSize <= 0 {
		return fmt.Errorf("QR_SIZE must be > 0")
	}
	if c.App.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	return nil
}

func ParseValidationLevel(s string) (brcode.ValidationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return brcode.ValidationNone, nil
	case "", "basic":
		return brcode.ValidationBasic, nil
	case "strict":
		return brcode.ValidationStrict, nil
	default:
		return 0, fmt.Errorf("VALIDATION_LEVEL must be one of: none, basic, strict")
	}
}

func ParseKeyMode(s string) (brcode.KeyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "digits":
		return brcode.KeyModeDigits, nil
	case "typed":
		return brcode.KeyModeTyped, nil
	default:
		return 0, fmt.Errorf("KEY_MODE must be one of: digits, typed")
	}
}

// EncoderOptions translates the encoder settings into brcode options.
func (c *Config) EncoderOptions() ([]brcode.EncoderOption, error) {
	level, err := ParseValidationLevel(c.Encoder.ValidationLevel)
	if err != nil {
		return nil, err
	}
	mode, err := ParseKeyMode(c.Encoder.KeyMode)
	if err != nil {
		return nil, err
	}

	opts := []brcode.EncoderOption{
		brcode.WithValidationLevel(level),
		brcode.WithKeyMode(mode),
		brcode.WithASCIIFold(c.Encoder.ASCIIFold),
	}

	if c.Encoder.ProfilePath != "" {
		data, err := os.ReadFile(c.Encoder.ProfilePath)
		if err != nil {
			return nil, fmt.Errorf("read profile: %w", err)
		}
		profile, err := brcode.LoadProfileFromJSON(data)
		if err != nil {
			return nil, err
		}
		opts = append(opts, brcode.WithProfile(profile))
	}
	return opts, nil
}
