package brcode

// EncoderOption represents a functional option for encoder configuration
type EncoderOption func(*Encoder)

// WithProfile replaces the fixed values of the payload grammar.
func WithProfile(profile Profile) EncoderOption {
	return func(e *Encoder) {
		e.profile = profile
	}
}

// WithKeyMode selects how the pix key is normalized.
func WithKeyMode(mode KeyMode) EncoderOption {
	return func(e *Encoder) {
		e.keyMode = mode
	}
}

// WithASCIIFold strips diacritics from merchant name and city before encoding.
func WithASCIIFold(enabled bool) EncoderOption {
	return func(e *Encoder) {
		e.asciiFold = enabled
	}
}

// Validation-related options
func WithValidationLevel(level ValidationLevel) EncoderOption {
	return func(e *Encoder) {
		e.validationLevel = level
	}
}

func WithStrictValidation() EncoderOption {
	return WithValidationLevel(ValidationStrict)
}

func WithBasicValidation() EncoderOption {
	return WithValidationLevel(ValidationBasic)
}

func WithCustomValidation(rules ...ValidationRule) EncoderOption {
	return func(e *Encoder) {
		e.rules = append(e.rules, rules...)
	}
}
