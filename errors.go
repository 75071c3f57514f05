package brcode

import "fmt"

var (
	ErrFieldOverflow    = fmt.Errorf("field value exceeds %d bytes", MaxFieldLength)
	ErrInvalidTag       = fmt.Errorf("invalid tag id")
	ErrInvalidAmount    = fmt.Errorf("invalid amount")
	ErrMissingField     = fmt.Errorf("missing field")
	ErrValidationFailed = fmt.Errorf("validation failed")
	ErrInvalidProfile   = fmt.Errorf("invalid profile")
)

// FieldError reports which tag a formatting error belongs to.
type FieldError struct {
	Tag    string
	Length int
	Err    error
}

func (fe *FieldError) Error() string {
	if fe.Length > 0 {
		return fmt.Sprintf("tag %s: %v (got %d bytes)", fe.Tag, fe.Err, fe.Length)
	}
	return fmt.Sprintf("tag %s: %v", fe.Tag, fe.Err)
}

func (fe *FieldError) Unwrap() error {
	return fe.Err
}

type ValidationError struct {
	Tag     string
	Rule    string
	Message string
	Err     error // Optional cause, e.g. ErrMissingField
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for tag %s (%s): %s", ve.Tag, ve.Rule, ve.Message)
}

// Unwrap lets errors.Is match ErrValidationFailed and the cause.
func (ve *ValidationError) Unwrap() []error {
	if ve.Err != nil {
		return []error{ErrValidationFailed, ve.Err}
	}
	return []error{ErrValidationFailed}
}
