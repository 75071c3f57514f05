package brcode

import "strings"

// FormatField encodes a single field as tag + two digit byte length + value.
//
// The length is the number of bytes of value, not its rune count, so a
// name such as "São" declares 04. Values longer than MaxFieldLength bytes
// cannot be represented and return ErrFieldOverflow.
func FormatField(tag, value string) (string, error) {
	var sb strings.Builder
	if err := appendField(&sb, tag, value); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// MustFormatField is like FormatField but panics on error. It is meant
// for constant values.
func MustFormatField(tag, value string) string {
	s, err := FormatField(tag, value)
	if err != nil {
		panic(err)
	}
	return s
}

// fieldWriter is satisfied by strings.Builder and bytes.Buffer.
type fieldWriter interface {
	Grow(n int)
	WriteByte(c byte) error
	WriteString(s string) (int, error)
}

func appendField(sb fieldWriter, tag, value string) error {
	if !isTag(tag) {
		return &FieldError{Tag: tag, Err: ErrInvalidTag}
	}
	if len(value) > MaxFieldLength {
		return &FieldError{Tag: tag, Length: len(value), Err: ErrFieldOverflow}
	}

	sb.Grow(TagLength + LengthDigits + len(value))
	sb.WriteString(tag)
	writeLength(sb, len(value))
	sb.WriteString(value)
	return nil
}
