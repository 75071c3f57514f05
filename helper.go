package brcode

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const hexTableUpper = "0123456789ABCDEF"

// encodeHexUpper16 writes v as four uppercase hex digits.
func encodeHexUpper16(v uint16) string {
	var dst [4]byte
	dst[0] = hexTableUpper[v>>12&0x0f]
	dst[1] = hexTableUpper[v>>8&0x0f]
	dst[2] = hexTableUpper[v>>4&0x0f]
	dst[3] = hexTableUpper[v&0x0f]
	return string(dst[:])
}

// writeLength appends n as a zero padded two digit decimal.
func writeLength(sb fieldWriter, n int) {
	sb.WriteByte(byte('0' + n/10))
	sb.WriteByte(byte('0' + n%10))
}

func digitsOnly(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func isTag(tag string) bool {
	return len(tag) == TagLength &&
		tag[0] >= '0' && tag[0] <= '9' &&
		tag[1] >= '0' && tag[1] <= '9'
}

// FormatAmount renders an amount with exactly two decimals.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FoldASCII removes diacritics, so "São Paulo" becomes "Sao Paulo".
// Characters without an ASCII base letter are kept.
func FoldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
