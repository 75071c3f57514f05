package brcode

import (
	"regexp"
	"strings"
)

type KeyType int

const (
	KeyTypeUnknown KeyType = iota
	KeyTypePhone
	KeyTypeTaxID // CPF or CNPJ
	KeyTypeEmail
	KeyTypeRandom // EVP key, a UUID issued by the payment institution
)

func (kt KeyType) String() string {
	switch kt {
	case KeyTypePhone:
		return "phone"
	case KeyTypeTaxID:
		return "tax_id"
	case KeyTypeEmail:
		return "email"
	case KeyTypeRandom:
		return "random"
	default:
		return "unknown"
	}
}

var evpPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// DetectKeyType guesses the pix key type from its shape.
func DetectKeyType(key string) KeyType {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return KeyTypeUnknown
	case strings.Contains(key, "@"):
		return KeyTypeEmail
	case evpPattern.MatchString(key):
		return KeyTypeRandom
	case strings.HasPrefix(key, "+"):
		return KeyTypePhone
	}

	switch digits := digitsOnly(key); len(digits) {
	case 11, 14:
		// 11 digits is also a national phone number without the country
		// code; both normalize the same way.
		return KeyTypeTaxID
	case 10, 12, 13:
		return KeyTypePhone
	default:
		return KeyTypeUnknown
	}
}

// NormalizeKey prepares the pix key for the merchant account template.
func NormalizeKey(key string, mode KeyMode) string {
	if mode == KeyModeDigits {
		return digitsOnly(key)
	}

	key = strings.TrimSpace(key)
	switch DetectKeyType(key) {
	case KeyTypeEmail, KeyTypeRandom:
		return strings.ToLower(key)
	case KeyTypePhone:
		if strings.HasPrefix(key, "+") {
			return "+" + digitsOnly(key)
		}
		return digitsOnly(key)
	case KeyTypeTaxID:
		return digitsOnly(key)
	default:
		return key
	}
}
