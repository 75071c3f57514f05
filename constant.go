package brcode

// Top-level tag ids of the BR Code payload, in wire order.
const (
	TagPayloadFormat       = "00"
	TagMerchantAccount     = "26"
	TagMerchantCategory    = "52"
	TagTransactionCurrency = "53"
	TagTransactionAmount   = "54"
	TagCountryCode         = "58"
	TagMerchantName        = "59"
	TagMerchantCity        = "60"
	TagAdditionalData      = "62"
	TagCRC                 = "63"
)

// Sub-tags of the merchant account information template (tag 26).
const (
	SubTagGUID   = "00"
	SubTagPixKey = "01"
)

// Sub-tags of the additional data field template (tag 62).
const (
	SubTagReferenceLabel = "05"
)

// Fixed values of the Pix profile.
const (
	PayloadFormatIndicator = "01"
	PixGUID                = "BR.GOV.BCB.PIX"
	MerchantCategoryCode   = "0000" // unclassified
	CurrencyBRL            = "986"  // ISO-4217 numeric
	CountryBR              = "BR"
)

const (
	// DefaultTransactionID marks a static, reusable code.
	DefaultTransactionID = "***"
	DefaultQRSize        = 160

	// MaxFieldLength is the largest value a two-digit length prefix can declare.
	MaxFieldLength = 99

	TagLength    = 2
	LengthDigits = 2
	CRCLength    = 4

	// crcPlaceholder is tag 63 with its fixed length, value pending.
	crcPlaceholder = TagCRC + "04"
)

// Field paths used by validation: a top-level tag, or parent.child for
// fields nested inside a template.
const (
	PathPixKey         = TagMerchantAccount + "." + SubTagPixKey
	PathReferenceLabel = TagAdditionalData + "." + SubTagReferenceLabel
)

// DefaultFieldLimits maps variable fields to their EMV limits. Basic
// validation only enforces MaxFieldLength; strict validation adds these.
var DefaultFieldLimits = map[string]FieldLimit{
	PathPixKey:           {MaxLength: 77, Mandatory: true},                             // Pix key (99 minus GUID sub-field and key header)
	TagTransactionAmount: {MaxLength: 13, Mandatory: false},                            // Transaction Amount
	TagMerchantName:      {MaxLength: 25, Mandatory: true},                             // Merchant Name
	TagMerchantCity:      {MaxLength: 15, Mandatory: true},                             // Merchant City
	PathReferenceLabel:   {MaxLength: 25, Mandatory: true, Charset: referenceCharset}, // Reference Label (txid)
}

const referenceCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
