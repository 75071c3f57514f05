package brcode

// Encoder assembles BR Code payloads. It is immutable after NewEncoder and
// safe for concurrent use.
type Encoder struct {
	profile         Profile
	keyMode         KeyMode
	asciiFold       bool
	validationLevel ValidationLevel
	rules           []ValidationRule
	validator       *CompiledValidator
	err             error // Set when the options produce an unusable encoder
}

// NewEncoder creates an encoder for the Pix profile. Without options it
// strips the key to digits, keeps name and city verbatim and runs basic
// validation. An invalid profile is reported by every Encode and Fields call.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{
		profile:         DefaultProfile(),
		keyMode:         KeyModeDigits,
		validationLevel: ValidationBasic,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.err = e.profile.Validate()
	e.validator = NewCompiledValidator(e.validationLevel, DefaultFieldLimits, e.rules...)
	return e
}

var defaultEncoder = NewEncoder()

// Encode assembles a payload with the default encoder.
func Encode(req Request) (string, error) {
	return defaultEncoder.Encode(req)
}

// Profile returns the fixed values the encoder writes.
func (e *Encoder) Profile() Profile {
	return e.profile
}

// Fields returns the ordered top-level fields for req, checksum excluded.
func (e *Encoder) Fields(req Request) ([]TLV, error) {
	return e.buildFields(req)
}

// Encode validates req and returns the payload: the fields in wire order,
// followed by tag 63 carrying the CRC of everything before its value.
func (e *Encoder) Encode(req Request) (string, error) {
	fields, err := e.buildFields(req)
	if err != nil {
		return "", err
	}

	buf := getBuffer()
	defer putBuffer(buf)

	for _, field := range fields {
		if err := field.appendTo(buf); err != nil {
			return "", err
		}
	}
	buf.WriteString(crcPlaceholder)
	buf.WriteString(Checksum(buf.Bytes()))

	return buf.String(), nil
}

func (e *Encoder) buildFields(req Request) ([]TLV, error) {
	if e.err != nil {
		return nil, e.err
	}
	if err := e.validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	name, city := req.MerchantName, req.MerchantCity
	if e.asciiFold {
		name, city = FoldASCII(name), FoldASCII(city)
	}

	fields := make([]TLV, 0, 9)
	fields = append(fields,
		Field(TagPayloadFormat, e.profile.PayloadFormat),
		Template(TagMerchantAccount,
			Field(SubTagGUID, e.profile.GUID),
			Field(SubTagPixKey, NormalizeKey(req.PixKey, e.keyMode)),
		),
		Field(TagMerchantCategory, e.profile.MCC),
		Field(TagTransactionCurrency, e.profile.Currency),
	)
	if req.Amount != nil {
		fields = append(fields, Field(TagTransactionAmount, FormatAmount(*req.Amount)))
	}
	fields = append(fields,
		Field(TagCountryCode, e.profile.Country),
		Field(TagMerchantName, name),
		Field(TagMerchantCity, city),
		Template(TagAdditionalData,
			Field(SubTagReferenceLabel, req.ReferenceLabel()),
		),
	)

	if err := e.validator.ValidateFields(fields); err != nil {
		return nil, err
	}
	return fields, nil
}
