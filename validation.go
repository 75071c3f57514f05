package brcode

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ValidationRule defines the interface for a single validation rule.
type ValidationRule interface {
	Validate(path, value string) error
	Name() string // Returns the name of the rule (e.g., "length")
}

var (
	structValidate     *validator.Validate
	structValidateOnce sync.Once
)

func requestValidator() *validator.Validate {
	structValidateOnce.Do(func() {
		structValidate = validator.New()
		if err := structValidate.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
	})
	return structValidate
}

// structPaths maps Request fields to the payload path they end up in.
var structPaths = map[string]string{
	"PixKey":       PathPixKey,
	"MerchantName": TagMerchantName,
	"MerchantCity": TagMerchantCity,
	"QRSize":       "qr_size",
}

// CompiledValidator holds the rules for one validation level. It is safe
// for concurrent use.
type CompiledValidator struct {
	level      ValidationLevel
	fieldRules map[string][]ValidationRule // Rules specific to a field path
	globalRule []ValidationRule            // Rules applied to every field
}

// NewCompiledValidator compiles the rules for level from limits.
func NewCompiledValidator(level ValidationLevel, limits map[string]FieldLimit, custom ...ValidationRule) *CompiledValidator {
	cv := &CompiledValidator{
		level:      level,
		fieldRules: make(map[string][]ValidationRule),
		globalRule: append([]ValidationRule(nil), custom...),
	}

	if level < ValidationStrict {
		return cv
	}

	for path, limit := range limits {
		var rules []ValidationRule
		if limit.MaxLength > 0 || limit.Mandatory {
			rule := &LengthRule{MaxLength: limit.MaxLength}
			if limit.Mandatory {
				rule.MinLength = 1
			}
			rules = append(rules, rule)
		}
		if limit.Charset != "" {
			rules = append(rules, &CharsetRule{Charset: limit.Charset, Allow: []string{DefaultTransactionID}})
		}
		if len(rules) > 0 {
			cv.fieldRules[path] = rules
		}
	}
	return cv
}

// Validate checks a request before assembly.
//
// Every level enforces the MaxFieldLength ceiling on each field, template
// values included, and reports it as ErrFieldOverflow. Basic also requires
// key, name and city and a positive amount. Strict adds the EMV limits.
func Validate(req Request, level ValidationLevel) error {
	enc := NewEncoder(WithValidationLevel(level))
	_, err := enc.buildFields(req)
	return err
}

// ValidateRequest runs the struct-level checks on the raw request.
func (cv *CompiledValidator) ValidateRequest(req Request) error {
	if cv.level == ValidationNone {
		return nil
	}

	if err := requestValidator().Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			ve := &ValidationError{
				Tag:     structPaths[fe.StructField()],
				Rule:    fe.Tag(),
				Message: fmt.Sprintf("%s failed on %q", fe.StructField(), fe.Tag()),
			}
			if fe.Tag() == "required" || fe.Tag() == "notblank" {
				ve.Err = ErrMissingField
			}
			return ve
		}
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	// Amounts are written with two decimals, so the rounded value must be positive.
	if req.Amount != nil && !req.Amount.Round(2).IsPositive() {
		return &ValidationError{
			Tag:     TagTransactionAmount,
			Rule:    "positive",
			Message: fmt.Sprintf("amount %s must be greater than zero", req.Amount.String()),
			Err:     ErrInvalidAmount,
		}
	}
	return nil
}

// ValidateFields walks the field tree and checks every field.
func (cv *CompiledValidator) ValidateFields(tlvs []TLV) error {
	return cv.walk("", tlvs)
}

func (cv *CompiledValidator) walk(parent string, tlvs []TLV) error {
	for _, tlv := range tlvs {
		path := tlv.Tag
		if parent != "" {
			path = parent + "." + tlv.Tag
		}

		if tlv.Children != nil {
			if err := cv.walk(path, tlv.Children); err != nil {
				return err
			}
		}

		value, err := tlv.EncodedValue()
		if err != nil {
			return err
		}
		if !isTag(tlv.Tag) {
			return &FieldError{Tag: path, Err: ErrInvalidTag}
		}
		if len(value) > MaxFieldLength {
			return &FieldError{Tag: path, Length: len(value), Err: ErrFieldOverflow}
		}

		if err := cv.ValidateField(path, value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateField validates a single field against all applicable rules.
func (cv *CompiledValidator) ValidateField(path, value string) error {
	if cv.level == ValidationNone {
		return nil
	}

	for _, rule := range cv.fieldRules[path] {
		if err := rule.Validate(path, value); err != nil {
			return &ValidationError{Tag: path, Rule: rule.Name(), Message: err.Error()}
		}
	}

	for _, rule := range cv.globalRule {
		if err := rule.Validate(path, value); err != nil {
			return &ValidationError{Tag: path, Rule: rule.Name(), Message: err.Error()}
		}
	}
	return nil
}

// --- Validation Rule Implementations ---

// LengthRule validates the field's byte length.
type LengthRule struct {
	MinLength  int
	MaxLength  int
	AllowEmpty bool
}

func (r *LengthRule) Name() string {
	return "length"
}

func (r *LengthRule) Validate(_, value string) error {
	length := len(value)

	if length == 0 && r.AllowEmpty {
		return nil
	}

	if r.MinLength > 0 && length < r.MinLength {
		return fmt.Errorf("length %d below minimum %d", length, r.MinLength)
	}

	if r.MaxLength > 0 && length > r.MaxLength {
		return fmt.Errorf("length %d exceeds maximum %d", length, r.MaxLength)
	}

	return nil
}

// CharsetRule rejects bytes outside Charset. Values listed in Allow pass
// unchecked.
type CharsetRule struct {
	Charset string
	Allow   []string
}

func (r *CharsetRule) Name() string {
	return "charset"
}

func (r *CharsetRule) Validate(_, value string) error {
	for _, allowed := range r.Allow {
		if value == allowed {
			return nil
		}
	}

	for i := 0; i < len(value); i++ {
		if strings.IndexByte(r.Charset, value[i]) < 0 {
			return fmt.Errorf("invalid character at position %d", i)
		}
	}
	return nil
}

// PrintableRule requires printable ASCII (32-126), the safe subset for
// readers that do not handle UTF-8.
type PrintableRule struct {
	Paths []string // Empty means every field
}

func (r *PrintableRule) Name() string {
	return "printable"
}

func (r *PrintableRule) Validate(path, value string) error {
	if len(r.Paths) > 0 {
		found := false
		for _, p := range r.Paths {
			if p == path {
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}

	for i := 0; i < len(value); i++ {
		if value[i] < 32 || value[i] > 126 {
			return fmt.Errorf("non-printable byte at position %d", i)
		}
	}
	return nil
}

// RegexRule validates a single field path against a regular expression.
type RegexRule struct {
	Path        string
	Pattern     string
	Description string // User-friendly error message

	once  sync.Once
	regex *regexp.Regexp
}

func (r *RegexRule) Name() string {
	return "regex"
}

func (r *RegexRule) Validate(path, value string) error {
	if path != r.Path {
		return nil
	}

	r.once.Do(func() {
		r.regex = regexp.MustCompile(r.Pattern)
	})

	if !r.regex.MatchString(value) {
		if r.Description != "" {
			return fmt.Errorf("%s", r.Description)
		}
		return fmt.Errorf("does not match pattern %s", r.Pattern)
	}
	return nil
}

// CustomRule allows defining an arbitrary validation function.
type CustomRule struct {
	ValidateFunc func(path, value string) error
	RuleName     string
}

func (r *CustomRule) Name() string {
	return r.RuleName
}

func (r *CustomRule) Validate(path, value string) error {
	return r.ValidateFunc(path, value)
}
