package brcode

import (
	"encoding/json"
	"fmt"
)

// DefaultProfile returns the Pix BR Code profile.
func DefaultProfile() Profile {
	return Profile{
		PayloadFormat: PayloadFormatIndicator,
		GUID:          PixGUID,
		MCC:           MerchantCategoryCode,
		Currency:      CurrencyBRL,
		Country:       CountryBR,
	}
}

// LoadProfileFromJSON unmarshals a profile and fills unset values from
// DefaultProfile.
func LoadProfileFromJSON(data []byte) (Profile, error) {
	profile := DefaultProfile()
	if err := json.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Validate checks the fixed values against the shape the grammar expects.
func (p Profile) Validate() error {
	switch {
	case len(p.PayloadFormat) != 2 || digitsOnly(p.PayloadFormat) != p.PayloadFormat:
		return fmt.Errorf("%w: payload format %q must be 2 digits", ErrInvalidProfile, p.PayloadFormat)
	case p.GUID == "":
		return fmt.Errorf("%w: guid is empty", ErrInvalidProfile)
	case len(p.MCC) != 4 || digitsOnly(p.MCC) != p.MCC:
		return fmt.Errorf("%w: mcc %q must be 4 digits", ErrInvalidProfile, p.MCC)
	case len(p.Currency) != 3 || digitsOnly(p.Currency) != p.Currency:
		return fmt.Errorf("%w: currency %q must be 3 digits", ErrInvalidProfile, p.Currency)
	case len(p.Country) != 2:
		return fmt.Errorf("%w: country %q must be 2 letters", ErrInvalidProfile, p.Country)
	}
	return nil
}
