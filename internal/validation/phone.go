package validation

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ValidatePhoneNumber parses a free-text phone number and returns it in E.164
// form. region is an optional ISO 3166 alpha-2 hint; without it the number
// must carry its country code. Blank input is valid and stays blank.
func ValidatePhoneNumber(vc Context, value, region string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}

	region = strings.ToUpper(strings.TrimSpace(region))
	parsed, err := phonenumbers.Parse(trimmed, region)
	if err != nil {
		if vc.Bypass() {
			return trimmed, nil
		}
		return "", newFieldError("phone", value, ErrInvalidPhoneNumber, "Not a valid phone number (E.164)")
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
