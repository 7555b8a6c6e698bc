package validation

import (
	"strconv"
	"strings"

	"ixfguard/internal/domain"
)

// ParseInfoPrefixes coerces form input into an optional count. Blank input
// is nil.
func ParseInfoPrefixes(raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, newFieldError("info_prefixes", raw, ErrInvalidPrefixCount, "Prefix count must be a whole number")
	}
	return &n, nil
}

func ValidateInfoPrefixes4(vc Context, value *int) (int, error) {
	return validateInfoPrefixes(vc, domain.ProtocolIPv4, value)
}

func ValidateInfoPrefixes6(vc Context, value *int) (int, error) {
	return validateInfoPrefixes(vc, domain.ProtocolIPv6, value)
}

// validateInfoPrefixes treats nil as 0, which is always valid.
func validateInfoPrefixes(vc Context, family domain.Protocol, value *int) (int, error) {
	if value == nil {
		return 0, nil
	}
	n := *value
	if vc.Bypass() {
		return n, nil
	}

	field, limit := "info_prefixes6", vc.Rules.MaxPrefixV6Limit
	if family == domain.ProtocolIPv4 {
		field, limit = "info_prefixes4", vc.Rules.MaxPrefixV4Limit
	}

	if n < 0 {
		return 0, newFieldError(field, strconv.Itoa(n), ErrPrefixCountExceeded, "Negative value not allowed")
	}
	if n > limit {
		return 0, newFieldError(field, strconv.Itoa(n), ErrPrefixCountExceeded, "Maximum value allowed %d", limit)
	}
	return n, nil
}
