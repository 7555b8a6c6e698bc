package validation

import (
	"net/netip"
	"strconv"

	"github.com/go-playground/validator/v10"

	"ixfguard/internal/domain"
)

var fieldValidator = validator.New()

// ValidatePrefixStatus enforces the prefix/LAN status coupling: an ok prefix
// cannot live under a pending LAN, and nothing but a deleted prefix can live
// under a deleted LAN.
func ValidatePrefixStatus(prefix domain.IXLanPrefix, lan domain.IXLan) error {
	mismatch := false
	switch lan.Status {
	case domain.StatusPending:
		mismatch = prefix.Status == domain.StatusOK
	case domain.StatusDeleted:
		mismatch = prefix.Status.IsActive()
	}
	if !mismatch {
		return nil
	}
	return newFieldError("status", string(prefix.Status), ErrIXLanStatusMismatch,
		"IXLanPrefix with status '%s' cannot be linked to a IXLan with status '%s'.", prefix.Status, lan.Status)
}

// ValidateStatus checks a lifecycle status; blank means ok.
func ValidateStatus(raw domain.Status) (domain.Status, error) {
	status, err := domain.ParseStatus(string(raw))
	if err != nil {
		return "", newFieldError("status", string(raw), ErrInvalidStatus, "Invalid status: %s", raw)
	}
	return status, nil
}

// ValidateSpeed bounds the port speed of a peering record, in Mbit/s.
func ValidateSpeed(vc Context, speed uint32) error {
	if vc.Bypass() {
		return nil
	}
	if speed < vc.Rules.MinSpeed {
		return newFieldError("speed", strconv.FormatUint(uint64(speed), 10), ErrSpeedOutOfBounds,
			"Minimum speed is %d", vc.Rules.MinSpeed)
	}
	if speed > vc.Rules.MaxSpeed {
		return newFieldError("speed", strconv.FormatUint(uint64(speed), 10), ErrSpeedOutOfBounds,
			"Maximum speed is %d", vc.Rules.MaxSpeed)
	}
	return nil
}

// ParsePeeringAddress parses an optional peering address of the given family.
// A nil or blank value yields the zero Addr.
func ParsePeeringAddress(family domain.Protocol, raw *string) (netip.Addr, error) {
	field := FamilyField(family)
	if raw == nil || *raw == "" {
		return netip.Addr{}, nil
	}
	addr, err := netip.ParseAddr(*raw)
	if err != nil || addr.Zone() != "" {
		return netip.Addr{}, newFieldError(field, *raw, ErrInvalidAddress, "Invalid %s address", family)
	}
	addr = addr.Unmap()
	if addr.Is4() != (family == domain.ProtocolIPv4) {
		return netip.Addr{}, newFieldError(field, *raw, ErrProtocolMismatch, "%s is not an %s address", *raw, family)
	}
	return addr, nil
}

// ValidateAddressPresence rejects a live peering record that holds neither
// an IPv4 nor an IPv6 address.
func ValidateAddressPresence(status domain.Status, ip4, ip6 netip.Addr) error {
	if status == domain.StatusDeleted || ip4.IsValid() || ip6.IsValid() {
		return nil
	}
	return newFieldError("ipaddr4", "", ErrAddressRequired, "Input required for IPv4 or IPv6")
}

// ValidateAddressInLAN requires a peering address to fall inside one of the
// LAN's active prefixes of the same family.
func ValidateAddressInLAN(family domain.Protocol, addr netip.Addr, prefixes []domain.IXLanPrefix) error {
	if !addr.IsValid() {
		return nil
	}
	for _, pfx := range prefixes {
		if pfx.Protocol != family || !pfx.Status.IsActive() {
			continue
		}
		if network, ok := pfx.Network(); ok && network.Contains(addr) {
			return nil
		}
	}
	return newFieldError(FamilyField(family), addr.String(), ErrAddressOutsideLAN,
		"%s address %s does not match any prefix on this IXLan", family, addr)
}

// ValidateEmail checks an optional e-mail address.
func ValidateEmail(field, value string) error {
	if err := fieldValidator.Var(value, "omitempty,email"); err != nil {
		return newFieldError(field, value, ErrInvalidEmail, "Invalid e-mail address: %s", value)
	}
	return nil
}

// FamilyField is the peering record column holding the given family.
func FamilyField(family domain.Protocol) string {
	if family == domain.ProtocolIPv6 {
		return "ipaddr6"
	}
	return "ipaddr4"
}
