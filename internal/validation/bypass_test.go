package validation

import (
	"context"
	"net/netip"
	"testing"

	"ixfguard/internal/domain"
)

type staticPrefixes []domain.IXLanPrefix

func (s staticPrefixes) ListActivePrefixes(_ context.Context, exclude uint64) ([]domain.IXLanPrefix, error) {
	out := make([]domain.IXLanPrefix, 0, len(s))
	for _, pfx := range s {
		if pfx.IXLanID == exclude || !pfx.Status.IsActive() {
			continue
		}
		out = append(out, pfx)
	}
	return out, nil
}

func TestBypassValidation(t *testing.T) {
	var nilUser *domain.User

	cases := []struct {
		name      string
		principal domain.Principal
		want      bool
	}{
		{"no principal", nil, false},
		{"typed nil user", nilUser, false},
		{"plain user", user, false},
		{"admin role", admin, true},
		{"superuser", superuser, true},
	}
	for _, tc := range cases {
		if got := BypassValidation(tc.principal); got != tc.want {
			t.Fatalf("%s: BypassValidation = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPrivilegedPrincipalBypassesValidators(t *testing.T) {
	rules := defaultContext(nil).Rules
	rules.MaxPrefixV4Limit = 500000
	rules.MaxPrefixV6Limit = 500000
	rules.MinPrefixLenV4, rules.MaxPrefixLenV4 = 24, 24
	rules.MinPrefixLenV6, rules.MaxPrefixLenV6 = 48, 48
	rules.MaxIRRDepth = 3
	rules.MinSpeed, rules.MaxSpeed = 10, 100

	existing := staticPrefixes{{IXLanID: 1, Protocol: domain.ProtocolIPv4, Prefix: "198.32.125.0/24", Status: domain.StatusOK}}

	run := func(vc Context) []error {
		var errs []error
		for _, raw := range []string{"37.77.32.0/20", "131.72.77.240/28", "2403:c240::/32", "2001:504:0:2::/64", "10.0.0.0/24"} {
			_, err := ValidateAddressSpace(vc, netip.MustParsePrefix(raw))
			errs = append(errs, err)
		}
		_, err := ValidateInfoPrefixes4(vc, intPtr(500001))
		errs = append(errs, err)
		_, err = ValidateInfoPrefixes6(vc, intPtr(500001))
		errs = append(errs, err)
		errs = append(errs, ValidateSpeed(vc, 1), ValidateSpeed(vc, 1000))
		_, err = ValidateIRRAsSet(vc, "ripe::as-foo:as123:as345:as678")
		errs = append(errs, err)
		errs = append(errs, ValidatePrefixOverlap(context.Background(), vc, existing, netip.MustParsePrefix("198.32.124.0/23"), 2))
		_, err = ValidatePhoneNumber(vc, "invalid", "")
		errs = append(errs, err)
		return errs
	}

	for _, p := range []domain.Principal{superuser, admin} {
		for i, err := range run(Context{Principal: p, Rules: rules}) {
			if err != nil {
				t.Fatalf("privileged check %d failed: %v", i, err)
			}
		}
	}

	for i, err := range run(Context{Principal: user, Rules: rules}) {
		if err == nil {
			t.Fatalf("unprivileged check %d passed", i)
		}
	}
}

func TestValidatePrefixOverlap(t *testing.T) {
	existing := staticPrefixes{
		{ID: 1, IXLanID: 1, Protocol: domain.ProtocolIPv4, Prefix: "198.32.125.0/24", Status: domain.StatusOK},
		{ID: 2, IXLanID: 3, Protocol: domain.ProtocolIPv4, Prefix: "198.32.124.0/24", Status: domain.StatusPending},
		{ID: 3, IXLanID: 4, Protocol: domain.ProtocolIPv4, Prefix: "80.81.192.0/21", Status: domain.StatusDeleted},
	}
	vc := defaultContext(user)

	err := ValidatePrefixOverlap(context.Background(), vc, existing, netip.MustParsePrefix("198.32.124.0/23"), 2)
	expectKind(t, err, ErrPrefixOverlap)
	if msg := asFieldError(t, err).Message; msg != "Prefix overlaps with 198.32.125.0/24 assigned to IXLan 1" {
		t.Fatalf("unexpected message %q", msg)
	}

	err = ValidatePrefixOverlap(context.Background(), vc, existing, netip.MustParsePrefix("198.32.125.128/25"), 2)
	expectKind(t, err, ErrPrefixOverlap)

	if err := ValidatePrefixOverlap(context.Background(), vc, existing, netip.MustParsePrefix("198.32.125.0/24"), 1); err != nil {
		t.Fatalf("own LAN prefix reported as overlap: %v", err)
	}
	if err := ValidatePrefixOverlap(context.Background(), vc, existing, netip.MustParsePrefix("80.81.192.0/21"), 2); err != nil {
		t.Fatalf("deleted prefix reported as overlap: %v", err)
	}
}
