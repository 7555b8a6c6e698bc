package validation

import (
	"context"
	"fmt"
	"net/netip"

	"ixfguard/internal/domain"
)

// PrefixLister yields the ok and pending prefixes of every LAN except the
// excluded one, in storage order.
type PrefixLister interface {
	ListActivePrefixes(ctx context.Context, excludeIXLanID uint64) ([]domain.IXLanPrefix, error)
}

// ValidatePrefixOverlap fails when the candidate contains, or is contained by,
// a prefix already assigned to another LAN. The first conflict in storage
// order is reported.
func ValidatePrefixOverlap(ctx context.Context, vc Context, lister PrefixLister, prefix netip.Prefix, ixlanID uint64) error {
	if vc.Bypass() {
		return nil
	}

	existing, err := lister.ListActivePrefixes(ctx, ixlanID)
	if err != nil {
		return fmt.Errorf("list prefixes: %w", err)
	}

	for _, pfx := range existing {
		network, ok := pfx.Network()
		if !ok {
			continue
		}
		if network.Overlaps(prefix) {
			return newFieldError("prefix", prefix.String(), ErrPrefixOverlap,
				"Prefix overlaps with %s assigned to IXLan %d", network, pfx.IXLanID)
		}
	}
	return nil
}
