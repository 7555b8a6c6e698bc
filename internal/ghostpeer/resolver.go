package ghostpeer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/netip"
	"slices"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"ixfguard/internal/database"
	"ixfguard/internal/domain"
	"ixfguard/internal/ixf"
	"ixfguard/internal/validation"
)

var families = []domain.Protocol{domain.ProtocolIPv4, domain.ProtocolIPv6}

// SnapshotSource hands out the cached IX-F member list of an export URL.
type SnapshotSource interface {
	Snapshot(ctx context.Context, url string) (*ixf.Snapshot, error)
}

// Clearance records one address taken away from a conflicting record.
type Clearance struct {
	NetIXLanID uint64          `json:"netixlan_id"`
	Family     domain.Protocol `json:"family"`
	Address    string          `json:"address"`
}

// Outcome lists every mutation a resolution applied.
type Outcome struct {
	Cleared []Clearance `json:"cleared,omitempty"`
	Deleted []uint64    `json:"deleted,omitempty"`
}

func (o *Outcome) Empty() bool {
	return o == nil || (len(o.Cleared) == 0 && len(o.Deleted) == 0)
}

// Resolver settles address collisions between a freshly saved peering record
// and older records on the same LAN, using the exchange's IX-F member list as
// the authority.
type Resolver struct {
	source SnapshotSource
}

func NewResolver(source SnapshotSource) *Resolver {
	return &Resolver{source: source}
}

type conflict struct {
	row      domain.NetworkIXLan
	families []domain.Protocol
}

// Resolve runs inside the transaction that wrote saved, after the write. A
// conflicting record loses an address only when the member list confirms
// saved's (asn, address) pair and does not confirm the conflicting record's
// own pair. Every other collision fails with a DuplicateAddress error, which
// the caller must treat as a reason to roll the transaction back.
func (r *Resolver) Resolve(ctx context.Context, tx *gorm.DB, saved domain.NetworkIXLan, lan domain.IXLan) (*Outcome, error) {
	if saved.Status == domain.StatusDeleted {
		return &Outcome{}, nil
	}

	conflicts, err := findConflicts(tx, saved)
	if err != nil {
		return nil, err
	}
	if len(conflicts) == 0 {
		return &Outcome{}, nil
	}

	first := conflicts[0]
	if saved.Status != domain.StatusOK {
		return nil, duplicate(saved, first.families[0], nil)
	}

	snap, err := r.source.Snapshot(ctx, lan.IXFMemberListURL)
	if err != nil {
		log.Warn("Ghost peer resolution skipped, IX-F data unavailable",
			"ixlan", lan.ID, "netixlan", saved.ID, "error", err)
		return nil, duplicate(saved, first.families[0], errors.Join(validation.ErrIXFDataUnavailable, err))
	}

	real4, real6 := snap.PeerExists(saved.ASN, saved.Addr4(), saved.Addr6())
	confirmed := map[domain.Protocol]bool{
		domain.ProtocolIPv4: real4,
		domain.ProtocolIPv6: real6,
	}

	for _, c := range conflicts {
		for _, family := range c.families {
			if !confirmed[family] {
				return nil, duplicate(saved, family, nil)
			}
		}
		other4, other6 := snap.PeerExists(c.row.ASN, c.row.Addr4(), c.row.Addr6())
		for _, family := range c.families {
			if (family == domain.ProtocolIPv4 && other4) || (family == domain.ProtocolIPv6 && other6) {
				return nil, duplicate(saved, family, nil)
			}
		}
	}

	outcome := &Outcome{}
	for _, c := range conflicts {
		remaining := c.row
		for _, family := range c.families {
			addr := addressOf(saved, family)
			if err := database.ClearNetIXLanAddress(tx, c.row.ID, family); err != nil {
				return nil, err
			}
			setAddress(&remaining, family, nil)
			outcome.Cleared = append(outcome.Cleared, Clearance{NetIXLanID: c.row.ID, Family: family, Address: addr})
			log.Info("Ghost peer address released",
				"ixlan", lan.ID, "netixlan", c.row.ID, "asn", c.row.ASN, "family", family, "address", addr, "claimed_by", saved.ASN)
		}

		if !remaining.HasAddress() {
			if err := database.SoftDeleteNetIXLan(tx, c.row.ID); err != nil {
				return nil, err
			}
			outcome.Deleted = append(outcome.Deleted, c.row.ID)
			log.Info("Ghost peer deleted", "ixlan", lan.ID, "netixlan", c.row.ID, "asn", c.row.ASN)
		}
	}

	return outcome, nil
}

// PeerExists reports, per family, whether the LAN's member list lists asn at
// the given addresses.
func (r *Resolver) PeerExists(ctx context.Context, lan domain.IXLan, asn uint32, ip4, ip6 netip.Addr) (bool, bool, error) {
	snap, err := r.source.Snapshot(ctx, lan.IXFMemberListURL)
	if err != nil {
		return false, false, errors.Join(validation.ErrIXFDataUnavailable, err)
	}
	found4, found6 := snap.PeerExists(asn, ip4, ip6)
	return found4, found6, nil
}

// findConflicts merges the per-family scans by record id, keeping id order.
func findConflicts(tx *gorm.DB, saved domain.NetworkIXLan) ([]conflict, error) {
	var out []conflict
	index := make(map[uint64]int)

	for _, family := range families {
		addr := addressOf(saved, family)
		if addr == "" {
			continue
		}
		rows, err := database.FindAddressConflicts(tx, saved.IXLanID, family, addr, saved.ID)
		if err != nil {
			return nil, fmt.Errorf("ghost peer scan: %w", err)
		}
		for _, row := range rows {
			if i, ok := index[row.ID]; ok {
				out[i].families = append(out[i].families, family)
				continue
			}
			index[row.ID] = len(out)
			out = append(out, conflict{row: row, families: []domain.Protocol{family}})
		}
	}

	slices.SortFunc(out, func(a, b conflict) int {
		return cmp.Compare(a.row.ID, b.row.ID)
	})
	return out, nil
}

func duplicate(saved domain.NetworkIXLan, family domain.Protocol, cause error) error {
	return validation.DuplicateAddress(validation.FamilyField(family), addressOf(saved, family), cause)
}

func addressOf(n domain.NetworkIXLan, family domain.Protocol) string {
	raw := n.IPAddr4
	if family == domain.ProtocolIPv6 {
		raw = n.IPAddr6
	}
	if raw == nil {
		return ""
	}
	return *raw
}

func setAddress(n *domain.NetworkIXLan, family domain.Protocol, value *string) {
	if family == domain.ProtocolIPv6 {
		n.IPAddr6 = value
		return
	}
	n.IPAddr4 = value
}

// AddressesChanged decides whether a save must run resolution again: new
// records, changed addresses and records coming back from deletion do.
func AddressesChanged(prior *domain.NetworkIXLan, saved domain.NetworkIXLan) bool {
	if prior == nil || prior.ID == 0 {
		return true
	}
	if prior.Status == domain.StatusDeleted && saved.Status != domain.StatusDeleted {
		return true
	}
	for _, family := range families {
		if addressOf(*prior, family) != addressOf(saved, family) {
			return true
		}
	}
	return false
}
