package records

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"ixfguard/internal/database"
	"ixfguard/internal/domain"
	"ixfguard/internal/ghostpeer"
	"ixfguard/internal/validation"
)

// SavePeering validates and stores a peering record, then settles address
// collisions with ghost peers in the same transaction. The returned outcome
// lists what the resolver changed on other records.
func (p *Pipeline) SavePeering(ctx context.Context, principal domain.Principal, n *domain.NetworkIXLan) (*ghostpeer.Outcome, error) {
	vc := validation.NewContext(principal)

	status, err := validation.ValidateStatus(n.Status)
	if err != nil {
		return nil, err
	}
	n.Status = status

	if err := validation.ValidateSpeed(vc, n.Speed); err != nil {
		return nil, err
	}
	for _, family := range []domain.Protocol{domain.ProtocolIPv4, domain.ProtocolIPv6} {
		raw := n.IPAddr4
		if family == domain.ProtocolIPv6 {
			raw = n.IPAddr6
		}
		addr, err := validation.ParsePeeringAddress(family, raw)
		if err != nil {
			return nil, err
		}
		var canonical *string
		if addr.IsValid() {
			canonical = domain.AddrString(addr.String())
		}
		if family == domain.ProtocolIPv6 {
			n.IPAddr6 = canonical
		} else {
			n.IPAddr4 = canonical
		}
	}

	if err := validation.ValidateAddressPresence(n.Status, n.Addr4(), n.Addr6()); err != nil {
		return nil, err
	}

	outcome := &ghostpeer.Outcome{}
	err = database.WithTransaction(ctx, func(tx *gorm.DB) error {
		lan, err := database.LockIXLan(tx, n.IXLanID)
		if err != nil {
			return lookupErr("ixlan", n.IXLanID, err)
		}
		network, err := database.GetNetwork(tx, n.NetworkID)
		if err != nil {
			return lookupErr("network", n.NetworkID, err)
		}
		if n.ASN == 0 {
			n.ASN = network.ASN
		}

		if n.Status != domain.StatusDeleted {
			prefixes, err := database.ListIXLanPrefixes(tx, lan.ID)
			if err != nil {
				return err
			}
			if err := validation.ValidateAddressInLAN(domain.ProtocolIPv4, n.Addr4(), prefixes); err != nil {
				return err
			}
			if err := validation.ValidateAddressInLAN(domain.ProtocolIPv6, n.Addr6(), prefixes); err != nil {
				return err
			}
		}

		var prior *domain.NetworkIXLan
		if n.ID != 0 {
			stored, err := database.GetNetIXLan(tx, n.ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil {
				prior = &stored
			}
		}

		if err := database.SaveNetIXLan(tx, n); err != nil {
			return err
		}
		log.Debug("Peering record saved", "netixlan", n.ID, "ixlan", lan.ID, "asn", n.ASN, "status", n.Status)

		if !ghostpeer.AddressesChanged(prior, *n) {
			return nil
		}
		resolved, err := p.resolver.Resolve(ctx, tx, *n, lan)
		if err != nil {
			return err
		}
		outcome = resolved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}
