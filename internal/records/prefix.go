package records

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"ixfguard/internal/database"
	"ixfguard/internal/domain"
	"ixfguard/internal/validation"
)

// SavePrefix validates and stores a LAN prefix. The protocol is derived from
// the prefix when left empty.
func (p *Pipeline) SavePrefix(ctx context.Context, principal domain.Principal, pfx *domain.IXLanPrefix) error {
	vc := validation.NewContext(principal)

	status, err := validation.ValidateStatus(pfx.Status)
	if err != nil {
		return err
	}
	pfx.Status = status

	network, err := validation.ParsePrefix(pfx.Prefix)
	if err != nil {
		return err
	}
	if pfx.Protocol == "" {
		pfx.Protocol = domain.ProtocolIPv6
		if network.Addr().Is4() {
			pfx.Protocol = domain.ProtocolIPv4
		}
	}
	if err := validation.ValidatePrefixProtocol(pfx.Protocol, network); err != nil {
		return err
	}
	if network, err = validation.ValidateAddressSpace(vc, network); err != nil {
		return err
	}
	pfx.Prefix = network.String()

	return database.WithTransaction(ctx, func(tx *gorm.DB) error {
		lan, err := database.GetIXLan(tx, pfx.IXLanID)
		if err != nil {
			return lookupErr("ixlan", pfx.IXLanID, err)
		}
		if err := validation.ValidatePrefixStatus(*pfx, lan); err != nil {
			return err
		}
		if pfx.Status.IsActive() {
			if err := validation.ValidatePrefixOverlap(ctx, vc, database.Prefixes(tx), network, lan.ID); err != nil {
				return err
			}
		}
		if err := database.SaveIXLanPrefix(tx, pfx); err != nil {
			return err
		}
		log.Debug("Prefix saved", "ixpfx", pfx.ID, "ixlan", lan.ID, "prefix", pfx.Prefix, "status", pfx.Status)
		return nil
	})
}
