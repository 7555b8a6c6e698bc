package records

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"ixfguard/internal/database"
	"ixfguard/internal/domain"
	"ixfguard/internal/validation"
)

// SaveNetwork normalises the IRR reference and prefix counts of a network
// before storing it. Absent prefix counts are stored as 0.
func (p *Pipeline) SaveNetwork(ctx context.Context, principal domain.Principal, n *domain.Network) error {
	vc := validation.NewContext(principal)

	status, err := validation.ValidateStatus(n.Status)
	if err != nil {
		return err
	}
	n.Status = status

	asSet, err := validation.ValidateIRRAsSet(vc, n.IRRAsSet)
	if err != nil {
		return err
	}
	v4, err := validation.ValidateInfoPrefixes4(vc, n.InfoPrefixes4)
	if err != nil {
		return err
	}
	v6, err := validation.ValidateInfoPrefixes6(vc, n.InfoPrefixes6)
	if err != nil {
		return err
	}
	n.IRRAsSet = asSet
	n.InfoPrefixes4 = &v4
	n.InfoPrefixes6 = &v6

	return database.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := database.SaveNetwork(tx, n); err != nil {
			return err
		}
		log.Debug("Network saved", "net", n.ID, "asn", n.ASN)
		return nil
	})
}

// SaveContact checks the phone number against the configured default region
// and the e-mail format of a network contact.
func (p *Pipeline) SaveContact(ctx context.Context, principal domain.Principal, c *domain.NetworkContact) error {
	vc := validation.NewContext(principal)

	status, err := validation.ValidateStatus(c.Status)
	if err != nil {
		return err
	}
	c.Status = status

	phone, err := validation.ValidatePhoneNumber(vc, c.Phone, vc.Rules.DefaultPhoneRegion)
	if err != nil {
		return err
	}
	if err := validation.ValidateEmail("email", c.Email); err != nil {
		return err
	}
	c.Phone = phone

	return database.WithTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := database.GetNetwork(tx, c.NetworkID); err != nil {
			return lookupErr("network", c.NetworkID, err)
		}
		if err := database.SaveContact(tx, c); err != nil {
			return err
		}
		log.Debug("Contact saved", "poc", c.ID, "net", c.NetworkID)
		return nil
	})
}
