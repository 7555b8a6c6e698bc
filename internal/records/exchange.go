package records

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"ixfguard/internal/database"
	"ixfguard/internal/domain"
	"ixfguard/internal/validation"
)

// SaveExchange validates the contact fields of an exchange, using its country
// as the phone region. A new exchange is created together with lan, which may
// be nil.
func (p *Pipeline) SaveExchange(ctx context.Context, principal domain.Principal, ix *domain.InternetExchange, lan *domain.IXLan) error {
	vc := validation.NewContext(principal)

	status, err := validation.ValidateStatus(ix.Status)
	if err != nil {
		return err
	}
	ix.Status = status

	techPhone, err := validation.ValidatePhoneNumber(vc, ix.TechPhone, ix.Country)
	if err != nil {
		return validation.OnField(err, "tech_phone")
	}
	policyPhone, err := validation.ValidatePhoneNumber(vc, ix.PolicyPhone, ix.Country)
	if err != nil {
		return validation.OnField(err, "policy_phone")
	}
	if err := validation.ValidateEmail("tech_email", ix.TechEmail); err != nil {
		return err
	}
	if err := validation.ValidateEmail("policy_email", ix.PolicyEmail); err != nil {
		return err
	}
	ix.TechPhone = techPhone
	ix.PolicyPhone = policyPhone

	return database.WithTransaction(ctx, func(tx *gorm.DB) error {
		if ix.ID != 0 {
			if _, err := database.GetExchange(tx, ix.ID); err != nil {
				return lookupErr("ix", ix.ID, err)
			}
			if err := database.SaveExchange(tx, ix); err != nil {
				return err
			}
			log.Debug("Exchange updated", "ix", ix.ID)
			return nil
		}

		if lan == nil {
			lan = &domain.IXLan{}
		}
		if err := database.CreateExchange(tx, ix, lan); err != nil {
			return err
		}
		log.Info("Exchange created", "ix", ix.ID, "ixlan", lan.ID, "name", ix.Name)
		return nil
	})
}
