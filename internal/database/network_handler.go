package database

import (
	"ixfguard/internal/domain"

	"gorm.io/gorm"
)

func GetNetwork(tx *gorm.DB, id uint64) (domain.Network, error) {
	var n domain.Network
	err := tx.Where("id = ?", id).First(&n).Error
	return n, err
}

func GetNetworkByASN(tx *gorm.DB, asn uint32) (domain.Network, error) {
	var n domain.Network
	err := tx.Where("asn = ?", asn).First(&n).Error
	return n, err
}

func SaveNetwork(tx *gorm.DB, n *domain.Network) error {
	return save(tx, n, n.ID)
}

func GetContact(tx *gorm.DB, id uint64) (domain.NetworkContact, error) {
	var c domain.NetworkContact
	err := tx.Where("id = ?", id).First(&c).Error
	return c, err
}

func SaveContact(tx *gorm.DB, c *domain.NetworkContact) error {
	return save(tx, c, c.ID)
}
