package database

import (
	"context"
	"fmt"
	"time"

	"ixfguard/internal/domain"

	"gorm.io/gorm"
)

func addressColumn(family domain.Protocol) string {
	if family == domain.ProtocolIPv6 {
		return "ipaddr6"
	}
	return "ipaddr4"
}

func GetNetIXLan(tx *gorm.DB, id uint64) (domain.NetworkIXLan, error) {
	var n domain.NetworkIXLan
	err := tx.Where("id = ?", id).First(&n).Error
	return n, err
}

func SaveNetIXLan(tx *gorm.DB, n *domain.NetworkIXLan) error {
	return save(tx, n, n.ID)
}

// FindAddressConflicts returns the non-deleted peering records on a LAN that
// hold addr for the given family, excluding excludeID, ordered by id.
func FindAddressConflicts(tx *gorm.DB, ixlanID uint64, family domain.Protocol, addr string, excludeID uint64) ([]domain.NetworkIXLan, error) {
	var rows []domain.NetworkIXLan
	err := tx.Where("ixlan_id = ? AND "+addressColumn(family)+" = ? AND id <> ? AND status <> ?",
		ixlanID, addr, excludeID, domain.StatusDeleted).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find %s conflicts: %w", addressColumn(family), err)
	}
	return rows, nil
}

// ClearNetIXLanAddress nulls one address of a peering record. Model hooks are
// skipped.
func ClearNetIXLanAddress(tx *gorm.DB, id uint64, family domain.Protocol) error {
	res := tx.Model(&domain.NetworkIXLan{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			addressColumn(family): nil,
			"updated_at":          time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("clear %s of netixlan %d: %w", addressColumn(family), id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("clear %s of netixlan %d: %w", addressColumn(family), id, ErrNotFound)
	}
	return nil
}

// SoftDeleteNetIXLan marks a peering record deleted. The row is kept.
func SoftDeleteNetIXLan(tx *gorm.DB, id uint64) error {
	res := tx.Model(&domain.NetworkIXLan{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"status":     domain.StatusDeleted,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("delete netixlan %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete netixlan %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListNetIXLans returns every peering record of a LAN ordered by id.
func ListNetIXLans(ctx context.Context, ixlanID uint64) ([]domain.NetworkIXLan, error) {
	if DB == nil {
		return nil, ErrNotInitialised
	}
	var rows []domain.NetworkIXLan
	err := conn(ctx).Where("ixlan_id = ?", ixlanID).Order("id ASC").Find(&rows).Error
	return rows, err
}
