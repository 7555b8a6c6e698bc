package database

import (
	"context"

	"ixfguard/internal/domain"

	"gorm.io/gorm"
)

var activeStatuses = []domain.Status{domain.StatusOK, domain.StatusPending}

// PrefixLookup serves prefix overlap checks from one connection or
// transaction.
type PrefixLookup struct {
	db *gorm.DB
}

// Prefixes binds a lookup to tx. A nil tx uses DB.
func Prefixes(tx *gorm.DB) PrefixLookup {
	return PrefixLookup{db: tx}
}

func (l PrefixLookup) ListActivePrefixes(ctx context.Context, excludeIXLanID uint64) ([]domain.IXLanPrefix, error) {
	db := l.db
	if db == nil {
		if DB == nil {
			return nil, ErrNotInitialised
		}
		db = DB
	}
	if ctx != nil {
		db = db.WithContext(ctx)
	}

	var prefixes []domain.IXLanPrefix
	err := db.Where("ixlan_id <> ? AND status IN ?", excludeIXLanID, activeStatuses).
		Order("id ASC").
		Find(&prefixes).Error
	return prefixes, err
}

// ListIXLanPrefixes returns every prefix of a LAN, deleted ones included.
func ListIXLanPrefixes(tx *gorm.DB, ixlanID uint64) ([]domain.IXLanPrefix, error) {
	var prefixes []domain.IXLanPrefix
	err := tx.Where("ixlan_id = ?", ixlanID).Order("id ASC").Find(&prefixes).Error
	return prefixes, err
}

func GetIXLanPrefix(tx *gorm.DB, id uint64) (domain.IXLanPrefix, error) {
	var pfx domain.IXLanPrefix
	err := tx.Where("id = ?", id).First(&pfx).Error
	return pfx, err
}

func SaveIXLanPrefix(tx *gorm.DB, pfx *domain.IXLanPrefix) error {
	return save(tx, pfx, pfx.ID)
}
