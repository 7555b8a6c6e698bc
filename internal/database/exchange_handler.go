package database

import (
	"context"
	"fmt"

	"ixfguard/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateExchange stores a new exchange together with its LAN.
func CreateExchange(tx *gorm.DB, ix *domain.InternetExchange, lan *domain.IXLan) error {
	if err := tx.Create(ix).Error; err != nil {
		return fmt.Errorf("create exchange: %w", err)
	}
	lan.IXID = ix.ID
	if lan.Name == "" {
		lan.Name = ix.Name
	}
	if lan.Status == "" {
		lan.Status = ix.Status
	}
	if err := tx.Create(lan).Error; err != nil {
		return fmt.Errorf("create ixlan: %w", err)
	}
	return nil
}

func SaveExchange(tx *gorm.DB, ix *domain.InternetExchange) error {
	return save(tx, ix, ix.ID)
}

func GetExchange(tx *gorm.DB, id uint64) (domain.InternetExchange, error) {
	var ix domain.InternetExchange
	err := tx.Where("id = ?", id).First(&ix).Error
	return ix, err
}

func GetIXLan(tx *gorm.DB, id uint64) (domain.IXLan, error) {
	var lan domain.IXLan
	err := tx.Where("id = ?", id).First(&lan).Error
	return lan, err
}

// LockIXLan loads a LAN and, on postgres, holds a row lock on it until the
// transaction ends. Peering saves take this lock first, so address conflict
// scans on one LAN never run concurrently.
func LockIXLan(tx *gorm.DB, id uint64) (domain.IXLan, error) {
	var lan domain.IXLan
	err := lockedIXLans(tx).Where("id = ?", id).First(&lan).Error
	return lan, err
}

func lockedIXLans(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() != "postgres" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func GetIXLanByExchange(tx *gorm.DB, ixID uint64) (domain.IXLan, error) {
	var lan domain.IXLan
	err := tx.Where("ix_id = ?", ixID).First(&lan).Error
	return lan, err
}

func SaveIXLan(tx *gorm.DB, lan *domain.IXLan) error {
	return save(tx, lan, lan.ID)
}

// FindIXLan loads a LAN outside of any transaction.
func FindIXLan(ctx context.Context, id uint64) (domain.IXLan, error) {
	if DB == nil {
		return domain.IXLan{}, ErrNotInitialised
	}
	return GetIXLan(conn(ctx), id)
}
