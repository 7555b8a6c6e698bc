package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ixfguard/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestCreateExchangeCreatesLAN(t *testing.T) {
	db := setupTestDB(t)

	ix, lan := createTestExchange(t, db, "Test IX")
	if ix.ID == 0 || lan.ID == 0 {
		t.Fatalf("expected ids to be assigned, got ix=%d lan=%d", ix.ID, lan.ID)
	}
	if lan.IXID != ix.ID {
		t.Fatalf("lan.IXID = %d, want %d", lan.IXID, ix.ID)
	}
	if ix.Status != domain.StatusOK || lan.Status != domain.StatusOK {
		t.Fatalf("expected default status ok, got ix=%q lan=%q", ix.Status, lan.Status)
	}

	stored, err := GetIXLanByExchange(db, ix.ID)
	if err != nil {
		t.Fatalf("GetIXLanByExchange: %v", err)
	}
	if stored.ID != lan.ID || stored.IXFMemberListURL != "https://Test IX.example/ix-f" {
		t.Fatalf("unexpected stored lan %+v", stored)
	}

	found, err := FindIXLan(context.Background(), lan.ID)
	if err != nil || found.ID != lan.ID {
		t.Fatalf("FindIXLan = %+v, %v", found, err)
	}
}

func TestCreateExchangeRollsBackInTransaction(t *testing.T) {
	db := setupTestDB(t)
	createTestExchange(t, db, "Kept IX")

	abort := errors.New("abort")
	err := WithTransaction(context.Background(), func(tx *gorm.DB) error {
		ix := domain.InternetExchange{Name: "Rolled IX"}
		if err := CreateExchange(tx, &ix, &domain.IXLan{}); err != nil {
			return err
		}
		return abort
	})
	if !errors.Is(err, abort) {
		t.Fatalf("expected abort error, got %v", err)
	}

	var exchanges, lans int64
	if err := db.Model(&domain.InternetExchange{}).Count(&exchanges).Error; err != nil {
		t.Fatalf("count exchanges: %v", err)
	}
	if err := db.Model(&domain.IXLan{}).Count(&lans).Error; err != nil {
		t.Fatalf("count lans: %v", err)
	}
	if exchanges != 1 || lans != 1 {
		t.Fatalf("expected rollback to leave 1 exchange and 1 lan, got %d and %d", exchanges, lans)
	}

	ix := domain.InternetExchange{Name: "Kept IX"}
	if err := CreateExchange(db, &ix, &domain.IXLan{}); err == nil {
		t.Fatal("expected duplicate exchange name to fail")
	}
}

func TestGetIXLanNotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := GetIXLan(db, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWithTransactionWithoutDB(t *testing.T) {
	DB = nil
	err := WithTransaction(context.Background(), func(*gorm.DB) error { return nil })
	if !errors.Is(err, ErrNotInitialised) {
		t.Fatalf("expected ErrNotInitialised, got %v", err)
	}
}

func TestLockIXLan(t *testing.T) {
	db := setupTestDB(t)
	_, lan := createTestExchange(t, db, "Test IX")

	err := WithTransaction(context.Background(), func(tx *gorm.DB) error {
		locked, err := LockIXLan(tx, lan.ID)
		if err != nil {
			return err
		}
		if locked.ID != lan.ID {
			t.Fatalf("LockIXLan returned lan %d, want %d", locked.ID, lan.ID)
		}
		_, err = LockIXLan(tx, lan.ID+100)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for unknown lan, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}
}

func TestLockIXLanTakesRowLockOnPostgres(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=ixfguard password=ixfguard dbname=ixfguard sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open postgres dialector: %v", err)
	}

	stmt := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return lockedIXLans(tx).Where("id = ?", 1).First(&domain.IXLan{})
	})
	if !strings.HasSuffix(stmt, "FOR UPDATE") {
		t.Fatalf("expected row lock, got %q", stmt)
	}
}
