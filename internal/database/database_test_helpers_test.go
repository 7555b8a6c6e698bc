package database

import (
	"fmt"
	"testing"

	"ixfguard/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: silentLogger()})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if _, err := SetupDB(WithExistingDB(db)); err != nil {
		t.Fatalf("setup database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		DB = nil
	})

	return db
}

func createTestExchange(t *testing.T, db *gorm.DB, name string) (domain.InternetExchange, domain.IXLan) {
	t.Helper()

	ix := domain.InternetExchange{Name: name, Country: "NL", City: "Amsterdam"}
	lan := domain.IXLan{IXFMemberListURL: "https://" + name + ".example/ix-f"}
	if err := CreateExchange(db, &ix, &lan); err != nil {
		t.Fatalf("create exchange: %v", err)
	}
	return ix, lan
}

func createTestNetwork(t *testing.T, db *gorm.DB, asn uint32) domain.Network {
	t.Helper()

	n := domain.Network{ASN: asn, Name: fmt.Sprintf("AS%d", asn)}
	if err := SaveNetwork(db, &n); err != nil {
		t.Fatalf("create network: %v", err)
	}
	return n
}

func strPtr(s string) *string {
	return &s
}
