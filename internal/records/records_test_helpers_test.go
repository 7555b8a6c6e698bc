package records

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ixfguard/internal/config"
	"ixfguard/internal/database"
	"ixfguard/internal/domain"
	"ixfguard/internal/ghostpeer"
	"ixfguard/internal/ixf"
	"ixfguard/internal/validation"
)

const memberURL = "https://localhost/ix-f"

var (
	superuser = &domain.User{ID: 1, Email: "su@localhost", Superuser: true}
	user      = &domain.User{ID: 2, Email: "user@localhost", Role: domain.RoleUser}
)

type testEnv struct {
	db       *gorm.DB
	source   *ixf.Source
	pipeline *Pipeline
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if _, err := database.SetupDB(database.WithExistingDB(db)); err != nil {
		t.Fatalf("setup database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		database.DB = nil
	})

	store, err := ixf.NewLocalStore(8)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	source, err := ixf.NewSource(store, config.DefaultConfig().IXF)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}

	return &testEnv{db: db, source: source, pipeline: NewPipeline(ghostpeer.NewResolver(source))}
}

// withRules swaps the loaded data-quality rules for the duration of a test.
func withRules(t *testing.T, mutate func(*config.DataQuality)) {
	t.Helper()

	previous := config.GetConfig()
	config.SetSettingsPath(filepath.Join(t.TempDir(), "settings.json"))

	cfg := config.DefaultConfig()
	mutate(&cfg.DataQuality)
	if err := config.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	t.Cleanup(func() {
		if err := config.SetConfig(previous); err != nil {
			t.Fatalf("restore config: %v", err)
		}
	})
}

func (e *testEnv) exchange(t *testing.T, name string, status domain.Status) domain.IXLan {
	t.Helper()
	ix := domain.InternetExchange{Name: name, Country: "NL", Status: status}
	lan := domain.IXLan{IXFMemberListURL: memberURL}
	if err := e.pipeline.SaveExchange(context.Background(), user, &ix, &lan); err != nil {
		t.Fatalf("save exchange: %v", err)
	}
	return lan
}

func (e *testEnv) peeringLAN(t *testing.T) domain.IXLan {
	t.Helper()
	lan := e.exchange(t, "Test ix", domain.StatusOK)
	for _, pfx := range []domain.IXLanPrefix{
		{IXLanID: lan.ID, Protocol: domain.ProtocolIPv4, Prefix: "195.69.144.0/22"},
		{IXLanID: lan.ID, Protocol: domain.ProtocolIPv6, Prefix: "2001:7f8:1::/64"},
	} {
		if err := e.pipeline.SavePrefix(context.Background(), user, &pfx); err != nil {
			t.Fatalf("save prefix %s: %v", pfx.Prefix, err)
		}
	}
	return lan
}

func (e *testEnv) network(t *testing.T, asn uint32) domain.Network {
	t.Helper()
	n := domain.Network{ASN: asn, Name: fmt.Sprintf("AS%d", asn)}
	if err := e.pipeline.SaveNetwork(context.Background(), user, &n); err != nil {
		t.Fatalf("save network: %v", err)
	}
	return n
}

func (e *testEnv) cacheMemberList(t *testing.T, doc []byte) {
	t.Helper()
	if doc == nil {
		data, err := os.ReadFile(filepath.Join("testdata", "ixf.member.1.json"))
		if err != nil {
			t.Fatalf("read fixture: %v", err)
		}
		doc = data
	}
	if err := e.source.Publish(context.Background(), memberURL, doc); err != nil {
		t.Fatalf("publish member list: %v", err)
	}
}

func expectKind(t *testing.T, err error, kind error) *validation.FieldError {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	var fe *validation.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *validation.FieldError, got %T", err)
	}
	return fe
}
