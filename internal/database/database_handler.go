package database

import (
	"fmt"
	"time"

	"ixfguard/internal/domain"
	"ixfguard/internal/support"

	"github.com/charmbracelet/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the exchange, prefix, network and peering tables.
var DB *gorm.DB

// Config describes how SetupDB reaches the peering store. Production runs
// open DSN with the postgres driver; tests hand over an ExistingDB on sqlite.
type Config struct {
	ExistingDB *gorm.DB
	DSN        string
	// TuneSchema adds the postgres inet indexes used by the prefix overlap and
	// address conflict scans.
	TuneSchema bool
}

type Option func(*Config)

// WithExistingDB reuses an open connection instead of dialing postgres.
func WithExistingDB(db *gorm.DB) Option {
	return func(cfg *Config) {
		cfg.ExistingDB = db
	}
}

// SetupDB connects the store and migrates every record table.
func SetupDB(opts ...Option) (*gorm.DB, error) {
	cfg := Config{DSN: buildDSN(), TuneSchema: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	db := cfg.ExistingDB
	if db == nil {
		opened, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{Logger: silentLogger()})
		if err != nil {
			return nil, fmt.Errorf("database: open peering store: %w", err)
		}
		configureConnectionPool(opened)
		db = opened
	}

	if err := db.AutoMigrate(recordTables()...); err != nil {
		return nil, fmt.Errorf("database: migrate record tables: %w", err)
	}
	log.Info("Peering store migrated", "dialect", db.Dialector.Name())

	if cfg.TuneSchema && db.Dialector.Name() == "postgres" {
		if err := ensurePeeringSchema(db); err != nil {
			log.Error("Failed to ensure peering indexes", "error", err)
		}
	}

	DB = db
	return DB, nil
}

// buildDSN prefers DATABASE_URL and falls back to the individual DB_* keys.
func buildDSN() string {
	if url := support.GetEnv("DATABASE_URL", ""); url != "" {
		return url
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		support.GetEnv("DB_HOST", "localhost"),
		support.GetEnv("DB_PORT", "5432"),
		support.GetEnv("DB_USERNAME", "ixfguard"),
		support.GetEnv("DB_PASSWORD", "ixfguard"),
		support.GetEnv("DB_NAME", "ixfguard"),
		support.GetEnv("DB_SSLMODE", "disable"),
	)
}

func silentLogger() logger.Interface {
	return logger.New(log.Default(), logger.Config{LogLevel: logger.Silent})
}

// recordTables lists exchanges before LANs and LANs before the rows that
// reference them.
func recordTables() []any {
	return []any{
		domain.InternetExchange{},
		domain.IXLan{},
		domain.IXLanPrefix{},
		domain.Network{},
		domain.NetworkContact{},
		domain.NetworkIXLan{},
	}
}

// configureConnectionPool sizes the pool from DB_MAX_OPEN_CONNS and friends.
// Each peering save holds one connection for its whole transaction, LAN lock
// included, so the pool bounds how many LANs are written at once.
func configureConnectionPool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("database: get sql.DB", "error", err)
		return
	}

	maxOpen := support.GetEnvInt("DB_MAX_OPEN_CONNS", 16)
	maxIdle := min(support.GetEnvInt("DB_MAX_IDLE_CONNS", maxOpen), maxOpen)

	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if secs := support.GetEnvInt("DB_CONN_MAX_LIFETIME", 300); secs > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(secs) * time.Second)
	}
	if secs := support.GetEnvInt("DB_CONN_MAX_IDLE_TIME", 60); secs > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(secs) * time.Second)
	}
}

// ensurePeeringSchema adds the inet-aware indexes the overlap and conflict
// scans rely on. Address exclusivity is kept by the resolver under the LAN
// row lock taken in LockIXLan.
func ensurePeeringSchema(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_ixpfx_prefix_gist ON ixpfx USING gist ((prefix::cidr) inet_ops) WHERE status <> 'deleted'`,
		`CREATE INDEX IF NOT EXISTS idx_netixlan_active_ip4 ON netixlan (ixlan_id, ipaddr4) WHERE status <> 'deleted' AND ipaddr4 IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_netixlan_active_ip6 ON netixlan (ixlan_id, ipaddr6) WHERE status <> 'deleted' AND ipaddr6 IS NOT NULL`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("peering schema: %w", err)
		}
	}
	return nil
}
