package bootstrap

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"ixfguard/internal/config"
	"ixfguard/internal/database"
	"ixfguard/internal/ixf"
	"ixfguard/internal/support"
)

// Setup loads the settings file and opens the database.
func Setup() error {
	config.ReadSettings()

	if _, err := database.SetupDB(); err != nil {
		return fmt.Errorf("setup database: %w", err)
	}
	return nil
}

// SnapshotStore returns the shared redis store when REDIS_URL is set and
// reachable, and a process-local store otherwise.
func SnapshotStore(cfg config.IXF) (ixf.Store, error) {
	client, err := support.GetRedisClient()
	if err == nil {
		log.Info("IX-F snapshots stored in redis")
		return ixf.NewRedisStore(client), nil
	}

	if errors.Is(err, support.ErrRedisNotConfigured) {
		log.Warn("REDIS_URL not set, IX-F snapshots are kept in process memory")
	} else {
		log.Warn("Redis unavailable, IX-F snapshots are kept in process memory", "error", err)
	}
	return ixf.NewLocalStore(cfg.LocalCacheSize)
}
