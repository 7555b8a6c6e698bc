package app

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"ixfguard/internal/app/bootstrap"
	"ixfguard/internal/app/server"
	"ixfguard/internal/config"
	"ixfguard/internal/ghostpeer"
	"ixfguard/internal/ixf"
	"ixfguard/internal/records"
	"ixfguard/internal/support"
)

const defaultPort = 8082

func Run() error {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found. Falling back to system environment variables.")
	}

	log.SetLevel(log.DebugLevel)

	portFlag := flag.Int("port", defaultPort, "Port for API server")
	flag.Parse()

	port := resolvePort("IXFGUARD_PORT", "PORT", *portFlag)

	if err := bootstrap.Setup(); err != nil {
		return err
	}

	cfg := config.GetConfig()
	store, err := bootstrap.SnapshotStore(cfg.IXF)
	if err != nil {
		return fmt.Errorf("create snapshot store: %w", err)
	}
	defer func() {
		if err := support.CloseRedisClient(); err != nil {
			log.Warn("error closing redis client", "error", err)
		}
	}()

	snapshots, err := ixf.NewSource(store, cfg.IXF)
	if err != nil {
		return fmt.Errorf("create snapshot source: %w", err)
	}
	resolver := ghostpeer.NewResolver(snapshots)

	return server.OpenRoutes(port, server.Dependencies{
		Pipeline:  records.NewPipeline(resolver),
		Resolver:  resolver,
		Snapshots: snapshots,
	})
}

func resolvePort(primaryEnv, fallbackEnv string, fallback int) int {
	if port := readPort(primaryEnv); port != 0 {
		return port
	}
	if port := readPort(fallbackEnv); port != 0 {
		return port
	}
	return fallback
}

func readPort(envKey string) int {
	raw := os.Getenv(envKey)
	if raw == "" {
		return 0
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		log.Warn("invalid port override", "env", envKey, "value", raw)
		return 0
	}
	return port
}
