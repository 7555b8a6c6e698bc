package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	DataQuality DataQuality `json:"data_quality" validate:"required"`
	IXF         IXF         `json:"ixf" validate:"required"`
}

// DataQuality bounds every data-quality validator. Privileged principals
// bypass all of them.
type DataQuality struct {
	MinPrefixLenV4 int `json:"min_prefixlen_v4" validate:"gte=0,lte=32"`
	MaxPrefixLenV4 int `json:"max_prefixlen_v4" validate:"gte=0,lte=32,gtefield=MinPrefixLenV4"`
	MinPrefixLenV6 int `json:"min_prefixlen_v6" validate:"gte=0,lte=128"`
	MaxPrefixLenV6 int `json:"max_prefixlen_v6" validate:"gte=0,lte=128,gtefield=MinPrefixLenV6"`

	MaxPrefixV4Limit int `json:"max_prefix_v4_limit" validate:"gte=0"`
	MaxPrefixV6Limit int `json:"max_prefix_v6_limit" validate:"gte=0"`

	MaxIRRDepth int      `json:"max_irr_depth" validate:"gte=1"`
	IRRSources  []string `json:"irr_sources" validate:"required,dive,required"`

	MinSpeed uint32 `json:"min_speed"`
	MaxSpeed uint32 `json:"max_speed" validate:"gtefield=MinSpeed"`

	DefaultPhoneRegion string `json:"default_phone_region" validate:"omitempty,len=2"`
}

type IXF struct {
	CacheKeyPrefix string `json:"cache_key_prefix" validate:"required"`
	LocalCacheSize int    `json:"local_cache_size" validate:"gte=1"`
	SnapshotTTL    Timer  `json:"snapshot_ttl"`
}

type Timer struct {
	Days    uint32 `json:"days"`
	Hours   uint32 `json:"hours"`
	Minutes uint32 `json:"minutes"`
	Seconds uint32 `json:"seconds"`
}

var (
	//go:embed default_settings.json
	defaultConfig []byte

	settingsFilePath = filepath.Join("data", "settings.json")

	configValue atomic.Value
	configMu    sync.Mutex
	validate    = validator.New(validator.WithRequiredStructEnabled())
)

func init() {
	cfg, err := parseConfig(defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	configValue.Store(cfg)
}

// ReadSettings loads the settings file, creating it from the embedded defaults
// when it does not exist yet. A broken file keeps the current configuration.
func ReadSettings() {
	data, err := os.ReadFile(settingsFilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error("Error reading settings file", "path", settingsFilePath, "error", err)
			return
		}

		log.Warn("Settings file not found, creating with default configuration", "path", settingsFilePath)
		if err := os.MkdirAll(filepath.Dir(settingsFilePath), 0o755); err != nil {
			log.Error("Error creating directory for settings file", "error", err)
			return
		}
		if err := os.WriteFile(settingsFilePath, defaultConfig, 0o644); err != nil {
			log.Error("Error writing default settings file", "error", err)
			return
		}
		data = defaultConfig
	}

	cfg, err := parseConfig(data)
	if err != nil {
		log.Error("Error applying settings file", "path", settingsFilePath, "error", err)
		return
	}

	configValue.Store(cfg)
	log.Debug("Settings file loaded successfully", "path", settingsFilePath)
}

// SetSettingsPath points ReadSettings and SetConfig at another file.
func SetSettingsPath(path string) {
	configMu.Lock()
	defer configMu.Unlock()
	settingsFilePath = path
}

// SetConfig validates, stores and persists a new configuration.
func SetConfig(newConfig Config) error {
	newConfig.normalize()
	if err := Validate(newConfig); err != nil {
		return err
	}

	configMu.Lock()
	defer configMu.Unlock()

	configValue.Store(newConfig)

	data, err := json.MarshalIndent(newConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(settingsFilePath, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", settingsFilePath, err)
	}

	log.Debug("Configuration updated and written to file", "path", settingsFilePath)
	return nil
}

func GetConfig() Config {
	return configValue.Load().(Config)
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() Config {
	cfg, _ := parseConfig(defaultConfig)
	return cfg
}

// Validate checks a configuration against its struct tags.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			errs := make([]error, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				errs = append(errs, fmt.Errorf("config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return errors.Join(errs...)
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func parseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.normalize()
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) normalize() {
	sources := make([]string, 0, len(cfg.DataQuality.IRRSources))
	seen := make(map[string]struct{}, len(cfg.DataQuality.IRRSources))
	for _, src := range cfg.DataQuality.IRRSources {
		src = strings.ToUpper(strings.TrimSpace(src))
		if src == "" {
			continue
		}
		if _, dup := seen[src]; dup {
			continue
		}
		seen[src] = struct{}{}
		sources = append(sources, src)
	}
	cfg.DataQuality.IRRSources = sources
	cfg.DataQuality.DefaultPhoneRegion = strings.ToUpper(strings.TrimSpace(cfg.DataQuality.DefaultPhoneRegion))
}
