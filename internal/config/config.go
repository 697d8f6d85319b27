package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "picker"

type Config struct {
	Multiple     bool   `koanf:"multiple"`
	Virtualize   *bool  `koanf:"virtualize"` // default: true
	EstimateSize int    `koanf:"estimate_size"`
	Overscan     *int   `koanf:"overscan"`
	DebounceMS   int    `koanf:"debounce_ms"`
	MaxDepth     int    `koanf:"max_depth"`
	Search       string `koanf:"search"`  // "off", "sync" or "async"
	Matcher      string `koanf:"matcher"` // "substring" or "ranked"
	Group        bool   `koanf:"group"`
	WidthPct     int    `koanf:"width_pct"`
	HeightPct    int    `koanf:"height_pct"`

	Database    string `koanf:"database"`     // sqlite option store
	OptionsFile string `koanf:"options_file"` // TOML option catalog
}

// PickerConfig is the picker section with defaults applied.
type PickerConfig struct {
	Multiple     bool
	Virtualize   bool
	EstimateSize int
	Overscan     int
	Debounce     time.Duration
	MaxDepth     int
	Search       string
	Matcher      string
	Group        bool
	WidthPct     int
	HeightPct    int
}

// Search modes.
const (
	SearchOff   = "off"
	SearchSync  = "sync"
	SearchAsync = "async"
)

// Matchers.
const (
	MatcherSubstring = "substring"
	MatcherRanked    = "ranked"
)

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order, later files overriding earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Database = expandPath(cfg.Database)
	cfg.OptionsFile = expandPath(cfg.OptionsFile)
	cfg.Search = strings.ToLower(strings.TrimSpace(cfg.Search))
	cfg.Matcher = strings.ToLower(strings.TrimSpace(cfg.Matcher))

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/picker/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./picker.toml (pwd, highest priority)
		"picker.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// DatabasePath returns the option store location, defaulting to
// $XDG_DATA_HOME/picker/options.db. The parent directory is created.
func (c *Config) DatabasePath() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}
	return xdg.DataFile(filepath.Join(appName, "options.db"))
}

// Picker returns the picker configuration with defaults applied.
func (c *Config) Picker() PickerConfig {
	cfg := PickerConfig{
		Multiple:     c.Multiple,
		Virtualize:   true,
		EstimateSize: c.EstimateSize,
		Overscan:     2,
		Debounce:     time.Duration(c.DebounceMS) * time.Millisecond,
		MaxDepth:     c.MaxDepth,
		Search:       c.Search,
		Matcher:      c.Matcher,
		Group:        c.Group,
		WidthPct:     c.WidthPct,
		HeightPct:    c.HeightPct,
	}

	// Apply defaults
	if c.Virtualize != nil {
		cfg.Virtualize = *c.Virtualize
	}
	if c.Overscan != nil && *c.Overscan >= 0 {
		cfg.Overscan = *c.Overscan
	}
	if cfg.EstimateSize <= 0 {
		cfg.EstimateSize = 1
	}
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 1
	}
	switch cfg.Search {
	case SearchOff, SearchSync, SearchAsync:
	default:
		cfg.Search = SearchSync
	}
	switch cfg.Matcher {
	case MatcherSubstring, MatcherRanked:
	default:
		cfg.Matcher = MatcherSubstring
	}
	if cfg.WidthPct <= 0 || cfg.WidthPct > 100 {
		cfg.WidthPct = 60
	}
	if cfg.HeightPct <= 0 || cfg.HeightPct > 100 {
		cfg.HeightPct = 70
	}

	return cfg
}
