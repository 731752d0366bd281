// Package config loads brilcfg.toml project settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up from the working directory.
const FileName = "brilcfg.toml"

// Config holds every tunable of the tool.
type Config struct {
	CFG    CFGConfig    `toml:"cfg" yaml:"cfg"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Stats  StatsConfig  `toml:"stats" yaml:"stats"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// CFGConfig tunes graph construction.
type CFGConfig struct {
	AllowDangling bool `toml:"allow_dangling" yaml:"allow_dangling"`
	Validate      bool `toml:"validate" yaml:"validate"`
}

// OutputConfig tunes rendering.
type OutputConfig struct {
	Color   string `toml:"color" yaml:"color"`
	Timings bool   `toml:"timings" yaml:"timings"`
}

// StatsConfig tunes the instruction-frequency tool.
type StatsConfig struct {
	Jobs     int    `toml:"jobs" yaml:"jobs"`
	Cache    bool   `toml:"cache" yaml:"cache"`
	CacheDir string `toml:"cache_dir" yaml:"cache_dir"`
}

// Default returns the settings used when no project file exists.
func Default() *Config {
	return &Config{
		CFG: CFGConfig{
			AllowDangling: false,
			Validate:      true,
		},
		Output: OutputConfig{
			Color: "auto",
		},
		Stats: StatsConfig{
			Jobs:  0,
			Cache: true,
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path over the defaults. Files ending in .yaml or .yml are YAML,
// everything else is TOML.
func Load(path string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the project file above startDir, or the defaults when
// there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid [output].color %q (expected auto|on|off)", c.Output.Color)
	}
	if c.Stats.Jobs < 0 {
		return fmt.Errorf("invalid [stats].jobs %d (must be >= 0)", c.Stats.Jobs)
	}
	return nil
}

// Jobs returns the worker limit, resolving 0 to GOMAXPROCS.
func (c *Config) Jobs() int {
	if c.Stats.Jobs > 0 {
		return c.Stats.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// CacheDir returns the stats cache directory, defaulting to
// $XDG_CACHE_HOME/brilcfg (or ~/.cache/brilcfg).
func (c *Config) CacheDir() (string, error) {
	if c.Stats.CacheDir != "" {
		return c.Stats.CacheDir, nil
	}
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "brilcfg"), nil
}
