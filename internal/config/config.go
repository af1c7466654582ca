// Package config loads fade's configuration.
//
// Values are applied in order of increasing precedence:
//  1. Hardcoded defaults (NewConfig)
//  2. User config ($XDG_CONFIG_HOME/fade/config.yaml or ~/.config/fade/config.yaml)
//  3. Project config (.fade.yaml in the working directory)
//  4. Environment variables (FADE_*)
//
// The result is validated before it is handed to the rest of the program.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "github.com/Aman-CERP/fade/internal/errors"
)

// CurrentVersion is the only schema version understood.
const CurrentVersion = 1

// ProjectConfigName is looked up in the working directory.
const ProjectConfigName = ".fade.yaml"

// Config represents the complete fade configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Scan    ScanConfig    `yaml:"scan" json:"scan"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	UI      UIConfig      `yaml:"ui" json:"ui"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ScanConfig controls catalog discovery.
type ScanConfig struct {
	// Roots are walked in order. Empty means the platform defaults (see DefaultRoots).
	Roots []string `yaml:"roots" json:"roots"`

	// Extensions is the allowlist, each with a leading dot.
	Extensions []string `yaml:"extensions" json:"extensions"`

	// ExcludePatterns reject candidates whose lowercased display name contains them.
	ExcludePatterns []string `yaml:"exclude_patterns" json:"exclude_patterns"`

	// Workers bounds concurrent root walks (0 = NumCPU).
	Workers int `yaml:"workers" json:"workers"`
}

// SearchConfig controls ranking and result size.
type SearchConfig struct {
	// MaxResults is the default limit for search and recent listings.
	MaxResults int `yaml:"max_results" json:"max_results"`

	Weights WeightsConfig `yaml:"weights" json:"weights"`
}

// WeightsConfig is the additive scoring table. Zero is a valid weight.
type WeightsConfig struct {
	Exact       float64 `yaml:"exact" json:"exact"`
	Prefix      float64 `yaml:"prefix" json:"prefix"`
	Contains    float64 `yaml:"contains" json:"contains"`
	Path        float64 `yaml:"path" json:"path"`
	LengthBonus float64 `yaml:"length_bonus" json:"length_bonus"`
}

// UIConfig controls the interactive launcher.
type UIConfig struct {
	NoColor  bool          `yaml:"no_color" json:"no_color"`
	Debounce time.Duration `yaml:"debounce" json:"debounce"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// DefaultExcludePatterns suppress installers and auxiliary binaries.
var DefaultExcludePatterns = []string{
	"unins",
	"uninst",
	"setup",
	"install",
	"update",
	"crash",
	"error",
	"helper",
	"service",
	"daemon",
	"background",
	"launcher",
}

// NewConfig creates a Config with defaults for the current platform.
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Scan: ScanConfig{
			Roots:           []string{},
			Extensions:      DefaultExtensions(),
			ExcludePatterns: append([]string(nil), DefaultExcludePatterns...),
			Workers:         0,
		},
		Search: SearchConfig{
			MaxResults: 10,
			Weights: WeightsConfig{
				Exact:       100,
				Prefix:      50,
				Contains:    25,
				Path:        10,
				LengthBonus: 20,
			},
		},
		UI: UIConfig{
			NoColor:  false,
			Debounce: 150 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// GetUserConfigPath returns the path to the user configuration file.
// It follows the XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/fade/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/fade/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fade", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "fade", "config.yaml")
	}
	return filepath.Join(home, ".config", "fade", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	info, err := os.Stat(GetUserConfigPath())
	return err == nil && !info.IsDir()
}

// Load builds the effective configuration for the given working directory.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.overlayFile(GetUserConfigPath()); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if dir != "" {
		if err := cfg.overlayFile(filepath.Join(dir, ProjectConfigName)); err != nil {
			return nil, fmt.Errorf("failed to load project config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// overlayFile decodes path on top of c. Keys present in the file replace the
// current values, including explicit zeros; absent keys are left alone.
// A missing file is not an error.
func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case errors.Is(err, fs.ErrPermission):
		return ferrors.New(ferrors.ErrCodeConfigPermission, "cannot read config file", err).
			WithDetail("path", path).
			WithSuggestion("Check the file permissions of " + path)
	case err != nil:
		return ferrors.New(ferrors.ErrCodeConfigInvalid, "cannot read config file", err).
			WithDetail("path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	next := *c
	if err := dec.Decode(&next); err != nil && !errors.Is(err, io.EOF) {
		return ferrors.New(ferrors.ErrCodeConfigInvalid, "cannot parse config file", err).
			WithDetail("path", path).
			WithSuggestion("Run 'fade config show' to see the expected layout")
	}

	*c = next
	return nil
}

// applyEnvOverrides applies FADE_* environment variable overrides.
// Malformed numbers are ignored so a bad export never blocks startup.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FADE_ROOTS"); v != "" {
		c.Scan.Roots = splitNonEmpty(filepath.SplitList(v))
	}
	if v := os.Getenv("FADE_EXTENSIONS"); v != "" {
		c.Scan.Extensions = splitNonEmpty(strings.Split(v, ","))
	}
	if v := os.Getenv("FADE_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			c.Search.MaxResults = n
		}
	}
	if v := os.Getenv("FADE_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.TrimSpace(v)
	}
	if v := os.Getenv("NO_COLOR"); v != "" {
		c.UI.NoColor = true
	}
}

// normalize lowercases extensions and ensures they carry a leading dot.
func (c *Config) normalize() {
	exts := make([]string, 0, len(c.Scan.Extensions))
	seen := make(map[string]struct{}, len(c.Scan.Extensions))
	for _, e := range c.Scan.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		exts = append(exts, e)
	}
	c.Scan.Extensions = exts
	c.Logging.Level = strings.ToLower(c.Logging.Level)
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return invalid(fmt.Sprintf("version must be %d, got %d", CurrentVersion, c.Version))
	}

	if len(c.Scan.Extensions) == 0 {
		return invalid("scan.extensions must not be empty")
	}
	for _, e := range c.Scan.Extensions {
		if len(e) < 2 || !strings.HasPrefix(e, ".") || strings.ContainsAny(e, `/\`) {
			return invalid(fmt.Sprintf("scan.extensions entries must look like '.exe', got %q", e))
		}
	}
	if c.Scan.Workers < 0 {
		return invalid(fmt.Sprintf("scan.workers must be non-negative, got %d", c.Scan.Workers))
	}

	if c.Search.MaxResults <= 0 {
		return invalid(fmt.Sprintf("search.max_results must be positive, got %d", c.Search.MaxResults))
	}
	w := c.Search.Weights
	for name, v := range map[string]float64{
		"exact": w.Exact, "prefix": w.Prefix, "contains": w.Contains,
		"path": w.Path, "length_bonus": w.LengthBonus,
	} {
		if v < 0 {
			return invalid(fmt.Sprintf("search.weights.%s must be non-negative, got %g", name, v))
		}
	}

	if c.UI.Debounce < 0 {
		return invalid(fmt.Sprintf("ui.debounce must be non-negative, got %s", c.UI.Debounce))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return invalid(fmt.Sprintf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level))
	}

	return nil
}

func invalid(msg string) error {
	return ferrors.New(ferrors.ErrCodeConfigInvalid, msg, nil)
}

// EffectiveRoots returns the configured roots, or the platform defaults when none are set.
func (c *Config) EffectiveRoots() []string {
	if len(c.Scan.Roots) > 0 {
		return dedupRoots(c.Scan.Roots)
	}
	return DefaultRoots()
}

// WriteYAML writes the configuration to a YAML file, creating parent directories.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func splitNonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
