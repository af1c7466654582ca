package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/Aman-CERP/fade/internal/errors"
)

// isolate points the user config at an empty temp dir and clears FADE_* env.
func isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	for _, k := range []string{"FADE_ROOTS", "FADE_EXTENSIONS", "FADE_MAX_RESULTS", "FADE_LOG_LEVEL", "NO_COLOR"} {
		t.Setenv(k, "")
	}
	return xdg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewConfig_ReturnsDefaults(t *testing.T) {
	// Given: no configuration file exists
	cfg := NewConfig()

	// Then: all defaults should be applied
	require.NotNil(t, cfg)
	assert.Equal(t, 1, cfg.Version)
	assert.Empty(t, cfg.Scan.Roots)
	assert.Contains(t, cfg.Scan.Extensions, ".lnk")
	assert.Equal(t, DefaultExcludePatterns, cfg.Scan.ExcludePatterns)
	assert.Zero(t, cfg.Scan.Workers)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.Equal(t, WeightsConfig{Exact: 100, Prefix: 50, Contains: 25, Path: 10, LengthBonus: 20}, cfg.Search.Weights)
	assert.Equal(t, 150*time.Millisecond, cfg.UI.Debounce)
	assert.False(t, cfg.UI.NoColor)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_ExcludePatternsAreCopied(t *testing.T) {
	cfg := NewConfig()
	cfg.Scan.ExcludePatterns[0] = "changed"

	assert.Equal(t, "unins", DefaultExcludePatterns[0])
}

func TestLoad_NoFiles_UsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, NewConfig().Search, cfg.Search)
}

func TestLoad_Precedence(t *testing.T) {
	// Given: user config, project config and env each setting something
	xdg := isolate(t)
	project := t.TempDir()

	writeFile(t, filepath.Join(xdg, "fade", "config.yaml"), `
search:
  max_results: 25
  weights:
    path: 0
logging:
  level: warn
ui:
  debounce: 300ms
`)
	writeFile(t, filepath.Join(project, ProjectConfigName), `
search:
  max_results: 40
scan:
  roots: [/srv/apps]
`)
	t.Setenv("FADE_LOG_LEVEL", "DEBUG")

	// When: loading
	cfg, err := Load(project)
	require.NoError(t, err)

	// Then: later layers win, untouched keys keep earlier values
	assert.Equal(t, 40, cfg.Search.MaxResults)
	assert.Equal(t, []string{"/srv/apps"}, cfg.Scan.Roots)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.Debounce)

	// And: an explicit zero weight overrides the default
	assert.Zero(t, cfg.Search.Weights.Path)
	assert.Equal(t, 100.0, cfg.Search.Weights.Exact)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("FADE_ROOTS", "/a"+string(os.PathListSeparator)+" /b "+string(os.PathListSeparator))
	t.Setenv("FADE_EXTENSIONS", "EXE, bat,.lnk,exe")
	t.Setenv("FADE_MAX_RESULTS", "7")
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"/a", "/b"}, cfg.Scan.Roots)
	assert.Equal(t, []string{".exe", ".bat", ".lnk"}, cfg.Scan.Extensions)
	assert.Equal(t, 7, cfg.Search.MaxResults)
	assert.True(t, cfg.UI.NoColor)
}

func TestLoad_EnvIgnoresMalformedNumbers(t *testing.T) {
	isolate(t)
	t.Setenv("FADE_MAX_RESULTS", "lots")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Search.MaxResults)
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectConfigName), "search: [not, a, map")

	_, err := Load(project)

	require.Error(t, err)
	assert.Equal(t, ferrors.ErrCodeConfigInvalid, ferrors.GetCode(err))
}

func TestLoad_UnknownField(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectConfigName), "search:\n  max_resluts: 5\n")

	_, err := Load(project)

	require.Error(t, err)
	assert.Equal(t, ferrors.ErrCodeConfigInvalid, ferrors.GetCode(err))
}

func TestLoad_EmptyFile(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectConfigName), "")

	cfg, err := Load(project)

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Search.MaxResults)
}

func TestLoad_ValidationFailure(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectConfigName), "search:\n  max_results: 0\n")

	_, err := Load(project)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_results")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults valid", mutate: func(c *Config) {}},
		{name: "bad version", mutate: func(c *Config) { c.Version = 2 }, wantErr: "version"},
		{name: "no extensions", mutate: func(c *Config) { c.Scan.Extensions = nil }, wantErr: "scan.extensions"},
		{name: "extension without dot", mutate: func(c *Config) { c.Scan.Extensions = []string{"exe"} }, wantErr: "scan.extensions"},
		{name: "extension with separator", mutate: func(c *Config) { c.Scan.Extensions = []string{"./x"} }, wantErr: "scan.extensions"},
		{name: "negative workers", mutate: func(c *Config) { c.Scan.Workers = -1 }, wantErr: "scan.workers"},
		{name: "zero max results", mutate: func(c *Config) { c.Search.MaxResults = 0 }, wantErr: "max_results"},
		{name: "negative weight", mutate: func(c *Config) { c.Search.Weights.Prefix = -1 }, wantErr: "weights.prefix"},
		{name: "zero weight allowed", mutate: func(c *Config) { c.Search.Weights.Path = 0 }},
		{name: "negative debounce", mutate: func(c *Config) { c.UI.Debounce = -time.Second }, wantErr: "ui.debounce"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, ferrors.ErrCodeConfigInvalid, ferrors.GetCode(err))
		})
	}
}

func TestGetUserConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	assert.Equal(t, filepath.Join("/tmp/xdg", "fade", "config.yaml"), GetUserConfigPath())
	assert.Equal(t, filepath.Join("/tmp/xdg", "fade"), GetUserConfigDir())
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	// Given: a customised config written as the user file
	xdg := isolate(t)
	cfg := NewConfig()
	cfg.Search.MaxResults = 33
	cfg.UI.Debounce = 250 * time.Millisecond
	cfg.Scan.Roots = []string{"/srv/tools"}

	require.NoError(t, cfg.WriteYAML(GetUserConfigPath()))
	assert.FileExists(t, filepath.Join(xdg, "fade", "config.yaml"))
	assert.True(t, UserConfigExists())

	// When: loading it back
	loaded, err := Load("")
	require.NoError(t, err)

	// Then: values survive
	assert.Equal(t, 33, loaded.Search.MaxResults)
	assert.Equal(t, 250*time.Millisecond, loaded.UI.Debounce)
	assert.Equal(t, []string{"/srv/tools"}, loaded.Scan.Roots)
}

func TestEffectiveRoots(t *testing.T) {
	cfg := NewConfig()
	cfg.Scan.Roots = []string{"/a", "/b", "/a/", "/a"}

	assert.Equal(t, []string{"/a", "/b"}, cfg.EffectiveRoots())

	cfg.Scan.Roots = nil
	assert.NotNil(t, cfg.EffectiveRoots())
}
