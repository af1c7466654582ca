package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Aman-CERP/fade/internal/config"
	"github.com/Aman-CERP/fade/internal/logging"
	"github.com/Aman-CERP/fade/internal/scanner"
	"github.com/Aman-CERP/fade/internal/search"
	"github.com/Aman-CERP/fade/internal/ui"
)

// logMode says whether a command may log to the terminal.
type logMode int

const (
	// stderrLogs writes text logs to stderr at the configured level.
	stderrLogs logMode = iota
	// quietLogs keeps the terminal clean for a full-screen UI or a stdio protocol.
	// With --debug, logs go to the log file only.
	quietLogs
)

// app bundles what every command needs: the effective config and a logger.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	cleanup func()
}

func newApp(mode logMode) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, cleanup, err := setupLogger(cfg, mode)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	return &app{cfg: cfg, logger: logger, cleanup: cleanup}, nil
}

func setupLogger(cfg *config.Config, mode logMode) (*slog.Logger, func(), error) {
	if debugMode {
		logCfg := logging.DebugConfig()
		logCfg.WriteToStderr = mode == stderrLogs
		logger, cleanup, err := logging.Setup(logCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to setup debug logging: %w", err)
		}
		logger.Debug("debug logging enabled", slog.String("log_file", logCfg.FilePath))
		return logger, cleanup, nil
	}

	if mode == quietLogs {
		return logging.NewDiscardLogger(), func() {}, nil
	}
	return logging.NewStderrLogger(cfg.Logging.Level), func() {}, nil
}

func (a *app) close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}

func (a *app) noColor() bool {
	return noColor || a.cfg.UI.NoColor || ui.DetectNoColor()
}

// scanOptions maps the scan section of the config onto the scanner.
func (a *app) scanOptions() scanner.Options {
	return scanner.Options{
		Roots:           a.cfg.EffectiveRoots(),
		Extensions:      a.cfg.Scan.Extensions,
		ExcludePatterns: a.cfg.Scan.ExcludePatterns,
		Workers:         a.cfg.Scan.Workers,
	}
}

// newEngine builds a search engine from the config. No scan has run yet.
func (a *app) newEngine(opts ...search.EngineOption) *search.Engine {
	w := a.cfg.Search.Weights
	return search.NewEngine(search.EngineConfig{
		Scan:         a.scanOptions(),
		DefaultLimit: a.cfg.Search.MaxResults,
		Weights: search.Weights{
			Exact:       w.Exact,
			Prefix:      w.Prefix,
			Contains:    w.Contains,
			Path:        w.Path,
			LengthBonus: w.LengthBonus,
		},
	}, append([]search.EngineOption{search.WithLogger(a.logger)}, opts...)...)
}

// scannedEngine builds an engine and blocks until its first scan commits.
func (a *app) scannedEngine(ctx context.Context) (*search.Engine, error) {
	engine := a.newEngine()
	engine.StartBackgroundScan(ctx)
	if err := engine.WaitForScan(ctx); err != nil {
		engine.Stop()
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return engine, nil
}
