// Package launcher starts launch targets as detached processes.
//
// Shortcuts (.lnk) go through the platform shell-open primitive; everything else is
// spawned directly. Launches are fire-and-forget: the child is reaped in the
// background and never supervised.
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Aman-CERP/fade/internal/catalog"
	ferrors "github.com/Aman-CERP/fade/internal/errors"
)

// ShortcutExt is dispatched through the shell rather than spawned.
const ShortcutExt = ".lnk"

// Starter is the pair of OS process primitives a Launcher dispatches to.
type Starter interface {
	// Spawn starts path directly as a detached child.
	Spawn(path string) error

	// ShellOpen asks the platform shell to open path.
	ShellOpen(path string) error
}

// LaunchError reports a target that could not be started.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %q: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Launcher dispatches paths to a Starter.
type Launcher struct {
	starter Starter
	logger  *slog.Logger
}

// New creates a Launcher. A nil starter means the real OS primitives; a nil
// logger means slog.Default().
func New(starter Starter, logger *slog.Logger) *Launcher {
	if starter == nil {
		starter = OSStarter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{starter: starter, logger: logger}
}

// IsShortcut reports whether path is dispatched through the shell.
func IsShortcut(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ShortcutExt)
}

// Launch starts path and returns as soon as the OS accepted it.
// Failures are returned as *LaunchError wrapping a coded error.
func (l *Launcher) Launch(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return &LaunchError{
			Path: path,
			Err:  ferrors.New(ferrors.ErrCodeInvalidPath, "launch path is empty", nil),
		}
	}
	if err := ctx.Err(); err != nil {
		return &LaunchError{Path: path, Err: err}
	}

	mode := "spawn"
	start := l.starter.Spawn
	if IsShortcut(path) {
		mode = "shell_open"
		start = l.starter.ShellOpen
	}

	if err := start(path); err != nil {
		fe := ferrors.New(ferrors.ErrCodeLaunchFailed, "could not start "+filepath.Base(path), err).
			WithDetail("path", path).
			WithDetail("mode", mode).
			WithSuggestion("Check that the file still exists and is executable, then rescan")
		l.logger.LogAttrs(ctx, slog.LevelWarn, "launch failed", ferrors.LogAttrs(fe)...)
		return &LaunchError{Path: path, Err: fe}
	}

	l.logger.Info("launched", slog.String("path", path), slog.String("mode", mode))
	return nil
}

// Dispatcher is anything that can launch a path.
type Dispatcher interface {
	Launch(ctx context.Context, path string) error
}

// Recorder receives successful launches.
type Recorder interface {
	RecordLaunch(c catalog.Candidate)
}

// LaunchAndRecord launches c and records it only if the launch succeeded.
func LaunchAndRecord(ctx context.Context, d Dispatcher, r Recorder, c catalog.Candidate) error {
	if err := d.Launch(ctx, c.Path); err != nil {
		return err
	}
	r.RecordLaunch(c)
	return nil
}
