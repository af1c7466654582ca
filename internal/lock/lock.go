// Package lock guards the interactive launcher so only one instance runs per user.
package lock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	ferrors "github.com/Aman-CERP/fade/internal/errors"
)

// LockFileName is the lock file created in the state directory.
const LockFileName = "fade.lock"

// InstanceLock provides a cross-process single-instance guard using gofrs/flock.
type InstanceLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// New creates an instance lock at <dir>/fade.lock.
func New(dir string) *InstanceLock {
	lockPath := filepath.Join(dir, LockFileName)
	return &InstanceLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// DefaultDir returns ~/.fade, the directory shared with the log files.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "fade")
	}
	return filepath.Join(home, ".fade")
}

// Acquire takes the lock without blocking.
// A lock held by another process yields ERR_302_INSTANCE_HELD.
func (l *InstanceLock) Acquire() error {
	acquired, err := l.TryLock()
	if err != nil {
		return ferrors.New(ferrors.ErrCodeInternal, "failed to acquire instance lock", err).
			WithDetail("path", l.path)
	}
	if !acquired {
		return ferrors.New(ferrors.ErrCodeInstanceHeld, "fade is already running", nil).
			WithDetail("path", l.path).
			WithSuggestion("Switch to the open launcher window, or remove the lock file if no fade process is running.")
	}
	return nil
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false if it's held elsewhere.
func (l *InstanceLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if acquired {
		l.locked = true
	}
	return acquired, nil
}

// Unlock releases the lock. Calling it on an unlocked InstanceLock is a no-op.
func (l *InstanceLock) Unlock() error {
	if !l.locked {
		return nil
	}

	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Path returns the path to the lock file.
func (l *InstanceLock) Path() string {
	return l.path
}

// IsLocked returns true if this instance holds the lock.
func (l *InstanceLock) IsLocked() bool {
	return l.locked
}
