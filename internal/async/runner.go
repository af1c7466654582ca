package async

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// ScanFunc performs one scan-and-commit cycle, reporting into progress.
type ScanFunc func(ctx context.Context, progress *Progress) error

// Runner runs at most one ScanFunc cycle at a time in a background goroutine.
// Cycles can be started repeatedly; a Start while one is running is a no-op.
type Runner struct {
	scan     ScanFunc
	progress *Progress
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	doneCh  chan struct{}
	cancel  context.CancelFunc
	err     error
}

// NewRunner creates a Runner for fn. A nil logger means slog.Default().
func NewRunner(fn ScanFunc, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		scan:     fn,
		progress: NewProgress(),
		logger:   logger,
	}
}

// Progress returns the progress tracker shared by every cycle.
func (r *Runner) Progress() *Progress {
	return r.progress
}

// IsRunning returns true if a cycle is currently running.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Start begins a cycle in a background goroutine and returns immediately.
// It returns false, without doing anything, when a cycle is already running.
func (r *Runner) Start(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	r.running = true
	r.err = nil
	r.cancel = cancel
	r.doneCh = make(chan struct{})

	go r.run(ctx, cancel, r.doneCh)
	return true
}

// run executes one cycle in the background.
func (r *Runner) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	defer close(done)
	defer cancel()

	var err error
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("scan panicked: %v", rec)
			}
		}()
		if r.scan != nil {
			err = r.scan(ctx, r.progress)
		}
	}()

	if err != nil {
		r.progress.SetError(err.Error())
		r.logger.Warn("scan cycle failed", slog.String("error", err.Error()))
	}

	r.mu.Lock()
	r.err = err
	r.running = false
	r.mu.Unlock()
}

// Wait blocks until the current cycle completes or ctx is done, and returns the
// cycle's error. It returns nil immediately when no cycle was ever started.
func (r *Runner) Wait(ctx context.Context) error {
	r.mu.Lock()
	done := r.doneCh
	r.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Stop cancels the running cycle, if any, and waits for it to finish.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	cancel, done := r.cancel, r.doneCh
	r.mu.Unlock()

	cancel()
	<-done
}
