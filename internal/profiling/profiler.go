// Package profiling writes CPU, heap and execution-trace profiles for the CLI's
// --profile-* flags.
package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Profiler manages the profiles of one command run.
type Profiler struct {
	stops []func()
}

// NewProfiler creates a new Profiler instance.
func NewProfiler() *Profiler {
	return &Profiler{}
}

// StartCPU starts CPU profiling to path. Stop flushes it.
func (p *Profiler) StartCPU(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CPU profile file: %w", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}

	p.stops = append(p.stops, func() {
		pprof.StopCPUProfile()
		_ = f.Close()
	})
	return nil
}

// StartTrace starts execution tracing to path. Stop flushes it.
func (p *Profiler) StartTrace(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}

	if err := trace.Start(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to start trace: %w", err)
	}

	p.stops = append(p.stops, func() {
		trace.Stop()
		_ = f.Close()
	})
	return nil
}

// WriteHeap writes a heap profile to path after a forced GC.
func (p *Profiler) WriteHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heap profile file: %w", err)
	}
	defer func() { _ = f.Close() }()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return nil
}

// Stop ends every running profile, newest first. Calling it twice is a no-op.
func (p *Profiler) Stop() {
	for i := len(p.stops) - 1; i >= 0; i-- {
		p.stops[i]()
	}
	p.stops = nil
}
