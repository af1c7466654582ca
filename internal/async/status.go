// Package async runs catalog scans off the foreground path and tracks their progress.
package async

import (
	"sync"
	"time"
)

// ScanStatus represents the state of the most recent scan cycle.
type ScanStatus string

const (
	// StatusIdle indicates no scan has been started yet.
	StatusIdle ScanStatus = "idle"
	// StatusScanning indicates a scan cycle is in progress.
	StatusScanning ScanStatus = "scanning"
	// StatusReady indicates the last cycle committed a snapshot.
	StatusReady ScanStatus = "ready"
	// StatusError indicates the last cycle ended without committing.
	StatusError ScanStatus = "error"
)

// Snapshot is an immutable copy of scan progress.
type Snapshot struct {
	Status         string    `json:"status"`
	RootsTotal     int       `json:"roots_total"`
	RootsDone      int       `json:"roots_done"`
	Candidates     int       `json:"candidates"`
	Generation     uint64    `json:"generation"`
	Cycles         int       `json:"cycles"`
	ProgressPct    float64   `json:"progress_pct"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	LastScanAt     time.Time `json:"last_scan_at,omitzero"`
	LastDuration   string    `json:"last_duration,omitempty"`
	ErrorMessage   string    `json:"error_message,omitempty"`
}

// Scanning reports whether a cycle was in progress when the snapshot was taken.
func (s Snapshot) Scanning() bool {
	return s.Status == string(StatusScanning)
}

// Progress provides thread-safe tracking of scan progress.
type Progress struct {
	mu sync.RWMutex

	status       ScanStatus
	rootsTotal   int
	rootsDone    int
	candidates   int
	generation   uint64
	cycles       int
	startTime    time.Time
	lastScanAt   time.Time
	lastDuration time.Duration
	errorMessage string
}

// NewProgress creates an idle progress tracker.
func NewProgress() *Progress {
	return &Progress{status: StatusIdle}
}

// Begin marks the start of a new cycle over total roots.
func (p *Progress) Begin(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = StatusScanning
	p.rootsTotal = total
	p.rootsDone = 0
	p.cycles++
	p.startTime = time.Now()
	p.errorMessage = ""
}

// UpdateRoots records how many roots have finished. Roots finishing together may
// report out of order, so the count never moves backwards within a cycle.
func (p *Progress) UpdateRoots(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rootsDone = max(p.rootsDone, done)
	p.rootsTotal = total
}

// SetReady marks the cycle committed with count candidates at generation gen.
func (p *Progress) SetReady(count int, gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = StatusReady
	p.candidates = count
	p.generation = gen
	p.rootsDone = p.rootsTotal
	p.lastScanAt = time.Now()
	p.lastDuration = p.lastScanAt.Sub(p.startTime)
}

// SetError marks the cycle as failed. The previously committed counts are kept.
func (p *Progress) SetError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = StatusError
	p.errorMessage = message
}

// IsScanning returns true while a cycle is in progress.
func (p *Progress) IsScanning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.status == StatusScanning
}

// Snapshot returns an immutable copy of the current progress state.
func (p *Progress) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var progressPct float64
	if p.rootsTotal > 0 {
		progressPct = float64(p.rootsDone) / float64(p.rootsTotal) * 100.0
	}

	var elapsed int
	if p.status == StatusScanning {
		elapsed = int(time.Since(p.startTime).Seconds())
	}

	var lastDuration string
	if p.lastDuration > 0 {
		lastDuration = p.lastDuration.Round(time.Millisecond).String()
	}

	return Snapshot{
		Status:         string(p.status),
		RootsTotal:     p.rootsTotal,
		RootsDone:      p.rootsDone,
		Candidates:     p.candidates,
		Generation:     p.generation,
		Cycles:         p.cycles,
		ProgressPct:    progressPct,
		ElapsedSeconds: elapsed,
		LastScanAt:     p.lastScanAt,
		LastDuration:   lastDuration,
		ErrorMessage:   p.errorMessage,
	}
}
