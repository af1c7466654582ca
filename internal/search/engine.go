package search

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/fade/internal/async"
	"github.com/Aman-CERP/fade/internal/catalog"
	ferrors "github.com/Aman-CERP/fade/internal/errors"
	"github.com/Aman-CERP/fade/internal/index"
	"github.com/Aman-CERP/fade/internal/recent"
	"github.com/Aman-CERP/fade/internal/scanner"
	"github.com/Aman-CERP/fade/internal/telemetry"
)

const (
	// DefaultLimit is used when a caller passes limit <= 0 and no default is configured.
	DefaultLimit = 10

	// DefaultCacheSize is the number of memoised query results.
	DefaultCacheSize = 256
)

// EngineConfig configures an Engine.
type EngineConfig struct {
	// Scan is passed to the scanner on every cycle. Progress is managed by the engine.
	Scan scanner.Options

	// DefaultLimit replaces limit <= 0 in Search and Recent.
	DefaultLimit int

	// Weights is the scoring table. The zero value means DefaultWeights.
	Weights Weights

	// CacheSize bounds the result cache (0 = DefaultCacheSize).
	CacheSize int

	// RecentCapacity bounds the recent-launch history (0 = recent.DefaultCapacity).
	RecentCapacity int
}

// cacheKey identifies one memoised search. The generation makes entries from
// older snapshots unreachable.
type cacheKey struct {
	generation uint64
	query      string
	limit      int
}

// Engine is the search orchestrator. It owns the committed index, the recent-launch
// history and the background scan lifecycle. All methods are safe for concurrent use.
type Engine struct {
	index   *index.Index
	recent  *recent.List
	ranker  *Ranker
	scanner *scanner.Scanner
	runner  *async.Runner
	cache   *lru.Cache[cacheKey, []catalog.Candidate]
	config  EngineConfig
	logger  *slog.Logger
	metrics *telemetry.QueryMetrics
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used by the engine and its scanner.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records every non-empty query in m.
func WithMetrics(m *telemetry.QueryMetrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine creates an engine with an empty index. No scan runs until
// StartBackgroundScan or Rescan is called.
func NewEngine(cfg EngineConfig, opts ...EngineOption) *Engine {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultLimit
	}
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}

	e := &Engine{
		index:  index.New(),
		recent: recent.New(cfg.RecentCapacity),
		ranker: NewRanker(cfg.Weights),
		config: cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.cache, _ = lru.New[cacheKey, []catalog.Candidate](cfg.CacheSize)
	e.scanner = scanner.New(e.logger)
	e.runner = async.NewRunner(e.scanCycle, e.logger)
	return e
}

// Search returns up to limit candidates matching query, best first.
// Only the empty string returns Recent(limit); whitespace is scored like any
// other text. Ties keep the index's name order.
func (e *Engine) Search(query string, limit int) (results []catalog.Candidate) {
	defer e.guard("search", &results)

	if query == "" {
		return e.Recent(limit)
	}
	limit = e.resolveLimit(limit)
	queryLower := strings.ToLower(query)

	if e.metrics != nil {
		start := time.Now()
		defer func() {
			e.metrics.Record(telemetry.QueryEvent{Query: query, ResultCount: len(results), Latency: time.Since(start)})
		}()
	}

	entries, gen := e.index.Snapshot()
	key := cacheKey{generation: gen, query: queryLower, limit: limit}
	if cached, ok := e.cache.Get(key); ok {
		return slices.Clone(cached)
	}

	scored := make([]catalog.Candidate, 0, min(limit, len(entries)))
	for _, c := range entries {
		s := e.ranker.Score(c, queryLower)
		if s <= 0 {
			continue
		}
		c.Score = s
		scored = append(scored, c)
	}

	slices.SortStableFunc(scored, func(a, b catalog.Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	e.cache.Add(key, scored)
	return slices.Clone(scored)
}

// Recent returns up to limit recently launched candidates, most recent first.
// Before anything has been launched it falls back to the first limit index entries.
func (e *Engine) Recent(limit int) (results []catalog.Candidate) {
	defer e.guard("recent", &results)

	limit = e.resolveLimit(limit)
	if got := e.recent.List(limit); len(got) > 0 {
		return got
	}
	return e.index.Head(limit)
}

// RecordLaunch moves c to the front of the recent-launch history.
func (e *Engine) RecordLaunch(c catalog.Candidate) {
	var discard []catalog.Candidate
	defer e.guard("record_launch", &discard)

	e.recent.Record(c)
	e.logger.Debug("launch recorded", slog.String("path", c.Path))
}

// Lookup finds a known candidate by path in the index or the recent history.
func (e *Engine) Lookup(path string) (catalog.Candidate, bool) {
	if c, ok := e.index.Contains(path); ok {
		return c, true
	}
	return e.recent.Find(path)
}

// StartBackgroundScan launches one scan-and-replace cycle and returns immediately.
// Calling it while a cycle is pending does nothing.
func (e *Engine) StartBackgroundScan(ctx context.Context) {
	e.runner.Start(ctx)
}

// Rescan starts a new cycle unless one is already running, and reports whether it did.
func (e *Engine) Rescan(ctx context.Context) bool {
	started := e.runner.Start(ctx)
	e.logger.Debug("rescan requested", slog.Bool("started", started))
	return started
}

// WaitForScan blocks until the current cycle commits or ctx is done.
func (e *Engine) WaitForScan(ctx context.Context) error {
	return e.runner.Wait(ctx)
}

// Stop cancels a running cycle and waits for it to exit.
func (e *Engine) Stop() {
	e.runner.Stop()
}

// Status returns a snapshot of scan progress.
func (e *Engine) Status() async.Snapshot {
	return e.runner.Progress().Snapshot()
}

// Len returns the number of committed candidates.
func (e *Engine) Len() int {
	return e.index.Len()
}

// Replace commits entries as the new index snapshot and invalidates cached results.
func (e *Engine) Replace(entries []catalog.Candidate) uint64 {
	gen := e.index.Replace(entries)
	e.cache.Purge()
	e.logger.Info("index replaced",
		slog.Int("count", len(entries)),
		slog.Uint64("generation", gen))
	return gen
}

// Weights returns the active scoring table.
func (e *Engine) Weights() Weights {
	return e.ranker.Weights()
}

// DefaultLimit returns the limit used when callers pass limit <= 0.
func (e *Engine) DefaultLimit() int {
	return e.config.DefaultLimit
}

// scanCycle is the background unit of work: scan every root, then commit.
// An interrupted scan commits nothing so readers keep the previous snapshot.
func (e *Engine) scanCycle(ctx context.Context, progress *async.Progress) error {
	opts := e.config.Scan
	progress.Begin(len(opts.Roots))
	opts.Progress = progress.UpdateRoots

	snapshot, _ := e.scanner.Scan(ctx, opts)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scan interrupted: %w", err)
	}

	gen := e.Replace(snapshot)
	progress.SetReady(len(snapshot), gen)
	return nil
}

func (e *Engine) resolveLimit(limit int) int {
	if limit <= 0 {
		return e.config.DefaultLimit
	}
	return limit
}

// guard turns a panic while touching shared state into an empty result.
func (e *Engine) guard(op string, results *[]catalog.Candidate) {
	rec := recover()
	if rec == nil {
		return
	}

	fe := ferrors.New(ferrors.ErrCodeLockUnavailable, "shared state unavailable", fmt.Errorf("%v", rec)).
		WithDetail("operation", op)

	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.LogAttrs(context.Background(), slog.LevelError, "recovered from shared state failure", ferrors.LogAttrs(fe)...)

	*results = []catalog.Candidate{}
}
