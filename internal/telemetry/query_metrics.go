// Package telemetry records search query patterns in memory.
// Nothing is persisted or reported; the numbers live as long as the process.
package telemetry

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LatencyBucket represents a latency histogram bucket.
type LatencyBucket string

const (
	BucketP1   LatencyBucket = "p1"   // <1ms
	BucketP10  LatencyBucket = "p10"  // 1-10ms
	BucketP50  LatencyBucket = "p50"  // 10-50ms
	BucketP100 LatencyBucket = "p100" // >=50ms
)

// LatencyToBucket converts a duration to its histogram bucket.
func LatencyToBucket(d time.Duration) LatencyBucket {
	switch {
	case d < time.Millisecond:
		return BucketP1
	case d < 10*time.Millisecond:
		return BucketP10
	case d < 50*time.Millisecond:
		return BucketP50
	default:
		return BucketP100
	}
}

// QueryEvent is a single search query.
type QueryEvent struct {
	Query       string
	ResultCount int
	Latency     time.Duration
}

// CircularBuffer is a fixed-capacity FIFO buffer. It is not safe for concurrent
// use on its own; QueryMetrics guards it.
type CircularBuffer[T any] struct {
	items    []T
	head     int
	size     int
	capacity int
}

// NewCircularBuffer creates a new circular buffer with the given capacity.
func NewCircularBuffer[T any](capacity int) *CircularBuffer[T] {
	if capacity <= 0 {
		capacity = 100
	}
	return &CircularBuffer[T]{items: make([]T, capacity), capacity: capacity}
}

// Add adds an item to the buffer. If full, the oldest item is evicted.
func (b *CircularBuffer[T]) Add(item T) {
	b.items[b.head] = item
	b.head = (b.head + 1) % b.capacity
	if b.size < b.capacity {
		b.size++
	}
}

// Items returns all items oldest first.
func (b *CircularBuffer[T]) Items() []T {
	result := make([]T, b.size)
	if b.size < b.capacity {
		copy(result, b.items[:b.size])
	} else {
		n := copy(result, b.items[b.head:])
		copy(result[n:], b.items[:b.head])
	}
	return result
}

// Size returns the current number of items in the buffer.
func (b *CircularBuffer[T]) Size() int {
	return b.size
}

// ExtractTerms lowercases query and splits it into words of at least two bytes.
func ExtractTerms(query string) []string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) >= 2 {
			terms = append(terms, w)
		}
	}
	return terms
}

// TermCount represents a term and its frequency count.
type TermCount struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

// Snapshot is an immutable copy of the collected metrics.
type Snapshot struct {
	TotalQueries        int64                   `json:"total_queries"`
	ZeroResultCount     int64                   `json:"zero_result_count"`
	ZeroResultQueries   []string                `json:"zero_result_queries"`
	TopTerms            []TermCount             `json:"top_terms"`
	LatencyDistribution map[LatencyBucket]int64 `json:"latency_distribution"`
	Since               time.Time               `json:"since"`
}

// ZeroResultPercentage returns the percentage of queries that matched nothing.
func (s Snapshot) ZeroResultPercentage() float64 {
	if s.TotalQueries == 0 {
		return 0
	}
	return float64(s.ZeroResultCount) / float64(s.TotalQueries) * 100
}

// Config sizes the collector.
type Config struct {
	TopTermsCapacity    int // Max distinct terms tracked (default: 100)
	ZeroResultsCapacity int // Max zero-result queries kept (default: 50)
	TopTermsReported    int // Terms included in a snapshot (default: 10)
}

// DefaultConfig returns the default sizes.
func DefaultConfig() Config {
	return Config{TopTermsCapacity: 100, ZeroResultsCapacity: 50, TopTermsReported: 10}
}

// QueryMetrics collects query telemetry. Safe for concurrent use.
type QueryMetrics struct {
	mu sync.Mutex

	topTerms        *lru.Cache[string, int64]
	zeroResults     *CircularBuffer[string]
	latencies       map[LatencyBucket]int64
	totalQueries    int64
	zeroResultCount int64
	startTime       time.Time
	reported        int
}

// NewQueryMetrics creates a collector. Zero config fields take the defaults.
func NewQueryMetrics(cfg Config) *QueryMetrics {
	def := DefaultConfig()
	if cfg.TopTermsCapacity <= 0 {
		cfg.TopTermsCapacity = def.TopTermsCapacity
	}
	if cfg.ZeroResultsCapacity <= 0 {
		cfg.ZeroResultsCapacity = def.ZeroResultsCapacity
	}
	if cfg.TopTermsReported <= 0 {
		cfg.TopTermsReported = def.TopTermsReported
	}

	topTerms, _ := lru.New[string, int64](cfg.TopTermsCapacity)
	return &QueryMetrics{
		topTerms:    topTerms,
		zeroResults: NewCircularBuffer[string](cfg.ZeroResultsCapacity),
		latencies:   make(map[LatencyBucket]int64),
		startTime:   time.Now(),
		reported:    cfg.TopTermsReported,
	}
}

// Record adds one query event.
func (m *QueryMetrics) Record(e QueryEvent) {
	query := strings.TrimSpace(e.Query)
	if query == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalQueries++
	m.latencies[LatencyToBucket(e.Latency)]++
	if e.ResultCount == 0 {
		m.zeroResultCount++
		m.zeroResults.Add(query)
	}
	for _, term := range ExtractTerms(query) {
		n, _ := m.topTerms.Peek(term)
		m.topTerms.Add(term, n+1)
	}
}

// Snapshot returns a copy of the current metrics. Top terms are sorted by count,
// then alphabetically.
func (m *QueryMetrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	terms := make([]TermCount, 0, m.topTerms.Len())
	for _, k := range m.topTerms.Keys() {
		n, _ := m.topTerms.Peek(k)
		terms = append(terms, TermCount{Term: k, Count: n})
	}
	slices.SortFunc(terms, func(a, b TermCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})
	if len(terms) > m.reported {
		terms = terms[:m.reported]
	}

	latencies := make(map[LatencyBucket]int64, len(m.latencies))
	for k, v := range m.latencies {
		latencies[k] = v
	}

	return Snapshot{
		TotalQueries:        m.totalQueries,
		ZeroResultCount:     m.zeroResultCount,
		ZeroResultQueries:   m.zeroResults.Items(),
		TopTerms:            terms,
		LatencyDistribution: latencies,
		Since:               m.startTime,
	}
}
