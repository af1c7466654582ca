// Package recent keeps the bounded most-recently-launched history.
package recent

import (
	"slices"
	"sync"

	"github.com/Aman-CERP/fade/internal/catalog"
)

// DefaultCapacity is the number of launches remembered.
const DefaultCapacity = 20

// List is a most-recent-first history, unique by path.
type List struct {
	mu       sync.Mutex
	entries  []catalog.Candidate
	capacity int
}

// New creates a List. A capacity <= 0 means DefaultCapacity.
func New(capacity int) *List {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &List{capacity: capacity}
}

// Record moves c to the front, dropping any older entry with the same path
// and evicting the oldest entry when the list is full.
func (l *List) Record(c catalog.Candidate) {
	c.Score = 0

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = slices.DeleteFunc(l.entries, func(e catalog.Candidate) bool {
		return e.Path == c.Path
	})
	l.entries = slices.Insert(l.entries, 0, c)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
}

// List returns up to limit entries, most recent first. A limit <= 0 returns all.
func (l *List) List(limit int) []catalog.Candidate {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	return slices.Clone(l.entries[:n])
}

// Find returns the entry recorded for path, if any.
func (l *List) Find(path string) (catalog.Candidate, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.entries {
		if e.Path == path {
			return e, true
		}
	}
	return catalog.Candidate{}, false
}

// Len returns the number of remembered launches.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Capacity returns the maximum number of entries kept.
func (l *List) Capacity() int {
	return l.capacity
}
