// Package index holds the committed scan snapshot shared between the background
// scanner and every reader.
package index

import (
	"slices"
	"sync"

	"github.com/Aman-CERP/fade/internal/catalog"
)

// snapshot is immutable once published.
type snapshot struct {
	entries    []catalog.Candidate
	generation uint64
}

// Index is a lock-protected pointer to an immutable, name-sorted snapshot.
// Writers swap the pointer; readers copy out of whatever snapshot is current.
type Index struct {
	mu   sync.RWMutex
	snap *snapshot
}

// New returns an empty index at generation 0.
func New() *Index {
	return &Index{snap: &snapshot{}}
}

// Replace atomically swaps in a new snapshot and returns its generation.
// The index keeps its own sorted copy, so callers may reuse entries afterwards.
func (ix *Index) Replace(entries []catalog.Candidate) uint64 {
	next := slices.Clone(entries)
	for i := range next {
		next[i].Score = 0
	}
	slices.SortStableFunc(next, catalog.Compare)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	gen := ix.snap.generation + 1
	ix.snap = &snapshot{entries: next, generation: gen}
	return gen
}

// ReadAll returns a point-in-time copy of every entry in name order.
// Before the first Replace it returns an empty, non-nil slice.
func (ix *Index) ReadAll() []catalog.Candidate {
	entries, _ := ix.Snapshot()
	return slices.Clone(entries)
}

// Snapshot returns the current entries and their generation without copying.
// The returned slice must not be modified.
func (ix *Index) Snapshot() ([]catalog.Candidate, uint64) {
	ix.mu.RLock()
	s := ix.snap
	ix.mu.RUnlock()

	if s.entries == nil {
		return []catalog.Candidate{}, s.generation
	}
	return s.entries, s.generation
}

// Head returns copies of the first n entries (all entries when n exceeds Len).
func (ix *Index) Head(n int) []catalog.Candidate {
	entries, _ := ix.Snapshot()
	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}
	return slices.Clone(entries[:n])
}

// Contains reports whether a candidate with the given path is in the snapshot.
func (ix *Index) Contains(path string) (catalog.Candidate, bool) {
	entries, _ := ix.Snapshot()
	for _, c := range entries {
		if c.Path == path {
			return c, true
		}
	}
	return catalog.Candidate{}, false
}

// Len returns the number of entries in the current snapshot.
func (ix *Index) Len() int {
	entries, _ := ix.Snapshot()
	return len(entries)
}

// Generation returns how many times the index has been replaced.
func (ix *Index) Generation() uint64 {
	_, gen := ix.Snapshot()
	return gen
}
