// Package scanner discovers launch targets on disk.
// It walks configured roots to a fixed depth, keeps regular files with an allowed
// extension, drops installer and helper noise, and returns a deduplicated snapshot
// sorted by display name.
package scanner

import (
	"time"
)

// MaxDepth is the deepest level visited below a root. A root's direct children are at depth 1.
const MaxDepth = 3

// DefaultExcludePatterns are substrings that reject a candidate when found in its
// lowercased display name.
var DefaultExcludePatterns = []string{
	"unins",
	"uninst",
	"setup",
	"install",
	"update",
	"crash",
	"error",
	"helper",
	"service",
	"daemon",
	"background",
	"launcher",
}

// Options configures a scan.
type Options struct {
	// Roots are walked in order. Earlier roots win display-name collisions.
	Roots []string

	// Extensions is the allowlist, each with a leading dot. Matching is case-insensitive.
	Extensions []string

	// ExcludePatterns overrides DefaultExcludePatterns when non-nil.
	ExcludePatterns []string

	// Workers bounds how many roots are walked concurrently (0 = NumCPU).
	Workers int

	// Progress is called after each root finishes with (done, total).
	Progress func(done, total int)
}

// Stats summarizes one scan.
type Stats struct {
	Roots        int           `json:"roots"`
	MissingRoots int           `json:"missing_roots"`
	Visited      int           `json:"visited"`
	Accepted     int           `json:"accepted"`
	Denied       int           `json:"denied"`
	Duplicates   int           `json:"duplicates"`
	Errors       int           `json:"errors"`
	Duration     time.Duration `json:"duration"`
}

// add folds per-root counters into s.
func (s *Stats) add(o Stats) {
	s.MissingRoots += o.MissingRoots
	s.Visited += o.Visited
	s.Denied += o.Denied
	s.Errors += o.Errors
}
