// Package catalog defines the launch-target record shared by the scanner, the index,
// the recent-launch history and the search engine.
package catalog

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Candidate is one discoverable launch target.
type Candidate struct {
	// DisplayName is derived from the file name, see CleanName.
	DisplayName string `json:"name"`

	// Path is the absolute filesystem path. It is the identity of a candidate.
	Path string `json:"path"`

	// Description is best-effort metadata, empty when unavailable.
	Description string `json:"description,omitempty"`

	// IconRef is an opaque placeholder. Icons are never resolved.
	IconRef string `json:"icon_ref,omitempty"`

	// Score is only meaningful on the results of a single search call.
	Score float64 `json:"score,omitempty"`
}

// Key returns the lowercase display name used to collapse homonyms during a scan.
func (c Candidate) Key() string {
	return strings.ToLower(c.DisplayName)
}

// Ext returns the lowercased extension of the candidate path, including the dot.
func (c Candidate) Ext() string {
	return strings.ToLower(filepath.Ext(c.Path))
}

// CleanName turns a file name into a display name.
// The extension is dropped, '_', '-' and '.' become spaces, runs of whitespace collapse,
// and the first rune of every word is upper-cased. The remainder of each word is kept
// as-is, so "vlc_media-player.exe" becomes "Vlc Media Player" and "iTunes.exe" "ITunes".
func CleanName(fileName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	stem = strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.':
			return ' '
		}
		return r
	}, stem)

	words := strings.Fields(stem)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}

	return strings.Join(words, " ")
}

// Less orders candidates by display name, case-insensitively.
// Identical keys fall back to the path so the order is total.
func Less(a, b Candidate) bool {
	ka, kb := a.Key(), b.Key()
	if ka != kb {
		return ka < kb
	}
	return a.Path < b.Path
}

// Compare is the three-way form of Less, for slices.SortStableFunc.
func Compare(a, b Candidate) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}
