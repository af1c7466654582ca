// Package search ranks launch targets against a typed query and orchestrates the
// catalog lifecycle: background scan, committed index, recent launches.
package search

import (
	"strings"

	"github.com/Aman-CERP/fade/internal/catalog"
)

// Default score contributions. Exact, prefix and contains are additive, so an exact
// name match also collects the prefix and contains weights.
const (
	DefaultExactWeight       = 100.0
	DefaultPrefixWeight      = 50.0
	DefaultContainsWeight    = 25.0
	DefaultPathWeight        = 10.0
	DefaultLengthBonusWeight = 20.0
)

// Weights is the additive scoring table.
type Weights struct {
	// Exact is added when the display name equals the query.
	Exact float64 `json:"exact" yaml:"exact"`

	// Prefix is added when the display name starts with the query.
	Prefix float64 `json:"prefix" yaml:"prefix"`

	// Contains is added when the display name contains the query.
	Contains float64 `json:"contains" yaml:"contains"`

	// Path is added when the full path contains the query.
	Path float64 `json:"path" yaml:"path"`

	// LengthBonus is divided by len(DisplayName)+1 and added once anything matched,
	// so shorter names win among otherwise equal matches.
	LengthBonus float64 `json:"length_bonus" yaml:"length_bonus"`
}

// DefaultWeights returns the stock scoring table.
func DefaultWeights() Weights {
	return Weights{
		Exact:       DefaultExactWeight,
		Prefix:      DefaultPrefixWeight,
		Contains:    DefaultContainsWeight,
		Path:        DefaultPathWeight,
		LengthBonus: DefaultLengthBonusWeight,
	}
}

// Ranker scores candidates against a lowercased query.
type Ranker struct {
	weights Weights
}

// NewRanker creates a Ranker with the given weights.
func NewRanker(w Weights) *Ranker {
	return &Ranker{weights: w}
}

// Weights returns the table this ranker scores with.
func (r *Ranker) Weights() Weights {
	return r.weights
}

// Score returns the relevance of c for queryLower. It is pure and deterministic.
// A result <= 0 means c does not match.
func (r *Ranker) Score(c catalog.Candidate, queryLower string) float64 {
	if queryLower == "" {
		return 0
	}

	w := r.weights
	name := strings.ToLower(c.DisplayName)

	var score float64
	if name == queryLower {
		score += w.Exact
	}
	if strings.HasPrefix(name, queryLower) {
		score += w.Prefix
	}
	if strings.Contains(name, queryLower) {
		score += w.Contains
	}
	if strings.Contains(strings.ToLower(c.Path), queryLower) {
		score += w.Path
	}

	if score > 0 {
		score += w.LengthBonus / float64(len(c.DisplayName)+1)
	}
	return score
}
