// Package distance scores how far apart two words are.
//
// All algorithms report on the same scale: one plain edit costs Unit, so a
// threshold of 160 accepts one full edit plus one cheap edit (a transposition or
// a case change). Algorithms are symmetric and return 0 only for identical words.
package distance

import (
	"fmt"
	"strings"
)

// Unit is the cost of a single insertion, deletion or substitution.
const Unit = 100

// DefaultThreshold is the acceptance threshold matching Unit.
const DefaultThreshold = 160

// Algorithm measures the distance between two words.
type Algorithm interface {
	Distance(a, b string) int
}

// Names of the built-in algorithms, as used in config files.
const (
	NameWeighted = "weighted"
	NameOSA      = "osa"
)

// New returns the built-in algorithm registered under name.
// An empty name selects the weighted algorithm.
func New(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameWeighted:
		return NewWeighted(DefaultCosts()), nil
	case NameOSA:
		return OSA{}, nil
	default:
		return nil, fmt.Errorf("unknown distance algorithm %q", name)
	}
}
