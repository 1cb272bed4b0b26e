/*
Package phonetic computes the short lossy keys the word index is bucketed by.

A Provider maps a word to a key such that words that sound or look alike tend to
land on the same key, and exposes the small alphabet of mutator runes used when
probing the neighbourhood of a misspelled word.

Two providers are available:

	phonetic.NewFolding(phonetic.DefaultTable()) // consonant skeleton, the default
	phonetic.NewMetaphone(nil)                   // Double Metaphone primary code

Providers carry their tables as explicit values, so tests and callers can run the
engine with alternate tables. An index must be rebuilt whenever its provider changes.
*/
package phonetic

import (
	"fmt"
	"strings"
)

// DefaultMutators is the probe alphabet used when no other is configured.
const DefaultMutators = "abcdefghijklmnopqrstuvwxyz"

// Provider maps words to phonetic keys.
type Provider interface {
	// Hash returns the key for word. It is pure and total, the empty word maps to "".
	Hash(word string) string
	// Mutators returns the runes used for substitution and insertion probing.
	Mutators() []rune
}

// Names of the built-in providers, as used in config files.
const (
	NameFolding   = "folding"
	NameMetaphone = "metaphone"
)

// New returns the built-in provider registered under name.
// An empty name selects the folding provider.
func New(name string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameFolding:
		return NewFolding(DefaultTable()), nil
	case NameMetaphone:
		return NewMetaphone(nil), nil
	default:
		return nil, fmt.Errorf("unknown hash provider %q", name)
	}
}

func mutatorRunes(alphabet string) []rune {
	seen := make(map[rune]bool, len(alphabet))
	runes := make([]rune, 0, len(alphabet))
	for _, r := range alphabet {
		if seen[r] {
			continue
		}
		seen[r] = true
		runes = append(runes, r)
	}
	return runes
}
