package phonetic

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
)

// Metaphone keys words by their primary Double Metaphone code.
// Words without any ASCII letter fall back to their lowercased form so the
// provider stays total on non-Latin input.
type Metaphone struct {
	mutators []rune
}

// NewMetaphone creates a metaphone provider probing with mutators,
// or DefaultMutators when mutators is empty.
func NewMetaphone(mutators []rune) *Metaphone {
	if len(mutators) == 0 {
		mutators = mutatorRunes(DefaultMutators)
	}
	return &Metaphone{mutators: mutators}
}

// Hash implements Provider.
func (m *Metaphone) Hash(word string) string {
	if word == "" {
		return ""
	}
	letters := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return unicode.ToUpper(r)
		}
		return -1
	}, word)
	if letters == "" {
		return strings.ToLower(word)
	}
	primary, _ := matchr.DoubleMetaphone(letters)
	if primary == "" {
		return letters[:1]
	}
	return primary
}

// Mutators implements Provider.
func (m *Metaphone) Mutators() []rune {
	return m.mutators
}
