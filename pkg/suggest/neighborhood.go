package suggest

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/bastiangx/wordfix/pkg/phonetic"
)

// Neighborhood is the set of keys probed for a word.
type Neighborhood struct {
	// Exact is the key of the word itself.
	Exact string
	// Keys holds every key one mutation away, without Exact.
	Keys mapset.Set[string]
}

// Expand hashes every single-edit variant of word: adjacent transpositions,
// substitutions and insertions of each mutator at every position, and
// deletions. The provider's keys are lossy, so the variants are probed
// rather than the word's key alone.
func Expand(provider phonetic.Provider, word string) Neighborhood {
	runes := []rune(word)
	mutators := provider.Mutators()
	n := len(runes)

	keys := mapset.NewThreadUnsafeSetWithSize[string](2*n*len(mutators) + 2*n)
	buf := make([]rune, 0, n+1)
	probe := func(variant []rune) {
		keys.Add(provider.Hash(string(variant)))
	}

	for i := 0; i+1 < n; i++ {
		buf = append(buf[:0], runes...)
		buf[i], buf[i+1] = buf[i+1], buf[i]
		probe(buf)
	}

	for i := 0; i < n; i++ {
		buf = append(buf[:0], runes...)
		for _, m := range mutators {
			if runes[i] == m {
				continue
			}
			buf[i] = m
			probe(buf)
		}
	}

	// insertion walks from past the last rune back to the front
	for i := n; i >= 0; i-- {
		for _, m := range mutators {
			buf = append(buf[:0], runes[:i]...)
			buf = append(buf, m)
			buf = append(buf, runes[i:]...)
			probe(buf)
		}
	}

	for i := 0; i < n; i++ {
		buf = append(buf[:0], runes[:i]...)
		buf = append(buf, runes[i+1:]...)
		probe(buf)
	}

	exact := provider.Hash(word)
	keys.Remove(exact)
	return Neighborhood{Exact: exact, Keys: keys}
}
