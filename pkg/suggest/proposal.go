package suggest

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Proposal is a candidate correction. Rank is the negated distance, so a
// greater rank means a closer word.
type Proposal struct {
	Word string
	Rank int
}

// Compare orders proposals by rank only.
func (p Proposal) Compare(o Proposal) int {
	return cmp.Compare(p.Rank, o.Rank)
}

// Equal reports whether both proposals carry the same text.
func (p Proposal) Equal(o Proposal) bool {
	return p.Word == o.Word
}

// Proposals is an ordered set of proposals, best first.
type Proposals []Proposal

// Words returns the proposal texts in order.
func (ps Proposals) Words() []string {
	words := make([]string, len(ps))
	for i, p := range ps {
		words[i] = p.Word
	}
	return words
}

// Contains reports whether word is one of the proposals.
func (ps Proposals) Contains(word string) bool {
	return slices.ContainsFunc(ps, func(p Proposal) bool { return p.Word == word })
}

// Limit truncates the set to at most n proposals. n <= 0 keeps everything.
func (ps Proposals) Limit(n int) Proposals {
	if n > 0 && len(ps) > n {
		return ps[:n]
	}
	return ps
}

// Collector accumulates proposals with set semantics: a repeated word keeps
// its best rank.
type Collector struct {
	capitalize bool
	best       map[string]int
}

// NewCollector creates a collector. With capitalize set, every collected
// word has its first letter upper-cased.
func NewCollector(capitalize bool) *Collector {
	return &Collector{
		capitalize: capitalize,
		best:       make(map[string]int),
	}
}

// Add records word with rank.
func (c *Collector) Add(word string, rank int) {
	if c.capitalize {
		word = CapitalizeFirst(word)
	}
	if prev, ok := c.best[word]; ok && prev >= rank {
		return
	}
	c.best[word] = rank
}

// AddAll records every proposal of ps.
func (c *Collector) AddAll(ps Proposals) {
	for _, p := range ps {
		c.Add(p.Word, p.Rank)
	}
}

// Len returns the number of distinct words collected.
func (c *Collector) Len() int {
	return len(c.best)
}

// Proposals returns the collected set sorted by descending rank.
// Equal ranks are ordered by text so results are reproducible.
func (c *Collector) Proposals() Proposals {
	ps := make(Proposals, 0, len(c.best))
	for w, r := range c.best {
		ps = append(ps, Proposal{Word: w, Rank: r})
	}
	slices.SortFunc(ps, func(a, b Proposal) int {
		if n := b.Compare(a); n != 0 {
			return n
		}
		return strings.Compare(a.Word, b.Word)
	})
	return ps
}

// CapitalizeFirst upper-cases the first rune of word.
func CapitalizeFirst(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return word
	}
	return string(unicode.ToTitle(r)) + word[size:]
}
