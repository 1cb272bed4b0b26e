package dictionary

import (
	"errors"

	"github.com/bastiangx/wordfix/pkg/suggest"
)

// Collection queries several dictionaries as one, typically a main word list
// plus a writable user list.
type Collection struct {
	members []*Dictionary
}

// NewCollection groups members, in priority order.
func NewCollection(members ...*Dictionary) *Collection {
	return &Collection{members: members}
}

// Members returns the grouped dictionaries.
func (c *Collection) Members() []*Dictionary {
	return c.members
}

// Load loads every member and joins their errors.
func (c *Collection) Load() error {
	var errs []error
	for _, d := range c.members {
		errs = append(errs, d.Load())
	}
	return errors.Join(errs...)
}

// IsCorrect reports whether any member knows word.
func (c *Collection) IsCorrect(word string) bool {
	for _, d := range c.members {
		if d.IsCorrect(word) {
			return true
		}
	}
	return false
}

// Proposals merges the proposals of every member. A word proposed by
// several members keeps its best rank.
func (c *Collection) Proposals(word string, startsSentence bool) suggest.Proposals {
	if len(c.members) == 1 {
		return c.members[0].Proposals(word, startsSentence)
	}
	collector := suggest.NewCollector(false)
	for _, d := range c.members {
		collector.AddAll(d.Proposals(word, startsSentence))
	}
	return collector.Proposals()
}

// AddWord adds word to the first member that accepts words, or to the first
// member's memory when none does. Known words are left alone.
func (c *Collection) AddWord(word string) error {
	if len(c.members) == 0 || c.IsCorrect(word) {
		return nil
	}
	for _, d := range c.members {
		if d.AcceptsWords() {
			return d.AddWord(word)
		}
	}
	return c.members[0].AddWord(word)
}

// AcceptsWords reports whether any member persists added words.
func (c *Collection) AcceptsWords() bool {
	for _, d := range c.members {
		if d.AcceptsWords() {
			return true
		}
	}
	return false
}

// Unload unloads every member.
func (c *Collection) Unload() {
	for _, d := range c.members {
		d.Unload()
	}
}

// SetStripNonLetters applies the toggle to every member.
func (c *Collection) SetStripNonLetters(strip bool) {
	for _, d := range c.members {
		d.SetStripNonLetters(strip)
	}
}

// Stats returns a snapshot of every member.
func (c *Collection) Stats() []Stats {
	stats := make([]Stats, 0, len(c.members))
	for _, d := range c.members {
		stats = append(stats, d.Stats())
	}
	return stats
}
