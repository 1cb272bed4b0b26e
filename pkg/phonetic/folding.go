package phonetic

import (
	"strings"
	"unicode"
)

// FoldingTable is the immutable data a Folding provider hashes with.
type FoldingTable struct {
	// Classes maps a lowercase letter to its consonant class.
	// Letters absent from Classes and Silent keep their own uppercase form.
	Classes map[rune]rune
	// Silent letters are dropped after the first position.
	Silent map[rune]bool
	// Initial is the class used when a silent letter starts the word.
	Initial rune
	// Mutators is the probe alphabet.
	Mutators string
}

// DefaultTable returns the English consonant-skeleton table.
func DefaultTable() FoldingTable {
	classes := make(map[rune]rune, 20)
	for class, letters := range map[rune]string{
		'P': "bpfv",
		'K': "cgjkqx",
		'S': "sz",
		'T': "dt",
		'L': "l",
		'N': "mn",
		'R': "r",
	} {
		for _, r := range letters {
			classes[r] = class
		}
	}
	silent := make(map[rune]bool, 8)
	for _, r := range "aeiouhwy" {
		silent[r] = true
	}
	return FoldingTable{
		Classes:  classes,
		Silent:   silent,
		Initial:  'A',
		Mutators: DefaultMutators,
	}
}

// Folding hashes a word down to its consonant skeleton: the first letter is kept
// (as its class, or Initial when silent), silent letters after it are dropped,
// consonants are merged into classes and adjacent repeats of a class collapse.
type Folding struct {
	table    FoldingTable
	mutators []rune
}

// NewFolding creates a folding provider over table.
func NewFolding(table FoldingTable) *Folding {
	if table.Mutators == "" {
		table.Mutators = DefaultMutators
	}
	return &Folding{
		table:    table,
		mutators: mutatorRunes(table.Mutators),
	}
}

// Hash implements Provider.
func (f *Folding) Hash(word string) string {
	if word == "" {
		return ""
	}

	var key strings.Builder
	key.Grow(len(word))

	var last rune
	first := true
	for _, r := range word {
		r = unicode.ToLower(r)
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}

		class, silent := f.classOf(r)
		if first {
			first = false
			if silent {
				class = f.table.Initial
			}
			key.WriteRune(class)
			last = class
			continue
		}
		if silent {
			// a vowel between two equal consonants still separates them
			last = 0
			continue
		}
		if class == last {
			continue
		}
		key.WriteRune(class)
		last = class
	}
	return key.String()
}

// Mutators implements Provider.
func (f *Folding) Mutators() []rune {
	return f.mutators
}

func (f *Folding) classOf(r rune) (rune, bool) {
	if f.table.Silent[r] {
		return 0, true
	}
	if class, ok := f.table.Classes[r]; ok {
		return class, false
	}
	return unicode.ToUpper(r), false
}
