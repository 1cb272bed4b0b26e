package phonetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldingHash(t *testing.T) {
	f := NewFolding(DefaultTable())

	testCases := []struct {
		word string
		key  string
	}{
		{"", ""},
		{"the", "T"},
		{"teh", "T"},
		{"weird", "ART"},
		{"wierd", "ART"},
		{"receive", "RKP"},
		{"recieve", "RKP"},
		{"deceive", "TKP"},
		{"Apple", "APL"},
		{"lily", "LL"},
		{"lilly", "LL"},
		{"don't", "TNT"},
		{"---", ""},
		{"r2d2", "R2T2"},
	}

	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			assert.Equal(t, tc.key, f.Hash(tc.word))
		})
	}
}

func TestFoldingDeterministic(t *testing.T) {
	f := NewFolding(DefaultTable())
	for _, w := range []string{"receive", "Straße", "naïve", "x", "Mississippi"} {
		assert.Equal(t, f.Hash(w), f.Hash(w), w)
	}
}

func TestFoldingKeyIsShort(t *testing.T) {
	f := NewFolding(DefaultTable())
	word := "internationalization"
	assert.Less(t, len(f.Hash(word)), len(word))
}

func TestFoldingAlternateTable(t *testing.T) {
	table := FoldingTable{
		Classes:  map[rune]rune{'k': 'C', 'c': 'C'},
		Silent:   map[rune]bool{'a': true},
		Initial:  '_',
		Mutators: "ack",
	}
	f := NewFolding(table)

	assert.Equal(t, "CC", f.Hash("kac"))
	assert.Equal(t, "C", f.Hash("kc"))
	assert.Equal(t, "_C", f.Hash("ack"))
	assert.Equal(t, []rune{'a', 'c', 'k'}, f.Mutators())
}

func TestMutatorsDeduplicated(t *testing.T) {
	f := NewFolding(FoldingTable{Mutators: "abca"})
	assert.Equal(t, []rune{'a', 'b', 'c'}, f.Mutators())

	d := NewFolding(FoldingTable{})
	assert.Len(t, d.Mutators(), 26)
}

func TestMetaphone(t *testing.T) {
	m := NewMetaphone(nil)

	assert.Equal(t, "", m.Hash(""))
	assert.Equal(t, m.Hash("Smith"), m.Hash("smith"))
	assert.Equal(t, m.Hash("weird"), m.Hash("weird"))
	assert.Equal(t, "日本", m.Hash("日本"))
	assert.Len(t, m.Mutators(), 26)
}

func TestNew(t *testing.T) {
	p, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &Folding{}, p)

	p, err = New("Metaphone")
	require.NoError(t, err)
	assert.IsType(t, &Metaphone{}, p)

	_, err = New("soundex")
	assert.Error(t, err)
}
