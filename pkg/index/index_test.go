package index

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/wordfix/pkg/phonetic"
)

// constKey hashes every word to the same key.
type constKey string

func (c constKey) Hash(string) string { return string(c) }
func (c constKey) Mutators() []rune   { return []rune("ab") }

func TestPutAndGet(t *testing.T) {
	idx := New(phonetic.NewFolding(phonetic.DefaultTable()))
	require.True(t, idx.IsEmpty())

	assert.True(t, idx.Put("weird"))
	assert.False(t, idx.Put("weird"))
	assert.False(t, idx.IsEmpty())
	assert.Equal(t, 1, idx.Len())

	b, ok := idx.Get("ART")
	require.True(t, ok)
	assert.True(t, b.Contains("weird"))
	assert.False(t, b.Contains("Weird"))
	assert.False(t, b.Promoted())

	_, ok = idx.Get("ZZZ")
	assert.False(t, ok)
}

func TestCollisionPromotion(t *testing.T) {
	idx := New(phonetic.NewFolding(phonetic.DefaultTable()))
	idx.Put("weird")
	idx.Put("wired")
	idx.Put("ward")

	b, ok := idx.Lookup("wierd")
	require.True(t, ok)
	assert.True(t, b.Promoted())
	assert.Equal(t, []string{"weird", "wired", "ward"}, b.Words())
	assert.True(t, b.Contains("weird"))
	assert.True(t, b.Contains("ward"))
	assert.Equal(t, 3, idx.Len())

	stats := idx.Stats()
	assert.Equal(t, 1, stats.Keys)
	assert.Equal(t, 1, stats.PromotedKeys)
	assert.Equal(t, 3, stats.LargestBucket)
}

func TestEmptyKey(t *testing.T) {
	idx := New(phonetic.NewFolding(phonetic.DefaultTable()))
	assert.True(t, idx.Put("--"))
	assert.True(t, idx.Put("''"))

	b, ok := idx.Get("")
	require.True(t, ok)
	assert.Equal(t, 2, b.Len())
}

func TestEachLimit(t *testing.T) {
	idx := New(constKey("K"))
	for i := 0; i < 10; i++ {
		idx.Put(fmt.Sprintf("w%d", i))
	}
	b, ok := idx.Get("K")
	require.True(t, ok)

	var seen []string
	b.Each(4, func(w string) bool {
		seen = append(seen, w)
		return true
	})
	assert.Equal(t, []string{"w0", "w1", "w2", "w3"}, seen)

	seen = seen[:0]
	b.Each(0, func(w string) bool {
		seen = append(seen, w)
		return len(seen) < 2
	})
	assert.Len(t, seen, 2)
}

func TestCompact(t *testing.T) {
	idx := New(constKey("K"))
	for i := 0; i < 5; i++ {
		idx.Put(fmt.Sprintf("w%d", i))
	}
	b, _ := idx.Get("K")
	require.Greater(t, cap(b.words), len(b.words))

	idx.Compact()
	assert.Equal(t, len(b.words), cap(b.words))
	assert.Equal(t, []string{"w0", "w1", "w2", "w3", "w4"}, b.Words())
}

func TestReset(t *testing.T) {
	idx := New(phonetic.NewFolding(phonetic.DefaultTable()))
	idx.Put("the")
	idx.Put("--")
	idx.Reset()

	assert.True(t, idx.IsEmpty())
	_, ok := idx.Get("T")
	assert.False(t, ok)
	_, ok = idx.Get("")
	assert.False(t, ok)
	assert.Equal(t, Stats{}, idx.Stats())
}

func TestStatsCounters(t *testing.T) {
	idx := New(constKey("K"))
	assert.Equal(t, Stats{}, idx.Stats())

	idx.Put("a")
	assert.Equal(t, Stats{Keys: 1, Words: 1, LargestBucket: 1}, idx.Stats())

	for _, w := range []string{"b", "c", "b", "d"} {
		idx.Put(w)
	}
	assert.Equal(t, Stats{Keys: 1, Words: 4, PromotedKeys: 1, LargestBucket: 4}, idx.Stats())
	assert.Equal(t, 1, idx.Keys())

	idx.Compact()
	assert.Equal(t, Stats{Keys: 1, Words: 4, PromotedKeys: 1, LargestBucket: 4}, idx.Stats())
}
