/*
Package index stores words bucketed by their phonetic key.

Keys are the byte form of a phonetic.Provider hash and live in a patricia trie,
which keeps the many short, prefix-sharing keys compact. Each key points at a
Bucket of the raw UTF-8 bytes of the words hashing to it.

The index is not safe for concurrent mutation; the owning dictionary serializes
writers against readers. Compact walks the trie, and the walk sorts child
lists in place, so it counts as a mutation. Reads (Get, Lookup, Len, Keys,
Stats) never walk the trie.
*/
package index

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/wordfix/pkg/phonetic"
)

// DefaultScanLimit caps the words compared per bucket during a query.
const DefaultScanLimit = 300

// Index maps phonetic keys to buckets of words.
type Index struct {
	provider phonetic.Provider
	trie     *patricia.Trie
	// the reserved empty key cannot be stored in the trie
	empty *Bucket
	keys  int
	words int
	// shape counters kept by Put, since buckets never shrink
	promoted int
	largest  int
}

// Stats describes the shape of an index.
type Stats struct {
	Keys          int
	Words         int
	PromotedKeys  int
	LargestBucket int
}

// New creates an empty index hashing with provider.
func New(provider phonetic.Provider) *Index {
	return &Index{
		provider: provider,
		trie:     patricia.NewTrie(),
	}
}

// Provider returns the hash provider the index was built with.
func (idx *Index) Provider() phonetic.Provider {
	return idx.provider
}

// Put stores word under its phonetic key. Duplicate words are ignored.
// It reports whether the word was new.
func (idx *Index) Put(word string) bool {
	key := idx.provider.Hash(word)
	raw := []byte(word)

	if key == "" {
		if idx.empty == nil {
			idx.empty = newBucket(raw)
			idx.added()
			return true
		}
		return idx.addTo(idx.empty, raw)
	}

	item := idx.trie.Get(patricia.Prefix(key))
	if item == nil {
		idx.trie.Insert(patricia.Prefix(key), newBucket(raw))
		idx.added()
		return true
	}
	return idx.addTo(item.(*Bucket), raw)
}

func (idx *Index) added() {
	idx.keys++
	idx.words++
	if idx.largest == 0 {
		idx.largest = 1
	}
}

func (idx *Index) addTo(b *Bucket, raw []byte) bool {
	wasPromoted := b.Promoted()
	if !b.add(raw) {
		return false
	}
	idx.words++
	if !wasPromoted {
		idx.promoted++
	}
	if n := b.Len(); n > idx.largest {
		idx.largest = n
	}
	return true
}

// Get returns the bucket stored under key.
func (idx *Index) Get(key string) (*Bucket, bool) {
	if key == "" {
		return idx.empty, idx.empty != nil
	}
	item := idx.trie.Get(patricia.Prefix(key))
	if item == nil {
		return nil, false
	}
	return item.(*Bucket), true
}

// Lookup returns the bucket word hashes to.
func (idx *Index) Lookup(word string) (*Bucket, bool) {
	return idx.Get(idx.provider.Hash(word))
}

// IsEmpty reports whether the index holds no words.
func (idx *Index) IsEmpty() bool {
	return idx.words == 0
}

// Len returns the number of stored words.
func (idx *Index) Len() int {
	return idx.words
}

// Keys returns the number of distinct keys.
func (idx *Index) Keys() int {
	return idx.keys
}

// Compact shrinks oversized bucket collections to their exact size.
// Call it once after a bulk load, not after each incremental Put.
// It walks the trie, so callers must hold the same exclusion as for Put.
func (idx *Index) Compact() {
	compacted := 0
	if idx.empty != nil && idx.empty.compact() {
		compacted++
	}
	err := idx.trie.Visit(func(_ patricia.Prefix, item patricia.Item) error {
		if item.(*Bucket).compact() {
			compacted++
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error compacting index: %v", err)
		return
	}
	log.Debugf("Compacted %d buckets", compacted)
}

// Reset drops every key and word.
func (idx *Index) Reset() {
	idx.trie = patricia.NewTrie()
	idx.empty = nil
	idx.keys = 0
	idx.words = 0
	idx.promoted = 0
	idx.largest = 0
}

// Stats reports the shape of the index from counters kept by Put.
func (idx *Index) Stats() Stats {
	return Stats{
		Keys:          idx.keys,
		Words:         idx.words,
		PromotedKeys:  idx.promoted,
		LargestBucket: idx.largest,
	}
}
