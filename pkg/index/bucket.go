package index

import "bytes"

// Bucket holds the words sharing one phonetic key.
// Most keys hold a single word, so a bucket starts as one slice and is only
// promoted to a collection on its first collision. It never shrinks back.
type Bucket struct {
	single []byte
	words  [][]byte
}

func newBucket(word []byte) *Bucket {
	return &Bucket{single: word}
}

// Len returns the number of words in the bucket.
func (b *Bucket) Len() int {
	if b.words != nil {
		return len(b.words)
	}
	return 1
}

// Promoted reports whether the bucket holds a collection.
func (b *Bucket) Promoted() bool {
	return b.words != nil
}

// Contains reports whether word is stored verbatim.
func (b *Bucket) Contains(word string) bool {
	if b.words == nil {
		return string(b.single) == word
	}
	for _, w := range b.words {
		if string(w) == word {
			return true
		}
	}
	return false
}

// Each calls fn for at most limit words in insertion order, stopping early when
// fn returns false. A limit <= 0 visits every word.
func (b *Bucket) Each(limit int, fn func(word string) bool) {
	if b.words == nil {
		fn(string(b.single))
		return
	}
	for i, w := range b.words {
		if limit > 0 && i >= limit {
			return
		}
		if !fn(string(w)) {
			return
		}
	}
}

// Words returns a copy of the stored words.
func (b *Bucket) Words() []string {
	out := make([]string, 0, b.Len())
	b.Each(0, func(word string) bool {
		out = append(out, word)
		return true
	})
	return out
}

// add stores word unless it is already present. It reports whether the bucket changed.
func (b *Bucket) add(word []byte) bool {
	if b.words == nil {
		if bytes.Equal(b.single, word) {
			return false
		}
		b.words = [][]byte{b.single, word}
		b.single = nil
		return true
	}
	for _, w := range b.words {
		if bytes.Equal(w, word) {
			return false
		}
	}
	b.words = append(b.words, word)
	return true
}

// compact reallocates the collection at its exact length.
func (b *Bucket) compact() bool {
	if b.words == nil || cap(b.words) == len(b.words) {
		return false
	}
	words := make([][]byte, len(b.words))
	copy(words, b.words)
	b.words = words
	return true
}
