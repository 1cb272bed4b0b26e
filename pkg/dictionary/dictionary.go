/*
Package dictionary is the facade surrounding tooling spell-checks against.

A Dictionary lazily loads a word list into a phonetic index the first time it
is queried, answers exact membership with IsCorrect and ranked corrections
with Proposals, and accepts new words with AddWord:

	res := dictionary.NewFileResource("words.txt")
	d, err := dictionary.NewPersistent("en", res, dictionary.DefaultOptions())
	d.IsCorrect("recieve")       // list membership only
	d.Proposals("wierd", false)  // [{weird -60} ...]
	d.AddWord("wordfix")         // appended to words.txt

Queries never fail: a dictionary whose word list cannot be read stays
unloaded and reports every word as unknown. A failed load is not retried
until Unload or Load is called.

All methods are safe for concurrent use. The load runs at most once per load
cycle under the dictionary's write lock; concurrent callers wait for it.
*/
package dictionary

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/distance"
	"github.com/bastiangx/wordfix/pkg/index"
	"github.com/bastiangx/wordfix/pkg/phonetic"
	"github.com/bastiangx/wordfix/pkg/suggest"
)


// State is the load state of a dictionary.
type State int32

const (
	Unloaded State = iota
	Loading
	Loaded
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Checker is the consumer-facing spell checking API.
type Checker interface {
	IsCorrect(word string) bool
	Proposals(word string, startsSentence bool) suggest.Proposals
	AddWord(word string) error
	AcceptsWords() bool
	Unload()
	SetStripNonLetters(strip bool)
}

// Options configures a dictionary.
type Options struct {
	Provider  phonetic.Provider
	Distance  distance.Algorithm
	Threshold int
	// ScanLimit caps the words compared per bucket.
	ScanLimit       int
	StripNonLetters bool
	// Encoding of the backing word list; nil means UTF-8.
	Encoding encoding.Encoding
}

// DefaultOptions returns the folding provider, weighted distance and the
// matching threshold.
func DefaultOptions() Options {
	return Options{
		Provider:        phonetic.NewFolding(phonetic.DefaultTable()),
		Distance:        distance.NewWeighted(distance.DefaultCosts()),
		Threshold:       distance.DefaultThreshold,
		ScanLimit:       index.DefaultScanLimit,
		StripNonLetters: true,
	}
}

// Stats is a snapshot of a dictionary.
type Stats struct {
	Name          string
	State         State
	Writable      bool
	Words         int
	Keys          int
	LargestBucket int
	LoadedAt      time.Time
	LastError     string
}

// Dictionary is a lazily loaded phonetic word index over a backing resource.
type Dictionary struct {
	name     string
	resource Resource
	// store is set for persistent dictionaries
	store  Appender
	codec  *Codec
	ranker *suggest.Ranker
	strip  atomic.Bool
	// written is the resource size after our own last append
	written atomic.Int64

	mu       sync.RWMutex
	state    atomic.Int32
	loadErr  error
	index    *index.Index
	loadedAt time.Time
}

// New creates a dictionary over res. Words added with AddWord are kept in
// memory only and are lost on Unload.
func New(name string, res Resource, opts Options) (*Dictionary, error) {
	if res == nil {
		return nil, errors.New("dictionary resource is required")
	}
	if opts.Provider == nil || opts.Distance == nil {
		defaults := DefaultOptions()
		if opts.Provider == nil {
			opts.Provider = defaults.Provider
		}
		if opts.Distance == nil {
			opts.Distance = defaults.Distance
		}
	}
	if opts.Threshold <= 0 {
		opts.Threshold = distance.DefaultThreshold
	}
	enc := opts.Encoding
	if enc == nil {
		var err error
		if enc, err = LookupEncoding(""); err != nil {
			return nil, err
		}
	}
	codec, err := NewCodec(enc)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", name, err)
	}

	d := &Dictionary{
		name:     name,
		resource: res,
		codec:    codec,
		ranker:   suggest.NewRanker(opts.Distance, opts.Threshold, opts.ScanLimit),
		index:    index.New(opts.Provider),
	}
	d.strip.Store(opts.StripNonLetters)
	d.written.Store(-1)
	return d, nil
}

// NewPersistent creates a dictionary whose added words are appended to res.
func NewPersistent(name string, res Appender, opts Options) (*Dictionary, error) {
	if res == nil {
		return nil, errors.New("dictionary resource is required")
	}
	d, err := New(name, res, opts)
	if err != nil {
		return nil, err
	}
	d.store = res
	return d, nil
}

// Name returns the dictionary name.
func (d *Dictionary) Name() string {
	return d.name
}

// Resource returns the backing resource.
func (d *Dictionary) Resource() Resource {
	return d.resource
}

// State returns the current load state without blocking.
func (d *Dictionary) State() State {
	return State(d.state.Load())
}

// AcceptsWords reports whether added words are persisted.
func (d *Dictionary) AcceptsWords() bool {
	return d.store != nil
}

// SetStripNonLetters toggles trimming of leading and trailing non-letters from queried words.
func (d *Dictionary) SetStripNonLetters(strip bool) {
	d.strip.Store(strip)
}

// Load reads the word list now, unless already loaded, and returns the load error.
// Unlike the lazy load it also retries after an earlier failure.
func (d *Dictionary) Load() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.State() == Loaded {
		return nil
	}
	d.loadErr = nil
	return d.loadLocked()
}

// loadLocked runs with the write lock held.
func (d *Dictionary) loadLocked() error {
	d.state.Store(int32(Loading))
	d.index.Reset()

	err := d.readLocked()
	if err != nil {
		d.index.Reset()
		d.loadErr = err
		d.state.Store(int32(Unloaded))
		log.Warnf("Failed to load dictionary %s: %v", d.name, err)
		return err
	}
	d.index.Compact()
	d.loadedAt = time.Now()
	d.state.Store(int32(Loaded))
	return nil
}

func (d *Dictionary) readLocked() error {
	rc, err := d.resource.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", d.resource.Name(), err)
	}
	defer rc.Close()

	stats, err := ReadWords(rc, d.codec, func(word string) {
		d.index.Put(word)
	})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", d.resource.Name(), err)
	}
	log.Debugf("Loaded dictionary %s: %d lines, %d words, %d keys, %d recovered in %v",
		d.name, stats.Lines, d.index.Len(), d.index.Keys(), stats.Recovered, stats.Took)
	return nil
}

// rlock makes sure the dictionary is loaded and returns with the read lock
// held. It returns false, without the lock, when the dictionary is unusable.
func (d *Dictionary) rlock() bool {
	d.mu.RLock()
	if d.State() == Loaded {
		return true
	}
	d.mu.RUnlock()

	d.mu.Lock()
	if d.State() == Unloaded && d.loadErr == nil {
		d.loadLocked()
	}
	d.mu.Unlock()

	d.mu.RLock()
	if d.State() != Loaded {
		d.mu.RUnlock()
		return false
	}
	return true
}

func (d *Dictionary) normalize(word string) string {
	word = strings.TrimSpace(word)
	if d.strip.Load() {
		word = utils.TrimNonLetters(word)
	}
	return word
}

// IsCorrect reports whether word is in the list, verbatim or fully lowercased.
// Empty words, after normalization, are always correct.
func (d *Dictionary) IsCorrect(word string) bool {
	word = d.normalize(word)
	if word == "" {
		return true
	}
	if !d.rlock() {
		return false
	}
	defer d.mu.RUnlock()
	return d.containsLocked(word)
}

func (d *Dictionary) containsLocked(word string) bool {
	if b, ok := d.index.Lookup(word); ok && b.Contains(word) {
		return true
	}
	lower := strings.ToLower(word)
	if lower == word {
		return false
	}
	b, ok := d.index.Lookup(lower)
	return ok && b.Contains(lower)
}

// Proposals returns corrections for word, best first. With startsSentence
// every proposal is capitalized.
func (d *Dictionary) Proposals(word string, startsSentence bool) suggest.Proposals {
	word = d.normalize(word)
	if word == "" {
		return nil
	}
	if !d.rlock() {
		return nil
	}
	defer d.mu.RUnlock()
	return d.ranker.Rank(d.index, word, startsSentence)
}

// AddWord adds word unless IsCorrect already holds for it. Persistent
// dictionaries append it to their resource first and leave memory untouched
// when the append fails. Other dictionaries keep the word in memory only, and
// ignore it when their resource could not be loaded.
func (d *Dictionary) AddWord(word string) error {
	word = d.normalize(word)
	if d.IsCorrect(word) {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	loaded := d.State() == Loaded
	if loaded && d.containsLocked(word) {
		return nil
	}
	if d.store != nil {
		if err := d.appendLocked(word); err != nil {
			return fmt.Errorf("failed to add %q to %s: %w", word, d.name, err)
		}
		if !loaded {
			// the resource now exists; let the next query load it
			d.loadErr = nil
			return nil
		}
	} else if !loaded {
		log.Debugf("Ignoring '%s': %s is not loaded", word, d.name)
		return nil
	}
	d.index.Put(word)
	log.Debugf("Added '%s' to %s", word, d.name)
	return nil
}

func (d *Dictionary) appendLocked(word string) error {
	line, err := d.codec.EncodeLine(word)
	if err != nil {
		return err
	}
	term := d.codec.Terminator()
	tail, err := d.store.Tail(len(term))
	if err != nil {
		return err
	}
	if len(tail) > 0 {
		line = bytes.TrimPrefix(line, d.codec.Marker())
		if !bytes.Equal(tail, term) {
			line = append(bytes.Clone(term), line...)
		}
	}
	size, err := d.store.Append(line)
	if err != nil {
		return err
	}
	d.written.Store(size)
	return nil
}

// ownWrite reports whether size is the size our last append left the resource at.
func (d *Dictionary) ownWrite(size int64) bool {
	return d.written.Load() == size
}

// Unload drops the index. The next query reloads the resource.
func (d *Dictionary) Unload() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.index.Reset()
	d.loadErr = nil
	d.loadedAt = time.Time{}
	d.state.Store(int32(Unloaded))
	log.Debugf("Unloaded dictionary %s", d.name)
}

// Stats returns a snapshot without triggering a load.
func (d *Dictionary) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	shape := d.index.Stats()
	stats := Stats{
		Name:          d.name,
		State:         d.State(),
		Writable:      d.AcceptsWords(),
		Words:         shape.Words,
		Keys:          shape.Keys,
		LargestBucket: shape.LargestBucket,
		LoadedAt:      d.loadedAt,
	}
	if d.loadErr != nil {
		stats.LastError = d.loadErr.Error()
	}
	return stats
}
