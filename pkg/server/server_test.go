package server

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/wordfix/pkg/config"
	"github.com/bastiangx/wordfix/pkg/dictionary"
)

func init() {
	log.SetLevel(log.ErrorLevel)
	srvLog.SetLevel(log.ErrorLevel)
}

func newCollection(t *testing.T) (*dictionary.Collection, string) {
	t.Helper()
	dir := t.TempDir()
	base, err := dictionary.New("main", dictionary.NewMemoryResource("main",
		[]byte("weird\nthe\ntea\nreceive\ndeceive\n")), dictionary.DefaultOptions())
	require.NoError(t, err)
	userPath := filepath.Join(dir, "user.txt")
	user, err := dictionary.NewPersistent("user", dictionary.NewFileResource(userPath), dictionary.DefaultOptions())
	require.NoError(t, err)
	return dictionary.NewCollection(base, user), userPath
}

// run feeds requests to a fresh server and returns the raw responses after the ready message.
func run(t *testing.T, backend Backend, cfg config.ServerConfig, requests ...any) []msgpack.RawMessage {
	t.Helper()
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}
	var out bytes.Buffer
	require.NoError(t, NewServer(backend, cfg, &in, &out).Start())

	dec := msgpack.NewDecoder(&out)
	var ready ReadyMessage
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)

	var responses []msgpack.RawMessage
	for out.Len() > 0 {
		var raw msgpack.RawMessage
		require.NoError(t, dec.Decode(&raw))
		responses = append(responses, raw)
	}
	return responses
}

func decode[T any](t *testing.T, raw msgpack.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, msgpack.Unmarshal(raw, &v))
	return v
}

func TestCheck(t *testing.T) {
	coll, _ := newCollection(t)
	out := run(t, coll, config.ServerConfig{},
		Request{ID: "1", Action: ActionCheck, Word: "receive"},
		Request{ID: "2", Action: ActionCheck, Word: "wierd"},
		Request{ID: "3", Action: ActionCheck, Word: "(Receive),"},
	)
	require.Len(t, out, 3)

	known := decode[Response](t, out[0])
	assert.Equal(t, "1", known.ID)
	assert.True(t, known.OK)
	assert.Empty(t, known.Proposals)

	unknown := decode[Response](t, out[1])
	assert.Equal(t, "2", unknown.ID)
	assert.False(t, unknown.OK)
	require.NotEmpty(t, unknown.Proposals)
	assert.Equal(t, Proposal{Word: "weird", Rank: -60}, unknown.Proposals[0])
	assert.Equal(t, len(unknown.Proposals), unknown.Count)

	assert.True(t, decode[Response](t, out[2]).OK)
}

func TestSuggest(t *testing.T) {
	coll, _ := newCollection(t)
	out := run(t, coll, config.ServerConfig{MaxProposals: 1},
		Request{ID: "1", Action: ActionSuggest, Word: "teh", StartsSentence: true},
		Request{ID: "2", Action: ActionSuggest, Word: "teh", Limit: 5},
	)
	require.Len(t, out, 2)

	first := decode[Response](t, out[0])
	require.Len(t, first.Proposals, 1)
	assert.Equal(t, "The", first.Proposals[0].Word)

	second := decode[Response](t, out[1])
	require.Len(t, second.Proposals, 1)
	assert.Equal(t, "the", second.Proposals[0].Word)
}

func TestAddAndUnload(t *testing.T) {
	coll, userPath := newCollection(t)
	out := run(t, coll, config.ServerConfig{},
		Request{ID: "1", Action: ActionAdd, Word: "wordfix"},
		Request{ID: "2", Action: ActionUnload},
		Request{ID: "3", Action: ActionCheck, Word: "wordfix"},
	)
	require.Len(t, out, 3)
	assert.True(t, decode[Response](t, out[0]).OK)
	assert.True(t, decode[Response](t, out[1]).OK)
	assert.True(t, decode[Response](t, out[2]).OK)

	data, err := os.ReadFile(userPath)
	require.NoError(t, err)
	assert.Equal(t, "wordfix\n", string(data))
}

func TestInfo(t *testing.T) {
	coll, _ := newCollection(t)
	require.False(t, coll.IsCorrect("zzzz"))

	out := run(t, coll, config.ServerConfig{}, Request{ID: "i", Action: ActionInfo})
	require.Len(t, out, 1)
	info := decode[InfoResponse](t, out[0])
	assert.Equal(t, "i", info.ID)
	require.Len(t, info.Dictionaries, 2)
	assert.Equal(t, "main", info.Dictionaries[0].Name)
	assert.Equal(t, "loaded", info.Dictionaries[0].State)
	assert.Equal(t, 5, info.Dictionaries[0].Words)
	assert.True(t, info.Dictionaries[1].Writable)
	assert.NotEmpty(t, info.Dictionaries[1].Error)
}

func TestBadRequests(t *testing.T) {
	coll, _ := newCollection(t)
	out := run(t, coll, config.ServerConfig{MaxWordLen: 8},
		Request{ID: "1", Action: ActionCheck},
		Request{ID: "2", Action: ActionSuggest, Word: strings.Repeat("a", 9)},
		Request{ID: "3", Action: "complete", Word: "a"},
		map[string]any{"id": 4, "a": []int{1}},
		Request{ID: "5", Action: ActionCheck, Word: "the"},
	)
	require.Len(t, out, 5)

	for i, want := range []string{"missing word", "maximum length", "unknown action", "invalid request"} {
		e := decode[ErrorResponse](t, out[i])
		assert.Equal(t, 400, e.Code)
		assert.Contains(t, e.Error, want)
	}
	assert.True(t, decode[Response](t, out[4]).OK, "server keeps serving after bad requests")
}

// failingBackend rejects every added word.
type failingBackend struct {
	*dictionary.Collection
}

func (failingBackend) AddWord(string) error { return errors.New("read-only file system") }

func TestAddFailure(t *testing.T) {
	coll, _ := newCollection(t)
	out := run(t, failingBackend{coll}, config.ServerConfig{},
		Request{ID: "1", Action: ActionAdd, Word: "wordfix"})
	require.Len(t, out, 1)
	e := decode[ErrorResponse](t, out[0])
	assert.Equal(t, "1", e.ID)
	assert.Equal(t, 500, e.Code)
	assert.Contains(t, e.Error, "read-only")
}
