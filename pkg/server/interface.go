/*
Package server implements msgpack IPC for spell checking services.

The server reads msgpack encoded requests from an input stream, usually stdin,
and writes one msgpack encoded response per request to an output stream,
usually stdout. Logs go to stderr. Messages are processed synchronously with
timing info included in responses.

# IPC

Right after starting, the server writes a ready message:

	{"status": "ready"}

Every request carries an ID, echoed in the response, and an action:

	{"id": "r1", "a": "check", "w": "recieve"}
	{"id": "r2", "a": "suggest", "w": "teh", "s": true, "l": 5}
	{"id": "r3", "a": "add", "w": "wordfix"}
	{"id": "r4", "a": "unload"}
	{"id": "r5", "a": "info"}

check reports whether the word is known and, when it is not, ranked
proposals. suggest always returns proposals. s asks for capitalized
proposals for a word that starts a sentence. l caps the number of proposals,
bounded by the configured max_proposals.

	{"id": "r2", "ok": true, "p": [{"w": "The", "r": -60}, {"w": "Tea", "r": -100}], "c": 2, "t": 145}

Ranks are negated distances, so higher is better and 0 is an exact match.
t is the handling time in microseconds.

info returns one entry per dictionary:

	{"id": "r5", "d": [{"n": "words.txt", "st": "loaded", "w": 234937, "k": 51210, "wr": false}]}

Failed requests get an error response:

	{"id": "r1", "e": "missing word", "c": 400}
*/
package server

// Actions understood by the server.
const (
	ActionCheck   = "check"
	ActionSuggest = "suggest"
	ActionAdd     = "add"
	ActionUnload  = "unload"
	ActionInfo    = "info"
)

// Request is a single client request.
type Request struct {
	ID             string `msgpack:"id"`
	Action         string `msgpack:"a"`
	Word           string `msgpack:"w,omitempty"`
	StartsSentence bool   `msgpack:"s,omitempty"`
	Limit          int    `msgpack:"l,omitempty"`
}

// Proposal is one ranked correction.
type Proposal struct {
	Word string `msgpack:"w"`
	Rank int    `msgpack:"r"`
}

// Response answers check, suggest, add and unload requests.
type Response struct {
	ID string `msgpack:"id"`
	// OK is the check result, or whether add and unload succeeded
	OK        bool       `msgpack:"ok"`
	Proposals []Proposal `msgpack:"p,omitempty"`
	Count     int        `msgpack:"c"`
	TimeTaken int64      `msgpack:"t"`
}

// DictionaryInfo describes one loaded dictionary.
type DictionaryInfo struct {
	Name     string `msgpack:"n"`
	State    string `msgpack:"st"`
	Words    int    `msgpack:"w"`
	Keys     int    `msgpack:"k"`
	Writable bool   `msgpack:"wr"`
	Error    string `msgpack:"e,omitempty"`
}

// InfoResponse answers info requests.
type InfoResponse struct {
	ID           string           `msgpack:"id"`
	Dictionaries []DictionaryInfo `msgpack:"d"`
}

// ReadyMessage is written once when the server starts.
type ReadyMessage struct {
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
