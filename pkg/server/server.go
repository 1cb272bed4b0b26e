package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/pkg/config"
	"github.com/bastiangx/wordfix/pkg/dictionary"
	"github.com/bastiangx/wordfix/pkg/suggest"
)

var srvLog = logger.New("server")

// Backend is what the server answers requests with, usually a dictionary.Collection.
type Backend interface {
	dictionary.Checker
	Stats() []dictionary.Stats
}

// Server handles the IPC for spell checking
type Server struct {
	backend Backend
	config  config.ServerConfig
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(backend Backend, cfg config.ServerConfig, r io.Reader, w io.Writer) *Server {
	defaults := config.DefaultConfig().Server
	if cfg.MaxProposals <= 0 {
		cfg.MaxProposals = defaults.MaxProposals
	}
	if cfg.MaxWordLen <= 0 {
		cfg.MaxWordLen = defaults.MaxWordLen
	}
	return &Server{
		backend: backend,
		config:  cfg,
		decoder: msgpack.NewDecoder(bufio.NewReader(r)),
		encoder: msgpack.NewEncoder(w),
	}
}

// Start writes the ready message and serves requests until the input ends.
// It returns nil on a clean end of input.
func (s *Server) Start() error {
	srvLog.Debug("Starting Server.")
	if err := s.encoder.Encode(ReadyMessage{Status: "ready"}); err != nil {
		return fmt.Errorf("failed to write ready message: %w", err)
	}

	for {
		// framing first, so a request with bad field types does not desync the stream
		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				srvLog.Debug("Input closed, stopping server")
				return nil
			}
			srvLog.Errorf("Reading request: %v", err)
			return fmt.Errorf("failed to read request: %w", err)
		}
		if err := s.handleRequest(raw); err != nil {
			return err
		}
	}
}

// handleRequest processes one raw request. Only write failures are returned.
func (s *Server) handleRequest(raw msgpack.RawMessage) error {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		srvLog.Warnf("Invalid request: %v", err)
		return s.sendError("", "invalid request", 400)
	}

	switch req.Action {
	case ActionCheck, ActionSuggest, ActionAdd:
		if msg := s.validateWord(req.Word); msg != "" {
			srvLog.Debugf("Rejected %s request %s: %s", req.Action, req.ID, msg)
			return s.sendError(req.ID, msg, 400)
		}
	}

	switch req.Action {
	case ActionCheck:
		return s.handleCheck(req)
	case ActionSuggest:
		return s.handleSuggest(req)
	case ActionAdd:
		return s.handleAdd(req)
	case ActionUnload:
		s.backend.Unload()
		return s.send(Response{ID: req.ID, OK: true})
	case ActionInfo:
		return s.handleInfo(req)
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %q", req.Action), 400)
	}
}

func (s *Server) validateWord(word string) string {
	switch {
	case word == "":
		return "missing word"
	case !utf8.ValidString(word):
		return "word is not valid UTF-8"
	case utf8.RuneCountInString(word) > s.config.MaxWordLen:
		return fmt.Sprintf("word exceeds maximum length of %d characters", s.config.MaxWordLen)
	}
	return ""
}

func (s *Server) limit(requested int) int {
	if requested <= 0 || requested > s.config.MaxProposals {
		return s.config.MaxProposals
	}
	return requested
}

func (s *Server) handleCheck(req Request) error {
	start := time.Now()
	resp := Response{ID: req.ID, OK: s.backend.IsCorrect(req.Word)}
	if !resp.OK {
		resp.Proposals = toWire(s.backend.Proposals(req.Word, req.StartsSentence).Limit(s.limit(req.Limit)))
	}
	resp.Count = len(resp.Proposals)
	resp.TimeTaken = time.Since(start).Microseconds()
	return s.send(resp)
}

func (s *Server) handleSuggest(req Request) error {
	start := time.Now()
	proposals := toWire(s.backend.Proposals(req.Word, req.StartsSentence).Limit(s.limit(req.Limit)))
	return s.send(Response{
		ID:        req.ID,
		OK:        true,
		Proposals: proposals,
		Count:     len(proposals),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleAdd(req Request) error {
	start := time.Now()
	if err := s.backend.AddWord(req.Word); err != nil {
		srvLog.Warnf("Adding %q failed: %v", req.Word, err)
		return s.sendError(req.ID, err.Error(), 500)
	}
	return s.send(Response{ID: req.ID, OK: true, TimeTaken: time.Since(start).Microseconds()})
}

func (s *Server) handleInfo(req Request) error {
	stats := s.backend.Stats()
	resp := InfoResponse{ID: req.ID, Dictionaries: make([]DictionaryInfo, 0, len(stats))}
	for _, st := range stats {
		resp.Dictionaries = append(resp.Dictionaries, DictionaryInfo{
			Name:     st.Name,
			State:    st.State.String(),
			Words:    st.Words,
			Keys:     st.Keys,
			Writable: st.Writable,
			Error:    st.LastError,
		})
	}
	return s.send(resp)
}

func toWire(ps suggest.Proposals) []Proposal {
	if len(ps) == 0 {
		return nil
	}
	out := make([]Proposal, len(ps))
	for i, p := range ps {
		out[i] = Proposal{Word: p.Word, Rank: p.Rank}
	}
	return out
}

// send encodes a response to the output stream
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		srvLog.Errorf("Writing response: %v", err)
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
