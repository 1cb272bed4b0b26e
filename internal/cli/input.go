// Package cli handles cmd line input for debugging and testing the spell checker interactively
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/dictionary"
)

var (
	wordStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	misspeltStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true)
)

// InputHandler reads lines of text, reports misspelt words with their
// proposals and understands a few commands:
//
//	+word          add word to the dictionary
//	:unload        drop the loaded word lists
//	:strip on|off  toggle stripping of leading and trailing non-letters
type InputHandler struct {
	checker      dictionary.Checker
	suggestLimit int
	maxWordLen   int
	in           io.Reader
	out          *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(checker dictionary.Checker, limit, maxWordLen int) *InputHandler {
	return &InputHandler{
		checker:      checker,
		suggestLimit: limit,
		maxWordLen:   maxWordLen,
		in:           os.Stdin,
		out:          log.Default(),
	}
}

// WithIO redirects the handler to in and out.
func (h *InputHandler) WithIO(in io.Reader, out io.Writer) *InputHandler {
	h.in = in
	h.out = log.NewWithOptions(out, log.Options{Formatter: log.TextFormatter})
	return h
}

// Start begins the interface loop.
// It reads lines until the input ends and passes each trimmed line to handleInput.
func (h *InputHandler) Start() error {
	h.out.Print("wordfix CLI")
	h.out.Print("type a sentence and press Enter to check it, +word to add a word (Ctrl+C to exit):")

	reader := bufio.NewReader(h.in)
	for {
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// handleInput runs a command or checks every word of line.
func (h *InputHandler) handleInput(line string) {
	switch {
	case strings.HasPrefix(line, "+"):
		h.addWord(strings.TrimSpace(line[1:]))
		return
	case line == ":unload":
		h.checker.Unload()
		h.out.Print("Dictionaries unloaded, the next word reloads them")
		return
	case strings.HasPrefix(line, ":strip"):
		h.setStrip(strings.TrimSpace(strings.TrimPrefix(line, ":strip")))
		return
	}

	start := time.Now()
	misspelt := 0
	for _, tok := range utils.Tokenize(line) {
		if !utils.IsValidInput(tok.Text, h.maxWordLen) {
			log.Debugf("Skipping '%s'", tok.Text)
			continue
		}
		if h.checker.IsCorrect(tok.Text) {
			continue
		}
		misspelt++
		proposals := h.checker.Proposals(tok.Text, tok.StartsSentence).Limit(h.suggestLimit)
		if len(proposals) == 0 {
			h.out.Printf("%s: no proposals", misspeltStyle.Render(tok.Text))
			continue
		}
		h.out.Printf("%s:", misspeltStyle.Render(tok.Text))
		for i, p := range proposals {
			h.out.Printf("%2d. %-30s (rank: %d)", i+1, wordStyle.Render(p.Word), p.Rank)
		}
	}
	log.Debugf("Took [ %v ] for '%s'", time.Since(start), line)
	if misspelt == 0 {
		h.out.Print("No misspellings found")
	}
}

func (h *InputHandler) addWord(word string) {
	if word == "" {
		h.out.Error("Nothing to add")
		return
	}
	if err := h.checker.AddWord(word); err != nil {
		h.out.Errorf("Failed to add '%s': %v", word, err)
		return
	}
	where := "memory"
	if h.checker.AcceptsWords() {
		where = "the user word list"
	}
	h.out.Print(fmt.Sprintf("Added '%s' to %s", word, where))
}

func (h *InputHandler) setStrip(arg string) {
	switch arg {
	case "on":
		h.checker.SetStripNonLetters(true)
	case "off":
		h.checker.SetStripNonLetters(false)
	default:
		h.out.Error("Usage: :strip on|off")
		return
	}
	h.out.Printf("Stripping non-letters: %s", arg)
}
