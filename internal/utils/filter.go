package utils

import (
	"strings"
	"unicode"
)

// Token is one word of a line of text.
type Token struct {
	Text string
	// Offset is the byte offset of Text in the line.
	Offset int
	// StartsSentence is set for the first word of the line and for words
	// following a sentence terminator.
	StartsSentence bool
}

// IsSentenceEnd checks if a rune terminates a sentence
func IsSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

// IsWordRune checks if a rune can be part of a word.
// Apostrophes and hyphens only count inside a word, see Tokenize.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isJoiner(r rune) bool {
	return r == '\'' || r == '’' || r == '-'
}

// Tokenize splits line into words, keeping inner apostrophes and hyphens
// ("don't", "well-known") and tracking sentence starts.
func Tokenize(line string) []Token {
	var tokens []Token
	sentence := true
	start := -1
	var last rune

	flush := func(end int) {
		if start < 0 {
			return
		}
		text := strings.TrimRightFunc(line[start:end], isJoiner)
		if text != "" {
			tokens = append(tokens, Token{Text: text, Offset: start, StartsSentence: sentence})
			sentence = false
		}
		start = -1
	}

	for i, r := range line {
		switch {
		case IsWordRune(r):
			if start < 0 {
				start = i
			}
		case isJoiner(r) && start >= 0 && IsWordRune(last):
			// kept tentatively, trimmed again when the word ends here
		default:
			flush(i)
			if IsSentenceEnd(r) {
				sentence = true
			}
		}
		last = r
	}
	flush(len(line))
	return tokens
}

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsValidInput checks if a word should be spell checked at all.
// Returns false for empty strings, numbers and words longer than maxLen runes.
func IsValidInput(s string, maxLen int) bool {
	if len(s) == 0 {
		return false
	}
	if IsOnlyNumbers(s) {
		return false
	}
	if maxLen > 0 && len([]rune(s)) > maxLen {
		return false
	}
	return true
}
