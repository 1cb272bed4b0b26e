package utils

import (
	"strings"
	"unicode"
)

// TrimNonLetters strips leading and trailing runes that are not letters,
// so "(word)," becomes "word". Inner punctuation such as in "don't" stays.
func TrimNonLetters(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
