// Package textscan provides whole-word substring search over extracted
// document text. Word boundaries are Unicode-aware so that accented company
// names match the way a human reader would expect.
package textscan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContainsWord reports whether word occurs in text as a whole word,
// case-insensitively. A whole-word occurrence is one whose neighboring
// runes, when present, are neither letters nor digits. Empty words never
// match.
func ContainsWord(text, word string) bool {
	if word == "" {
		return false
	}

	lowerText := strings.ToLower(text)
	lowerWord := strings.ToLower(word)

	offset := 0
	for {
		i := strings.Index(lowerText[offset:], lowerWord)
		if i < 0 {
			return false
		}

		start := offset + i
		end := start + len(lowerWord)

		if boundaryBefore(lowerText, start) && boundaryAfter(lowerText, end) {
			return true
		}

		offset = start + 1
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}

	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}

	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
