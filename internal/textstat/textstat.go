// Package textstat holds the small text measurements shared by the
// heuristic scorers. Every scorer must count words and characters the same
// way or their thresholds drift apart.
package textstat

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// WordCount returns the number of fields produced by splitting on a single
// space. Runs of spaces produce empty fields that still count, and the empty
// string counts as one word.
func WordCount(s string) int {
	return strings.Count(s, " ") + 1
}

// SentenceCount returns the number of runs of sentence-ending punctuation.
func SentenceCount(s string) int {
	return len(sentenceEnd.FindAllStringIndex(s, -1))
}

// Length returns the number of Unicode code points in s.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// IsASCII reports whether every byte of s is 7-bit ASCII.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}

// Clamp01 limits v to the closed interval [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
