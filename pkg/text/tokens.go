// Package text turns raw outlook documents into filtered term streams.
//
// Two extractors are provided:
//   - Tokenize: single-word tokens (lowercased, stopword- and digit-filtered)
//   - ExtractPhrases: 2-3 word phrases from grammatical chunks and a curated
//     finance-phrase dictionary
//
// No stemming or lemmatization is performed; terms are compared by their
// lowercased surface form.
package text

import (
	"strings"
	"unicode"
)

// MinWordLength is the minimum length of a kept word token.
const MinWordLength = 3

// Tokenize splits raw text into filtered word tokens, preserving order.
// Non-letter characters act as separators, tokens shorter than
// MinWordLength, stopwords, and all-digit runs are dropped.
func Tokenize(raw string) []string {
	fields := strings.FieldsFunc(normalize(raw), unicode.IsSpace)

	tokens := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) < MinWordLength || IsStopword(w) || allDigits(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// normalize lowercases text and replaces every non-letter rune with a space.
func normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func allDigits(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(w) > 0
}
