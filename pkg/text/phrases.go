package text

import "strings"

// MinPhraseLength is the minimum character length of a kept phrase.
const MinPhraseLength = 5

// Chunker produces grammatical phrase spans (noun phrases, verb phrases)
// from raw text. Implementations wrap an external NLP capability; a nil
// Chunker is valid and simply contributes no grammatical spans.
type Chunker interface {
	// Chunks returns candidate phrase spans from the text. Spans may be of
	// any length; the extractor applies its own filters.
	Chunks(text string) []string
}

// ChunkerFunc adapts a function to the Chunker interface.
type ChunkerFunc func(text string) []string

// Chunks calls f.
func (f ChunkerFunc) Chunks(text string) []string { return f(text) }

// ExtractPhrases extracts 2-3 word phrase tokens from raw text, deduplicated
// within the document. Phrases come from two sources, unioned:
//
//  1. Grammatical spans from the chunker (kept when >= 2 words and >= 5
//     characters).
//  2. Sliding-window bigrams and trigrams matched against the curated
//     finance-phrase dictionary.
//
// A phrase is retained only if none of its constituent words is a stopword,
// unless the whole phrase is itself in the dictionary.
func ExtractPhrases(raw string, chunker Chunker) []string {
	seen := make(map[string]bool)
	var phrases []string

	keep := func(p string) {
		p = strings.TrimSpace(p)
		if len(p) < MinPhraseLength || seen[p] {
			return
		}
		if !phraseAllowed(p) {
			return
		}
		seen[p] = true
		phrases = append(phrases, p)
	}

	if chunker != nil {
		for _, span := range chunker.Chunks(strings.ToLower(raw)) {
			span = strings.TrimSpace(span)
			if strings.Count(span, " ") >= 1 && len(span) >= MinPhraseLength {
				keep(span)
			}
		}
	}

	words := strings.Fields(normalize(raw))
	for i := 0; i < len(words)-1; i++ {
		bigram := words[i] + " " + words[i+1]
		if IsFinancePhrase(bigram) {
			keep(bigram)
		}
		if i < len(words)-2 {
			trigram := bigram + " " + words[i+2]
			if IsFinancePhrase(trigram) {
				keep(trigram)
			}
		}
	}

	return phrases
}

// phraseAllowed applies the stopword rule: every constituent word must be a
// non-stopword, with dictionary membership overriding the check.
func phraseAllowed(p string) bool {
	if IsFinancePhrase(p) {
		return true
	}
	for _, w := range strings.Fields(p) {
		if IsStopword(w) {
			return false
		}
	}
	return true
}
