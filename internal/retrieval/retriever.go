// Package retrieval ranks knowledge chunks against a question using an
// additive keyword heuristic.
//
// This is deliberately not semantic search. The scoring constants are fixed
// contract values:
//
//	+3  for each distinct question word longer than 3 characters found in
//	    the chunk (case-insensitive substring match)
//	+10 for each topic category matched by both the question and the chunk
//	+5  when both question and chunk mention quran; likewise hadith; likewise
//	    prophet (chunk side also matches muhammad)
//
// Chunks scoring 0 are excluded; the rest are sorted descending with corpus
// order preserved on ties.
package retrieval

import (
	"sort"
	"strings"
	"unicode"

	"github.com/minbarhq/minbar/internal/knowledge"
	"github.com/minbarhq/minbar/internal/log"
)

// DefaultMaxResults is the result budget for the standard answer path.
// The complex-fiqh path uses a leaner budget of 2.
const DefaultMaxResults = 5

// Scoring constants. Fixed contract values, not tunables.
const (
	wordScore     = 3
	categoryScore = 10
	sourceScore   = 5
)

// Retriever scores the immutable chunk set against incoming questions.
// Safe for concurrent use: the underlying store is read-only.
type Retriever struct {
	store  *knowledge.Store
	logger log.Logger
}

// New creates a Retriever over the given knowledge store.
func New(store *knowledge.Store, logger log.Logger) *Retriever {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Retriever{store: store, logger: logger}
}

// Search returns up to maxResults chunk texts (rendered with their source
// header), highest score first. maxResults <= 0 falls back to
// DefaultMaxResults. Repeated calls with the same corpus and question return
// identical ordered results.
func (r *Retriever) Search(question string, maxResults int) []string {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	questionLower := strings.ToLower(question)
	words := distinctWords(questionLower)

	type scored struct {
		score int
		text  string
	}

	var results []scored
	for _, chunk := range r.store.Chunks() {
		rendered := chunk.Render()
		entryLower := strings.ToLower(rendered)

		score := 0

		for word := range words {
			if len(word) > 3 && strings.Contains(entryLower, word) {
				score += wordScore
			}
		}

		for _, cat := range Categories {
			if matchesAny(questionLower, cat.Keywords) && matchesAny(entryLower, cat.Keywords) {
				score += categoryScore
			}
		}

		if contains(questionLower, "quran") && contains(entryLower, "quran") {
			score += sourceScore
		}
		if contains(questionLower, "hadith") && contains(entryLower, "hadith") {
			score += sourceScore
		}
		if contains(questionLower, "prophet") && (contains(entryLower, "prophet") || contains(entryLower, "muhammad")) {
			score += sourceScore
		}

		if score > 0 {
			results = append(results, scored{score: score, text: rendered})
		}
	}

	// Stable sort keeps corpus order on ties, which makes retrieval fully
	// deterministic.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	texts := make([]string, len(results))
	for i, res := range results {
		texts[i] = res.text
	}

	r.logger.Debug("retrieval complete", "question_words", len(words), "results", len(texts))
	return texts
}

// contains is strings.Contains; named for symmetry with matchesAny.
func contains(text, substr string) bool {
	return strings.Contains(text, substr)
}

// distinctWords extracts the set of distinct words (letter/digit runs) from
// already-lowercased text.
func distinctWords(lower string) map[string]struct{} {
	words := make(map[string]struct{})
	var b strings.Builder
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			words[b.String()] = struct{}{}
			b.Reset()
		}
	}
	if b.Len() > 0 {
		words[b.String()] = struct{}{}
	}
	return words
}
