// Package knowledge loads the local Islamic knowledge corpus and splits it
// into retrieval-sized chunks.
//
// The chunk set is built once at startup and never mutated afterwards, so it
// is safe for concurrent reads without locking. When the corpus directory is
// missing or yields nothing, a built-in default set of citations from core
// texts is used instead — the retriever never operates on an empty corpus.
package knowledge

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/minbarhq/minbar/internal/log"
)

// DefaultChunkSize is the target chunk size in characters. Content is split
// at sentence boundaries and sentences are packed greedily until the next
// one would push the chunk past this bound.
const DefaultChunkSize = 300

// Chunk is a bounded-size excerpt of a source document, tagged with the
// document it came from. Immutable once built.
type Chunk struct {
	Source string
	Text   string
}

// Render returns the chunk in its display form, with the source header the
// retriever and prompt composer both see.
func (c Chunk) Render() string {
	return "📖 " + c.Source + "\n" + c.Text
}

// Store holds the immutable chunk set for the process lifetime.
type Store struct {
	chunks []Chunk
}

// Load builds the chunk set from every .txt and .md document under
// corpusDir. A single unreadable document is skipped with a warning and
// must not abort the rest of the corpus. If the directory is absent or
// yields zero chunks, the built-in default set is used.
func Load(corpusDir string, logger log.Logger) *Store {
	if logger == nil {
		logger = log.NewNop()
	}

	var chunks []Chunk

	entries, err := os.ReadDir(corpusDir)
	if err != nil {
		logger.Warn("corpus directory not readable, using default knowledge",
			"dir", corpusDir, "error", err)
	} else {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			ext := strings.ToLower(filepath.Ext(name))
			if ext != ".txt" && ext != ".md" {
				continue
			}

			content, err := os.ReadFile(filepath.Join(corpusDir, name))
			if err != nil {
				logger.Warn("skipping unreadable corpus document", "file", name, "error", err)
				continue
			}

			text := strings.TrimSpace(string(content))
			if text == "" {
				continue
			}

			fileChunks := Split(text, name, DefaultChunkSize)
			chunks = append(chunks, fileChunks...)
			logger.Debug("loaded corpus document", "file", name, "chunks", len(fileChunks))
		}
	}

	if len(chunks) == 0 {
		logger.Info("corpus empty, using built-in default knowledge")
		chunks = defaultChunks()
	}

	logger.Info("knowledge store ready", "chunks", len(chunks))
	return &Store{chunks: chunks}
}

// NewStore creates a store over an explicit chunk set. Used by tests and by
// callers that assemble chunks themselves.
func NewStore(chunks []Chunk) *Store {
	return &Store{chunks: chunks}
}

// Chunks returns the chunk set. Callers must not modify the returned slice.
func (s *Store) Chunks() []Chunk {
	return s.chunks
}

// Len returns the number of chunks in the store.
func (s *Store) Len() int {
	return len(s.chunks)
}

// Split divides content into chunks bounded by target size, splitting at
// sentence boundaries (".", "!", "?") and greedily packing sentences until
// the bound would be exceeded. Each chunk carries the originating document
// name as its source label.
func Split(content, source string, chunkSize int) []Chunk {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	sentences := strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var chunks []Chunk
	var current string

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if len(current)+len(sentence) < chunkSize {
			if current == "" {
				current = sentence
			} else {
				current += " " + sentence
			}
		} else {
			if current != "" {
				chunks = append(chunks, Chunk{Source: source, Text: current})
			}
			current = sentence
		}
	}

	if current != "" {
		chunks = append(chunks, Chunk{Source: source, Text: current})
	}

	return chunks
}
