// Package index provides the in-memory, persistable vector index the
// engine retrieves grounding context from. The index is built once at
// startup (or loaded from disk) and is read-only afterwards.
package index

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/campuskit/askbot-core/internal/core/domain"
	"github.com/campuskit/askbot-core/internal/core/ports/driven"
)

// Ensure Index implements Retriever
var _ driven.Retriever = (*Index)(nil)

// embedBatchSize bounds how many corpus units are embedded per call
const embedBatchSize = 64

// entry pairs a corpus unit with its embedding
type entry struct {
	Vector []float32
	Unit   domain.DocumentUnit
}

// Index is a brute-force cosine similarity store over the corpus.
// Read-only after Build/Load, so safe for concurrent Retrieve calls.
type Index struct {
	embedder driven.EmbeddingService
	entries  []entry
}

// persisted is the gob-encoded on-disk form. It must reproduce search
// behaviour identical to the index that wrote it.
type persisted struct {
	Model      string
	Dimensions int
	Entries    []entry
}

// Build embeds every corpus unit and assembles the index. An empty corpus
// is a fatal configuration error: there would be no answer space.
func Build(ctx context.Context, embedder driven.EmbeddingService, units []domain.DocumentUnit) (*Index, error) {
	if len(units) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	ix := &Index{
		embedder: embedder,
		entries:  make([]entry, 0, len(units)),
	}

	for start := 0; start < len(units); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(units) {
			end = len(units)
		}

		texts := make([]string, 0, end-start)
		for _, u := range units[start:end] {
			texts = append(texts, u.Text)
		}

		vectors, err := embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed corpus batch at %d: %w", start, err)
		}
		if len(vectors) != len(texts) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
		}

		for i, u := range units[start:end] {
			ix.entries = append(ix.entries, entry{Vector: vectors[i], Unit: u})
		}
	}

	return ix, nil
}

// Load reads a previously persisted index from path. Returns
// domain.ErrNotFound when nothing is persisted there, so callers can fall
// back to Build.
func Load(path string, embedder driven.EmbeddingService) (*Index, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("index at %s: %w", path, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	var p persisted
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}

	if p.Model != embedder.Model() {
		return nil, fmt.Errorf("index was built with model %q, embedder uses %q: %w",
			p.Model, embedder.Model(), domain.ErrInvalidInput)
	}

	return &Index{embedder: embedder, entries: p.Entries}, nil
}

// Save persists the index to path atomically (write to a temp file in the
// same directory, then rename).
func (ix *Index) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp index file: %w", err)
	}
	defer os.Remove(tmp.Name())

	p := persisted{
		Model:      ix.embedder.Model(),
		Dimensions: ix.embedder.Dimensions(),
		Entries:    ix.entries,
	}
	if err := gob.NewEncoder(tmp).Encode(p); err != nil {
		tmp.Close()
		return fmt.Errorf("encode index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp index file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename index file: %w", err)
	}
	return nil
}

// Len returns the number of indexed units
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Retrieve embeds the query and returns the k most similar units,
// most-similar first. Equal scores keep corpus insertion order (stable
// sort over entries appended in load order).
func (ix *Index) Retrieve(ctx context.Context, query string, k int) ([]domain.DocumentUnit, error) {
	if k <= 0 {
		k = 5
	}

	qv, err := ix.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(ix.entries))
	for i, e := range ix.entries {
		scores[i] = scored{idx: i, score: cosine(qv, e.Vector)}
	}

	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].score > scores[b].score
	})

	if k > len(scores) {
		k = len(scores)
	}
	out := make([]domain.DocumentUnit, 0, k)
	for _, s := range scores[:k] {
		out = append(out, ix.entries[s.idx].Unit)
	}
	return out, nil
}

// cosine computes cosine similarity, returning 0 for zero-magnitude
// vectors or mismatched lengths.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
