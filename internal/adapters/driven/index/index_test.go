package index

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/campuskit/askbot-core/internal/core/domain"
	"github.com/campuskit/askbot-core/internal/core/ports/driven/mocks"
)

// theaterCorpus is three rows about the CS department; the middle one
// answers the theaters question.
func theaterCorpus() []domain.DocumentUnit {
	return []domain.DocumentUnit{
		{Text: "CS department offers BSCS, BSSE and BSAI programs", Source: "english_data.csv", Row: 1},
		{Text: "CS department has 9 theaters called LT", Source: "english_data.csv", Row: 2},
		{Text: "CS department canteen is next to the mosque", Source: "english_data.csv", Row: 3},
	}
}

// theaterEmbedder pins vectors so "how many theaters does CS have" is
// closest to the theaters row.
func theaterEmbedder() *mocks.MockEmbeddingService {
	e := mocks.NewMockEmbeddingService()
	e.Fixed["CS department offers BSCS, BSSE and BSAI programs"] = []float32{1, 0, 0}
	e.Fixed["CS department has 9 theaters called LT"] = []float32{0, 1, 0}
	e.Fixed["CS department canteen is next to the mosque"] = []float32{0, 0, 1}
	e.Fixed["how many theaters does CS have"] = []float32{0.1, 0.9, 0.1}
	return e
}

func TestBuild_EmptyCorpus(t *testing.T) {
	_, err := Build(context.Background(), mocks.NewMockEmbeddingService(), nil)
	if !errors.Is(err, domain.ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestIndex_SearchFindsTheaters(t *testing.T) {
	ix, err := Build(context.Background(), theaterEmbedder(), theaterCorpus())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ix.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", ix.Len())
	}

	units, err := ix.Retrieve(context.Background(), "how many theaters does CS have", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if units[0].Text != "CS department has 9 theaters called LT" {
		t.Errorf("expected the theaters row, got %q", units[0].Text)
	}
}

func TestIndex_SearchOrderedMostSimilarFirst(t *testing.T) {
	ix, err := Build(context.Background(), theaterEmbedder(), theaterCorpus())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	units, err := ix.Retrieve(context.Background(), "how many theaters does CS have", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	if units[0].Text != "CS department has 9 theaters called LT" {
		t.Errorf("most similar unit must come first, got %q", units[0].Text)
	}
}

func TestIndex_TiesKeepInsertionOrder(t *testing.T) {
	e := mocks.NewMockEmbeddingService()
	e.Fixed["row one"] = []float32{1, 0}
	e.Fixed["row two"] = []float32{1, 0}
	e.Fixed["row three"] = []float32{0, 1}
	e.Fixed["query"] = []float32{1, 0}

	units := []domain.DocumentUnit{
		{Text: "row one", Source: "a.csv", Row: 1},
		{Text: "row two", Source: "a.csv", Row: 2},
		{Text: "row three", Source: "a.csv", Row: 3},
	}
	ix, err := Build(context.Background(), e, units)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ix.Retrieve(context.Background(), "query", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Row != 1 || got[1].Row != 2 {
		t.Errorf("equal scores must keep corpus order, got rows %d,%d", got[0].Row, got[1].Row)
	}
}

func TestIndex_KLargerThanCorpus(t *testing.T) {
	ix, err := Build(context.Background(), theaterEmbedder(), theaterCorpus())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	units, err := ix.Retrieve(context.Background(), "how many theaters does CS have", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 3 {
		t.Errorf("expected all 3 units, got %d", len(units))
	}
}

func TestIndex_SaveLoadRoundTrip(t *testing.T) {
	embedder := theaterEmbedder()
	original, err := Build(context.Background(), embedder, theaterCorpus())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "kb.index")
	if err := original.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path, embedder)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Len() != original.Len() {
		t.Fatalf("loaded %d entries, expected %d", loaded.Len(), original.Len())
	}

	query := "how many theaters does CS have"
	want, err := original.Retrieve(context.Background(), query, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := loaded.Retrieve(context.Background(), query, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("loaded index search differs from original:\nwant %v\ngot  %v", want, got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.index")
	_, err := Load(path, mocks.NewMockEmbeddingService())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_ModelMismatch(t *testing.T) {
	embedder := theaterEmbedder()
	ix, err := Build(context.Background(), embedder, theaterCorpus())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "kb.index")
	if err := ix.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Pretend the deployment switched embedding models.
	if _, err := Load(path, mismatchedModel{mocks.NewMockEmbeddingService()}); err == nil {
		t.Error("expected error for model mismatch")
	}
}

// mismatchedModel overrides the reported model name
type mismatchedModel struct {
	*mocks.MockEmbeddingService
}

func (m mismatchedModel) Model() string { return "different-model" }

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosine(tt.a, tt.b); got != tt.want {
				t.Errorf("cosine(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
