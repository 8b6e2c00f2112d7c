package index

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder returns one canned vector for every query.
type stubEmbedder struct {
	vec []float32
	err error
}

func (s stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.vec, s.err
}

func (s stubEmbedder) Model() string { return "stub" }

func indexWith(docs map[string][]float32) *Index {
	ix := NewIndex()
	for path, vec := range docs {
		ix.Put(path, DocumentRecord{Filename: path, Summary: "s", Vector: vec})
	}
	return ix
}

func TestSearchRanksByCosineSimilarity(t *testing.T) {
	ix := indexWith(map[string][]float32{
		"exact.txt":      {1, 0},
		"close.txt":      {0.6, 0.8},
		"orthogonal.txt": {0, 1},
		"opposite.txt":   {-1, 0},
	})
	engine := NewSearchEngine(ix, stubEmbedder{vec: []float32{1, 0}}, 0)

	results := engine.Search(context.Background(), "query")
	require.Len(t, results, 4)

	assert.Equal(t, "exact.txt", results[0].Path)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)

	assert.Equal(t, "close.txt", results[1].Path)
	assert.InDelta(t, 0.6, results[1].Score, 1e-6)

	assert.Equal(t, "orthogonal.txt", results[2].Path)
	assert.InDelta(t, 0.0, results[2].Score, 1e-6)

	assert.Equal(t, "opposite.txt", results[3].Path)
	assert.InDelta(t, -1.0, results[3].Score, 1e-6)
}

func TestSearchScoreIgnoresMagnitude(t *testing.T) {
	ix := indexWith(map[string][]float32{
		"small.txt": {1, 0},
		"big.txt":   {100, 0},
	})
	engine := NewSearchEngine(ix, stubEmbedder{vec: []float32{3, 0}}, 0)

	results := engine.Search(context.Background(), "query")
	require.Len(t, results, 2)
	assert.InDelta(t, results[0].Score, results[1].Score, 1e-6)
}

func TestSearchTiesResolveInPathOrder(t *testing.T) {
	ix := indexWith(map[string][]float32{
		"b.txt": {1, 0},
		"a.txt": {1, 0},
		"c.txt": {1, 0},
	})
	engine := NewSearchEngine(ix, stubEmbedder{vec: []float32{1, 0}}, 0)

	for i := 0; i < 5; i++ {
		results := engine.Search(context.Background(), "query")
		require.Len(t, results, 3)
		assert.Equal(t, "a.txt", results[0].Path)
		assert.Equal(t, "b.txt", results[1].Path)
		assert.Equal(t, "c.txt", results[2].Path)
	}
}

func TestSearchTruncatesToTopK(t *testing.T) {
	docs := make(map[string][]float32)
	for i := 0; i < 40; i++ {
		docs[fmt.Sprintf("doc-%02d.txt", i)] = []float32{1, float32(i)}
	}
	engine := NewSearchEngine(indexWith(docs), stubEmbedder{vec: []float32{1, 1}}, 0)

	results := engine.Search(context.Background(), "query")
	assert.Len(t, results, DefaultTopK)

	engine = NewSearchEngine(indexWith(docs), stubEmbedder{vec: []float32{1, 1}}, 3)
	assert.Len(t, engine.Search(context.Background(), "query"), 3)
}

func TestSearchSkipsUnscorableRecords(t *testing.T) {
	ix := indexWith(map[string][]float32{
		"good.txt": {1, 0},
		"zero.txt": {0, 0},
	})
	ix.Put("vectorless.txt", DocumentRecord{Filename: "vectorless.txt", Summary: "s"})
	engine := NewSearchEngine(ix, stubEmbedder{vec: []float32{1, 0}}, 0)

	results := engine.Search(context.Background(), "query")
	require.Len(t, results, 1)
	assert.Equal(t, "good.txt", results[0].Path)
}

func TestSearchDegradesOnEmbedderFailure(t *testing.T) {
	ix := indexWith(map[string][]float32{"a.txt": {1, 0}})
	engine := NewSearchEngine(ix, stubEmbedder{err: errors.New("backend down")}, 0)

	assert.Empty(t, engine.Search(context.Background(), "query"))
}

func TestSearchZeroNormQueryReturnsNothing(t *testing.T) {
	ix := indexWith(map[string][]float32{"a.txt": {1, 0}})
	engine := NewSearchEngine(ix, stubEmbedder{vec: []float32{0, 0}}, 0)

	assert.Empty(t, engine.Search(context.Background(), "query"))
}

func TestSearchEmptyIndex(t *testing.T) {
	engine := NewSearchEngine(NewIndex(), stubEmbedder{vec: []float32{1, 0}}, 0)
	assert.Empty(t, engine.Search(context.Background(), "query"))
}
