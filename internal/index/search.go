package index

import (
	"context"
	"log/slog"
	"math"
	"sort"
)

// DefaultTopK bounds the number of results a search returns.
const DefaultTopK = 15

// SearchEngine ranks indexed documents against a free-text query by cosine
// similarity. Every search is an independent brute-force pass over the
// current index snapshot; with index sizes in the thousands that is cheaper
// than any structure worth maintaining.
type SearchEngine struct {
	index *Index
	embed Embedder
	topK  int
}

// NewSearchEngine creates a search engine over the given index. topK <= 0
// selects the default of 15.
func NewSearchEngine(ix *Index, emb Embedder, topK int) *SearchEngine {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &SearchEngine{index: ix, embed: emb, topK: topK}
}

// Search returns the indexed documents most relevant to query, best first.
// Failures degrade to an empty result set: a query that cannot be embedded
// is operationally the same as a query with no matches.
func (e *SearchEngine) Search(ctx context.Context, query string) []SearchResult {
	queryVec, err := e.embed.Embed(ctx, query)
	if err != nil {
		slog.Warn("query embedding failed", "error", err)
		return nil
	}

	queryNorm := norm(queryVec)
	if queryNorm == 0 {
		// A zero vector has no direction; treat as no-match rather than
		// dividing by zero.
		return nil
	}

	var results []SearchResult
	for _, entry := range e.index.Snapshot() {
		rec := entry.Record
		if len(rec.Vector) == 0 {
			continue // unscored record, predates a successful embedding
		}
		docNorm := norm(rec.Vector)
		if docNorm == 0 {
			continue
		}
		results = append(results, SearchResult{
			Score:  dot(queryVec, rec.Vector) / (queryNorm * docNorm),
			Path:   entry.Path,
			Record: rec,
		})
	}

	// Stable sort keeps ties in snapshot (sorted-path) order, so rankings
	// are reproducible across queries.
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if len(results) > e.topK {
		results = results[:e.topK]
	}
	return results
}

// dot accumulates in float64 to limit rounding drift on long vectors.
func dot(a, b []float32) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
