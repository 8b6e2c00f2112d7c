package index

import (
	"sort"
	"sync"
)

// DocumentRecord holds everything the index knows about one file. The
// document's path is the map key in Index, not a field of the record.
type DocumentRecord struct {
	// MTime is the file's modification time in Unix seconds, fractional part
	// preserved. It reflects the file state at the moment the vector was
	// computed; staleness is detected by exact comparison against the
	// current value.
	MTime    float64 `json:"mtime"`
	Filename string  `json:"filename"`
	Summary  string  `json:"summary"`
	// Vector is absent when the record predates a successful embedding.
	// Such records are never scored.
	Vector []float32 `json:"vector,omitempty"`
	// Hash is a sha256 of the file content, present only when content
	// verification is enabled.
	Hash string `json:"hash,omitempty"`
}

// SearchResult pairs a scored record with its path. Never persisted.
type SearchResult struct {
	Score  float64
	Path   string
	Record DocumentRecord
}

// Entry is a (path, record) pair from an index snapshot.
type Entry struct {
	Path   string
	Record DocumentRecord
}

// Index is the in-memory mapping from document path to its record. A single
// RWMutex lets searches run concurrently with a scan; at most one scan may
// mutate the index at a time.
type Index struct {
	mu    sync.RWMutex
	docs  map[string]DocumentRecord
	model string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{docs: make(map[string]DocumentRecord)}
}

// Get returns the record for a path, if present.
func (ix *Index) Get(path string) (DocumentRecord, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	rec, ok := ix.docs[path]
	return rec, ok
}

// Put inserts or replaces the record for a path.
func (ix *Index) Put(path string, rec DocumentRecord) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.docs[path] = rec
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Clear removes every record. Used when the embedding model changes and the
// stored vectors are no longer comparable.
func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.docs = make(map[string]DocumentRecord)
}

// Model returns the name of the embedding model that produced the stored
// vectors, or "" for a fresh index.
func (ix *Index) Model() string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.model
}

// SetModel records the embedding model the vectors were computed with.
func (ix *Index) SetModel(model string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.model = model
}

// Snapshot returns a copy of the index contents in sorted-path order.
// Sorting makes search rankings reproducible: ties in score resolve to the
// same document order on every query.
func (ix *Index) Snapshot() []Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	entries := make([]Entry, 0, len(ix.docs))
	for path, rec := range ix.docs {
		entries = append(entries, Entry{Path: path, Record: rec})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}
