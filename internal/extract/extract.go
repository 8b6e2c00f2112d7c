// Package extract turns documents of supported formats into plain text.
// Adapters are format-specific and bounded for performance; any failure
// surfaces as an error the indexer treats as "nothing to index".
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Adapter extracts plain text from one document format.
type Adapter interface {
	Extract(path string) (string, error)
}

// Registry dispatches extraction by file extension. The format set is closed:
// supporting a new format means registering a new adapter.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry returns a registry with the stock adapters: PDF (page-bounded),
// DOCX (all paragraphs), and plain text for .txt and .md.
func NewRegistry() *Registry {
	r := &Registry{adapters: make(map[string]Adapter)}
	r.Register("pdf", PDF{MaxPages: DefaultMaxPDFPages})
	r.Register("docx", DOCX{})
	r.Register("txt", PlainText{})
	r.Register("md", PlainText{})
	return r
}

// Register adds an adapter for an extension (lowercase, no dot).
func (r *Registry) Register(ext string, a Adapter) {
	r.adapters[ext] = a
}

// Extensions returns the supported extension set, suitable for the walker.
func (r *Registry) Extensions() map[string]bool {
	exts := make(map[string]bool, len(r.adapters))
	for ext := range r.adapters {
		exts[ext] = true
	}
	return exts
}

// Extract routes the file to the adapter registered for its extension.
func (r *Registry) Extract(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	a, ok := r.adapters[ext]
	if !ok {
		return "", fmt.Errorf("unsupported format %q", ext)
	}
	return a.Extract(path)
}
