package index

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"docseek/internal/walker"
)

// FallbackSummary stands in whenever the summary provider fails. Records are
// never written with an empty summary.
const FallbackSummary = "Summary unavailable."

// maxEmbedBytes bounds the text prefix submitted to the embedding provider.
const maxEmbedBytes = 8000

// Extractor produces plain text for a document. Empty text means the file has
// nothing to index; errors are treated the same way and never abort a scan.
type Extractor interface {
	Extract(path string) (string, error)
}

// Embedder converts text into a fixed-dimensionality vector. Vectors from one
// Model are comparable under cosine similarity; mixing models is not.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// Summarizer produces a short synopsis of a document's text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// ProgressSink receives human-readable status updates during a scan. It is
// advisory only; the count returned by Scan is the ground truth.
type ProgressSink interface {
	Progress(status string)
}

// ProgressFunc adapts a plain function to the ProgressSink interface.
type ProgressFunc func(status string)

func (f ProgressFunc) Progress(status string) { f(status) }

// Config holds the indexer configuration.
type Config struct {
	// Extensions is the closed set of indexable extensions, lowercase and
	// without the leading dot.
	Extensions map[string]bool
	// FlushEvery persists the index after this many successfully processed
	// files. Defaults to 5.
	FlushEvery int
	// VerifyContent additionally stores and compares a sha256 of the file
	// content, catching edits that preserve the modification time.
	VerifyContent bool
	// Sink receives progress updates. Optional.
	Sink ProgressSink
}

// Indexer brings an Index up to date with a folder tree, skipping files whose
// stored modification time matches the current one.
type Indexer struct {
	index      *Index
	store      *Store
	extract    Extractor
	embed      Embedder
	summarize  Summarizer
	exts       map[string]bool
	flushEvery int
	verify     bool
	sink       ProgressSink
}

// NewIndexer wires an indexer around an existing index and store.
func NewIndexer(ix *Index, st *Store, ex Extractor, emb Embedder, sum Summarizer, cfg Config) *Indexer {
	flushEvery := cfg.FlushEvery
	if flushEvery <= 0 {
		flushEvery = 5
	}
	sink := cfg.Sink
	if sink == nil {
		sink = ProgressFunc(func(string) {})
	}
	return &Indexer{
		index:      ix,
		store:      st,
		extract:    ex,
		embed:      emb,
		summarize:  sum,
		exts:       cfg.Extensions,
		flushEvery: flushEvery,
		verify:     cfg.VerifyContent,
		sink:       sink,
	}
}

// Scan walks the folder tree rooted at root and indexes every new or changed
// file. Per-file failures are isolated: one bad file never aborts the scan.
// It returns the number of records written, which stays valid even when an
// error is returned alongside it. Cancellation is cooperative, checked
// between files.
func (n *Indexer) Scan(ctx context.Context, root string) (int, error) {
	// Vectors from different models are not comparable; a model switch
	// invalidates everything.
	if prev := n.index.Model(); prev != "" && prev != n.embed.Model() {
		n.sink.Progress(fmt.Sprintf("Embedding model changed from %s to %s, rebuilding index", prev, n.embed.Model()))
		n.index.Clear()
	}
	n.index.SetModel(n.embed.Model())

	files, walkErrs := walker.Walk(ctx, root, n.exts)

	count := 0
	sinceFlush := 0
	var scanErr error

	for fi := range files {
		if ctx.Err() != nil {
			break
		}
		if !n.process(ctx, fi) {
			continue
		}
		count++
		sinceFlush++
		if sinceFlush >= n.flushEvery {
			if err := n.store.Save(n.index); err != nil {
				scanErr = errors.Join(scanErr, err)
				n.sink.Progress(fmt.Sprintf("Warning: could not save index: %v", err))
			} else {
				sinceFlush = 0
			}
		}
	}

	// Unconditional final flush so an interrupted scan loses at most
	// flushEvery-1 files of work.
	if err := n.store.Save(n.index); err != nil {
		scanErr = errors.Join(scanErr, err)
		n.sink.Progress(fmt.Sprintf("Warning: could not save index: %v", err))
	}

	if err := <-walkErrs; err != nil {
		scanErr = errors.Join(scanErr, fmt.Errorf("walk %s: %w", root, err))
	}

	n.sink.Progress(fmt.Sprintf("Scan complete: %d new or updated documents", count))
	return count, errors.Join(scanErr, ctx.Err())
}

// process handles a single file and reports whether a record was written.
func (n *Indexer) process(ctx context.Context, fi walker.FileInfo) bool {
	mtime := unixSeconds(fi.ModTime)

	prev, known := n.index.Get(fi.Path)
	if known && prev.MTime == mtime && n.contentUnchanged(fi.Path, prev) {
		return false
	}

	n.sink.Progress(fmt.Sprintf("Processing %s...", fi.Name))

	text, err := n.extract.Extract(fi.Path)
	if err != nil {
		slog.Warn("extraction failed", "path", fi.Path,
			"error", fmt.Errorf("%w: %v", ErrExtractionFailed, err))
		n.sink.Progress(fmt.Sprintf("Could not read %s", fi.Name))
		return false
	}
	// Empty documents are not indexable. A prior record, if any, is left
	// untouched rather than implicitly overwritten.
	if strings.TrimSpace(text) == "" {
		return false
	}

	vector, err := n.embed.Embed(ctx, embedInput(text))
	if err != nil {
		// No record is written, so the file stays eligible next scan.
		slog.Warn("embedding failed", "path", fi.Path,
			"error", fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err))
		n.sink.Progress(fmt.Sprintf("Embedding failed for %s, will retry next scan", fi.Name))
		return false
	}

	summary, err := n.summarize.Summarize(ctx, text)
	if err != nil {
		// Summarization failure never blocks indexing.
		slog.Warn("summary failed", "path", fi.Path,
			"error", fmt.Errorf("%w: %v", ErrSummaryUnavailable, err))
		summary = FallbackSummary
	}

	rec := DocumentRecord{
		MTime:    mtime,
		Filename: fi.Name,
		Summary:  summary,
		Vector:   vector,
	}
	if n.verify {
		if h, err := hashFile(fi.Path); err == nil {
			rec.Hash = h
		}
	}
	n.index.Put(fi.Path, rec)
	return true
}

// contentUnchanged decides whether a file whose mtime matches its record can
// be skipped. Without content verification the mtime is the sole signal.
func (n *Indexer) contentUnchanged(path string, prev DocumentRecord) bool {
	if !n.verify {
		return true
	}
	if prev.Hash == "" {
		// Record predates hashing; reprocess once so the hash gets stored.
		return false
	}
	h, err := hashFile(path)
	return err == nil && h == prev.Hash
}

// embedInput bounds the text submitted to the embedder and flattens newlines,
// which embedding models handle poorly in long runs.
func embedInput(text string) string {
	if len(text) > maxEmbedBytes {
		text = strings.ToValidUTF8(text[:maxEmbedBytes], "")
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ").Replace(text)
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
