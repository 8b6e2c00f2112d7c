package index

import "errors"

var (
	// ErrExtractionFailed marks a format-specific read error. The file is
	// skipped for this scan and no record is written.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrEmbeddingUnavailable marks an unreachable or erroring embedding
	// backend. The file is skipped and retried on the next scan, since no
	// record is written for it.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrSummaryUnavailable is non-fatal: the fallback summary text is
	// substituted and the record is still written.
	ErrSummaryUnavailable = errors.New("summary unavailable")

	// ErrStoreCorrupt marks an unparsable index file on load. The store is
	// discarded and indexing starts empty; never propagated to callers.
	ErrStoreCorrupt = errors.New("index store corrupt")

	// ErrStoreWriteFailed marks a failed flush. The previously persisted
	// snapshot stays intact; the error is surfaced to the scan's caller.
	ErrStoreWriteFailed = errors.New("index store write failed")
)
