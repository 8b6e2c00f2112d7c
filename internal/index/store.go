package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Store persists an Index as a single JSON document mapping each path to its
// record. Saves go through a temp file and an atomic rename, so a concurrent
// load never observes a half-written snapshot and a failed write leaves the
// previous snapshot intact.
type Store struct {
	path string
	lock *flock.Flock
}

// storeMeta is the sidecar written next to the index document. The index
// document itself carries no version or model field, so the model pin lives
// here.
type storeMeta struct {
	EmbeddingModel string `json:"embedding_model"`
}

// NewStore creates a store backed by the JSON file at path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the location of the backing file.
func (s *Store) Path() string { return s.path }

// Load reads the backing store into a fresh Index. A missing or unparsable
// file yields an empty index: a corrupt store must never prevent startup.
func (s *Store) Load() *Index {
	ix := NewIndex()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("cannot read index store, starting empty", "path", s.path, "error", err)
		}
		return ix
	}

	var docs map[string]DocumentRecord
	if err := json.Unmarshal(data, &docs); err != nil {
		slog.Warn("index store corrupt, starting empty",
			"path", s.path, "error", fmt.Errorf("%w: %v", ErrStoreCorrupt, err))
		return ix
	}
	ix.docs = docs
	if ix.docs == nil {
		ix.docs = make(map[string]DocumentRecord)
	}

	if meta, err := s.loadMeta(); err == nil {
		ix.model = meta.EmbeddingModel
	}
	return ix
}

// Save serializes the full mapping and atomically replaces the backing file.
// The file lock excludes concurrent writers from other processes; callers are
// responsible for not flushing the same Store concurrently in-process.
func (s *Store) Save(ix *Index) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: create store directory: %v", ErrStoreWriteFailed, err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("%w: lock %s: %v", ErrStoreWriteFailed, s.lock.Path(), err)
	}
	defer s.lock.Unlock()

	ix.mu.RLock()
	data, err := json.Marshal(ix.docs)
	model := ix.model
	ix.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrStoreWriteFailed, err)
	}
	if err := replaceFile(s.path, data); err != nil {
		return err
	}

	// The index and the meta sidecar are two separate renames, not one atomic
	// unit. A crash between them leaves a stale model pin, which at worst
	// triggers one spurious full rebuild on the next scan with a changed
	// model; it can never leave vectors attributed to the wrong model.
	meta, err := json.Marshal(storeMeta{EmbeddingModel: model})
	if err != nil {
		return fmt.Errorf("%w: marshal meta: %v", ErrStoreWriteFailed, err)
	}
	return replaceFile(s.metaPath(), meta)
}

// replaceFile writes data to a temp file in the target's directory and
// renames it over the target. Rename within one directory is atomic on POSIX
// systems, so readers see either the old or the new snapshot, never a mix.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrStoreWriteFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write temp file: %v", ErrStoreWriteFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync temp file: %v", ErrStoreWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %v", ErrStoreWriteFailed, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", ErrStoreWriteFailed, path, err)
	}
	return nil
}

func (s *Store) metaPath() string { return s.path + ".meta" }

func (s *Store) loadMeta() (storeMeta, error) {
	var meta storeMeta
	data, err := os.ReadFile(s.metaPath())
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, err
	}
	return meta, nil
}
