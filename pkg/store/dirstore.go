// ABOUTME: Directory-backed canonical asset store
// ABOUTME: Streams assets for playback, stages ingestion writes atomically
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const lockFile = ".padbank.lock"

// DirStore keeps canonical assets as plain files under one root
// directory. Refs are slash-separated paths relative to the root, e.g.
// "kick/808.wav". Ingestion writes are staged to a temp file and
// renamed into place on commit, so a readable asset is always a
// complete one; a crash mid-write leaves only staging litter behind.
type DirStore struct {
	root string
}

// NewDirStore opens (creating if needed) a store rooted at dir.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store root: %w", err)
	}
	return &DirStore{root: dir}, nil
}

// Root returns the store's root directory.
func (s *DirStore) Root() string { return s.root }

// Open opens an asset for streaming playback.
func (s *DirStore) Open(ref string) (io.ReadSeekCloser, error) {
	path, err := s.path(ref)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	return f, nil
}

// Create begins an ingestion write for ref. The write goes to a staging
// file; Commit renames it over any previous asset under the same ref
// (supersede, never merge). An exclusive lock on the library serializes
// ingestion across processes for the duration of the write.
func (s *DirStore) Create(ref string) (*Staged, error) {
	final, err := s.path(ref)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(final), 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}

	lock := flock.New(filepath.Join(s.root, lockFile))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock library: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(final), ".staging-"+uuid.New().String())
	f, err := os.Create(tmp)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("create staging file: %w", err)
	}

	return &Staged{f: f, tmp: tmp, final: final, lock: lock}, nil
}

func (s *DirStore) path(ref string) (string, error) {
	if ref == "" || !filepath.IsLocal(filepath.FromSlash(ref)) {
		return "", fmt.Errorf("invalid asset ref %q", ref)
	}
	return filepath.Join(s.root, filepath.FromSlash(ref)), nil
}

// Staged is an in-progress ingestion write.
type Staged struct {
	f     *os.File
	tmp   string
	final string
	lock  *flock.Flock
	done  bool
}

// Write appends converted bytes to the staging file.
func (w *Staged) Write(p []byte) (int, error) {
	return w.f.Write(p)
}

// Commit finalizes the write: the staging file replaces the asset under
// the target ref in one rename.
func (w *Staged) Commit() error {
	if w.done {
		return nil
	}
	w.done = true
	defer w.lock.Unlock()

	if err := w.f.Close(); err != nil {
		os.Remove(w.tmp)
		return fmt.Errorf("close staging file: %w", err)
	}
	if err := os.Rename(w.tmp, w.final); err != nil {
		os.Remove(w.tmp)
		return fmt.Errorf("commit asset: %w", err)
	}
	return nil
}

// Abort discards the staging file, leaving any previous asset under the
// ref untouched.
func (w *Staged) Abort() {
	if w.done {
		return
	}
	w.done = true
	w.f.Close()
	os.Remove(w.tmp)
	w.lock.Unlock()
}
