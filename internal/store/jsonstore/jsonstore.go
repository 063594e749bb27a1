// Package jsonstore keeps one JSON document per repository on an fs.FS,
// next to an xxh3 checksum of its bytes.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/keshon/minigit/internal/fs"
	"github.com/keshon/minigit/internal/graph"
	"github.com/keshon/minigit/internal/store"
	"github.com/keshon/minigit/internal/util"
)

const (
	dataExt     = ".json"
	checksumExt = ".xxh3"
)

// Store is a store.HistoryStore over an fs.FS directory.
type Store struct {
	mu     sync.Mutex
	fsys   fs.FS
	dir    string
	closed bool
}

// Options allows optional dependency injection.
type Options struct {
	FS       fs.FS
	Compress bool
}

// New opens a store rooted at dir, creating it when missing. Without an
// FS in opts the store reads and writes the local disk.
func New(dir string, opts *Options) (*Store, error) {
	fsys := fs.FS(fs.NewOSFS())
	if opts != nil && opts.FS != nil {
		fsys = opts.FS
	}
	if opts != nil && opts.Compress {
		fsys = fs.NewCompressedFS(fsys)
	}

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir %q: %w", dir, err)
	}
	return &Store{fsys: fsys, dir: dir}, nil
}

// NewMemory returns a store that lives only in memory.
func NewMemory() *Store {
	s, _ := New("history", &Options{FS: fs.NewMemoryFS()})
	return s
}

func (s *Store) dataPath(repo string) string {
	return filepath.Join(s.dir, repo+dataExt)
}

func (s *Store) checksumPath(repo string) string {
	return filepath.Join(s.dir, repo+checksumExt)
}

func checksum(data []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(data))
}

func (s *Store) Save(ctx context.Context, repo string, records []graph.Record) error {
	if err := store.ValidateName(repo); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []graph.Record{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode history %s: %w", repo, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}

	if err := util.WriteAtomic(s.fsys, s.dataPath(repo), data); err != nil {
		return fmt.Errorf("write history %s: %w", repo, err)
	}
	if err := util.WriteAtomic(s.fsys, s.checksumPath(repo), []byte(checksum(data))); err != nil {
		return fmt.Errorf("write checksum %s: %w", repo, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, repo string) ([]graph.Record, error) {
	if err := store.ValidateName(repo); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, store.ErrClosed
	}

	data, err := s.fsys.ReadFile(s.dataPath(repo))
	if err != nil {
		if s.fsys.IsNotExist(err) {
			return []graph.Record{}, nil
		}
		return nil, fmt.Errorf("read history %s: %w", repo, err)
	}

	sum, err := s.fsys.ReadFile(s.checksumPath(repo))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: missing checksum: %v", store.ErrCorrupt, repo, err)
	}
	if got := checksum(data); got != strings.TrimSpace(string(sum)) {
		return nil, fmt.Errorf("%w: %s: checksum %s does not match %s", store.ErrCorrupt, repo, got, sum)
	}

	var records []graph.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrCorrupt, repo, err)
	}
	return records, nil
}

// Delete removes the stored history of repo. Deleting an unknown
// repository is not an error.
func (s *Store) Delete(ctx context.Context, repo string) error {
	if err := store.ValidateName(repo); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}

	for _, p := range []string{s.dataPath(repo), s.checksumPath(repo)} {
		if err := s.fsys.Remove(p); err != nil && !s.fsys.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return nil
}

// Repositories lists the repository names that have stored history.
func (s *Store) Repositories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, store.ErrClosed
	}

	entries, err := s.fsys.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), dataExt) {
			continue
		}
		set[strings.TrimSuffix(e.Name(), dataExt)] = struct{}{}
	}
	return util.SortedKeys(set), nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
