// Package gitexport replays a commit history into a real git repository.
package gitexport

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/keshon/minigit/internal/graph"
	"github.com/keshon/minigit/internal/snapshot"
)

var (
	ErrNoHistory  = errors.New("no commits to export")
	ErrUnsafePath = errors.New("file name escapes the worktree")
)

// Options controls where and as whom the history is written.
// An empty Dir exports into memory.
type Options struct {
	Dir         string
	AuthorName  string
	AuthorEmail string
	// Progress, when set, is called after each replayed record.
	Progress func(done, total int)
}

// Result holds the exported repository and the git hash of every replayed
// record, oldest first.
type Result struct {
	Repository *git.Repository
	Hashes     []string
}

// Head returns the hash of the last exported commit.
func (r *Result) Head() string {
	if len(r.Hashes) == 0 {
		return ""
	}
	return r.Hashes[len(r.Hashes)-1]
}

// Export writes records, given newest first, as a linear git history. Each
// record's files become the whole tree of its git commit.
func Export(ctx context.Context, records []graph.Record, opts Options) (*Result, error) {
	if len(records) == 0 {
		return nil, ErrNoHistory
	}
	if opts.AuthorName == "" {
		opts.AuthorName = "minigit"
	}
	if opts.AuthorEmail == "" {
		opts.AuthorEmail = "minigit@localhost"
	}

	repo, err := open(opts.Dir)
	if err != nil {
		return nil, err
	}
	w, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	res := &Result{Repository: repo, Hashes: make([]string, 0, len(records))}
	tracked := snapshot.New()

	for i := len(records) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := records[i]

		next := snapshot.New()
		for _, f := range rec.Files {
			name, err := clean(f.Name)
			if err != nil {
				return nil, fmt.Errorf("commit %s: %w", rec.ID, err)
			}
			if err := writeFile(w.Filesystem, name, f.Content); err != nil {
				return nil, fmt.Errorf("commit %s: write %s: %w", rec.ID, name, err)
			}
			if _, err := w.Add(name); err != nil {
				return nil, fmt.Errorf("commit %s: stage %s: %w", rec.ID, name, err)
			}
			next.Add(name, f.Content)
		}
		for _, name := range tracked.Names() {
			if next.Has(name) {
				continue
			}
			if _, err := w.Remove(name); err != nil {
				return nil, fmt.Errorf("commit %s: remove %s: %w", rec.ID, name, err)
			}
		}
		tracked = next

		sig := &object.Signature{Name: opts.AuthorName, Email: opts.AuthorEmail, When: when(rec.Timestamp)}
		hash, err := w.Commit(message(rec), &git.CommitOptions{
			Author:            sig,
			Committer:         sig,
			AllowEmptyCommits: true,
		})
		if err != nil {
			return nil, fmt.Errorf("commit %s: %w", rec.ID, err)
		}
		res.Hashes = append(res.Hashes, hash.String())
		if opts.Progress != nil {
			opts.Progress(len(res.Hashes), len(records))
		}
	}
	return res, nil
}

func open(dir string) (*git.Repository, error) {
	if dir == "" {
		repo, err := git.Init(memory.NewStorage(), memfs.New())
		if err != nil {
			return nil, fmt.Errorf("init in-memory repository: %w", err)
		}
		return repo, nil
	}
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return nil, fmt.Errorf("init repository at %s: %w", dir, err)
	}
	return repo, nil
}

func clean(name string) (string, error) {
	p := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if p == "." || p == ".git" || strings.HasPrefix(p, "/") || p == ".." ||
		strings.HasPrefix(p, "../") || strings.HasPrefix(p, ".git/") {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return p, nil
}

func writeFile(fsys billy.Filesystem, name, content string) error {
	if dir := path.Dir(name); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return util.WriteFile(fsys, name, []byte(content), 0o644)
}

func message(rec graph.Record) string {
	return fmt.Sprintf("%s\n\nminigit-id: %s\n", rec.Message, rec.ID)
}

// when parses a commit timestamp in local time. Unparseable stamps fall
// back to the zero Unix time so exports stay reproducible.
func when(ts string) time.Time {
	t, err := time.ParseInLocation(graph.TimestampLayout, ts, time.Local)
	if err != nil {
		return time.Unix(0, 0)
	}
	return t
}
