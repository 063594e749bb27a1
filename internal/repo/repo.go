// Package repo implements the in-memory version-control state and the
// operations that mutate it.
//
// A Repository is not safe for concurrent use; callers serialize access.
package repo

import (
	"fmt"
	"time"

	"github.com/keshon/minigit/internal/branch"
	"github.com/keshon/minigit/internal/graph"
	"github.com/keshon/minigit/internal/snapshot"
)

// DefaultBranch is the branch created by Init.
const DefaultBranch = "main"

// Repository holds the working set, the staging area, the commit graph,
// the branch registry and the undo/redo stacks.
type Repository struct {
	graph    *graph.Graph
	branches *branch.Registry
	working  *snapshot.Snapshot
	staging  *snapshot.Snapshot
	undo     refStack
	redo     refStack
	root     graph.Ref

	initialized   bool
	defaultBranch string
	clock         func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the clock used for commit timestamps.
func WithClock(clock func() time.Time) Option {
	return func(r *Repository) { r.clock = clock }
}

// WithDefaultBranch overrides the branch name created by Init.
func WithDefaultBranch(name string) Option {
	return func(r *Repository) {
		if name != "" {
			r.defaultBranch = name
		}
	}
}

// New returns an uninitialized Repository.
func New(opts ...Option) *Repository {
	r := &Repository{defaultBranch: DefaultBranch, clock: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	r.clear()
	return r
}

// clear drops all state, leaving options intact.
func (r *Repository) clear() {
	r.graph = graph.New(graph.WithClock(r.clock))
	r.branches = branch.NewRegistry()
	r.working = snapshot.New()
	r.staging = snapshot.New()
	r.undo.clear()
	r.redo.clear()
	r.root = graph.NoRef
	r.initialized = false
}

// Initialized reports whether Init has run.
func (r *Repository) Initialized() bool { return r.initialized }

// Working returns a copy of the working files.
func (r *Repository) Working() *snapshot.Snapshot { return r.working.Copy() }

// Staging returns a copy of the staging area.
func (r *Repository) Staging() *snapshot.Snapshot { return r.staging.Copy() }

// ActiveBranch returns the active branch name, or "" before Init.
func (r *Repository) ActiveBranch() string {
	b, _ := r.branches.Active()
	return b.Name
}

// HeadID returns the id of the active branch head, or "" when it has none.
func (r *Repository) HeadID() string {
	return r.graph.ID(r.head())
}

// RootID returns the id of the first commit, or "".
func (r *Repository) RootID() string { return r.graph.ID(r.root) }

// UndoDepth returns the number of entries on the undo stack.
func (r *Repository) UndoDepth() int { return r.undo.size() }

// RedoDepth returns the number of entries on the redo stack.
func (r *Repository) RedoDepth() int { return r.redo.size() }

// CommitCount returns the number of commits ever created.
func (r *Repository) CommitCount() int { return r.graph.Len() }

// History returns the active head and its ancestors as records, newest first.
func (r *Repository) History() []graph.Record {
	return r.graph.History(r.head())
}

// Lookup returns the record of the first commit with id, searching the
// active history and then the whole tree.
func (r *Repository) Lookup(id string) (graph.Record, bool) {
	rec, ok := r.graph.Record(r.find(id))
	return rec, ok
}

func (r *Repository) head() graph.Ref {
	b, ok := r.branches.Active()
	if !ok {
		return graph.NoRef
	}
	return b.Head
}

func (r *Repository) setHead(ref graph.Ref) {
	// the active branch always exists once initialized
	_ = r.branches.SetHead(r.ActiveBranch(), ref)
}

func (r *Repository) find(id string) graph.Ref {
	if ref := r.graph.FindInAncestry(r.head(), id); ref.Valid() {
		return ref
	}
	return r.graph.FindInSubtree(r.root, id)
}

func (r *Repository) ensureInit() error {
	if !r.initialized {
		return ErrNotInitialized
	}
	return nil
}

// record pushes a freshly created commit onto the undo history.
func (r *Repository) record(ref graph.Ref) {
	r.undo.push(ref)
	r.redo.clear()
}

func (r *Repository) String() string {
	return fmt.Sprintf("repo{branch=%s head=%s commits=%d}", r.ActiveBranch(), r.HeadID(), r.graph.Len())
}
