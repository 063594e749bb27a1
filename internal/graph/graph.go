// Package graph stores the commit history tree.
//
// Commits live in an arena and are addressed by Ref, their position in it.
// Branch heads and undo/redo entries hold Refs, never the commits themselves,
// and commits are never removed, so a Ref stays valid for the life of a Graph.
package graph

import (
	"time"

	"github.com/keshon/minigit/internal/snapshot"
)

// TimestampLayout is the layout of Commit.Timestamp.
const TimestampLayout = "Mon Jan 02 15:04:05 2006"

// Ref addresses a commit inside a Graph.
type Ref int

// NoRef is the null reference.
const NoRef Ref = -1

// Valid reports whether r points at a commit slot.
func (r Ref) Valid() bool { return r >= 0 }

// Commit is one node of the history tree. Only Children grows after creation.
type Commit struct {
	ID        string
	Message   string
	Timestamp string
	Parent    Ref
	Children  []Ref
	Snapshot  *snapshot.Snapshot
}

// Graph is an append-only arena of commits.
type Graph struct {
	commits []*Commit
	clock   func() time.Time
}

// Option configures a Graph.
type Option func(*Graph)

// WithClock sets the clock used by Stamp.
func WithClock(clock func() time.Time) Option {
	return func(g *Graph) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// New returns an empty Graph.
func New(opts ...Option) *Graph {
	g := &Graph{clock: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Stamp returns the current time formatted as a commit timestamp.
func (g *Graph) Stamp() string {
	return g.clock().Format(TimestampLayout)
}

// Len returns the number of commits ever created.
func (g *Graph) Len() int { return len(g.commits) }

// Create adds an unattached commit holding a private copy of snap.
func (g *Graph) Create(id, message, timestamp string, snap *snapshot.Snapshot) Ref {
	g.commits = append(g.commits, &Commit{
		ID:        id,
		Message:   message,
		Timestamp: timestamp,
		Parent:    NoRef,
		Snapshot:  snap.Copy(),
	})
	return Ref(len(g.commits) - 1)
}

// Attach links child under parent. A NoRef parent leaves child as a root.
func (g *Graph) Attach(parent, child Ref) {
	c := g.commit(child)
	if c == nil {
		return
	}
	c.Parent = parent
	if p := g.commit(parent); p != nil {
		p.Children = append(p.Children, child)
	}
}

// Get returns the commit at ref. The result must be treated as read-only.
func (g *Graph) Get(ref Ref) (*Commit, bool) {
	c := g.commit(ref)
	return c, c != nil
}

// ID returns the commit id at ref, or "" for NoRef.
func (g *Graph) ID(ref Ref) string {
	if c := g.commit(ref); c != nil {
		return c.ID
	}
	return ""
}

// Parent returns the parent of ref, or NoRef.
func (g *Graph) Parent(ref Ref) Ref {
	if c := g.commit(ref); c != nil {
		return c.Parent
	}
	return NoRef
}

// Snapshot returns a copy of the snapshot stored at ref.
// NoRef yields an empty snapshot.
func (g *Graph) Snapshot(ref Ref) *snapshot.Snapshot {
	if c := g.commit(ref); c != nil {
		return c.Snapshot.Copy()
	}
	return snapshot.New()
}

// Depth counts the commits on the parent chain starting at ref, inclusive.
func (g *Graph) Depth(ref Ref) int {
	n := 0
	for c := g.commit(ref); c != nil; c = g.commit(c.Parent) {
		n++
	}
	return n
}

// FindInSubtree searches the subtree under root in pre-order
// (node, then children left to right) and returns the first commit with id.
func (g *Graph) FindInSubtree(root Ref, id string) Ref {
	if g.commit(root) == nil {
		return NoRef
	}
	stack := []Ref{root}
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := g.commit(ref)
		if c.ID == id {
			return ref
		}
		for i := len(c.Children) - 1; i >= 0; i-- {
			stack = append(stack, c.Children[i])
		}
	}
	return NoRef
}

// FindInAncestry walks parent links from ref and returns the first commit with id.
func (g *Graph) FindInAncestry(ref Ref, id string) Ref {
	for c := g.commit(ref); c != nil; ref, c = c.Parent, g.commit(c.Parent) {
		if c.ID == id {
			return ref
		}
	}
	return NoRef
}

// Ancestry returns ref and its ancestors, newest first.
func (g *Graph) Ancestry(ref Ref) []Ref {
	var out []Ref
	for c := g.commit(ref); c != nil; ref, c = c.Parent, g.commit(c.Parent) {
		out = append(out, ref)
	}
	return out
}

func (g *Graph) commit(ref Ref) *Commit {
	if ref < 0 || int(ref) >= len(g.commits) {
		return nil
	}
	return g.commits[ref]
}
