package graph_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/minigit/internal/graph"
	"github.com/keshon/minigit/internal/snapshot"
)

func snap(pairs ...string) *snapshot.Snapshot {
	s := snapshot.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Add(pairs[i], pairs[i+1])
	}
	return s
}

// buildTree creates:
//
//	a
//	├── b
//	│   └── d
//	└── c
func buildTree(t *testing.T) (*graph.Graph, map[string]graph.Ref) {
	t.Helper()
	g := graph.New()
	refs := map[string]graph.Ref{}
	add := func(id string, parent graph.Ref) graph.Ref {
		r := g.Create(id, "msg "+id, "ts", snap(id+".txt", id))
		g.Attach(parent, r)
		refs[id] = r
		return r
	}
	a := add("a", graph.NoRef)
	b := add("b", a)
	add("c", a)
	add("d", b)
	return g, refs
}

func TestCreateAndAttach(t *testing.T) {
	g, refs := buildTree(t)

	a, ok := g.Get(refs["a"])
	require.True(t, ok)
	assert.Equal(t, graph.NoRef, a.Parent)
	assert.Equal(t, []graph.Ref{refs["b"], refs["c"]}, a.Children)
	assert.Equal(t, refs["b"], g.Parent(refs["d"]))
	assert.Equal(t, 4, g.Len())
}

func TestCreate_CopiesSnapshot(t *testing.T) {
	g := graph.New()
	s := snap("f", "1")
	r := g.Create("x", "m", "ts", s)
	s.Add("f", "2")

	f, _ := g.Snapshot(r).Get("f")
	assert.Equal(t, "1", f.Content)

	// Snapshot hands out copies too
	out := g.Snapshot(r)
	out.Add("f", "3")
	f, _ = g.Snapshot(r).Get("f")
	assert.Equal(t, "1", f.Content)
}

func TestDepth(t *testing.T) {
	g, refs := buildTree(t)
	assert.Equal(t, 0, g.Depth(graph.NoRef))
	assert.Equal(t, 1, g.Depth(refs["a"]))
	assert.Equal(t, 3, g.Depth(refs["d"]))
	assert.Equal(t, 2, g.Depth(refs["c"]))
}

func TestFindInSubtree(t *testing.T) {
	g, refs := buildTree(t)
	assert.Equal(t, refs["d"], g.FindInSubtree(refs["a"], "d"))
	assert.Equal(t, refs["c"], g.FindInSubtree(refs["a"], "c"))
	assert.Equal(t, graph.NoRef, g.FindInSubtree(refs["b"], "c"))
	assert.Equal(t, graph.NoRef, g.FindInSubtree(graph.NoRef, "a"))
	assert.Equal(t, graph.NoRef, g.FindInSubtree(refs["a"], "zzz"))
}

func TestFindInSubtree_PreOrderOnDuplicateIDs(t *testing.T) {
	g := graph.New()
	root := g.Create("root", "", "", snapshot.New())
	left := g.Create("left", "", "", snapshot.New())
	g.Attach(root, left)
	deep := g.Create("dup", "", "", snapshot.New())
	g.Attach(left, deep)
	right := g.Create("dup", "", "", snapshot.New())
	g.Attach(root, right)

	// pre-order visits left's subtree before the right sibling
	assert.Equal(t, deep, g.FindInSubtree(root, "dup"))
}

func TestFindInAncestry(t *testing.T) {
	g, refs := buildTree(t)
	assert.Equal(t, refs["a"], g.FindInAncestry(refs["d"], "a"))
	assert.Equal(t, refs["d"], g.FindInAncestry(refs["d"], "d"))
	assert.Equal(t, graph.NoRef, g.FindInAncestry(refs["d"], "c"))
}

func TestAncestryAndHistory(t *testing.T) {
	g, refs := buildTree(t)
	assert.Equal(t, []graph.Ref{refs["d"], refs["b"], refs["a"]}, g.Ancestry(refs["d"]))
	assert.Empty(t, g.Ancestry(graph.NoRef))

	hist := g.History(refs["d"])
	require.Len(t, hist, 3)
	assert.Equal(t, "d", hist[0].ID)
	require.NotNil(t, hist[0].Parent)
	assert.Equal(t, "b", *hist[0].Parent)
	assert.Nil(t, hist[2].Parent)
	assert.Equal(t, []string{"b", "c"}, hist[2].Children)
	assert.Equal(t, 1, hist[1].FileCount)
	assert.Equal(t, []snapshot.File{{Name: "b.txt", Content: "b"}}, hist[1].Files)
}

func TestRecord_Unknown(t *testing.T) {
	_, ok := graph.New().Record(5)
	assert.False(t, ok)
}

func TestLongChain(t *testing.T) {
	g := graph.New()
	prev := graph.NoRef
	for i := 0; i < 100000; i++ {
		id := "c"
		if i == 99999 {
			id = "tail"
		}
		r := g.Create(id, "", "", snapshot.New())
		g.Attach(prev, r)
		prev = r
	}
	assert.Equal(t, 100000, g.Depth(prev))
	assert.Equal(t, prev, g.FindInSubtree(graph.Ref(0), "tail"))
	assert.Equal(t, prev-1, g.FindInAncestry(prev, "c"))
}

func TestStamp_UsesClock(t *testing.T) {
	at := time.Date(2024, time.March, 5, 9, 7, 3, 0, time.UTC)
	g := graph.New(graph.WithClock(func() time.Time { return at }))
	assert.Equal(t, "Tue Mar 05 09:07:03 2024", g.Stamp())
}
