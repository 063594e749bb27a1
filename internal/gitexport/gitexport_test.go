package gitexport_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/minigit/internal/gitexport"
	"github.com/keshon/minigit/internal/graph"
	"github.com/keshon/minigit/internal/snapshot"
)

// newest first, as produced by graph.History
func history() []graph.Record {
	return []graph.Record{
		{ID: "00000003", Message: "drop b", Timestamp: "Wed May 01 08:30:02 2024",
			Files: []snapshot.File{{Name: "a.txt", Content: "v2"}, {Name: "docs/readme.md", Content: "# hi"}}},
		{ID: "00000002", Message: "second", Timestamp: "Wed May 01 08:30:01 2024",
			Files: []snapshot.File{{Name: "a.txt", Content: "v2"}, {Name: "b.txt", Content: "b"}}},
		{ID: "00000001", Message: "first", Timestamp: "Wed May 01 08:30:00 2024",
			Files: []snapshot.File{{Name: "a.txt", Content: "v1"}}},
	}
}

func fileContent(t *testing.T, c *object.Commit, name string) (string, bool) {
	t.Helper()
	f, err := c.File(name)
	if errors.Is(err, object.ErrFileNotFound) {
		return "", false
	}
	require.NoError(t, err)
	s, err := f.Contents()
	require.NoError(t, err)
	return s, true
}

func TestExport_InMemory(t *testing.T) {
	res, err := gitexport.Export(context.Background(), history(), gitexport.Options{})
	require.NoError(t, err)
	require.Len(t, res.Hashes, 3)
	assert.Equal(t, res.Hashes[2], res.Head())

	head, err := res.Repository.CommitObject(plumbing.NewHash(res.Head()))
	require.NoError(t, err)
	assert.Contains(t, head.Message, "drop b")
	assert.Contains(t, head.Message, "minigit-id: 00000003")
	assert.Equal(t, "minigit", head.Author.Name)
	assert.Equal(t, 2024, head.Author.When.Year())

	got, ok := fileContent(t, head, "docs/readme.md")
	require.True(t, ok)
	assert.Equal(t, "# hi", got)
	_, ok = fileContent(t, head, "b.txt")
	assert.False(t, ok, "b.txt should be removed in the last commit")

	first, err := res.Repository.CommitObject(plumbing.NewHash(res.Hashes[0]))
	require.NoError(t, err)
	got, _ = fileContent(t, first, "a.txt")
	assert.Equal(t, "v1", got)
	assert.Zero(t, first.NumParents())

	iter, err := res.Repository.Log(&git.LogOptions{From: head.Hash})
	require.NoError(t, err)
	count := 0
	require.NoError(t, iter.ForEach(func(*object.Commit) error { count++; return nil }))
	assert.Equal(t, 3, count)
}

func TestExport_IdenticalSnapshots(t *testing.T) {
	recs := []graph.Record{
		{ID: "2", Message: "Revert to 1", Timestamp: "Wed May 01 08:30:01 2024", Files: []snapshot.File{{Name: "a", Content: "x"}}},
		{ID: "1", Message: "one", Timestamp: "Wed May 01 08:30:00 2024", Files: []snapshot.File{{Name: "a", Content: "x"}}},
	}
	res, err := gitexport.Export(context.Background(), recs, gitexport.Options{AuthorName: "dev", AuthorEmail: "dev@example.com"})
	require.NoError(t, err)
	assert.Len(t, res.Hashes, 2)
	assert.NotEqual(t, res.Hashes[0], res.Hashes[1])
}

func TestExport_Dir(t *testing.T) {
	dir := t.TempDir()
	res, err := gitexport.Export(context.Background(), history(), gitexport.Options{Dir: dir})
	require.NoError(t, err)

	reopened, err := git.PlainOpen(dir)
	require.NoError(t, err)
	ref, err := reopened.Head()
	require.NoError(t, err)
	assert.Equal(t, res.Head(), ref.Hash().String())

	_, err = gitexport.Export(context.Background(), history(), gitexport.Options{Dir: dir})
	assert.Error(t, err, "exporting into an existing repository must fail")
}

func TestExport_Errors(t *testing.T) {
	_, err := gitexport.Export(context.Background(), nil, gitexport.Options{})
	assert.ErrorIs(t, err, gitexport.ErrNoHistory)

	bad := []graph.Record{{ID: "1", Message: "m", Files: []snapshot.File{{Name: "../evil", Content: "x"}}}}
	_, err = gitexport.Export(context.Background(), bad, gitexport.Options{})
	assert.ErrorIs(t, err, gitexport.ErrUnsafePath)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gitexport.Export(ctx, history(), gitexport.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExport_Progress(t *testing.T) {
	var seen []int
	_, err := gitexport.Export(context.Background(), history(), gitexport.Options{
		Progress: func(done, total int) {
			assert.Equal(t, 3, total)
			seen = append(seen, done)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
}
