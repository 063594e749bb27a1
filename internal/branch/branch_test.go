package branch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/minigit/internal/branch"
	"github.com/keshon/minigit/internal/graph"
)

func TestAdd_FirstBecomesActive(t *testing.T) {
	r := branch.NewRegistry()
	_, ok := r.Active()
	assert.False(t, ok)

	require.NoError(t, r.Add("main", graph.NoRef))
	require.NoError(t, r.Add("feature", graph.Ref(3)))

	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, "main", active.Name)
	assert.Equal(t, 2, r.Count())
}

func TestAdd_Duplicate(t *testing.T) {
	r := branch.NewRegistry()
	require.NoError(t, r.Add("main", graph.NoRef))
	err := r.Add("main", graph.Ref(1))
	assert.ErrorIs(t, err, branch.ErrExists)
}

func TestSwitch(t *testing.T) {
	r := branch.NewRegistry()
	require.NoError(t, r.Add("main", graph.NoRef))
	require.NoError(t, r.Add("dev", graph.NoRef))

	assert.True(t, r.Switch("dev"))
	assert.False(t, r.Switch("nope"))

	active, _ := r.Active()
	assert.Equal(t, "dev", active.Name)
}

func TestDelete(t *testing.T) {
	r := branch.NewRegistry()
	require.NoError(t, r.Add("main", graph.NoRef))
	require.NoError(t, r.Add("a", graph.NoRef))
	require.NoError(t, r.Add("b", graph.NoRef))

	assert.ErrorIs(t, r.Delete("main"), branch.ErrActive)
	assert.ErrorIs(t, r.Delete("zzz"), branch.ErrNotFound)
	require.NoError(t, r.Delete("a"))

	names := []string{}
	for _, info := range r.Enumerate() {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"main", "b"}, names)

	// a deleted name can be reused
	require.NoError(t, r.Add("a", graph.Ref(0)))
}

func TestSetHeadAndEnumerate(t *testing.T) {
	r := branch.NewRegistry()
	require.NoError(t, r.Add("main", graph.NoRef))
	require.NoError(t, r.Add("dev", graph.NoRef))
	require.NoError(t, r.SetHead("dev", graph.Ref(7)))
	assert.ErrorIs(t, r.SetHead("ghost", graph.Ref(1)), branch.ErrNotFound)

	assert.Equal(t, []branch.Info{
		{Name: "main", Active: true, Head: graph.NoRef},
		{Name: "dev", Active: false, Head: graph.Ref(7)},
	}, r.Enumerate())
}

func TestFind_ReturnsCopy(t *testing.T) {
	r := branch.NewRegistry()
	require.NoError(t, r.Add("main", graph.NoRef))
	b, _ := r.Find("main")
	b.Head = graph.Ref(9)

	again, _ := r.Find("main")
	assert.Equal(t, graph.NoRef, again.Head)
}
