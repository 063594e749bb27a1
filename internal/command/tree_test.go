package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stub struct {
	name    string
	aliases []string
	subs    []Command
}

func (s *stub) Name() string           { return s.name }
func (s *stub) Short() string          { return "" }
func (s *stub) Aliases() []string      { return s.aliases }
func (s *stub) Usage() string          { return s.name }
func (s *stub) Brief() string          { return s.name }
func (s *stub) Help() string           { return s.name }
func (s *stub) Subcommands() []Command { return s.subs }
func (s *stub) Run(ctx *Context) error { return nil }

func TestTree_Resolve(t *testing.T) {
	tree := NewTree()
	child := &stub{name: "list", aliases: []string{"ls"}}
	parent := &stub{name: "repo", aliases: []string{"repos"}, subs: []Command{child}}
	tree.Register(parent)

	node, rest, err := tree.Resolve([]string{"repo"})
	require.NoError(t, err)
	assert.Same(t, parent, node.Cmd)
	assert.Empty(t, rest)

	node, rest, err = tree.Resolve([]string{"repos", "ls", "extra"})
	require.NoError(t, err)
	assert.Same(t, child, node.Cmd)
	assert.Equal(t, []string{"extra"}, rest)

	node, rest, err = tree.Resolve([]string{"repo", "create", "x"})
	require.NoError(t, err)
	assert.Same(t, parent, node.Cmd)
	assert.Equal(t, []string{"create", "x"}, rest)

	_, _, err = tree.Resolve([]string{"nope"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
	_, _, err = tree.Resolve(nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestTree_Get(t *testing.T) {
	tree := NewTree()
	cmd := &stub{name: "status", aliases: []string{"st"}}
	tree.Register(cmd)

	got, ok := tree.Get("st")
	require.True(t, ok)
	assert.Same(t, cmd, got)
	_, ok = tree.Get("stat")
	assert.False(t, ok)
}
