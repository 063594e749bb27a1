package command

import (
	"errors"
	"fmt"
)

var ErrUnknownCommand = errors.New("unknown command")

// Node represents a node in the command tree.
type Node struct {
	Cmd         Command
	Subcommands map[string]*Node
}

// CommandTree manages all commands and subcommands.
type CommandTree struct {
	root *Node
}

// NewTree creates a new empty command tree.
func NewTree() *CommandTree {
	return &CommandTree{
		root: &Node{Subcommands: make(map[string]*Node)},
	}
}

// Register inserts a command under its name and aliases, with all its
// subcommands.
func (t *CommandTree) Register(cmd Command) {
	t.insert(t.root, cmd)
}

// Get returns a top-level command by name or alias.
func (t *CommandTree) Get(name string) (Command, bool) {
	node, ok := t.root.Subcommands[name]
	if !ok {
		return nil, false
	}
	return node.Cmd, true
}

func (t *CommandTree) insert(node *Node, cmd Command) {
	sub := &Node{Cmd: cmd, Subcommands: make(map[string]*Node)}
	for _, subcmd := range cmd.Subcommands() {
		t.insert(sub, subcmd)
	}
	for _, n := range append([]string{cmd.Name()}, cmd.Aliases()...) {
		node.Subcommands[n] = sub
	}
}

// Resolve walks down the tree following args and returns the deepest
// command with the args left over.
func (t *CommandTree) Resolve(args []string) (*Node, []string, error) {
	node := t.root
	rest := args
	for len(rest) > 0 {
		next, ok := node.Subcommands[rest[0]]
		if !ok {
			break
		}
		node = next
		rest = rest[1:]
	}
	if node.Cmd == nil {
		if len(args) > 0 {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
		}
		return nil, nil, ErrUnknownCommand
	}
	return node, rest, nil
}
