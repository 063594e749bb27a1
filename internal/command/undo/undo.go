package undo

import (
	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "undo" }
func (c *Command) Short() string                  { return "U" }
func (c *Command) Aliases() []string              { return nil }
func (c *Command) Usage() string                  { return "undo" }
func (c *Command) Brief() string                  { return "Undo the last commit operation" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Move the active branch head back to the parent of the most recent
commit, merge or revert. Undo history is shared by all branches, so after a
checkout this rewinds the branch you are on.

Usage:
  undo`
}

func (c *Command) Run(ctx *command.Context) error {
	return command.Report(ctx, ctx.Service.Undo(ctx.Ctx))
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
			middleware.WithInitCheck(),
		),
	)
}
