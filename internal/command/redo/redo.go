package redo

import (
	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "redo" }
func (c *Command) Short() string                  { return "R" }
func (c *Command) Aliases() []string              { return nil }
func (c *Command) Usage() string                  { return "redo" }
func (c *Command) Brief() string                  { return "Re-apply the last undone commit" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Re-apply the most recently undone commit to the active branch.
Any new commit clears the redo history.

Usage:
  redo`
}

func (c *Command) Run(ctx *command.Context) error {
	return command.Report(ctx, ctx.Service.Redo(ctx.Ctx))
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
