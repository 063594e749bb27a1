package initcmd

import (
	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "init" }
func (c *Command) Short() string                  { return "I" }
func (c *Command) Aliases() []string              { return nil }
func (c *Command) Usage() string                  { return "init" }
func (c *Command) Brief() string                  { return "Initialize the current repository" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Initialize the current repository with an empty default branch.

Usage:
  init`
}

func (c *Command) Run(ctx *command.Context) error {
	return command.Report(ctx, ctx.Service.Init(ctx.Ctx))
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
