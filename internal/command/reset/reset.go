package reset

import (
	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "reset" }
func (c *Command) Short() string                  { return "X" }
func (c *Command) Aliases() []string              { return nil }
func (c *Command) Usage() string                  { return "reset" }
func (c *Command) Brief() string                  { return "Discard all repositories and start over" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Drop every repository and leave a single empty default repository.
Stored history is cleared as well.

Usage:
  reset`
}

func (c *Command) Run(ctx *command.Context) error {
	return command.Report(ctx, ctx.Service.Reset(ctx.Ctx))
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
