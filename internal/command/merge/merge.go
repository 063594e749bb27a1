package merge

import (
	"fmt"

	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "merge" }
func (c *Command) Short() string                  { return "M" }
func (c *Command) Aliases() []string              { return nil }
func (c *Command) Usage() string                  { return "merge <branch>" }
func (c *Command) Brief() string                  { return "Merge a branch into the active one" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Create a merge commit on the active branch holding the union of both
heads. Files from the merged branch win on name collisions.

Usage:
  merge <branch>`
}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	return command.Report(ctx, ctx.Service.Merge(ctx.Ctx, ctx.Args[0]))
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
