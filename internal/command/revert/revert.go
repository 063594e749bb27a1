package revert

import (
	"fmt"

	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "revert" }
func (c *Command) Short() string                  { return "V" }
func (c *Command) Aliases() []string              { return nil }
func (c *Command) Usage() string                  { return "revert <commit-id>" }
func (c *Command) Brief() string                  { return "Restore the files of an earlier commit" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Create a new commit on the active branch with the files of the given
commit. The commit is looked up in the active history first, then in the
whole tree.

Usage:
  revert <commit-id>`
}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	return command.Report(ctx, ctx.Service.Revert(ctx.Ctx, ctx.Args[0]))
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
