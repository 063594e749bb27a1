package checkout

import (
	"fmt"

	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "checkout" }
func (c *Command) Short() string                  { return "K" }
func (c *Command) Aliases() []string              { return []string{"co", "switch"} }
func (c *Command) Usage() string                  { return "checkout <branch>" }
func (c *Command) Brief() string                  { return "Switch to another branch" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Activate a branch, restore its head files into the working files
and clear the staging area.

Usage:
  checkout <branch>`
}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	return command.Report(ctx, ctx.Service.Checkout(ctx.Ctx, ctx.Args[0]))
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
