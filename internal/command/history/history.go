package history

import (
	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "history" }
func (c *Command) Short() string                  { return "H" }
func (c *Command) Aliases() []string              { return []string{"stored"} }
func (c *Command) Usage() string                  { return "history" }
func (c *Command) Brief() string                  { return "Show the persisted history" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Show the history last written to the store for the current repository.

Usage:
  history`
}

func (c *Command) Run(ctx *command.Context) error {
	resp := ctx.Service.History(ctx.Ctx)
	if err := command.Report(ctx, resp); err != nil {
		return err
	}
	for _, rec := range resp.Commits {
		ctx.Printf("%s  %s  %-3d %s\n", rec.ID, rec.Timestamp, rec.FileCount, rec.Message)
	}
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
