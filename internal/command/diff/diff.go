package diff

import (
	"fmt"

	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "diff" }
func (c *Command) Short() string                  { return "D" }
func (c *Command) Aliases() []string              { return nil }
func (c *Command) Usage() string                  { return "diff <filename>" }
func (c *Command) Brief() string                  { return "Compare a working file with the last commit" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Compare a working file with its version in the active branch head.
Files are compared whole by fingerprint.

Usage:
  diff <filename>`
}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	resp := ctx.Service.Diff(ctx.Ctx, ctx.Args[0])
	if err := command.Report(ctx, resp); err != nil {
		return err
	}
	if resp.Status == "modified" {
		ctx.Printf("--- committed [%s]\n%s\n", resp.CommittedHash, *resp.CommittedContent)
		ctx.Printf("+++ working   [%s]\n%s\n", resp.WorkingHash, *resp.WorkingContent)
	}
	return nil
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
