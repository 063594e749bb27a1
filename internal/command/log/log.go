package log

import (
	"strings"

	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "log" }
func (c *Command) Short() string                  { return "L" }
func (c *Command) Aliases() []string              { return []string{"lg"} }
func (c *Command) Usage() string                  { return "log [--oneline]" }
func (c *Command) Brief() string                  { return "Show the history of the active branch" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Show commits of the active branch, newest first.

Usage:
  log            - full entries
  log --oneline  - one line per commit`
}

func (c *Command) Run(ctx *command.Context) error {
	oneline := false
	for _, a := range ctx.Args {
		if a == "--oneline" {
			oneline = true
		}
	}

	resp := ctx.Service.Log(ctx.Ctx)
	if err := command.Report(ctx, resp); err != nil {
		return err
	}

	for _, rec := range resp.Commits {
		if oneline {
			ctx.Printf("%s %s\n", rec.ID, firstLine(rec.Message))
			continue
		}
		ctx.Printf("\ncommit %s\n", rec.ID)
		if rec.Parent != nil {
			ctx.Printf("Parent: %s\n", *rec.Parent)
		}
		ctx.Printf("Date:   %s\nFiles:  %d\n\n", rec.Timestamp, rec.FileCount)
		for _, line := range strings.Split(rec.Message, "\n") {
			ctx.Printf("    %s\n", line)
		}
	}
	if len(resp.Commits) > 0 && resp.Total != nil {
		ctx.Printf("\n%d commit(s)\n", *resp.Total)
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
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
