package export

import (
	"fmt"

	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
	"github.com/keshon/minigit/internal/progress"
	"github.com/keshon/minigit/internal/service"
)

type Command struct{}

func (c *Command) Name() string                   { return "export" }
func (c *Command) Short() string                  { return "E" }
func (c *Command) Aliases() []string              { return nil }
func (c *Command) Usage() string                  { return "export [<dir>] [--quiet]" }
func (c *Command) Brief() string                  { return "Write the active history into a git repository" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Replay the active branch history as git commits.

Usage:
  export          - build the git repository in memory and print the hashes
  export <dir>    - create a new git repository at dir
  export --quiet  - no progress output`
}

func (c *Command) Run(ctx *command.Context) error {
	dir := ""
	quiet := false
	for _, a := range ctx.Args {
		switch {
		case a == "--quiet" || a == "-q":
			quiet = true
		case dir == "":
			dir = a
		default:
			return fmt.Errorf("usage: %s", c.Usage())
		}
	}

	var bar *progress.Tracker
	var opts []service.ExportOption
	if !quiet {
		opts = append(opts, service.WithExportProgress(func(done, total int) {
			if bar == nil {
				bar = progress.New(ctx.Out, total, "Exporting", "commits")
			}
			bar.SetCurrent(done)
		}))
	}

	resp := ctx.Service.Export(ctx.Ctx, dir, opts...)
	if bar != nil {
		bar.Finish()
	}
	if err := command.Report(ctx, resp); err != nil {
		return err
	}
	for _, h := range resp.GitHashes {
		ctx.Println("  " + h)
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
