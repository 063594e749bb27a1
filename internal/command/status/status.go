package status

import (
	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
	"github.com/keshon/minigit/internal/service"
)

type Command struct{}

func (c *Command) Name() string                   { return "status" }
func (c *Command) Short() string                  { return "S" }
func (c *Command) Aliases() []string              { return []string{"st"} }
func (c *Command) Usage() string                  { return "status" }
func (c *Command) Brief() string                  { return "Show staged and working files" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Show the active branch, staged files, working files and undo/redo depth.

Usage:
  status`
}

func (c *Command) Run(ctx *command.Context) error {
	resp := ctx.Service.Status(ctx.Ctx)
	if err := command.Report(ctx, resp); err != nil {
		return err
	}
	if resp.CommitID != "" {
		ctx.Printf("HEAD: %s\n", resp.CommitID)
	}

	printFiles(ctx, "Staged files:", "  (nothing staged)", resp.Staged)
	printFiles(ctx, "Working files:", "  (no files)", resp.Working)

	ctx.Printf("\nUndo: %d  Redo: %d\n", deref(resp.UndoCount), deref(resp.RedoCount))
	return nil
}

func printFiles(ctx *command.Context, title, empty string, files []service.FileEntry) {
	ctx.Println()
	ctx.Println(title)
	if len(files) == 0 {
		ctx.Println(empty)
		return
	}
	for _, f := range files {
		ctx.Printf("  %s  %s\n", f.Hash, f.Name)
	}
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
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
