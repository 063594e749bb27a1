package add

import (
	"fmt"
	"strings"

	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "add" }
func (c *Command) Short() string                  { return "A" }
func (c *Command) Aliases() []string              { return []string{"stage"} }
func (c *Command) Usage() string                  { return "add <filename> <content...>" }
func (c *Command) Brief() string                  { return "Stage a file with the given content" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Stage a file. The file is also written to the working files.

Usage:
  add <filename> <content...>  - words after the filename form the content
  add <filename>               - stage an empty file`
}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	name := ctx.Args[0]
	content := strings.Join(ctx.Args[1:], " ")

	resp := ctx.Service.Add(ctx.Ctx, name, content)
	if err := command.Report(ctx, resp); err != nil {
		return err
	}
	ctx.Printf("  %s\n", resp.Hash)
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
