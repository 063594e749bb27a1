package branch

import (
	"fmt"

	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "branch" }
func (c *Command) Short() string                  { return "B" }
func (c *Command) Aliases() []string              { return []string{"br"} }
func (c *Command) Usage() string                  { return "branch [<name> | -d <name>]" }
func (c *Command) Brief() string                  { return "List, create or delete branches" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `List all branches, create a new one or delete one.

Usage:
  branch            - list all branches (active marked with '*')
  branch <name>     - create a branch at the active head
  branch -d <name>  - delete a branch that is not active`
}

func (c *Command) Run(ctx *command.Context) error {
	switch {
	case len(ctx.Args) == 0:
		return list(ctx)
	case ctx.Args[0] == "-d" || ctx.Args[0] == "--delete":
		if len(ctx.Args) != 2 {
			return fmt.Errorf("usage: %s", c.Usage())
		}
		return command.Report(ctx, ctx.Service.DeleteBranch(ctx.Ctx, ctx.Args[1]))
	default:
		return command.Report(ctx, ctx.Service.CreateBranch(ctx.Ctx, ctx.Args[0]))
	}
}

func list(ctx *command.Context) error {
	resp := ctx.Service.Branches(ctx.Ctx)
	if !resp.Success {
		return command.Report(ctx, resp)
	}
	ctx.Println("Branches:")
	for _, b := range resp.Branches {
		prefix := "  "
		if b.Active {
			prefix = "* "
		}
		head := "(no commits)"
		if b.Head != nil {
			head = *b.Head
		}
		ctx.Printf("%s%s  %s\n", prefix, b.Name, head)
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
