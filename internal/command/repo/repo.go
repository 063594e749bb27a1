package repo

import (
	"fmt"

	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

// Command manages the repository registry. With no subcommand it lists.
type Command struct{}

func (c *Command) Name() string      { return "repo" }
func (c *Command) Short() string     { return "P" }
func (c *Command) Aliases() []string { return []string{"repos"} }
func (c *Command) Usage() string     { return "repo [list|create|switch|delete] [<name>]" }
func (c *Command) Brief() string     { return "Manage repositories" }
func (c *Command) Help() string {
	return `Every repository has its own branches, staging area and undo history.

Usage:
  repo                - list repositories
  repo create <name>  - create a repository
  repo switch <name>  - make name the current repository
  repo delete <name>  - delete a repository that is not current`
}

func (c *Command) Subcommands() []command.Command {
	return []command.Command{
		&listCommand{},
		&named{name: "create", short: "c", brief: "Create a repository", run: func(ctx *command.Context, name string) error {
			return command.Report(ctx, ctx.Service.CreateRepo(ctx.Ctx, name))
		}},
		&named{name: "switch", short: "s", brief: "Make a repository current", run: func(ctx *command.Context, name string) error {
			return command.Report(ctx, ctx.Service.SwitchRepo(name))
		}},
		&named{name: "delete", short: "d", brief: "Delete a repository", run: func(ctx *command.Context, name string) error {
			return command.Report(ctx, ctx.Service.DeleteRepo(ctx.Ctx, name))
		}},
	}
}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) > 0 {
		return fmt.Errorf("%w: repo %s", command.ErrUnknownCommand, ctx.Args[0])
	}
	return (&listCommand{}).Run(ctx)
}

type listCommand struct{}

func (c *listCommand) Name() string                   { return "list" }
func (c *listCommand) Short() string                  { return "l" }
func (c *listCommand) Aliases() []string              { return []string{"ls"} }
func (c *listCommand) Usage() string                  { return "repo list" }
func (c *listCommand) Brief() string                  { return "List repositories" }
func (c *listCommand) Help() string                   { return "List repositories, marking the current one and those with stored history only." }
func (c *listCommand) Subcommands() []command.Command { return nil }

func (c *listCommand) Run(ctx *command.Context) error {
	resp := ctx.Service.ListRepos(ctx.Ctx)
	if err := command.Report(ctx, resp); err != nil {
		return err
	}
	for _, r := range resp.Repositories {
		if !r.Loaded {
			ctx.Printf("  %-20s (stored only)\n", r.Name)
			continue
		}
		mark := " "
		if r.Current {
			mark = "*"
		}
		branch := r.Branch
		if branch == "" {
			branch = "-"
		}
		ctx.Printf("%s %-20s %-12s %d commit(s)\n", mark, r.Name, branch, r.Commits)
	}
	return nil
}

// named is shared by the subcommands that take exactly one repository name.
type named struct {
	name, short, brief string
	run                func(ctx *command.Context, name string) error
}

func (c *named) Name() string                   { return c.name }
func (c *named) Short() string                  { return c.short }
func (c *named) Aliases() []string              { return nil }
func (c *named) Usage() string                  { return "repo " + c.name + " <name>" }
func (c *named) Brief() string                  { return c.brief }
func (c *named) Help() string                   { return c.brief + ".\n\nUsage:\n  " + c.Usage() }
func (c *named) Subcommands() []command.Command { return nil }

func (c *named) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	return c.run(ctx, ctx.Args[0])
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
