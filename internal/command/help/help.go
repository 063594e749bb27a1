package help

import (
	"fmt"
	"strings"

	"github.com/keshon/minigit/internal/command"
)

type Command struct{}

func (c *Command) Name() string                   { return "help" }
func (c *Command) Short() string                  { return "?" }
func (c *Command) Aliases() []string              { return []string{"h"} }
func (c *Command) Usage() string                  { return "help [<command>]" }
func (c *Command) Brief() string                  { return "Show commands or help for one command" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Usage:
  help            - list all commands
  help <command>  - detailed help for a command`
}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		ctx.Println("Commands:")
		for _, cmd := range command.AllCommands() {
			ctx.Printf("  %-10s %s\n", cmd.Name(), cmd.Brief())
		}
		ctx.Println("\nType 'help <command>' for details.")
		return nil
	}

	node, rest, err := command.ResolveCommand(ctx.Args)
	if err != nil || len(rest) > 0 {
		return fmt.Errorf("%w: %s", command.ErrUnknownCommand, strings.Join(ctx.Args, " "))
	}
	cmd := node.Cmd
	ctx.Printf("%s - %s\n\n%s\n", cmd.Name(), cmd.Brief(), cmd.Help())
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		ctx.Printf("\nAliases: %s\n", strings.Join(aliases, ", "))
	}
	if subs := cmd.Subcommands(); len(subs) > 0 {
		ctx.Println("\nSubcommands:")
		for _, sub := range subs {
			ctx.Printf("  %-10s %s\n", sub.Name(), sub.Brief())
		}
	}
	return nil
}

func init() {
	command.RegisterCommand(&Command{})
}
