package commit

import (
	"fmt"
	"strings"

	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string                   { return "commit" }
func (c *Command) Short() string                  { return "C" }
func (c *Command) Aliases() []string              { return []string{"ci"} }
func (c *Command) Usage() string                  { return `commit -m "<message>"` }
func (c *Command) Brief() string                  { return "Commit staged files to the active branch" }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Help() string {
	return `Create a new commit from the staged files.

Usage:
  commit -m "<message>"   - commit with a given message
  commit <message...>     - words form the message`
}

func (c *Command) Run(ctx *command.Context) error {
	var messages []string
	var words []string

	for i := 0; i < len(ctx.Args); i++ {
		arg := ctx.Args[i]
		switch {
		case (arg == "-m" || arg == "--message") && i+1 < len(ctx.Args):
			messages = append(messages, ctx.Args[i+1])
			i++
		case strings.HasPrefix(arg, "-m="):
			messages = append(messages, strings.TrimPrefix(arg, "-m="))
		case strings.HasPrefix(arg, "--message="):
			messages = append(messages, strings.TrimPrefix(arg, "--message="))
		default:
			words = append(words, arg)
		}
	}
	if len(messages) == 0 && len(words) > 0 {
		messages = append(messages, strings.Join(words, " "))
	}
	if len(messages) == 0 {
		return fmt.Errorf("usage: %s", c.Usage())
	}

	return command.Report(ctx, ctx.Service.Commit(ctx.Ctx, strings.Join(messages, "\n\n")))
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
