package middleware

import (
	"github.com/keshon/minigit/internal/command"
)

// WithDebugArgsPrint prints the resolved command and its args when the
// context runs in debug mode.
func WithDebugArgsPrint() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				if ctx.Debug {
					ctx.Printf("%s args: %q\n", cmd.Name(), ctx.Args)
				}
				return cmd.Run(ctx)
			},
		}
	}
}
