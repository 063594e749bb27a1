package middleware

import (
	"github.com/keshon/minigit/internal/command"
	"github.com/keshon/minigit/internal/service"
)

// WithInitCheck refuses to run cmd until the current repository is
// initialized.
func WithInitCheck() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				if !ctx.Service.Initialized() {
					return &command.Failure{Message: service.NotInitializedMessage}
				}
				return cmd.Run(ctx)
			},
		}
	}
}
