package command

import (
	"context"
	"fmt"
	"io"

	"github.com/keshon/minigit/internal/service"
)

// Command represents a cli command
type Command interface {
	Name() string
	Short() string
	Aliases() []string
	Usage() string
	Brief() string
	Help() string
	Subcommands() []Command
	Run(ctx *Context) error
}

// Context represents a cli context
type Context struct {
	Ctx     context.Context
	Args    []string
	Service *service.Service
	Out     io.Writer
	Debug   bool
}

// Printf writes to the context output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line to the context output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Report prints the message of a successful response and turns a failed
// one into an error carrying the message.
func Report(ctx *Context, resp service.Response) error {
	if !resp.Success {
		return &Failure{Message: resp.Message}
	}
	if resp.Message != "" {
		ctx.Println(resp.Message)
	}
	return nil
}

// Failure is a verb that completed with success=false.
type Failure struct {
	Message string
}

func (f *Failure) Error() string { return f.Message }
