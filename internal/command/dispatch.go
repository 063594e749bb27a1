package command

import (
	"errors"
	"fmt"

	"github.com/mattn/go-shellwords"
)

var (
	ErrUnterminatedQuote = errors.New("unterminated quote")
	// ErrUnquotedOperator is returned for a bare ; & | < or >.
	ErrUnquotedOperator = errors.New("unquoted shell operator")
)

// Dispatch splits a shell line into words and runs the command it names.
// A blank line does nothing.
func Dispatch(ctx *Context, line string) error {
	args, err := Split(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	return Run(ctx, args)
}

// Run resolves args against the registered commands and runs the match.
func Run(ctx *Context, args []string) error {
	node, rest, err := ResolveCommand(args)
	if err != nil {
		return err
	}
	ctx.Args = rest
	return node.Cmd.Run(ctx)
}

// Split breaks line into words with POSIX shell quoting. Single quotes
// keep text literally, double quotes allow backslash escapes, and unquoted
// backslashes escape the next character. Environment variables are not
// expanded.
func Split(line string) ([]string, error) {
	p := shellwords.NewParser()
	words, err := p.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnterminatedQuote, err)
	}
	if p.Position >= 0 {
		return nil, fmt.Errorf("%w at offset %d", ErrUnquotedOperator, p.Position)
	}
	if len(words) == 0 {
		return nil, nil
	}
	return words, nil
}
