package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/keshon/minigit/internal/command"
	_ "github.com/keshon/minigit/internal/command/all"
	"github.com/keshon/minigit/internal/logging"
	"github.com/keshon/minigit/internal/service"
)

const prompt = "minigit> "

func newShellCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell",
		Long:  `Read verbs line by line. Type 'help' for the command list and 'exit' to leave.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx *command.Context) error {
				fmt.Fprintln(ctx.Out, "MiniGit shell. Type 'help' for commands, 'exit' to quit.")
				return repl(ctx, cmd.InOrStdin(), true, true)
			})
		},
	}
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var keepGoing bool
	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run shell lines from a script file or stdin",
		Long: `Run every line of script as a shell command in one session. Blank
lines and lines starting with '#' are skipped. Reads stdin when script is
omitted or '-'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return withSession(cmd, opts, func(ctx *command.Context) error {
				return repl(ctx, in, false, keepGoing)
			})
		},
	}
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "continue after a failing line")
	return cmd
}

// withSession builds a service from the config, runs fn with a command
// context bound to it, then flushes and closes the service.
func withSession(cmd *cobra.Command, opts *rootOptions, fn func(ctx *command.Context) error) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(cmd.ErrOrStderr(), cfg.Log)
	svc, err := service.FromConfig(cfg, service.WithLogger(log))
	if err != nil {
		return err
	}

	runErr := fn(&command.Context{
		Ctx:     cmd.Context(),
		Service: svc,
		Out:     cmd.OutOrStdout(),
		Debug:   opts.debug,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Close(ctx); err != nil {
		log.Error("failed to close service", "error", err)
	}
	return runErr
}

// repl dispatches each line of in. A failing line is reported and, unless
// keepGoing is set, ends the loop with its error.
func repl(ctx *command.Context, in io.Reader, interactive, keepGoing bool) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 8<<20)
	lineNo := 0
	for {
		if interactive {
			fmt.Fprint(ctx.Out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if err := command.Dispatch(ctx, line); err != nil {
			report(ctx.Out, err)
			if !keepGoing {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if interactive {
		fmt.Fprintln(ctx.Out)
	}
	return scanner.Err()
}

func report(out io.Writer, err error) {
	var f *command.Failure
	if errors.As(err, &f) {
		fmt.Fprintln(out, f.Message)
		return
	}
	fmt.Fprintf(out, "Error: %v\n", err)
}
