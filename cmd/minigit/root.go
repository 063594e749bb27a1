package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/minigit/internal/config"
)

var version = "dev"

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "minigit",
		Short:         "MiniGit - an in-memory version control engine",
		Long:          `MiniGit keeps named repositories of text files with branches, merges and undo history, served over HTTP or driven from a shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "path to the yaml config")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "print resolved command args and debug logs")

	root.AddCommand(
		newServeCmd(opts),
		newShellCmd(opts),
		newRunCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "minigit %s\n", version)
		},
	}
}

// loadConfig reads the config and applies the debug flag to the log level.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}
