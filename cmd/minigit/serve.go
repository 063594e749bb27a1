package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/keshon/minigit/internal/logging"
	"github.com/keshon/minigit/internal/server"
	"github.com/keshon/minigit/internal/service"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr, exportDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		Long: `Serve every verb as a JSON endpoint. History is persisted to the
configured store after each successful mutation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if exportDir != "" {
				cfg.Server.ExportDir = exportDir
			}

			log := logging.New(cmd.ErrOrStderr(), cfg.Log)
			svc, err := service.FromConfig(cfg, service.WithLogger(log))
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := svc.Close(ctx); err != nil {
					log.Error("failed to close service", "error", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(svc,
				server.WithLogger(log),
				server.WithExportRoot(cfg.Server.ExportDir),
			)
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "directory for git exports (overrides server.export_dir)")
	return cmd
}
