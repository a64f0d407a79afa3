package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/fundboard/internal/config"
	"github.com/nao1215/fundboard/internal/web"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the campaign listing as a web page",
		Long: `Serve renders the campaign listing as a single web page.

The sort buttons and the fully funded toggle are links; the chosen state is
kept in the query string (sort, order, funded). The same listing is
available as JSON at /campaigns.json.

Examples:
  # Serve the demo data on http://127.0.0.1:8080
  fundboard serve

  # Serve a bundle on all interfaces
  fundboard serve -d campaigns.db -a :8080`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addDataFlags(cmd)

	cmd.Flags().StringP("addr", "a", config.DefaultListenAddr,
		"Listen address in host:port form")
	cmd.Flags().Duration("shutdown-timeout", config.DefaultShutdownTimeout,
		"How long to wait for in-flight requests on shutdown")
	cmd.Flags().String("title", "", "Page heading")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	campaigns, err := loadCampaigns(ctx, cfg, logger)
	if err != nil {
		return err
	}

	handler, err := web.NewHandler(ctx, campaigns,
		web.WithDefaultQuery(cfg.Query),
		web.WithTitle(cfg.Title),
		web.WithFormatter(newFormatter(cfg)),
		web.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d campaigns on http://%s (Ctrl+C to stop)\n", len(campaigns), cfg.ListenAddr)

	srv := web.NewServer(cfg.ListenAddr, handler,
		web.WithShutdownTimeout(cfg.ShutdownTimeout),
		web.WithServerLogger(logger),
	)
	return srv.Run(ctx)
}

// cmdContext returns the command context, or Background when the command
// was executed without one.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
