package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/fundboard/internal/tui"
	"github.com/nao1215/fundboard/internal/view"
)

// NewBrowseCmd creates the browse command.
func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse campaigns in an interactive terminal UI",
		Long: `Browse opens the campaign listing in the terminal.

Keys:
  r / R   sort by amount raised, ascending / descending
  d / D   sort by difference from goal, ascending / descending
  f       show or hide fully funded campaigns
  j / k   move the selection
  q       quit`,
		Args: cobra.NoArgs,
		RunE: runBrowseCmd,
	}

	addDataFlags(cmd)
	cmd.Flags().String("title", "", "Header text")

	return cmd
}

// runBrowseCmd executes the browse command.
func runBrowseCmd(cmd *cobra.Command, _ []string) error {
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

	ctrl, err := view.New(campaigns, cfg.Query, view.WithLogger(logger))
	if err != nil {
		return err
	}

	m := tui.New(ctrl,
		tui.WithTitle(cfg.Title),
		tui.WithFormatter(newFormatter(cfg)),
	)
	return tui.Run(ctx, m, nil, nil)
}
