package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/fundboard/internal/config"
	"github.com/nao1215/fundboard/internal/model"
	"github.com/nao1215/fundboard/internal/pipeline"
	"github.com/nao1215/fundboard/internal/report"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the campaign listing",
		Long: `List prints the campaigns once, sorted and filtered as requested.

Examples:
  # Demo data, smallest amount raised first, fully funded hidden
  fundboard list

  # Furthest from goal first
  fundboard list --sort difference --order desc

  # Include fully funded campaigns and write JSON
  fundboard list -F --json

  # Markdown report of a YAML dataset into a file
  fundboard list -d campaigns.yaml -m -o reports/campaigns.md`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	addDataFlags(cmd)

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the listing to the specified file path (creates directories if needed)")
	cmd.Flags().String("title", "", "Report heading")

	return cmd
}

// runListCmd executes the list command.
func runListCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	campaigns, err := loadCampaigns(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	listing, err := pipeline.Apply(campaigns, cfg.Query, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	return outputListing(cmd.OutOrStdout(), cfg, listing)
}

// outputListing writes the listing in the configured format to the
// configured destination.
func outputListing(stdout io.Writer, cfg *config.Config, listing *model.Listing) error {
	output := stdout
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	_, err := newReportWriter(output, cfg).Write(listing)
	return err
}

// newReportWriter picks the writer for the configured format.
func newReportWriter(output io.Writer, cfg *config.Config) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output, report.WithFormatter(newFormatter(cfg)), report.WithTitle(cfg.Title))
	default:
		return report.NewSimpleWriter(output, report.WithFormatter(newFormatter(cfg)), report.WithTitle(cfg.Title))
	}
}
