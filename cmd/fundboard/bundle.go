package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/fundboard/internal/config"
	"github.com/nao1215/fundboard/internal/database"
	"github.com/nao1215/fundboard/internal/dataset"
)

// NewBundleCmd creates the bundle command.
func NewBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle <dataset>",
		Short: "Convert a JSON or YAML dataset into a SQLite bundle",
		Long: `Bundle validates a JSON or YAML dataset and writes it into a SQLite file
that list, serve and browse can load with --data.

The campaigns keep their order. difference_from_goal is reconciled the same
way as at load time (see --trust-difference). The bundle also records the
source path and the dataset fingerprint.

Examples:
  # Write to the XDG data directory (~/.local/share/fundboard/campaigns.db)
  fundboard bundle campaigns.yaml

  # Write to a specific file
  fundboard bundle campaigns.json -o site/campaigns.db`,
		Args: cobra.ExactArgs(1),
		RunE: runBundleCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Bundle file to write (default: campaigns.db in the XDG data directory)")
	cmd.Flags().Bool("trust-difference", false,
		"Keep difference_from_goal from the dataset instead of recomputing it")

	return cmd
}

// runBundleCmd executes the bundle command.
func runBundleCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)
	ctx := cmdContext(cmd)

	input := args[0]
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output == "" {
		output = config.DefaultBundlePath()
	}
	trust, err := cmd.Flags().GetBool("trust-difference")
	if err != nil {
		return err
	}

	campaigns, err := dataset.LoadContext(ctx, input,
		dataset.WithTrustStoredDifference(trust),
		dataset.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	db, err := database.Open(output, database.WritableOptions())
	if err != nil {
		return fmt.Errorf("failed to open bundle: %w", err)
	}
	defer db.Close()

	if err := db.ReplaceCampaigns(ctx, campaigns); err != nil {
		return err
	}

	fingerprint := dataset.Fingerprint(campaigns)
	if err := db.WriteMetadata(ctx, database.Metadata{
		Source:      input,
		Fingerprint: fingerprint,
	}); err != nil {
		return err
	}

	logger.Debug("bundle written", "path", output, "campaigns", len(campaigns), "fingerprint", fingerprint)
	fmt.Fprintf(cmd.OutOrStdout(), "Bundled %d campaigns into %s\n", len(campaigns), output)
	return nil
}
