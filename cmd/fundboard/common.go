package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/fundboard/internal/config"
	"github.com/nao1215/fundboard/internal/dataset"
	"github.com/nao1215/fundboard/internal/log"
	"github.com/nao1215/fundboard/internal/model"
	"github.com/nao1215/fundboard/internal/money"
)

// addDataFlags registers the flags shared by every command that shows
// a listing.
func addDataFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("data", "d", "",
		"Dataset to load (.json, .yaml, .yml, .db); default is the built-in demo data")
	cmd.Flags().StringP("sort", "s", string(model.SortByAmountRaised),
		"Sort key: amount_raised (raised) or difference_from_goal (difference)")
	cmd.Flags().StringP("order", "O", string(model.Ascending),
		"Sort direction: asc or desc")
	cmd.Flags().BoolP("include-funded", "F", false,
		"Show campaigns that already met their goal")
	cmd.Flags().Bool("trust-difference", false,
		"Keep difference_from_goal from the dataset instead of recomputing it")
	cmd.Flags().String("currency", config.DefaultCurrencySymbol,
		"Currency symbol printed in front of amounts")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .fundboard in current or home directory)")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the redacting logger on stderr and makes it the
// default.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	logger := log.NewSecureLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)
	return logger
}

// buildConfig creates a Config from defaults, the config file, the
// environment and finally the flags the user actually set.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if flags.Lookup("config") != nil {
		cfg.ConfigFilePath, err = flags.GetString("config")
		if err != nil {
			return nil, err
		}
	}

	// An explicit --config must exist; the default search may find nothing.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cfg.ApplyFile(file); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	env, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// applyFlags copies explicitly set flags into cfg. Flags a command does
// not define are skipped.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}

	var err error
	if changed("data") {
		if cfg.DataPath, err = flags.GetString("data"); err != nil {
			return err
		}
	}
	if changed("sort") {
		s, err := flags.GetString("sort")
		if err != nil {
			return err
		}
		if err := cfg.SetSortKey(s); err != nil {
			return err
		}
	}
	if changed("order") {
		s, err := flags.GetString("order")
		if err != nil {
			return err
		}
		if err := cfg.SetDirection(s); err != nil {
			return err
		}
	}
	if changed("include-funded") {
		if cfg.Query.IncludeFunded, err = flags.GetBool("include-funded"); err != nil {
			return err
		}
	}
	if changed("trust-difference") {
		if cfg.TrustStoredDifference, err = flags.GetBool("trust-difference"); err != nil {
			return err
		}
	}
	if changed("currency") {
		if cfg.CurrencySymbol, err = flags.GetString("currency"); err != nil {
			return err
		}
	}
	if changed("title") {
		if cfg.Title, err = flags.GetString("title"); err != nil {
			return err
		}
	}
	if changed("json") {
		if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
			return err
		}
	}
	if changed("markdown") {
		if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
			return err
		}
	}
	if changed("output") {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return err
		}
	}
	if changed("addr") {
		if cfg.ListenAddr, err = flags.GetString("addr"); err != nil {
			return err
		}
	}
	if changed("shutdown-timeout") {
		if cfg.ShutdownTimeout, err = flags.GetDuration("shutdown-timeout"); err != nil {
			return err
		}
	}
	return nil
}

// loadCampaigns loads the configured dataset.
func loadCampaigns(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]model.Campaign, error) {
	campaigns, err := dataset.LoadContext(ctx, cfg.DataPath,
		dataset.WithTrustStoredDifference(cfg.TrustStoredDifference),
		dataset.WithLogger(logger),
	)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("dataset not found: %s", cfg.DataPath)
		}
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	source := cfg.DataPath
	if source == "" {
		source = "(built-in demo data)"
	}
	logger.Debug("dataset loaded", "source", source, "campaigns", len(campaigns))
	return campaigns, nil
}

// newFormatter builds the amount formatter for cfg.
func newFormatter(cfg *config.Config) *money.Formatter {
	return money.NewFormatter(money.DefaultTag, money.WithSymbol(cfg.CurrencySymbol))
}
