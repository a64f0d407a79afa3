package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for fundboard.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fundboard",
		Short: "Browse charity fundraising campaigns",
		Long: `fundboard shows charity fundraising campaigns with their amount raised,
goal and distance from goal.

Campaigns can be sorted by amount raised or by difference from goal, in
either direction, and fully funded campaigns can be hidden or shown. The
same listing is available as text, JSON or Markdown (list), as a web page
(serve) and as a terminal UI (browse).

Without --data the built-in demo campaigns are used.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewBrowseCmd())
	cmd.AddCommand(NewBundleCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
