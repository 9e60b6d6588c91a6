package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect Motif Planner configuration settings.

Configuration is loaded from multiple sources with priority:
1. Command line flags (--catalog-dir, --catalog-source, -v)
2. Environment variables (MP_* prefix, DATABASE_URL)
3. Config file (config.yaml)
4. Default values

Examples:
  motif-planner config show
  motif-planner --config configs/config.yaml config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			shown := *cfg
			if shown.Database.Password != "" {
				shown.Database.Password = "********"
			}
			if shown.Database.URL != "" {
				shown.Database.URL = "********"
			}

			out, err := json.MarshalIndent(shown, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
