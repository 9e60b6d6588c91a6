package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath    string
	remote        bool
	daemonAddress string
	catalogDir    string
	catalogSource string
	verbose       bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "motif-planner",
		Short: "Motif Planner CLI - Plan production requirement trees",
		Long: `Motif Planner computes what it takes to produce an entity at a target rate:
the canvases, motif materials and equipment of every intermediate entity.

By default the CLI plans in-process against the configured catalog. Use --remote
to send requests to a running planner daemon over gRPC instead.

Examples:
  motif-planner plan knight --rate 2.5
  motif-planner plan sage --rate 1 --output json
  motif-planner plan knight --profile configs/bundle.yaml
  motif-planner equipment --profile configs/bundle.yaml
  motif-planner catalog list --source hero
  motif-planner catalog import --from ./data
  motif-planner --remote plan knight`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs, /etc/motif-planner)")
	rootCmd.PersistentFlags().BoolVar(&remote, "remote", false,
		"Send requests to the planner daemon instead of planning in-process")
	rootCmd.PersistentFlags().StringVar(&daemonAddress, "address", getDefaultDaemonAddress(),
		"Planner daemon address (used with --remote, default: server.address from config)")
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog-dir", "",
		"Directory holding the catalog JSON files (overrides planner.catalog_dir)")
	rootCmd.PersistentFlags().StringVar(&catalogSource, "catalog-source", "",
		"Catalog source: json or database (overrides planner.catalog_source)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewEquipmentCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewHealthCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// getDefaultDaemonAddress returns the daemon address from the environment, if any
func getDefaultDaemonAddress() string {
	return os.Getenv("MOTIF_PLANNER_ADDRESS")
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
