package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/motif-planner/internal/adapters/grpc"
)

// NewHealthCommand creates the health command
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check planner daemon health status",
		Long:  `Verify that the planner daemon is running and serving requests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			address := daemonAddress
			if address == "" {
				address = cfg.Server.Address
			}

			client, err := grpc.NewPlannerClientGRPC(address)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			status, err := client.Health(ctx)
			if err != nil {
				return fmt.Errorf("daemon at %s is unreachable: %w", address, err)
			}

			if status != "SERVING" {
				return fmt.Errorf("daemon at %s is %s", address, status)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Daemon is healthy\n")
			fmt.Fprintf(out, "  Address: %s\n", address)
			fmt.Fprintf(out, "  Status:  %s\n", status)
			return nil
		},
	}

	return cmd
}
