package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/motif-planner/internal/application/planning/queries"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
	"github.com/andrescamacho/motif-planner/internal/infrastructure/config"
)

// NewEquipmentCommand creates the equipment command
func NewEquipmentCommand() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "Show resolved equipment throughput",
		Long: `Resolve the equipment throughput for the configured bundle, or for a
bundle profile, and print the effective rates.

Examples:
  motif-planner equipment
  motif-planner equipment --profile configs/bundle.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			query := &queries.ResolveEquipmentQuery{}
			if profile != "" {
				bundle, err := config.LoadBundleProfile(profile, s.cfg.Planner.Defaults)
				if err != nil {
					return err
				}
				query.Bundle = &bundle
			}

			resp, err := s.planner.ResolveEquipment(s.Context(cmd.Context()), query)
			if err != nil {
				return err
			}

			return writeSettings(cmd.OutOrStdout(), resp.Bundle, resp.Settings)
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "Bundle profile file overriding the configured defaults")

	return cmd
}

func writeSettings(out io.Writer, bundle production.ConfigurationBundle, settings production.EquipmentSettings) error {
	fmt.Fprintf(out, "Tiers: canvas=%s compositeCanvas=%s spellGenerator=%s motifMaker=%s pipette=%s\n\n",
		bundle.Tiers.Canvas, bundle.Tiers.CompositeCanvas, bundle.Tiers.SpellGenerator,
		bundle.Tiers.MotifMaker, bundle.Tiers.Pipette)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SETTING\tVALUE")
	fmt.Fprintln(w, "-------\t-----")
	rows := []struct {
		name  string
		value float64
	}{
		{"pipette rate", settings.PipetteRate},
		{"mixer rate", settings.MixerRate},
		{"mixer efficiency", settings.MixerEfficiency},
		{"scissors sec/unit", settings.ScissorsSecondsPerUnit},
		{"tutu rate", settings.TutuRate},
		{"albedo rate", settings.AlbedoRate},
		{"albedo efficiency", settings.AlbedoEfficiency},
		{"ink bottle rate", settings.InkBottleRate},
		{"motif maker circle", settings.MotifMakerRates.Circle},
		{"motif maker square", settings.MotifMakerRates.Square},
		{"motif maker triangle", settings.MotifMakerRates.Triangle},
		{"canvas multiplier", settings.CanvasMultiplier},
		{"composite canvas multiplier", settings.CompositeCanvasMultiplier},
		{"spell generator multiplier", settings.SpellGeneratorMultiplier},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", row.name, formatSetting(row.value))
	}
	fmt.Fprintf(w, "scissors double port\t%t\n", settings.ScissorsDoublePort)
	return w.Flush()
}

// formatSetting prints settings with up to four decimals, trailing zeros trimmed
func formatSetting(value float64) string {
	return decimalString(value, 4)
}
