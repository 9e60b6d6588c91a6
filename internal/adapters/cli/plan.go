package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/motif-planner/internal/application/planning/queries"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
	"github.com/andrescamacho/motif-planner/internal/infrastructure/config"
)

// Output formats for plan results
const (
	OutputTree    = "tree"
	OutputJSON    = "json"
	OutputSummary = "summary"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		rate          float64
		output        string
		profile       string
		hideMaterials bool
		useColors     bool
	)

	cmd := &cobra.Command{
		Use:   "plan <entity-id>",
		Short: "Build the requirement tree of an entity",
		Long: `Build the production requirement tree of a hero, part or spell at a target rate.

Each node shows the entity, its required rate and the canvases producing it.
Motif materials are listed under their node with the equipment they need.

Output formats:
  tree     Box-drawing tree followed by a summary (default)
  json     The full plan as JSON
  summary  Totals only: nodes, depth, equipment, materials

Examples:
  motif-planner plan knight --rate 2.5
  motif-planner plan knight --profile configs/bundle.yaml --output json
  motif-planner plan sage --no-materials`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case OutputTree, OutputJSON, OutputSummary:
			default:
				return fmt.Errorf("unknown output format %q (want tree, json or summary)", output)
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			query := &queries.PlanRequirementsQuery{EntityID: args[0], TargetRate: rate}
			if profile != "" {
				bundle, err := config.LoadBundleProfile(profile, s.cfg.Planner.Defaults)
				if err != nil {
					return err
				}
				query.Bundle = &bundle
			}

			plan, err := s.planner.Plan(s.Context(cmd.Context()), query)
			if err != nil {
				return describePlanError(err)
			}

			formatter := NewTreeFormatter(!hideMaterials, useColors)
			return writePlan(cmd.OutOrStdout(), formatter, plan, output)
		},
	}

	cmd.Flags().Float64VarP(&rate, "rate", "r", 1, "Target production rate in units per second")
	cmd.Flags().StringVarP(&output, "output", "o", OutputTree, "Output format: tree, json or summary")
	cmd.Flags().StringVar(&profile, "profile", "", "Bundle profile file overriding the configured defaults")
	cmd.Flags().BoolVar(&hideMaterials, "no-materials", false, "Hide motif materials in the tree")
	cmd.Flags().BoolVar(&useColors, "color", false, "Use ANSI colors in the tree")

	return cmd
}

func writePlan(w io.Writer, formatter *TreeFormatter, plan *queries.PlanRequirementsResponse, output string) error {
	switch output {
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(plan)
	case OutputSummary:
		fmt.Fprintf(w, "%s (%s) at %s/s\n", plan.Entity.Name, plan.Entity.ID, FormatRate(plan.Summary.TargetRate))
		fmt.Fprint(w, formatter.FormatTreeSummary(plan.Summary))
		return nil
	default:
		fmt.Fprint(w, formatter.FormatTree(plan.Tree))
		fmt.Fprintln(w)
		fmt.Fprint(w, formatter.FormatTreeSummary(plan.Summary))
		return nil
	}
}

// describePlanError adds a hint for error kinds a user can act on
func describePlanError(err error) error {
	switch production.ErrorKind(err) {
	case production.KindUnknownEntity:
		return fmt.Errorf("%w (see 'motif-planner catalog list')", err)
	case production.KindMissingCatalogEntry, production.KindRecipeCycle:
		return fmt.Errorf("catalog data is inconsistent: %w", err)
	default:
		return err
	}
}
