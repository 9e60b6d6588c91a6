package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/motif-planner/internal/adapters/catalogjson"
	"github.com/andrescamacho/motif-planner/internal/application/planning/queries"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and import the production catalog",
		Long: `Inspect the production catalog, or import the JSON catalog files into the
configured database so the daemon can serve them with catalog_source=database.

Examples:
  motif-planner catalog list
  motif-planner catalog list --source hero
  motif-planner catalog import --from ./data`,
	}

	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogImportCommand())

	return cmd
}

func newCatalogListCommand() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entities grouped by rank",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch catalog.Source(source) {
			case "", catalog.SourcePart, catalog.SourceHero, catalog.SourceSpell:
			default:
				return fmt.Errorf("unknown source %q (want part, hero or spell)", source)
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			resp, err := s.planner.ListEntities(s.Context(cmd.Context()), &queries.ListEntitiesQuery{
				Source: catalog.Source(source),
			})
			if err != nil {
				return err
			}

			return writeEntityList(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Only list entities of this source: part, hero or spell")

	return cmd
}

func writeEntityList(out io.Writer, resp *queries.ListEntitiesResponse) error {
	if len(resp.Entities) == 0 {
		fmt.Fprintln(out, "No entities in catalog")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, group := range resp.Groups {
		fmt.Fprintf(w, "[%s]\n", group.Name)
		for _, entity := range group.Entities {
			marker := ""
			if entity.ID == resp.DefaultEntityID {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s%s\t%s\t%s\t%s\n",
				entity.ID, marker, entity.Name, entity.Source, formatRecipe(entity.Recipe))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d entities, default: %s\n", len(resp.Entities), resp.DefaultEntityID)
	return nil
}

func formatRecipe(recipe []catalog.RecipeLine) string {
	parts := make([]string, 0, len(recipe))
	for _, line := range recipe {
		parts = append(parts, fmt.Sprintf("%s×%s", line.MaterialID, decimalString(line.Quantity, 2)))
	}
	return strings.Join(parts, " ")
}

func newCatalogImportCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the JSON catalog into the database",
		Long: `Read parts, heroes, spells and equipment from the catalog JSON files and
replace the catalog stored in the configured database.

Example:
  motif-planner catalog import --from ./data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if from == "" {
				from = cfg.Planner.CatalogDir
			}

			snapshot, err := catalogjson.NewImporter(from).Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read catalog from %s: %w", from, err)
			}

			repo, closeDB, err := openCatalogRepository(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := repo.Save(cmd.Context(), snapshot); err != nil {
				return fmt.Errorf("failed to save catalog: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d parts, %d heroes, %d spells and %d equipment classes into %s database\n",
				len(snapshot.Parts), len(snapshot.Heroes), len(snapshot.Spells), len(snapshot.Equipment), cfg.Database.Type)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Directory holding the catalog JSON files (default: planner.catalog_dir)")

	return cmd
}
