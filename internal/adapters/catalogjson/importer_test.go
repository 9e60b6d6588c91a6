package catalogjson_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/motif-planner/internal/adapters/catalogjson"
	"github.com/andrescamacho/motif-planner/internal/application/planning/services"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
	"github.com/andrescamacho/motif-planner/test/helpers"
)

func TestImporter_LoadsFixtureDirectory(t *testing.T) {
	// Arrange
	importer := catalogjson.NewImporter("testdata")

	// Act
	snapshot, err := importer.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Len(t, snapshot.Parts, 3)
	assert.Len(t, snapshot.Heroes, 4)
	require.Len(t, snapshot.Spells, 1)
	assert.Equal(t, "fireball", snapshot.Spells[0].ID)
	assert.Equal(t, helpers.StockEquipment(), snapshot.Equipment)

	imported := catalog.NewCatalog(*snapshot)
	expected := helpers.FixtureCatalog()
	require.Equal(t, expected.Len(), imported.Len())
	for _, want := range expected.Entities() {
		got, ok := imported.Lookup(want.ID)
		require.True(t, ok, want.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Rank, got.Rank)
		assert.Equal(t, want.Source, got.Source)
		assert.Equal(t, want.OutputPerCycle, got.OutputPerCycle)
		assert.Equal(t, want.CycleSeconds, got.CycleSeconds)
		assert.Equal(t, want.RecipeMap(), got.RecipeMap())
	}
}

func recipeMaterials(entity catalog.ProductionEntity) []string {
	materials := make([]string, 0, len(entity.Recipe))
	for _, line := range entity.Recipe {
		materials = append(materials, line.MaterialID)
	}
	return materials
}

func TestImporter_RecipeLinesKeepFileOrder(t *testing.T) {
	snapshot, err := catalogjson.NewImporter("testdata").Load(context.Background())
	require.NoError(t, err)

	knight := snapshot.Heroes[0]
	assert.Equal(t, []string{"sword", "star", "ink_red", "ink_magenta"}, recipeMaterials(knight))
	assert.Equal(t, []string{"inkbottle_red", "heart"}, recipeMaterials(snapshot.Spells[0]))
}

func TestImporter_BundledDataChildrenFollowFileOrder(t *testing.T) {
	// Arrange
	snapshot, err := catalogjson.NewImporter("../../../data").Load(context.Background())
	require.NoError(t, err)
	builder := services.NewRequirementTreeBuilder(catalog.NewCatalog(*snapshot))

	tests := []struct {
		entity   string
		children []string
	}{
		{"knight", []string{"sword", "hammer"}},
		{"dancer", []string{"ribbon", "cheese"}},
		{"monarch", []string{"crown", "sword", "shield"}},
	}

	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			// Act
			tree, err := builder.Build(tt.entity, 1, production.DefaultBundle())

			// Assert
			require.NoError(t, err)
			children := make([]string, 0, len(tree.Children))
			for _, child := range tree.Children {
				children = append(children, child.ID)
			}
			assert.Equal(t, tt.children, children)
		})
	}
}

func TestScanRecipeOrder(t *testing.T) {
	data := []byte(`{"parts":[
		{"id":"a","recipe":{"zeta":1,"alpha":2,"mid":{"nested":1}}},
		"not a record",
		{"id":"b"},
		{"id":"c","recipe":[1,2]}
	]}`)

	order := catalogjson.ScanRecipeOrder(data, "parts")

	require.Len(t, order, 4)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, order[0])
	assert.Nil(t, order[1])
	assert.Nil(t, order[2])
	assert.Nil(t, order[3])
	assert.Nil(t, catalogjson.ScanRecipeOrder(data, "heroes"))
	assert.Nil(t, catalogjson.ScanRecipeOrder([]byte("not json"), "parts"))
}

func TestDecodeEntities_FallsBackToSortedWithoutOrder(t *testing.T) {
	doc, err := oj.ParseString(`{"parts":[{"id":"p","recipe":{"zeta":1,"alpha":2}}]}`)
	require.NoError(t, err)

	withoutOrder, err := catalogjson.DecodeEntities(doc, jp.MustParseString("$.parts[*]"), nil)
	require.NoError(t, err)
	mismatched, err := catalogjson.DecodeEntities(doc, jp.MustParseString("$.parts[*]"), catalogjson.RecipeOrder{{"zeta", "other"}})
	require.NoError(t, err)
	ordered, err := catalogjson.DecodeEntities(doc, jp.MustParseString("$.parts[*]"), catalogjson.RecipeOrder{{"zeta", "alpha"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "zeta"}, recipeMaterials(withoutOrder[0]))
	assert.Equal(t, []string{"alpha", "zeta"}, recipeMaterials(mismatched[0]))
	assert.Equal(t, []string{"zeta", "alpha"}, recipeMaterials(ordered[0]))
}

func TestImporter_SpellFileIsOptional(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	for _, name := range []string{catalogjson.PartsFile, catalogjson.MinionHeroesFile, catalogjson.EquipmentFile} {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}

	// Act
	snapshot, err := catalogjson.NewImporter(dir).Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, snapshot.Spells)
	assert.Len(t, snapshot.Heroes, 4)
}

func TestImporter_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		message string
	}{
		{"missing directory", filepath.Join("testdata", "absent"), "failed to read"},
		{"non-numeric quantity", filepath.Join("testdata", "broken"), "recipe quantity of circle is not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalogjson.NewImporter(tt.dir).Load(context.Background())

			assert.ErrorContains(t, err, tt.message)
		})
	}
}

func TestImporter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := catalogjson.NewImporter("testdata").Load(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeEntities_MissingID(t *testing.T) {
	doc, err := oj.ParseString(`{"heroes":[{"name":"Nameless"}]}`)
	require.NoError(t, err)

	_, err = catalogjson.DecodeEntities(doc, jp.MustParseString("$.heroes[*]"), nil)

	assert.ErrorContains(t, err, "missing id")
}

func TestDecodeEquipment_RejectsUnknownTier(t *testing.T) {
	doc, err := oj.ParseString(`{"canvas":{"tiers":{"mythic":{"cycleSec":4}}}}`)
	require.NoError(t, err)

	_, err = catalogjson.DecodeEquipment(doc)

	assert.ErrorContains(t, err, `unknown tier "mythic"`)
}

func TestDecodeEquipment_AbsentFieldsStayZero(t *testing.T) {
	doc, err := oj.ParseString(`{"pipette":{"icon":"p.png"},"version":3}`)
	require.NoError(t, err)

	equipment, err := catalogjson.DecodeEquipment(doc)

	require.NoError(t, err)
	assert.Equal(t, catalog.EquipmentCatalog{catalog.EquipmentPipette: {}}, equipment)
}
