package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipe(pairs ...interface{}) []RecipeLine {
	lines := make([]RecipeLine, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		lines = append(lines, RecipeLine{MaterialID: pairs[i].(string), Quantity: pairs[i+1].(float64)})
	}
	return lines
}

func TestNewCatalog_FirstTableWins(t *testing.T) {
	// Arrange
	snapshot := Snapshot{
		Parts:  []ProductionEntity{{ID: "bolt", Name: "Bolt (part)", Recipe: recipe("circle", 1.0)}},
		Heroes: []ProductionEntity{{ID: "bolt", Name: "Bolt (hero)"}, {ID: "mage", Name: "Mage", Rank: RankA}},
		Spells: []ProductionEntity{{ID: "mage", Name: "Mage (spell)"}, {ID: "nova", Name: "Nova"}},
	}

	// Act
	c := NewCatalog(snapshot)

	// Assert
	bolt, ok := c.Lookup("bolt")
	require.True(t, ok)
	assert.Equal(t, "Bolt (part)", bolt.Name)
	assert.Equal(t, SourcePart, bolt.Source)

	mage, ok := c.Lookup("mage")
	require.True(t, ok)
	assert.Equal(t, SourceHero, mage.Source)
	assert.True(t, c.IsSpell("mage"), "spell membership survives losing the merge")
	assert.True(t, c.IsSpell("nova"))
	assert.False(t, c.IsSpell("bolt"))

	assert.Equal(t, 3, c.Len())
	ids := make([]string, 0)
	for _, e := range c.Entities() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"bolt", "mage", "nova"}, ids)
}

func TestNewCatalog_DoesNotAliasSnapshot(t *testing.T) {
	parts := []ProductionEntity{{ID: "bolt", Recipe: recipe("circle", 1.0)}}
	equipment := EquipmentCatalog{
		EquipmentPipette: {Tiers: map[Tier]TierVariant{TierBase: {RatePerSecond: 3}}},
	}
	c := NewCatalog(Snapshot{Parts: parts, Equipment: equipment})

	parts[0].Recipe[0].Quantity = 99
	equipment[EquipmentPipette].Tiers[TierBase] = TierVariant{RatePerSecond: 1}

	bolt, _ := c.Lookup("bolt")
	assert.Equal(t, 1.0, bolt.Recipe[0].Quantity)
	v, ok := c.Equipment().Entry(EquipmentPipette).Tier(TierBase)
	require.True(t, ok)
	assert.Equal(t, 3.0, v.RatePerSecond)
}

func TestNewCatalog_ClassifiesRecipeMaterials(t *testing.T) {
	c := NewCatalog(Snapshot{
		Heroes: []ProductionEntity{{ID: "mage", Recipe: recipe("inkbottle_magenta", 1.0, "rect", 2.0)}},
	})

	assert.Equal(t, []string{"ink_magenta", "inkbottle_magenta", "rect"}, c.MaterialIDs())
	assert.Equal(t, KindBottledInk, c.Material("inkbottle_magenta").Kind)
	assert.Equal(t, KindShape, c.Material("square").Kind, "unreferenced ids classify on demand")
	assert.NotContains(t, c.MaterialIDs(), "square")
}

func TestEntitiesBySource(t *testing.T) {
	c := NewCatalog(Snapshot{
		Parts:  []ProductionEntity{{ID: "a"}, {ID: "b"}},
		Heroes: []ProductionEntity{{ID: "c"}},
	})

	assert.Len(t, c.EntitiesBySource(SourcePart), 2)
	assert.Len(t, c.EntitiesBySource(SourceHero), 1)
	assert.Empty(t, c.EntitiesBySource(SourceSpell))
}

func TestProductionEntity_RecipeHelpers(t *testing.T) {
	e := ProductionEntity{Recipe: recipe("circle", 1.0, "ink_red", 2.0, "circle", 0.5)}

	assert.Equal(t, 2, e.DistinctMaterialCount())
	assert.Equal(t, map[string]float64{"circle": 1.5, "ink_red": 2}, e.RecipeMap())
}

func TestEquipmentEntry_Tier(t *testing.T) {
	entry := EquipmentEntry{Tiers: map[Tier]TierVariant{TierHigh: {CycleSeconds: 1.5}}}

	v, ok := entry.Tier(TierHigh)
	assert.True(t, ok)
	assert.Equal(t, 1.5, v.CycleSeconds)

	_, ok = entry.Tier(TierTop)
	assert.False(t, ok)
	_, ok = entry.Tier("")
	assert.False(t, ok)
	_, ok = EquipmentEntry{}.Tier(TierBase)
	assert.False(t, ok)

	assert.Equal(t, EquipmentEntry{}, EquipmentCatalog(nil).Entry(EquipmentMixer))
	assert.True(t, TierTop.IsValid())
	assert.False(t, Tier("legendary").IsValid())
}

func TestStaticProvider(t *testing.T) {
	c := NewCatalog(Snapshot{})

	got, err := NewStaticProvider(c).Catalog(context.Background())

	require.NoError(t, err)
	assert.Same(t, c, got)
}
