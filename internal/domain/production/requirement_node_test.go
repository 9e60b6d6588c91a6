package production

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
)

// knight -> sword -> hammer, knight -> hammer
func sampleTree() *RequirementNode {
	hammer := NewRequirementNode("hammer", "Hammer", 1)
	hammer.CanvasClass = catalog.EquipmentCanvas
	hammer.CanvasCount = 1
	hammer.Materials["circle"] = MaterialRequirement{Count: 1, Equipment: EquipmentCounts{catalog.EquipmentMotifMaker: 1}}

	sword := NewRequirementNode("sword", "Sword", 2)
	sword.CanvasClass = catalog.EquipmentCanvas
	sword.CanvasCount = 2
	sword.Materials["ink_red"] = MaterialRequirement{Count: 2, Equipment: EquipmentCounts{catalog.EquipmentPipette: 1}}
	sword.Materials["ink_blue"] = MaterialRequirement{Count: 0}
	sword.AddChild(hammer)

	knight := NewRequirementNode("knight", "Knight", 2)
	knight.CanvasClass = catalog.EquipmentCompositeCanvas
	knight.CanvasCount = 3
	knight.Materials["ink_red"] = MaterialRequirement{Count: 1, Equipment: EquipmentCounts{catalog.EquipmentPipette: 1}}
	knight.AddChild(sword)
	knight.AddChild(NewRequirementNode("hammer", "Hammer", 1))
	return knight
}

func TestRequirementNode_Traversal(t *testing.T) {
	tree := sampleTree()

	var visited []string
	var depths []int
	tree.Walk(func(node *RequirementNode, depth int) {
		visited = append(visited, node.ID)
		depths = append(depths, depth)
	})

	assert.Equal(t, []string{"knight", "sword", "hammer", "hammer"}, visited)
	assert.Equal(t, []int{0, 1, 2, 1}, depths)
	assert.Equal(t, 4, tree.CountNodes())
	assert.Equal(t, 3, tree.TotalDepth())
	assert.False(t, tree.IsLeaf())
	assert.True(t, tree.Children[1].IsLeaf())
}

func TestRequirementNode_UsedMaterialsSkipsZeroDemand(t *testing.T) {
	assert.Equal(t, []string{"circle", "ink_red"}, sampleTree().UsedMaterials())
}

func TestRequirementNode_TotalEquipment(t *testing.T) {
	totals := sampleTree().TotalEquipment()

	assert.Equal(t, EquipmentCounts{
		catalog.EquipmentCompositeCanvas: 3,
		catalog.EquipmentCanvas:          3,
		catalog.EquipmentPipette:         2,
		catalog.EquipmentMotifMaker:      1,
	}, totals)
}

func TestEquipmentCounts_Add(t *testing.T) {
	counts := EquipmentCounts{catalog.EquipmentMixer: 1}

	counts.Add(EquipmentCounts{catalog.EquipmentMixer: 2, catalog.EquipmentScissors: 1})

	assert.Equal(t, EquipmentCounts{catalog.EquipmentMixer: 3, catalog.EquipmentScissors: 1}, counts)
}

func TestMotifBoosts_Boost(t *testing.T) {
	boosts := MotifBoosts{Circle: 150, Square: 0, Triangle: 300}

	assert.Equal(t, 150.0, boosts.Boost(catalog.ShapeCircle))
	assert.Equal(t, 100.0, boosts.Boost(catalog.ShapeSquare), "unset boost means 100%")
	assert.Equal(t, 300.0, boosts.Boost(catalog.ShapeTriangle))
	assert.Equal(t, 100.0, boosts.Boost("hexagon"))
}

func TestShapeRates_Rate(t *testing.T) {
	rates := ShapeRates{Circle: 1, Square: 2, Triangle: 3}

	r, ok := rates.Rate(catalog.ShapeSquare)
	assert.True(t, ok)
	assert.Equal(t, 2.0, r)

	_, ok = rates.Rate("rect")
	assert.False(t, ok)
}

func TestDefaultBundle(t *testing.T) {
	bundle := DefaultBundle()

	assert.Equal(t, catalog.TierBase, bundle.Tiers.Pipette)
	assert.Equal(t, 50.0, bundle.Coefficients.MixerEfficiency)
	assert.True(t, bundle.Options.BigMotifBonus)
	assert.True(t, bundle.Options.TutuDoublePort)
	assert.False(t, bundle.Options.TripleInkBottleConsumption)
}
