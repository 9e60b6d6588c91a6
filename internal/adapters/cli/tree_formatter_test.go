package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/motif-planner/internal/application/planning/services"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

func sampleTree() *production.RequirementNode {
	root := production.NewRequirementNode("knight", "Knight", 2.5)
	root.CanvasClass = catalog.EquipmentCompositeCanvas
	root.CanvasCount = 3
	root.Materials["ink_red"] = production.MaterialRequirement{
		Count:     2.5,
		Equipment: production.EquipmentCounts{catalog.EquipmentPipette: 1},
	}
	root.Materials["circle"] = production.MaterialRequirement{
		Count:     0.25,
		Equipment: production.EquipmentCounts{catalog.EquipmentMotifMaker: 1},
	}

	sword := production.NewRequirementNode("sword", "Sword", 2.5)
	sword.CanvasClass = catalog.EquipmentCanvas
	sword.CanvasCount = 3
	sword.Materials["square"] = production.MaterialRequirement{
		Count:     5,
		Equipment: production.EquipmentCounts{catalog.EquipmentMotifMaker: 3},
	}
	root.AddChild(sword)
	return root
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{0.25, "0.3"},
		{0.05, "0.1"},
		{2.449, "2.4"},
		{12.35, "12.4"},
		{1.0 / 3.0, "0.3"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRate(tt.value))
		})
	}
}

func TestTreeFormatter_FormatTree(t *testing.T) {
	// Arrange
	formatter := NewTreeFormatter(true, false)

	// Act
	out := formatter.FormatTree(sampleTree())

	// Assert
	expected := "Knight 2.5/s [compositeCanvas x3]\n" +
		"├── circle 0.3/s  motifMaker×1\n" +
		"├── ink_red 2.5/s  pipette×1\n" +
		"└── Sword 2.5/s [canvas x3]\n" +
		"    └── square 5.0/s  motifMaker×3\n"
	assert.Equal(t, expected, out)
}

func TestTreeFormatter_HidesMaterials(t *testing.T) {
	formatter := NewTreeFormatter(false, false)

	out := formatter.FormatTree(sampleTree())

	assert.Equal(t, "Knight 2.5/s [compositeCanvas x3]\n└── Sword 2.5/s [canvas x3]\n", out)
}

func TestTreeFormatter_NestedPrefixes(t *testing.T) {
	root := production.NewRequirementNode("a", "A", 1)
	b := production.NewRequirementNode("b", "B", 1)
	c := production.NewRequirementNode("c", "C", 1)
	d := production.NewRequirementNode("d", "D", 1)
	b.AddChild(d)
	root.AddChild(b)
	root.AddChild(c)

	out := NewTreeFormatter(true, false).FormatTree(root)

	assert.Equal(t, "A 1.0/s [ x0]\n├── B 1.0/s [ x0]\n│   └── D 1.0/s [ x0]\n└── C 1.0/s [ x0]\n", out)
}

func TestTreeFormatter_Colors(t *testing.T) {
	out := NewTreeFormatter(true, true).FormatTree(sampleTree())

	assert.Contains(t, out, "\033[1mKnight\033[0m")
	assert.Contains(t, out, "\033[2mink_red\033[0m")
}

func TestTreeFormatter_EmptyInputs(t *testing.T) {
	formatter := NewTreeFormatter(true, false)

	assert.Equal(t, "(empty tree)", formatter.FormatTree(nil))
	assert.Equal(t, "(empty)", formatter.FormatCompactTree(nil))
	assert.Equal(t, "No requirement tree", formatter.FormatTreeSummary(nil))
}

func TestTreeFormatter_FormatCompactTree(t *testing.T) {
	out := NewTreeFormatter(true, false).FormatCompactTree(sampleTree())

	assert.Equal(t, "knight → sword", out)
}

func TestTreeFormatter_FormatTreeSummary(t *testing.T) {
	// Arrange
	summary := services.NewRequirementAnalyzer().Summarize(sampleTree())

	// Act
	out := NewTreeFormatter(true, false).FormatTreeSummary(summary)

	// Assert
	assert.Contains(t, out, "Tree: 2 nodes, depth=2, canvases=6, target=2.5/s\n")
	assert.Contains(t, out, "Equipment: canvas×3 compositeCanvas×3 motifMaker×4 pipette×1\n")
	assert.Contains(t, out, "ink_red 2.5/s")
	assert.Contains(t, out, "square 5.0/s")
	assert.Contains(t, out, "Level 0: sword\n")
	assert.Contains(t, out, "Level 1: knight\n")
}

func TestFormatEquipment_SkipsZeroCounts(t *testing.T) {
	counts := production.EquipmentCounts{
		catalog.EquipmentMixer:   2,
		catalog.EquipmentPipette: 0,
		catalog.EquipmentCanvas:  1,
	}

	assert.Equal(t, "canvas×1 mixer×2", FormatEquipment(counts))
}
