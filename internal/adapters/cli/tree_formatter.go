package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/motif-planner/internal/application/planning/services"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// TreeFormatter renders requirement trees as box-drawing text
type TreeFormatter struct {
	showMaterials bool
	useColors     bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(showMaterials, useColors bool) *TreeFormatter {
	return &TreeFormatter{
		showMaterials: showMaterials,
		useColors:     useColors,
	}
}

// FormatRate renders a rate with one decimal, rounding half away from zero
func FormatRate(value float64) string {
	return decimal.NewFromFloat(value).Round(1).StringFixed(1)
}

// decimalString rounds to places and trims trailing zeros
func decimalString(value float64, places int32) string {
	return decimal.NewFromFloat(value).Round(places).String()
}

// FormatTree renders a requirement tree, materials first and then child entities
func (f *TreeFormatter) FormatTree(root *production.RequirementNode) string {
	if root == nil {
		return "(empty tree)"
	}

	var builder strings.Builder
	f.formatNode(&builder, root, "", true, true)
	return builder.String()
}

// treeLine is one row under a node: a material or a child entity
type treeLine struct {
	text  string
	child *production.RequirementNode
}

func (f *TreeFormatter) formatNode(builder *strings.Builder, node *production.RequirementNode, prefix string, isLast bool, isRoot bool) {
	var linePrefix string
	if isRoot {
		linePrefix = ""
	} else if isLast {
		linePrefix = prefix + "└── "
	} else {
		linePrefix = prefix + "├── "
	}

	builder.WriteString(fmt.Sprintf("%s%s%s%s %s/s [%s x%d]\n",
		linePrefix,
		f.bold(),
		node.Name,
		f.colorReset(),
		FormatRate(node.RequiredRate),
		node.CanvasClass,
		node.CanvasCount,
	))

	var childPrefix string
	if isRoot {
		childPrefix = ""
	} else if isLast {
		childPrefix = prefix + "    "
	} else {
		childPrefix = prefix + "│   "
	}

	lines := make([]treeLine, 0, len(node.Materials)+len(node.Children))
	if f.showMaterials {
		for _, id := range sortedMaterialIDs(node.Materials) {
			lines = append(lines, treeLine{text: f.formatMaterial(id, node.Materials[id])})
		}
	}
	for _, child := range node.Children {
		lines = append(lines, treeLine{child: child})
	}

	for i, line := range lines {
		last := i == len(lines)-1
		if line.child != nil {
			f.formatNode(builder, line.child, childPrefix, last, false)
			continue
		}
		connector := "├── "
		if last {
			connector = "└── "
		}
		builder.WriteString(childPrefix + connector + line.text + "\n")
	}
}

func (f *TreeFormatter) formatMaterial(id string, req production.MaterialRequirement) string {
	text := fmt.Sprintf("%s%s%s %s/s", f.dim(), id, f.colorReset(), FormatRate(req.Count))
	if req.NeedsBottle {
		text += " (bottled)"
	}
	if equipment := FormatEquipment(req.Equipment); equipment != "" {
		text += "  " + equipment
	}
	return text
}

// FormatEquipment renders counts as "class×n" in display order
func FormatEquipment(counts production.EquipmentCounts) string {
	parts := make([]string, 0, len(counts))
	for _, class := range catalog.AllEquipmentClasses {
		if n := counts[class]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s×%d", class, n))
		}
	}
	return strings.Join(parts, " ")
}

// FormatTreeSummary creates a compact summary of the tree
func (f *TreeFormatter) FormatTreeSummary(summary *services.RequirementSummary) string {
	if summary == nil {
		return "No requirement tree"
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Tree: %d nodes, depth=%d, canvases=%d, target=%s/s\n",
		summary.NodeCount, summary.Depth, summary.TotalCanvases(), FormatRate(summary.TargetRate)))

	if equipment := FormatEquipment(summary.Equipment); equipment != "" {
		builder.WriteString("Equipment: " + equipment + "\n")
	}

	if len(summary.UsedMaterials) > 0 {
		parts := make([]string, 0, len(summary.UsedMaterials))
		for _, id := range summary.UsedMaterials {
			parts = append(parts, fmt.Sprintf("%s %s/s", id, FormatRate(summary.MaterialDemand[id])))
		}
		builder.WriteString("Materials: " + strings.Join(parts, ", ") + "\n")
	}

	for _, level := range summary.Levels {
		builder.WriteString(fmt.Sprintf("Level %d: %s\n", level.Height, strings.Join(level.EntityIDs, ", ")))
	}

	return builder.String()
}

// FormatCompactTree renders a compact single-line tree representation
func (f *TreeFormatter) FormatCompactTree(root *production.RequirementNode) string {
	if root == nil {
		return "(empty)"
	}

	nodes := root.FlattenToList()
	parts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		parts = append(parts, node.ID)
	}
	return strings.Join(parts, " → ")
}

func (f *TreeFormatter) bold() string {
	if !f.useColors {
		return ""
	}
	return "\033[1m"
}

func (f *TreeFormatter) dim() string {
	if !f.useColors {
		return ""
	}
	return "\033[2m"
}

func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}

func sortedMaterialIDs(materials map[string]production.MaterialRequirement) []string {
	ids := make([]string, 0, len(materials))
	for id := range materials {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
