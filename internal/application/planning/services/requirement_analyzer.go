package services

import (
	"sort"

	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// BuildLevel groups entities that only depend on lower levels
type BuildLevel struct {
	Height    int      `json:"height"` // 0 = entities with no intermediate children
	EntityIDs []string `json:"entityIds"`
}

// RequirementSummary aggregates a requirement tree for reporting
type RequirementSummary struct {
	RootID           string                     `json:"rootId"`
	TargetRate       float64                    `json:"targetRate"`
	NodeCount        int                        `json:"nodeCount"`
	Depth            int                        `json:"depth"`
	UsedMaterials    []string                   `json:"usedMaterials"`
	MaterialDemand   map[string]float64         `json:"materialDemand"`
	Equipment        production.EquipmentCounts `json:"equipment"`
	CanvasesByEntity map[string]int             `json:"canvasesByEntity"`
	Levels           []BuildLevel               `json:"levels"`
}

// TotalCanvases returns the number of producing machines across all entities
func (s *RequirementSummary) TotalCanvases() int {
	total := 0
	for _, n := range s.CanvasesByEntity {
		total += n
	}
	return total
}

// RequirementAnalyzer derives totals and build order from a requirement tree
type RequirementAnalyzer struct{}

// NewRequirementAnalyzer creates a new requirement analyzer
func NewRequirementAnalyzer() *RequirementAnalyzer {
	return &RequirementAnalyzer{}
}

// Summarize walks the tree once and aggregates it.
//
// Material demand sums the per-node counts, so a base ink consumed by several nodes
// is reported once with its total. Equipment totals sum the per-node counts, which
// matches building each node's machines separately.
func (a *RequirementAnalyzer) Summarize(root *production.RequirementNode) *RequirementSummary {
	summary := &RequirementSummary{
		RootID:           root.ID,
		TargetRate:       root.RequiredRate,
		NodeCount:        root.CountNodes(),
		Depth:            root.TotalDepth(),
		UsedMaterials:    root.UsedMaterials(),
		MaterialDemand:   make(map[string]float64),
		Equipment:        root.TotalEquipment(),
		CanvasesByEntity: make(map[string]int),
		Levels:           a.IdentifyBuildLevels(root),
	}

	root.Walk(func(node *production.RequirementNode, _ int) {
		summary.CanvasesByEntity[node.ID] += node.CanvasCount
		for id, req := range node.Materials {
			if req.Count > 0 {
				summary.MaterialDemand[id] += req.Count
			}
		}
	})

	return summary
}

// IdentifyBuildLevels groups entities by height, leaves first.
//
// Example tree:
//
//	hero (height 2)
//	├── sword (height 1)
//	│   └── hammer (height 0)
//	└── hammer (height 0 - shared)
//
// Result:
// Level 0: [hammer]
// Level 1: [sword]
// Level 2: [hero]
func (a *RequirementAnalyzer) IdentifyBuildLevels(root *production.RequirementNode) []BuildLevel {
	heights := make(map[string]int)
	a.computeHeights(root, heights)

	levelMap := make(map[int][]string)
	seen := make(map[string]bool)
	for _, node := range root.FlattenToList() {
		if seen[node.ID] {
			continue
		}
		seen[node.ID] = true
		h := heights[node.ID]
		levelMap[h] = append(levelMap[h], node.ID)
	}

	keys := make([]int, 0, len(levelMap))
	for h := range levelMap {
		keys = append(keys, h)
	}
	sort.Ints(keys)

	result := make([]BuildLevel, 0, len(keys))
	for _, h := range keys {
		result = append(result, BuildLevel{Height: h, EntityIDs: levelMap[h]})
	}
	return result
}

// computeHeights records the maximum distance to a leaf for each entity id
func (a *RequirementAnalyzer) computeHeights(node *production.RequirementNode, heights map[string]int) int {
	if h, exists := heights[node.ID]; exists {
		return h
	}

	if node.IsLeaf() {
		heights[node.ID] = 0
		return 0
	}

	maxChild := 0
	for _, child := range node.Children {
		if h := a.computeHeights(child, heights); h > maxChild {
			maxChild = h
		}
	}

	heights[node.ID] = maxChild + 1
	return maxChild + 1
}
