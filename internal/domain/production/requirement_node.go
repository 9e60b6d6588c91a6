package production

import (
	"sort"

	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
)

// EquipmentCounts maps equipment classes to a positive number of machines.
// Classes with no demand are absent.
type EquipmentCounts map[catalog.EquipmentClass]int

// Add merges other into c
func (c EquipmentCounts) Add(other EquipmentCounts) {
	for class, n := range other {
		c[class] += n
	}
}

// MaterialRequirement is the demand for one terminal material within a node
type MaterialRequirement struct {
	// Count is the accumulated demand in units per second
	Count float64 `json:"count"`

	// Equipment is computed from Count, never summed from partial counts
	Equipment EquipmentCounts `json:"equipment"`

	// NeedsBottle is set once any recipe line in the node referenced the bottled form
	NeedsBottle bool `json:"needsBottle,omitempty"`
}

// RequirementNode is one entity in the requirement tree.
//
// Materials holds terminal materials (inks, motifs) consumed directly by this node;
// Children holds intermediate entities and the auxiliary parts of special motifs, in
// the order their recipe lines were processed.
type RequirementNode struct {
	ID           string                         `json:"id"`
	Name         string                         `json:"name"`
	RequiredRate float64                        `json:"requiredRate"`
	CanvasCount  int                            `json:"canvasCount"`
	CanvasClass  catalog.EquipmentClass         `json:"canvasClass"`
	Materials    map[string]MaterialRequirement `json:"materials"`
	Children     []*RequirementNode             `json:"children"`
}

// NewRequirementNode creates an empty node
func NewRequirementNode(id, name string, requiredRate float64) *RequirementNode {
	return &RequirementNode{
		ID:           id,
		Name:         name,
		RequiredRate: requiredRate,
		Materials:    make(map[string]MaterialRequirement),
		Children:     make([]*RequirementNode, 0),
	}
}

// AddChild appends a child node
func (n *RequirementNode) AddChild(child *RequirementNode) {
	n.Children = append(n.Children, child)
}

// IsLeaf returns true if the node has no intermediate children
func (n *RequirementNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// TotalDepth returns the maximum depth of the tree from this node
func (n *RequirementNode) TotalDepth() int {
	maxChildDepth := 0
	for _, child := range n.Children {
		if d := child.TotalDepth(); d > maxChildDepth {
			maxChildDepth = d
		}
	}
	return maxChildDepth + 1
}

// Walk visits the node and its descendants depth-first in child order.
// depth is 0 for the receiver.
func (n *RequirementNode) Walk(fn func(node *RequirementNode, depth int)) {
	n.walk(fn, 0)
}

func (n *RequirementNode) walk(fn func(node *RequirementNode, depth int), depth int) {
	fn(n, depth)
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// FlattenToList returns every node in depth-first order. The same entity may
// appear more than once when it is required along several paths.
func (n *RequirementNode) FlattenToList() []*RequirementNode {
	result := make([]*RequirementNode, 0)
	n.Walk(func(node *RequirementNode, _ int) {
		result = append(result, node)
	})
	return result
}

// CountNodes returns the total number of nodes in the tree
func (n *RequirementNode) CountNodes() int {
	return len(n.FlattenToList())
}

// UsedMaterials returns the sorted ids of terminal materials with positive demand
// anywhere in the tree
func (n *RequirementNode) UsedMaterials() []string {
	used := make(map[string]struct{})
	n.Walk(func(node *RequirementNode, _ int) {
		for id, req := range node.Materials {
			if req.Count > 0 {
				used[id] = struct{}{}
			}
		}
	})

	result := make([]string, 0, len(used))
	for id := range used {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

// TotalEquipment sums material equipment counts over the whole tree. Canvases are
// included under the class each node was planned with.
func (n *RequirementNode) TotalEquipment() EquipmentCounts {
	totals := make(EquipmentCounts)
	n.Walk(func(node *RequirementNode, _ int) {
		if node.CanvasCount > 0 && node.CanvasClass != "" {
			totals[node.CanvasClass] += node.CanvasCount
		}
		for _, req := range node.Materials {
			totals.Add(req.Equipment)
		}
	})
	return totals
}
