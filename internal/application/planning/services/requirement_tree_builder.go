package services

import (
	"fmt"

	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// DefaultMaxDepth bounds recursion when no explicit limit is configured
const DefaultMaxDepth = 64

// tripleBottleOutputFactor and tripleBottleConsumptionFactor describe the spell
// generator option that consumes 3x ink bottles for 2x output
const (
	tripleBottleOutputFactor      = 2.0
	tripleBottleConsumptionFactor = 3.0 / 2.0
)

// BuilderOption configures a RequirementTreeBuilder
type BuilderOption func(*RequirementTreeBuilder)

// WithMaxDepth sets the recursion ceiling. Values <= 0 keep the default.
func WithMaxDepth(depth int) BuilderOption {
	return func(b *RequirementTreeBuilder) {
		if depth > 0 {
			b.maxDepth = depth
		}
	}
}

// RequirementTreeBuilder expands a target entity and rate into a RequirementNode tree.
//
// The builder holds only immutable collaborators; every Build call allocates its own
// traversal state, so one builder may be shared across goroutines.
type RequirementTreeBuilder struct {
	catalog    *catalog.Catalog
	resolver   *EquipmentRateResolver
	calculator *ProductionRateCalculator
	expander   *MaterialExpander
	maxDepth   int
}

// NewRequirementTreeBuilder creates a builder over a merged catalog
func NewRequirementTreeBuilder(cat *catalog.Catalog, opts ...BuilderOption) *RequirementTreeBuilder {
	b := &RequirementTreeBuilder{
		catalog:    cat,
		resolver:   NewEquipmentRateResolver(),
		calculator: NewProductionRateCalculator(),
		expander:   NewMaterialExpander(),
		maxDepth:   DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// MaxDepth returns the configured recursion ceiling
func (b *RequirementTreeBuilder) MaxDepth() int {
	return b.maxDepth
}

// Build looks up entityID and builds its requirement tree for targetRate units/sec
func (b *RequirementTreeBuilder) Build(
	entityID string,
	targetRate float64,
	bundle production.ConfigurationBundle,
) (*production.RequirementNode, error) {
	if !isPositiveFinite(targetRate) {
		return nil, &production.ErrInvalidRate{Rate: targetRate}
	}

	entity, ok := b.catalog.Lookup(entityID)
	if !ok {
		return nil, &production.ErrUnknownEntity{EntityID: entityID}
	}

	return b.BuildEntity(entity, targetRate, bundle)
}

// BuildEntity builds the requirement tree for an entity that need not be in the catalog.
// Materials it references are still resolved against the catalog.
//
// The algorithm:
// 1. Resolve equipment settings from the catalog and bundle
// 2. Size the producing canvas from the per-unit rate
// 3. Walk the recipe in order, folding terminal materials into the node and
// recursing into intermediate ones
// 4. Fail on missing entries, cycles on the active path, or excessive depth
func (b *RequirementTreeBuilder) BuildEntity(
	entity catalog.ProductionEntity,
	targetRate float64,
	bundle production.ConfigurationBundle,
) (*production.RequirementNode, error) {
	settings, err := b.resolver.Resolve(b.catalog.Equipment(), bundle)
	if err != nil {
		return nil, err
	}
	return b.BuildEntityWithSettings(entity, targetRate, bundle, settings)
}

// BuildEntityWithSettings builds like BuildEntity over settings already resolved for
// bundle, so a caller that needs the settings resolves them once
func (b *RequirementTreeBuilder) BuildEntityWithSettings(
	entity catalog.ProductionEntity,
	targetRate float64,
	bundle production.ConfigurationBundle,
	settings production.EquipmentSettings,
) (*production.RequirementNode, error) {
	if !isPositiveFinite(targetRate) {
		return nil, &production.ErrInvalidRate{Rate: targetRate}
	}

	run := &buildRun{
		builder:      b,
		settings:     settings,
		tripleBottle: bundle.Options.TripleInkBottleConsumption,
	}
	visited := make(map[string]bool)
	return run.buildRecursive(entity, targetRate, visited, []string{})
}

// buildRun carries the per-call state of one Build
type buildRun struct {
	builder      *RequirementTreeBuilder
	settings     production.EquipmentSettings
	tripleBottle bool
}

// buildRecursive is the internal recursive function for tree building.
// visited holds the entities on the active path only.
func (r *buildRun) buildRecursive(
	entity catalog.ProductionEntity,
	targetRate float64,
	visited map[string]bool,
	path []string,
) (*production.RequirementNode, error) {
	// Detect cycles
	if visited[entity.ID] {
		return nil, &production.ErrRecipeCycle{
			EntityID: entity.ID,
			Chain:    appendPath(path, entity.ID),
		}
	}
	if len(path) >= r.builder.maxDepth {
		return nil, &production.ErrDepthExceeded{
			Limit: r.builder.maxDepth,
			Chain: appendPath(path, entity.ID),
		}
	}

	visited[entity.ID] = true
	defer func() { visited[entity.ID] = false }()

	currentPath := appendPath(path, entity.ID)

	cat := r.builder.catalog
	isSpell := cat.IsSpell(entity.ID)
	boosted := isSpell && r.tripleBottle

	perUnitRate, canvasClass := r.builder.calculator.PerUnitRate(r.settings, entity, isSpell)
	if boosted {
		perUnitRate *= tripleBottleOutputFactor
	}
	if !isPositiveFinite(perUnitRate) {
		return nil, &production.ErrInvalidEquipmentRate{Class: canvasClass, Value: perUnitRate}
	}

	node := production.NewRequirementNode(entity.ID, entity.Name, targetRate)
	node.CanvasClass = canvasClass
	canvases, ok := machineCount(targetRate / perUnitRate)
	if !ok {
		return nil, &production.ErrInvalidRate{
			Rate:   targetRate,
			Reason: fmt.Sprintf("%s count for %s is out of range", canvasClass, entity.ID),
		}
	}
	node.CanvasCount = canvases

	for _, line := range entity.Recipe {
		materialRate := targetRate * line.Quantity

		material := cat.Material(line.MaterialID)
		needsBottle := false
		if material.Kind == catalog.KindBottledInk {
			needsBottle = true
			if boosted {
				materialRate *= tripleBottleConsumptionFactor
			}
			material = cat.Material(material.Underlying)
		}

		if !material.IsTerminal() {
			childEntity, ok := cat.Lookup(material.ID)
			if !ok {
				return nil, &production.ErrMissingCatalogEntry{MaterialID: material.ID, ReferencedBy: entity.ID}
			}
			// A zero-quantity line demands nothing from its producer
			if materialRate == 0 {
				continue
			}
			child, err := r.buildRecursive(childEntity, materialRate, visited, currentPath)
			if err != nil {
				return nil, err
			}
			node.AddChild(child)
			continue
		}

		if err := r.fold(node, material, materialRate, needsBottle); err != nil {
			return nil, err
		}

		switch material.Kind {
		case catalog.KindSpecialMotif:
			part, ok := cat.Lookup(material.AuxiliaryPart)
			if !ok {
				return nil, &production.ErrMissingCatalogEntry{MaterialID: material.AuxiliaryPart, ReferencedBy: entity.ID}
			}
			if materialRate == 0 {
				continue
			}
			child, err := r.buildRecursive(part, materialRate/r.settings.TutuRate, visited, currentPath)
			if err != nil {
				return nil, err
			}
			node.AddChild(child)

		case catalog.KindCompositeInk, catalog.KindWhiteInk:
			for _, demand := range r.builder.expander.Decompose(material, materialRate, r.settings) {
				if err := r.fold(node, cat.Material(demand.MaterialID), demand.Rate, false); err != nil {
					return nil, err
				}
			}
		}
	}

	return node, nil
}

// fold accumulates demand for a terminal material and recomputes its equipment from
// the accumulated total. The bottling flag is sticky once set.
func (r *buildRun) fold(node *production.RequirementNode, material catalog.Material, rate float64, needsBottle bool) error {
	req := node.Materials[material.ID]
	req.Count += rate
	req.NeedsBottle = req.NeedsBottle || needsBottle
	equipment, err := r.builder.expander.EquipmentFor(material, req.Count, req.NeedsBottle, r.settings)
	if err != nil {
		return err
	}
	req.Equipment = equipment
	node.Materials[material.ID] = req
	return nil
}

func appendPath(path []string, id string) []string {
	result := make([]string, len(path), len(path)+1)
	copy(result, path)
	return append(result, id)
}
