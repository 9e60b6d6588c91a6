package services

import (
	"math"

	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// compositeCanvasThreshold is the number of distinct recipe materials at which an
// entity is produced on a composite canvas instead of a standard one
const compositeCanvasThreshold = 3

// ProductionRateCalculator computes how fast a single canvas (or spell generator)
// produces one entity
type ProductionRateCalculator struct{}

// NewProductionRateCalculator creates a new production rate calculator
func NewProductionRateCalculator() *ProductionRateCalculator {
	return &ProductionRateCalculator{}
}

// CanvasClass returns the equipment class that produces the entity
func (c *ProductionRateCalculator) CanvasClass(entity catalog.ProductionEntity, isSpell bool) catalog.EquipmentClass {
	if isSpell {
		return catalog.EquipmentSpellGenerator
	}
	if entity.DistinctMaterialCount() >= compositeCanvasThreshold {
		return catalog.EquipmentCompositeCanvas
	}
	return catalog.EquipmentCanvas
}

// PerUnitRate returns the output rate of one unit of producing equipment in units/sec,
// together with the class of that equipment.
//
// Cycles shorter than one second are capped at one second, and the equipment
// multiplier never drops below 1 so that a base tier is a no-op.
func (c *ProductionRateCalculator) PerUnitRate(
	settings production.EquipmentSettings,
	entity catalog.ProductionEntity,
	isSpell bool,
) (float64, catalog.EquipmentClass) {
	effectiveCycle := math.Max(1, entity.CycleSeconds)
	basePerSecond := entity.OutputPerCycle / effectiveCycle

	class := c.CanvasClass(entity, isSpell)
	var multiplier float64
	switch class {
	case catalog.EquipmentSpellGenerator:
		multiplier = settings.SpellGeneratorMultiplier
	case catalog.EquipmentCompositeCanvas:
		multiplier = settings.CompositeCanvasMultiplier
	default:
		multiplier = settings.CanvasMultiplier
	}

	return basePerSecond * math.Max(1, multiplier), class
}
