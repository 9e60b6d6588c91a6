package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/motif-planner/internal/application/planning/services"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

func unitSettings() production.EquipmentSettings {
	return production.EquipmentSettings{
		CanvasMultiplier:          1,
		CompositeCanvasMultiplier: 1,
		SpellGeneratorMultiplier:  1,
	}
}

func TestProductionRateCalculator_PerUnitRate(t *testing.T) {
	twoInputs := []catalog.RecipeLine{{MaterialID: "circle", Quantity: 1}, {MaterialID: "ink_red", Quantity: 1}}
	threeInputs := append(append([]catalog.RecipeLine(nil), twoInputs...), catalog.RecipeLine{MaterialID: "square", Quantity: 1})

	tests := []struct {
		name          string
		settings      func() production.EquipmentSettings
		entity        catalog.ProductionEntity
		isSpell       bool
		expectedRate  float64
		expectedClass catalog.EquipmentClass
	}{
		{
			name:          "standard canvas",
			settings:      unitSettings,
			entity:        catalog.ProductionEntity{OutputPerCycle: 2, CycleSeconds: 4, Recipe: twoInputs},
			expectedRate:  0.5,
			expectedClass: catalog.EquipmentCanvas,
		},
		{
			name:          "cycle shorter than one second is capped",
			settings:      unitSettings,
			entity:        catalog.ProductionEntity{OutputPerCycle: 1, CycleSeconds: 0.25, Recipe: twoInputs},
			expectedRate:  1,
			expectedClass: catalog.EquipmentCanvas,
		},
		{
			name: "three distinct materials use the composite canvas",
			settings: func() production.EquipmentSettings {
				s := unitSettings()
				s.CanvasMultiplier = 1.5
				s.CompositeCanvasMultiplier = 3
				return s
			},
			entity:        catalog.ProductionEntity{OutputPerCycle: 1, CycleSeconds: 1, Recipe: threeInputs},
			expectedRate:  3,
			expectedClass: catalog.EquipmentCompositeCanvas,
		},
		{
			name: "duplicate lines count once",
			settings: func() production.EquipmentSettings {
				s := unitSettings()
				s.CompositeCanvasMultiplier = 3
				return s
			},
			entity: catalog.ProductionEntity{OutputPerCycle: 1, CycleSeconds: 1, Recipe: append(
				append([]catalog.RecipeLine(nil), twoInputs...), catalog.RecipeLine{MaterialID: "circle", Quantity: 2})},
			expectedRate:  1,
			expectedClass: catalog.EquipmentCanvas,
		},
		{
			name: "spell uses the spell generator multiplier",
			settings: func() production.EquipmentSettings {
				s := unitSettings()
				s.CanvasMultiplier = 5
				s.SpellGeneratorMultiplier = 2
				return s
			},
			entity:        catalog.ProductionEntity{OutputPerCycle: 1, CycleSeconds: 2, Recipe: twoInputs},
			isSpell:       true,
			expectedRate:  1,
			expectedClass: catalog.EquipmentSpellGenerator,
		},
		{
			name: "multiplier below one is floored",
			settings: func() production.EquipmentSettings {
				s := unitSettings()
				s.CanvasMultiplier = 0.25
				return s
			},
			entity:        catalog.ProductionEntity{OutputPerCycle: 1, CycleSeconds: 1},
			expectedRate:  1,
			expectedClass: catalog.EquipmentCanvas,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			calculator := services.NewProductionRateCalculator()

			// Act
			rate, class := calculator.PerUnitRate(tt.settings(), tt.entity, tt.isSpell)

			// Assert
			assert.Equal(t, tt.expectedRate, rate)
			assert.Equal(t, tt.expectedClass, class)
		})
	}
}
