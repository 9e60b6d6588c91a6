package services

import (
	"fmt"
	"math"

	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// PrimaryDemand is the demand on one primary ink produced by decomposing a mixed ink
type PrimaryDemand struct {
	MaterialID string
	Rate       float64
}

// MaterialExpander applies the fixed equipment rules for terminal materials
type MaterialExpander struct{}

// NewMaterialExpander creates a new material expander
func NewMaterialExpander() *MaterialExpander {
	return &MaterialExpander{}
}

// EquipmentFor returns the machines needed to supply rate units/sec of a terminal
// material. Classes with no demand are omitted. Intermediate materials yield an
// empty result. A machine count beyond the int range is an ErrInvalidRate.
func (x *MaterialExpander) EquipmentFor(
	material catalog.Material,
	rate float64,
	needsBottle bool,
	settings production.EquipmentSettings,
) (production.EquipmentCounts, error) {
	counts := make(production.EquipmentCounts)
	var err error
	need := func(class catalog.EquipmentClass, machines float64) {
		if err != nil {
			return
		}
		n, ok := machineCount(machines)
		if !ok {
			err = &production.ErrInvalidRate{
				Rate:   rate,
				Reason: fmt.Sprintf("%s count for %s is out of range", class, material.ID),
			}
			return
		}
		if n > 0 {
			counts[class] = n
		}
	}

	switch material.Kind {
	case catalog.KindWhiteInk:
		need(catalog.EquipmentAlbedoMaker, rate/settings.AlbedoRate)
	case catalog.KindCompositeInk:
		need(catalog.EquipmentMixer, rate/settings.MixerRate)
	case catalog.KindBaseInk:
		need(catalog.EquipmentPipette, rate/settings.PipetteRate)
	case catalog.KindShape:
		if shapeRate, ok := settings.MotifMakerRates.Rate(material.ID); ok {
			need(catalog.EquipmentMotifMaker, rate/shapeRate)
		}
	case catalog.KindCutShape:
		if shapeRate, ok := settings.MotifMakerRates.Rate(material.BaseShape); ok {
			need(catalog.EquipmentMotifMaker, rate/(shapeRate*portFactor(settings.ScissorsDoublePort)))
		}
		// Scissors are sized by time spent per unit, not by a throughput ratio
		need(catalog.EquipmentScissors, rate*settings.ScissorsSecondsPerUnit)
	case catalog.KindSpecialMotif:
		need(catalog.EquipmentTutuHouse, rate/settings.TutuRate)
	}

	if needsBottle && material.IsInk() {
		need(catalog.EquipmentInkBottleMaker, rate/settings.InkBottleRate)
	}

	if err != nil {
		return nil, err
	}
	return counts, nil
}

// Decompose splits a composite or white ink demand into its primary inks.
// Other materials return nil.
//
// Each primary receives rate / (efficiency x number of primaries), using the mixer
// efficiency for composites and the albedo efficiency for white.
func (x *MaterialExpander) Decompose(material catalog.Material, rate float64, settings production.EquipmentSettings) []PrimaryDemand {
	var efficiency float64
	switch material.Kind {
	case catalog.KindCompositeInk:
		efficiency = settings.MixerEfficiency
	case catalog.KindWhiteInk:
		efficiency = settings.AlbedoEfficiency
	default:
		return nil
	}
	if len(material.Primaries) == 0 {
		return nil
	}

	perPrimary := rate / (efficiency * float64(len(material.Primaries)))
	demands := make([]PrimaryDemand, 0, len(material.Primaries))
	for _, primary := range material.Primaries {
		demands = append(demands, PrimaryDemand{MaterialID: primary, Rate: perPrimary})
	}
	return demands
}

// machineCount rounds a fractional machine demand up. It reports false when the
// result is NaN, negative, or does not fit in an int.
func machineCount(machines float64) (int, bool) {
	c := math.Ceil(machines)
	if !(c >= 0 && c < float64(math.MaxInt)) {
		return 0, false
	}
	return int(c), true
}
