package production

import "github.com/andrescamacho/motif-planner/internal/domain/catalog"

// ShapeRates holds the boosted motif maker throughput per base shape (units/sec)
type ShapeRates struct {
	Circle   float64 `json:"circle"`
	Square   float64 `json:"square"`
	Triangle float64 `json:"triangle"`
}

// Rate returns the throughput for a base shape id
func (r ShapeRates) Rate(shape string) (float64, bool) {
	switch shape {
	case catalog.ShapeCircle:
		return r.Circle, true
	case catalog.ShapeSquare:
		return r.Square, true
	case catalog.ShapeTriangle:
		return r.Triangle, true
	}
	return 0, false
}

// EquipmentSettings is the fully resolved throughput of every equipment class for one
// calculation. Rates are units per second; ScissorsSecondsPerUnit is a time.
type EquipmentSettings struct {
	PipetteRate            float64    `json:"pipetteRate"`
	MixerRate              float64    `json:"mixerRate"`
	MixerEfficiency        float64    `json:"mixerEfficiency"`
	ScissorsSecondsPerUnit float64    `json:"scissorsSecondsPerUnit"`
	TutuRate               float64    `json:"tutuRate"`
	AlbedoRate             float64    `json:"albedoRate"`
	AlbedoEfficiency       float64    `json:"albedoEfficiency"`
	InkBottleRate          float64    `json:"inkBottleRate"`
	MotifMakerRates        ShapeRates `json:"motifMakerRates"`
	ScissorsDoublePort     bool       `json:"scissorsDoublePort"`

	// Canvas speed multipliers consumed by the production rate calculator
	CanvasMultiplier          float64 `json:"canvasMultiplier"`
	CompositeCanvasMultiplier float64 `json:"compositeCanvasMultiplier"`
	SpellGeneratorMultiplier  float64 `json:"spellGeneratorMultiplier"`
}
