package services

import (
	"math"

	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// Fallbacks used when the equipment catalog omits a value
const (
	fallbackPipetteRate         = 3.0
	fallbackMotifMakerCycleSec  = 2.0
	fallbackMotifMakerBonus     = 2.0
	fallbackMixerRate           = 1.0
	fallbackMixerEfficiencyPct  = 50.0
	fallbackScissorsCycleSec    = 0.5
	fallbackTutuRate            = 1.0
	fallbackAlbedoRate          = 1.0
	fallbackAlbedoEfficiencyPct = 33.0
	fallbackInkBottleRate       = 1.0
	fallbackCanvasMultiplier    = 1.0
)

// EquipmentRateResolver turns raw equipment catalog entries plus a configuration
// bundle into concrete per-class throughput.
type EquipmentRateResolver struct{}

// NewEquipmentRateResolver creates a new equipment rate resolver
func NewEquipmentRateResolver() *EquipmentRateResolver {
	return &EquipmentRateResolver{}
}

// Resolve computes EquipmentSettings for one calculation.
//
// Rules:
//   - coefficients are clamped to >= 0 and applied as (1 + coef/100)
//   - motif maker: (1/cycle) x bonus (when big motifs are on) x coefficient x shape boost/100
//   - scissors: base seconds / (coefficient x (double port ? 2 : 1))
//   - mixer and albedo maker: base rate x coefficient x efficiency/100
//   - tutu house: base rate x (double port ? 2 : 1)
//   - canvas and composite canvas multipliers take the canvas coefficient; the spell
//     generator multiplier takes none
//
// Any resolved rate that is not a positive finite number is returned as
// ErrInvalidEquipmentRate rather than being allowed to reach a division.
func (r *EquipmentRateResolver) Resolve(
	equipment catalog.EquipmentCatalog,
	bundle production.ConfigurationBundle,
) (production.EquipmentSettings, error) {
	coef := bundle.Coefficients

	pipette := equipment.Entry(catalog.EquipmentPipette)
	pipetteBase := firstPositive(tierRate(pipette, bundle.Tiers.Pipette), pipette.RatePerSecond, fallbackPipetteRate)
	pipetteRate := pipetteBase * upgrade(coef.Pipette)

	motifMaker := equipment.Entry(catalog.EquipmentMotifMaker)
	motifCycle := firstPositive(tierCycle(motifMaker, bundle.Tiers.MotifMaker), motifMaker.BaseCycleSeconds, fallbackMotifMakerCycleSec)
	bonus := 1.0
	if bundle.Options.BigMotifBonus {
		bonus = firstPositive(motifMaker.Bonus, fallbackMotifMakerBonus)
	}
	baseMotifRate := (1 / motifCycle * bonus) * upgrade(coef.MotifMaker)

	scissors := equipment.Entry(catalog.EquipmentScissors)
	scissorsBase := firstPositive(scissors.CycleSeconds, fallbackScissorsCycleSec)
	scissorsSec := scissorsBase / (upgrade(coef.Scissors) * portFactor(bundle.Options.ScissorsDoublePort))

	mixer := equipment.Entry(catalog.EquipmentMixer)
	mixerEffPct := firstPositive(coef.MixerEfficiency, mixer.Efficiency*100, fallbackMixerEfficiencyPct)
	mixerRate := firstPositive(mixer.RatePerSecond, fallbackMixerRate) * upgrade(coef.Mixer) * (mixerEffPct / 100)

	albedo := equipment.Entry(catalog.EquipmentAlbedoMaker)
	albedoEffPct := firstPositive(coef.AlbedoEfficiency, albedo.Efficiency*100, fallbackAlbedoEfficiencyPct)
	albedoRate := firstPositive(albedo.RatePerSecond, fallbackAlbedoRate) * upgrade(coef.Albedo) * (albedoEffPct / 100)

	tutu := equipment.Entry(catalog.EquipmentTutuHouse)
	tutuRate := firstPositive(tutu.RatePerSecond, fallbackTutuRate) * portFactor(bundle.Options.TutuDoublePort)

	bottle := equipment.Entry(catalog.EquipmentInkBottleMaker)
	bottleRate := firstPositive(bottle.RatePerSecond, fallbackInkBottleRate)

	canvasUpgrade := upgrade(coef.Canvas)
	settings := production.EquipmentSettings{
		PipetteRate:            pipetteRate,
		MixerRate:              mixerRate,
		MixerEfficiency:        mixerEffPct / 100,
		ScissorsSecondsPerUnit: scissorsSec,
		TutuRate:               tutuRate,
		AlbedoRate:             albedoRate,
		AlbedoEfficiency:       albedoEffPct / 100,
		InkBottleRate:          bottleRate,
		MotifMakerRates: production.ShapeRates{
			Circle:   baseMotifRate * bundle.Boosts.Boost(catalog.ShapeCircle) / 100,
			Square:   baseMotifRate * bundle.Boosts.Boost(catalog.ShapeSquare) / 100,
			Triangle: baseMotifRate * bundle.Boosts.Boost(catalog.ShapeTriangle) / 100,
		},
		ScissorsDoublePort:        bundle.Options.ScissorsDoublePort,
		CanvasMultiplier:          canvasMultiplier(equipment.Entry(catalog.EquipmentCanvas), bundle.Tiers.Canvas) * canvasUpgrade,
		CompositeCanvasMultiplier: canvasMultiplier(equipment.Entry(catalog.EquipmentCompositeCanvas), bundle.Tiers.CompositeCanvas) * canvasUpgrade,
		SpellGeneratorMultiplier:  canvasMultiplier(equipment.Entry(catalog.EquipmentSpellGenerator), bundle.Tiers.SpellGenerator),
	}

	if err := validateSettings(settings); err != nil {
		return production.EquipmentSettings{}, err
	}
	return settings, nil
}

func validateSettings(s production.EquipmentSettings) error {
	rates := []struct {
		class catalog.EquipmentClass
		value float64
	}{
		{catalog.EquipmentPipette, s.PipetteRate},
		{catalog.EquipmentMixer, s.MixerRate},
		{catalog.EquipmentScissors, s.ScissorsSecondsPerUnit},
		{catalog.EquipmentTutuHouse, s.TutuRate},
		{catalog.EquipmentAlbedoMaker, s.AlbedoRate},
		{catalog.EquipmentInkBottleMaker, s.InkBottleRate},
		{catalog.EquipmentMotifMaker, s.MotifMakerRates.Circle},
		{catalog.EquipmentMotifMaker, s.MotifMakerRates.Square},
		{catalog.EquipmentMotifMaker, s.MotifMakerRates.Triangle},
	}
	for _, rate := range rates {
		if !isPositiveFinite(rate.value) {
			return &production.ErrInvalidEquipmentRate{Class: rate.class, Value: rate.value}
		}
	}

	multipliers := []struct {
		class catalog.EquipmentClass
		value float64
	}{
		{catalog.EquipmentCanvas, s.CanvasMultiplier},
		{catalog.EquipmentCompositeCanvas, s.CompositeCanvasMultiplier},
		{catalog.EquipmentSpellGenerator, s.SpellGeneratorMultiplier},
	}
	for _, m := range multipliers {
		if math.IsNaN(m.value) || math.IsInf(m.value, 0) {
			return &production.ErrInvalidEquipmentRate{Class: m.class, Value: m.value}
		}
	}
	return nil
}

// upgrade converts a percentage coefficient into a multiplier. Negative
// coefficients count as 0.
func upgrade(pct float64) float64 {
	return 1 + math.Max(0, pct)/100
}

func portFactor(doublePort bool) float64 {
	if doublePort {
		return 2
	}
	return 1
}

func tierRate(entry catalog.EquipmentEntry, tier catalog.Tier) float64 {
	if v, ok := entry.Tier(tier); ok {
		return v.RatePerSecond
	}
	return 0
}

func tierCycle(entry catalog.EquipmentEntry, tier catalog.Tier) float64 {
	if v, ok := entry.Tier(tier); ok {
		return v.CycleSeconds
	}
	return 0
}

// canvasMultiplier reads a canvas-type tier. Canvas tiers carry a speed multiplier in
// their cycle field; without a selected tier the multiplier is 1.
func canvasMultiplier(entry catalog.EquipmentEntry, tier catalog.Tier) float64 {
	if tier == "" {
		return fallbackCanvasMultiplier
	}
	return firstPositive(tierCycle(entry, tier), fallbackCanvasMultiplier)
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
