package production

import "github.com/andrescamacho/motif-planner/internal/domain/catalog"

// TierSelection picks the performance tier of every tiered equipment class.
// An empty tier falls back to the catalog's untiered value.
type TierSelection struct {
	Canvas          catalog.Tier `json:"canvas" mapstructure:"canvas" validate:"omitempty,oneof=base high top"`
	CompositeCanvas catalog.Tier `json:"compositeCanvas" mapstructure:"composite_canvas" validate:"omitempty,oneof=base high top"`
	MotifMaker      catalog.Tier `json:"motifMaker" mapstructure:"motif_maker" validate:"omitempty,oneof=base high top"`
	Pipette         catalog.Tier `json:"pipette" mapstructure:"pipette" validate:"omitempty,oneof=base high top"`
	SpellGenerator  catalog.Tier `json:"spellGenerator" mapstructure:"spell_generator" validate:"omitempty,oneof=base high top"`
}

// Coefficients are percentage upgrades. Negative values are treated as 0.
// A zero efficiency means "use the catalog efficiency".
type Coefficients struct {
	Canvas           float64 `json:"canvas" mapstructure:"canvas"`
	MotifMaker       float64 `json:"motifMaker" mapstructure:"motif_maker"`
	Pipette          float64 `json:"pipette" mapstructure:"pipette"`
	Mixer            float64 `json:"mixer" mapstructure:"mixer"`
	MixerEfficiency  float64 `json:"mixerEfficiency" mapstructure:"mixer_efficiency" validate:"gte=0"`
	Scissors         float64 `json:"scissors" mapstructure:"scissors"`
	Albedo           float64 `json:"albedo" mapstructure:"albedo"`
	AlbedoEfficiency float64 `json:"albedoEfficiency" mapstructure:"albedo_efficiency" validate:"gte=0"`
}

// MotifBoosts are per-shape motif maker throughput percentages (100-300).
// Zero means 100.
type MotifBoosts struct {
	Circle   float64 `json:"circle" mapstructure:"circle" validate:"omitempty,min=100,max=300"`
	Square   float64 `json:"square" mapstructure:"square" validate:"omitempty,min=100,max=300"`
	Triangle float64 `json:"triangle" mapstructure:"triangle" validate:"omitempty,min=100,max=300"`
}

// Boost returns the boost percentage for a base shape id
func (b MotifBoosts) Boost(shape string) float64 {
	var pct float64
	switch shape {
	case catalog.ShapeCircle:
		pct = b.Circle
	case catalog.ShapeSquare:
		pct = b.Square
	case catalog.ShapeTriangle:
		pct = b.Triangle
	}
	if pct == 0 {
		return 100
	}
	return pct
}

// Options are the boolean calculation toggles
type Options struct {
	// ScissorsDoublePort doubles scissors output (two output ports)
	ScissorsDoublePort bool `json:"scissorsDoublePort" mapstructure:"scissors_double_port"`

	// TutuDoublePort counts the tutu house at 2 units per second
	TutuDoublePort bool `json:"tutuDoublePort" mapstructure:"tutu_double_port"`

	// TripleInkBottleConsumption makes spell generators consume 3x ink bottles for 2x output
	TripleInkBottleConsumption bool `json:"tripleInkBottleConsumption" mapstructure:"triple_ink_bottle_consumption"`

	// BigMotifBonus applies the catalog motif maker bonus (big motifs)
	BigMotifBonus bool `json:"bigMotifBonus" mapstructure:"big_motif_bonus"`
}

// ConfigurationBundle is everything a calculation needs besides the catalog.
// It is passed by value and never modified by the planner.
type ConfigurationBundle struct {
	Tiers        TierSelection `json:"tiers" mapstructure:"tiers"`
	Coefficients Coefficients  `json:"coefficients" mapstructure:"coefficients"`
	Boosts       MotifBoosts   `json:"boosts" mapstructure:"boosts"`
	Options      Options       `json:"options" mapstructure:"options"`
}

// DefaultBundle returns the stock configuration: base tiers, no upgrades, 100% boosts,
// big-motif bonus and the 2/1s tutu house enabled.
func DefaultBundle() ConfigurationBundle {
	return ConfigurationBundle{
		Tiers: TierSelection{
			Canvas:          catalog.TierBase,
			CompositeCanvas: catalog.TierBase,
			MotifMaker:      catalog.TierBase,
			Pipette:         catalog.TierBase,
			SpellGenerator:  catalog.TierBase,
		},
		Coefficients: Coefficients{
			MixerEfficiency:  50,
			AlbedoEfficiency: 33,
		},
		Boosts: MotifBoosts{
			Circle:   100,
			Square:   100,
			Triangle: 100,
		},
		Options: Options{
			TutuDoublePort: true,
			BigMotifBonus:  true,
		},
	}
}
