package catalog

// EquipmentClass names a kind of processing equipment. Values match the keys
// used by equipments.json.
type EquipmentClass string

const (
	EquipmentCanvas          EquipmentClass = "canvas"
	EquipmentCompositeCanvas EquipmentClass = "compositeCanvas"
	EquipmentSpellGenerator  EquipmentClass = "spellGenerator"
	EquipmentMotifMaker      EquipmentClass = "motifMaker"
	EquipmentPipette         EquipmentClass = "pipette"
	EquipmentMixer           EquipmentClass = "mixer"
	EquipmentScissors        EquipmentClass = "scissors"
	EquipmentTutuHouse       EquipmentClass = "tutuHouse"
	EquipmentAlbedoMaker     EquipmentClass = "albedoMaker"
	EquipmentInkBottleMaker  EquipmentClass = "inkBottleMaker"
)

// AllEquipmentClasses lists every class in display order
var AllEquipmentClasses = []EquipmentClass{
	EquipmentCanvas,
	EquipmentCompositeCanvas,
	EquipmentSpellGenerator,
	EquipmentMotifMaker,
	EquipmentPipette,
	EquipmentMixer,
	EquipmentScissors,
	EquipmentTutuHouse,
	EquipmentAlbedoMaker,
	EquipmentInkBottleMaker,
}

// Tier is one of the three ranked performance variants of a tiered equipment class
type Tier string

const (
	TierBase Tier = "base"
	TierHigh Tier = "high"
	TierTop  Tier = "top"
)

// IsValid reports whether t is one of the three known tiers
func (t Tier) IsValid() bool {
	switch t {
	case TierBase, TierHigh, TierTop:
		return true
	}
	return false
}

// TierVariant holds the timing of one tier. Canvas-type classes store their speed
// multiplier in CycleSeconds, as the source data does.
type TierVariant struct {
	CycleSeconds  float64 `json:"cycleSec,omitempty"`
	RatePerSecond float64 `json:"ratePerSec,omitempty"`
}

// EquipmentEntry is the catalog record for one equipment class. Zero values mean
// "not provided"; the rate resolver supplies fallbacks.
type EquipmentEntry struct {
	CycleSeconds     float64              `json:"cycleSec,omitempty"`
	RatePerSecond    float64              `json:"ratePerSec,omitempty"`
	BaseCycleSeconds float64              `json:"baseCycleSec,omitempty"`
	Bonus            float64              `json:"bonus,omitempty"`
	Efficiency       float64              `json:"efficiency,omitempty"`
	Tiers            map[Tier]TierVariant `json:"tiers,omitempty"`
}

// Tier returns the variant for t if the entry defines it
func (e EquipmentEntry) Tier(t Tier) (TierVariant, bool) {
	if t == "" || e.Tiers == nil {
		return TierVariant{}, false
	}
	v, ok := e.Tiers[t]
	return v, ok
}

// EquipmentCatalog maps each equipment class to its catalog entry
type EquipmentCatalog map[EquipmentClass]EquipmentEntry

// Entry returns the entry for class, or the zero entry when absent
func (c EquipmentCatalog) Entry(class EquipmentClass) EquipmentEntry {
	if c == nil {
		return EquipmentEntry{}
	}
	return c[class]
}
