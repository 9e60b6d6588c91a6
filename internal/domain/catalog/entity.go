package catalog

// Source identifies which catalog table a production entity was loaded from
type Source string

const (
	// SourcePart is an intermediate part (parts.json)
	SourcePart Source = "part"

	// SourceHero is a minion-master hero (heroes_*.json "heroes")
	SourceHero Source = "hero"

	// SourceSpell is a spell-master spell (heroes_spell.json "spells")
	SourceSpell Source = "spell"
)

// Rank is the hero rarity rank shown in the gallery
type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
	RankD Rank = "D"
)

// RecipeLine is one input of a recipe: how many units of MaterialID are consumed
// per unit of output.
type RecipeLine struct {
	MaterialID string  `json:"materialId"`
	Quantity   float64 `json:"quantity"`
}

// ProductionEntity is an immutable catalog record for anything a canvas can produce:
// parts, heroes and spells share the same shape.
type ProductionEntity struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Source         Source       `json:"source"`
	Rank           Rank         `json:"rank,omitempty"`
	OutputPerCycle float64      `json:"outputPerCycle"`
	CycleSeconds   float64      `json:"cycleSeconds"`
	Recipe         []RecipeLine `json:"recipe"`
}

// DistinctMaterialCount returns how many different material ids the recipe references
func (e ProductionEntity) DistinctMaterialCount() int {
	seen := make(map[string]struct{}, len(e.Recipe))
	for _, line := range e.Recipe {
		seen[line.MaterialID] = struct{}{}
	}
	return len(seen)
}

// RecipeMap returns the recipe as a material → quantity map. Duplicate lines are summed.
func (e ProductionEntity) RecipeMap() map[string]float64 {
	result := make(map[string]float64, len(e.Recipe))
	for _, line := range e.Recipe {
		result[line.MaterialID] += line.Quantity
	}
	return result
}
