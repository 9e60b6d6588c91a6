package helpers

import (
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
)

// StockEquipment returns an equipment catalog carrying the stock values of every class
func StockEquipment() catalog.EquipmentCatalog {
	return catalog.EquipmentCatalog{
		catalog.EquipmentCanvas: {
			Tiers: map[catalog.Tier]catalog.TierVariant{
				catalog.TierBase: {CycleSeconds: 1},
				catalog.TierHigh: {CycleSeconds: 1.5},
				catalog.TierTop:  {CycleSeconds: 2},
			},
		},
		catalog.EquipmentCompositeCanvas: {
			Tiers: map[catalog.Tier]catalog.TierVariant{
				catalog.TierBase: {CycleSeconds: 1},
				catalog.TierHigh: {CycleSeconds: 1.5},
				catalog.TierTop:  {CycleSeconds: 2},
			},
		},
		catalog.EquipmentSpellGenerator: {
			Tiers: map[catalog.Tier]catalog.TierVariant{
				catalog.TierBase: {CycleSeconds: 1},
				catalog.TierHigh: {CycleSeconds: 2},
				catalog.TierTop:  {CycleSeconds: 3},
			},
		},
		catalog.EquipmentMotifMaker: {
			BaseCycleSeconds: 2,
			Bonus:            2,
			Tiers: map[catalog.Tier]catalog.TierVariant{
				catalog.TierBase: {CycleSeconds: 2},
				catalog.TierHigh: {CycleSeconds: 1.5},
				catalog.TierTop:  {CycleSeconds: 1},
			},
		},
		catalog.EquipmentPipette: {
			RatePerSecond: 3,
			Tiers: map[catalog.Tier]catalog.TierVariant{
				catalog.TierBase: {RatePerSecond: 3},
				catalog.TierHigh: {RatePerSecond: 4},
				catalog.TierTop:  {RatePerSecond: 6},
			},
		},
		catalog.EquipmentMixer:          {RatePerSecond: 1, Efficiency: 0.5},
		catalog.EquipmentScissors:       {CycleSeconds: 0.5},
		catalog.EquipmentTutuHouse:      {RatePerSecond: 1},
		catalog.EquipmentAlbedoMaker:    {RatePerSecond: 1, Efficiency: 0.33},
		catalog.EquipmentInkBottleMaker: {RatePerSecond: 1},
	}
}

// FixtureSnapshot returns a small catalog exercising every material kind.
//
//	knight  = sword + star + ink_red + ink_magenta   (composite canvas)
//	sword   = 2 square + ink_red
//	slime   = 2 circle
//	archer  = rect + ink_cyan
//	painter = ink_white + inkbottle_red
//	fireball (spell) = 2 inkbottle_red + heart
//	hammer  = circle           (star auxiliary part)
//	cheese  = triangle + ink_yellow, 2s cycle (heart auxiliary part)
func FixtureSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Parts: []catalog.ProductionEntity{
			entity("hammer", "Hammer", "", 1, 1, line(catalog.ShapeCircle, 1)),
			entity("cheese", "Cheese", "", 1, 2, line(catalog.ShapeTriangle, 1), line(catalog.InkYellow, 1)),
			entity("sword", "Sword", "", 1, 1, line(catalog.ShapeSquare, 2), line(catalog.InkRed, 1)),
		},
		Heroes: []catalog.ProductionEntity{
			entity("knight", "Knight", catalog.RankS, 1, 1,
				line("sword", 1), line(catalog.MotifStar, 1), line(catalog.InkRed, 1), line(catalog.InkMagenta, 1)),
			entity("slime", "Slime", catalog.RankA, 1, 1, line(catalog.ShapeCircle, 2)),
			entity("archer", "Archer", catalog.RankB, 1, 1, line(catalog.CutRect, 1), line(catalog.InkCyan, 1)),
			entity("painter", "Painter", catalog.RankC, 1, 1, line(catalog.InkWhite, 1), line("inkbottle_red", 1)),
		},
		Spells: []catalog.ProductionEntity{
			entity("fireball", "Fireball", catalog.RankA, 1, 1, line("inkbottle_red", 2), line(catalog.MotifHeart, 1)),
		},
		Equipment: StockEquipment(),
	}
}

// FixtureCatalog returns the merged fixture catalog
func FixtureCatalog() *catalog.Catalog {
	return catalog.NewCatalog(*FixtureSnapshot())
}

func entity(id, name string, rank catalog.Rank, output, cycle float64, recipe ...catalog.RecipeLine) catalog.ProductionEntity {
	return catalog.ProductionEntity{
		ID:             id,
		Name:           name,
		Rank:           rank,
		OutputPerCycle: output,
		CycleSeconds:   cycle,
		Recipe:         recipe,
	}
}

func line(materialID string, qty float64) catalog.RecipeLine {
	return catalog.RecipeLine{MaterialID: materialID, Quantity: qty}
}
