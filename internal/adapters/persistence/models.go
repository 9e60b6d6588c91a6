package persistence

import (
	"time"
)

// CatalogEntityModel represents the catalog_entities table.
// The same id may appear in more than one source table, so the key is (source, id).
type CatalogEntityModel struct {
	Source         string    `gorm:"column:source;primaryKey;not null"`
	ID             string    `gorm:"column:id;primaryKey;not null"`
	Position       int       `gorm:"column:position;not null"` // load order within the source
	Name           string    `gorm:"column:name"`
	Rank           string    `gorm:"column:rank"`
	OutputPerCycle float64   `gorm:"column:output_per_cycle;not null;default:0"`
	CycleSeconds   float64   `gorm:"column:cycle_seconds;not null;default:0"`
	ImportedAt     time.Time `gorm:"column:imported_at;not null"`
}

func (CatalogEntityModel) TableName() string {
	return "catalog_entities"
}

// CatalogRecipeLineModel represents the catalog_recipe_lines table
type CatalogRecipeLineModel struct {
	ID           int                 `gorm:"column:id;primaryKey;autoIncrement"`
	EntitySource string              `gorm:"column:entity_source;not null;index:idx_recipe_entity"`
	EntityID     string              `gorm:"column:entity_id;not null;index:idx_recipe_entity"`
	Entity       *CatalogEntityModel `gorm:"foreignKey:EntitySource,EntityID;references:Source,ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Position     int                 `gorm:"column:position;not null"`
	MaterialID   string              `gorm:"column:material_id;not null"`
	Quantity     float64             `gorm:"column:quantity;not null"`
}

func (CatalogRecipeLineModel) TableName() string {
	return "catalog_recipe_lines"
}

// CatalogEquipmentModel represents the catalog_equipment table. Zero columns mean
// "not provided", matching the domain entry.
type CatalogEquipmentModel struct {
	Class            string  `gorm:"column:class;primaryKey;not null"`
	CycleSeconds     float64 `gorm:"column:cycle_seconds;not null;default:0"`
	RatePerSecond    float64 `gorm:"column:rate_per_second;not null;default:0"`
	BaseCycleSeconds float64 `gorm:"column:base_cycle_seconds;not null;default:0"`
	Bonus            float64 `gorm:"column:bonus;not null;default:0"`
	Efficiency       float64 `gorm:"column:efficiency;not null;default:0"`
}

func (CatalogEquipmentModel) TableName() string {
	return "catalog_equipment"
}

// CatalogEquipmentTierModel represents the catalog_equipment_tiers table
type CatalogEquipmentTierModel struct {
	Class         string                 `gorm:"column:class;primaryKey;not null"`
	Tier          string                 `gorm:"column:tier;primaryKey;not null"`
	Equipment     *CatalogEquipmentModel `gorm:"foreignKey:Class;references:Class;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CycleSeconds  float64                `gorm:"column:cycle_seconds;not null;default:0"`
	RatePerSecond float64                `gorm:"column:rate_per_second;not null;default:0"`
}

func (CatalogEquipmentTierModel) TableName() string {
	return "catalog_equipment_tiers"
}

// AllModels lists every model in migration order
func AllModels() []interface{} {
	return []interface{}{
		&CatalogEntityModel{},
		&CatalogRecipeLineModel{},
		&CatalogEquipmentModel{},
		&CatalogEquipmentTierModel{},
	}
}
