package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
)

// GormCatalogRepository implements catalog persistence using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM-based catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Load reads every table and rebuilds the snapshot in its original load order
func (r *GormCatalogRepository) Load(ctx context.Context) (*catalog.Snapshot, error) {
	db := r.db.WithContext(ctx)

	var entityModels []CatalogEntityModel
	if err := db.Order("position ASC").Find(&entityModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog entities: %w", err)
	}

	var lineModels []CatalogRecipeLineModel
	if err := db.Order("position ASC").Find(&lineModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipe lines: %w", err)
	}

	var equipmentModels []CatalogEquipmentModel
	if err := db.Find(&equipmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}

	var tierModels []CatalogEquipmentTierModel
	if err := db.Find(&tierModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load equipment tiers: %w", err)
	}

	recipes := make(map[entityKey][]catalog.RecipeLine)
	for _, line := range lineModels {
		key := entityKey{source: line.EntitySource, id: line.EntityID}
		recipes[key] = append(recipes[key], catalog.RecipeLine{
			MaterialID: line.MaterialID,
			Quantity:   line.Quantity,
		})
	}

	snapshot := &catalog.Snapshot{Equipment: make(catalog.EquipmentCatalog, len(equipmentModels))}
	for _, m := range entityModels {
		entity := catalog.ProductionEntity{
			ID:             m.ID,
			Name:           m.Name,
			Source:         catalog.Source(m.Source),
			Rank:           catalog.Rank(m.Rank),
			OutputPerCycle: m.OutputPerCycle,
			CycleSeconds:   m.CycleSeconds,
			Recipe:         recipes[entityKey{source: m.Source, id: m.ID}],
		}

		switch entity.Source {
		case catalog.SourcePart:
			snapshot.Parts = append(snapshot.Parts, entity)
		case catalog.SourceHero:
			snapshot.Heroes = append(snapshot.Heroes, entity)
		case catalog.SourceSpell:
			snapshot.Spells = append(snapshot.Spells, entity)
		default:
			return nil, fmt.Errorf("entity %s has unknown source %q", m.ID, m.Source)
		}
	}

	for _, m := range equipmentModels {
		snapshot.Equipment[catalog.EquipmentClass(m.Class)] = catalog.EquipmentEntry{
			CycleSeconds:     m.CycleSeconds,
			RatePerSecond:    m.RatePerSecond,
			BaseCycleSeconds: m.BaseCycleSeconds,
			Bonus:            m.Bonus,
			Efficiency:       m.Efficiency,
		}
	}
	for _, m := range tierModels {
		class := catalog.EquipmentClass(m.Class)
		entry := snapshot.Equipment[class]
		if entry.Tiers == nil {
			entry.Tiers = make(map[catalog.Tier]catalog.TierVariant)
		}
		entry.Tiers[catalog.Tier(m.Tier)] = catalog.TierVariant{
			CycleSeconds:  m.CycleSeconds,
			RatePerSecond: m.RatePerSecond,
		}
		snapshot.Equipment[class] = entry
	}

	return snapshot, nil
}

// Save replaces the stored catalog with snapshot in a single transaction
func (r *GormCatalogRepository) Save(ctx context.Context, snapshot *catalog.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	importedAt := time.Now().UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children first so the foreign keys never dangle
		for _, model := range []interface{}{
			&CatalogRecipeLineModel{},
			&CatalogEquipmentTierModel{},
			&CatalogEntityModel{},
			&CatalogEquipmentModel{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear catalog table: %w", err)
			}
		}

		var entities []CatalogEntityModel
		var lines []CatalogRecipeLineModel
		tables := []struct {
			source   catalog.Source
			entities []catalog.ProductionEntity
		}{
			{catalog.SourcePart, snapshot.Parts},
			{catalog.SourceHero, snapshot.Heroes},
			{catalog.SourceSpell, snapshot.Spells},
		}
		position := 0
		for _, table := range tables {
			for _, e := range table.entities {
				entities = append(entities, CatalogEntityModel{
					Source:         string(table.source),
					ID:             e.ID,
					Position:       position,
					Name:           e.Name,
					Rank:           string(e.Rank),
					OutputPerCycle: e.OutputPerCycle,
					CycleSeconds:   e.CycleSeconds,
					ImportedAt:     importedAt,
				})
				position++
				for i, line := range e.Recipe {
					lines = append(lines, CatalogRecipeLineModel{
						EntitySource: string(table.source),
						EntityID:     e.ID,
						Position:     i,
						MaterialID:   line.MaterialID,
						Quantity:     line.Quantity,
					})
				}
			}
		}

		if len(entities) > 0 {
			if err := tx.Create(&entities).Error; err != nil {
				return fmt.Errorf("failed to insert catalog entities: %w", err)
			}
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return fmt.Errorf("failed to insert recipe lines: %w", err)
			}
		}

		var equipment []CatalogEquipmentModel
		var tiers []CatalogEquipmentTierModel
		for _, class := range sortedClasses(snapshot.Equipment) {
			entry := snapshot.Equipment[class]
			equipment = append(equipment, CatalogEquipmentModel{
				Class:            string(class),
				CycleSeconds:     entry.CycleSeconds,
				RatePerSecond:    entry.RatePerSecond,
				BaseCycleSeconds: entry.BaseCycleSeconds,
				Bonus:            entry.Bonus,
				Efficiency:       entry.Efficiency,
			})
			for _, tier := range []catalog.Tier{catalog.TierBase, catalog.TierHigh, catalog.TierTop} {
				if v, ok := entry.Tier(tier); ok {
					tiers = append(tiers, CatalogEquipmentTierModel{
						Class:         string(class),
						Tier:          string(tier),
						CycleSeconds:  v.CycleSeconds,
						RatePerSecond: v.RatePerSecond,
					})
				}
			}
		}

		if len(equipment) > 0 {
			if err := tx.Create(&equipment).Error; err != nil {
				return fmt.Errorf("failed to insert equipment: %w", err)
			}
		}
		if len(tiers) > 0 {
			if err := tx.Create(&tiers).Error; err != nil {
				return fmt.Errorf("failed to insert equipment tiers: %w", err)
			}
		}

		return nil
	})
}

type entityKey struct {
	source string
	id     string
}

// sortedClasses returns known classes in display order followed by any others
func sortedClasses(equipment catalog.EquipmentCatalog) []catalog.EquipmentClass {
	classes := make([]catalog.EquipmentClass, 0, len(equipment))
	known := make(map[catalog.EquipmentClass]bool, len(catalog.AllEquipmentClasses))
	for _, class := range catalog.AllEquipmentClasses {
		known[class] = true
		if _, ok := equipment[class]; ok {
			classes = append(classes, class)
		}
	}
	for class := range equipment {
		if !known[class] {
			classes = append(classes, class)
		}
	}
	return classes
}
