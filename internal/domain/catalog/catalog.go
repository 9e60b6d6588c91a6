package catalog

import (
	"sort"
)

// Snapshot is the raw catalog as loaded from a data source, table by table
type Snapshot struct {
	Parts     []ProductionEntity
	Heroes    []ProductionEntity
	Spells    []ProductionEntity
	Equipment EquipmentCatalog
}

// Catalog is an immutable, pre-merged view of a Snapshot.
//
// Lookups probe parts, then heroes, then spells; the first table that defines an id
// wins. Spell membership is tracked separately because a spell is planned with the
// spell generator regardless of which table won the merge. Every material referenced
// by any recipe is classified once here.
type Catalog struct {
	entities  map[string]ProductionEntity
	spells    map[string]struct{}
	materials map[string]Material
	equipment EquipmentCatalog
	order     []string
}

// NewCatalog merges a snapshot into a Catalog
func NewCatalog(snapshot Snapshot) *Catalog {
	c := &Catalog{
		entities:  make(map[string]ProductionEntity),
		spells:    make(map[string]struct{}, len(snapshot.Spells)),
		materials: make(map[string]Material),
		equipment: copyEquipment(snapshot.Equipment),
	}

	tables := []struct {
		source   Source
		entities []ProductionEntity
	}{
		{SourcePart, snapshot.Parts},
		{SourceHero, snapshot.Heroes},
		{SourceSpell, snapshot.Spells},
	}

	for _, table := range tables {
		for _, entity := range table.entities {
			if table.source == SourceSpell {
				c.spells[entity.ID] = struct{}{}
			}
			if _, exists := c.entities[entity.ID]; exists {
				continue
			}
			entity.Source = table.source
			entity.Recipe = append([]RecipeLine(nil), entity.Recipe...)
			c.entities[entity.ID] = entity
			c.order = append(c.order, entity.ID)
		}
	}

	for _, entity := range c.entities {
		for _, line := range entity.Recipe {
			c.classify(line.MaterialID)
		}
	}

	return c
}

func (c *Catalog) classify(id string) Material {
	if m, ok := c.materials[id]; ok {
		return m
	}

	m := Classify(id)
	c.materials[id] = m

	if m.Kind == KindBottledInk {
		c.classify(m.Underlying)
	}
	return m
}

func copyEquipment(src EquipmentCatalog) EquipmentCatalog {
	dst := make(EquipmentCatalog, len(src))
	for class, entry := range src {
		if entry.Tiers != nil {
			tiers := make(map[Tier]TierVariant, len(entry.Tiers))
			for t, v := range entry.Tiers {
				tiers[t] = v
			}
			entry.Tiers = tiers
		}
		dst[class] = entry
	}
	return dst
}

// Lookup returns the entity with id from the merged tables
func (c *Catalog) Lookup(id string) (ProductionEntity, bool) {
	e, ok := c.entities[id]
	return e, ok
}

// IsSpell reports whether id appears in the spell table
func (c *Catalog) IsSpell(id string) bool {
	_, ok := c.spells[id]
	return ok
}

// Material returns the classification of a material id. Ids not referenced by any
// recipe are classified on demand without being cached, so Catalog stays read-only.
func (c *Catalog) Material(id string) Material {
	if m, ok := c.materials[id]; ok {
		return m
	}
	return Classify(id)
}

// Equipment returns the equipment catalog
func (c *Catalog) Equipment() EquipmentCatalog {
	return c.equipment
}

// Entities returns all merged entities in load order
func (c *Catalog) Entities() []ProductionEntity {
	result := make([]ProductionEntity, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.entities[id])
	}
	return result
}

// EntitiesBySource returns the merged entities that came from source, in load order
func (c *Catalog) EntitiesBySource(source Source) []ProductionEntity {
	result := make([]ProductionEntity, 0)
	for _, id := range c.order {
		if e := c.entities[id]; e.Source == source {
			result = append(result, e)
		}
	}
	return result
}

// MaterialIDs returns every classified material id, sorted
func (c *Catalog) MaterialIDs() []string {
	ids := make([]string, 0, len(c.materials))
	for id := range c.materials {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of merged entities
func (c *Catalog) Len() int {
	return len(c.entities)
}
