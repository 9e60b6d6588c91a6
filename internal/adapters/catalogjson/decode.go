package catalogjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ohler55/ojg/jp"

	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
)

var (
	partsPath  = jp.MustParseString("$.parts[*]")
	heroesPath = jp.MustParseString("$.heroes[*]")
	spellsPath = jp.MustParseString("$.spells[*]")
)

// RecipeOrder holds, per record index of one section, the recipe keys in document order
type RecipeOrder [][]string

// DecodeEntities extracts the production entities selected by path from a parsed document.
// Recipe lines follow order, which is aligned with the selected records. A record with no
// usable order falls back to lines sorted by material id.
func DecodeEntities(doc any, path jp.Expr, order RecipeOrder) ([]catalog.ProductionEntity, error) {
	records := path.Get(doc)
	entities := make([]catalog.ProductionEntity, 0, len(records))

	for idx, record := range records {
		fields, ok := record.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected an object", path, idx)
		}

		id, _ := fields["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("%s[%d]: missing id", path, idx)
		}

		entity := catalog.ProductionEntity{ID: id}
		entity.Name, _ = fields["name"].(string)
		if rank, ok := fields["rank"].(string); ok {
			entity.Rank = catalog.Rank(rank)
		}

		var err error
		if entity.OutputPerCycle, err = optionalNumber(fields, "outputPerCycle"); err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		if entity.CycleSeconds, err = optionalNumber(fields, "cycleSec"); err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		var keys []string
		if idx < len(order) {
			keys = order[idx]
		}
		if entity.Recipe, err = decodeRecipe(fields["recipe"], keys); err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}

		entities = append(entities, entity)
	}

	return entities, nil
}

func decodeRecipe(value any, keys []string) ([]catalog.RecipeLine, error) {
	if value == nil {
		return nil, nil
	}
	recipe, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("recipe must be an object")
	}

	materials := orderedKeys(recipe, keys)

	lines := make([]catalog.RecipeLine, 0, len(materials))
	for _, material := range materials {
		qty, ok := toFloat(recipe[material])
		if !ok {
			return nil, fmt.Errorf("recipe quantity of %s is not a number", material)
		}
		lines = append(lines, catalog.RecipeLine{MaterialID: material, Quantity: qty})
	}
	return lines, nil
}

// orderedKeys returns the recipe keys in document order when keys names exactly the
// recipe's materials, otherwise sorted by material id
func orderedKeys(recipe map[string]any, keys []string) []string {
	materials := make([]string, 0, len(recipe))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if _, ok := recipe[key]; !ok || seen[key] {
			continue
		}
		seen[key] = true
		materials = append(materials, key)
	}
	if len(materials) == len(recipe) {
		return materials
	}

	materials = materials[:0]
	for material := range recipe {
		materials = append(materials, material)
	}
	sort.Strings(materials)
	return materials
}

// ScanRecipeOrder reads the recipe key order of every record in the named top-level
// array of a raw data file. Parsed documents hold recipes as maps, which lose the
// order the file lists materials in. Records that cannot be scanned get no order.
func ScanRecipeOrder(data []byte, section string) RecipeOrder {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(root[section], &records); err != nil {
		return nil
	}

	order := make(RecipeOrder, len(records))
	for i, raw := range records {
		var record struct {
			Recipe json.RawMessage `json:"recipe"`
		}
		if err := json.Unmarshal(raw, &record); err != nil || len(record.Recipe) == 0 {
			continue
		}
		order[i] = objectKeys(record.Recipe)
	}
	return order
}

// objectKeys lists the keys of a JSON object in document order, nil if data is not an object
func objectKeys(data json.RawMessage) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil
		}
		keys = append(keys, key)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil
		}
	}
	return keys
}

// DecodeEquipment converts the equipments.json document. Every top-level object is
// an equipment class; the icon fields are ignored.
func DecodeEquipment(doc any) (catalog.EquipmentCatalog, error) {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("equipment document must be an object")
	}

	equipment := make(catalog.EquipmentCatalog, len(root))
	for key, value := range root {
		fields, ok := value.(map[string]any)
		if !ok {
			continue
		}

		var entry catalog.EquipmentEntry
		var err error
		if entry.CycleSeconds, err = optionalNumber(fields, "cycleSec"); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if entry.RatePerSecond, err = optionalNumber(fields, "ratePerSec"); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if entry.BaseCycleSeconds, err = optionalNumber(fields, "baseCycleSec"); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if entry.Bonus, err = optionalNumber(fields, "bonus"); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if entry.Efficiency, err = optionalNumber(fields, "efficiency"); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}

		if tiers, ok := fields["tiers"].(map[string]any); ok {
			entry.Tiers = make(map[catalog.Tier]catalog.TierVariant, len(tiers))
			for name, raw := range tiers {
				tier := catalog.Tier(name)
				if !tier.IsValid() {
					return nil, fmt.Errorf("%s: unknown tier %q", key, name)
				}
				variant, ok := raw.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("%s: tier %s must be an object", key, name)
				}
				var v catalog.TierVariant
				if v.CycleSeconds, err = optionalNumber(variant, "cycleSec"); err != nil {
					return nil, fmt.Errorf("%s.%s: %w", key, name, err)
				}
				if v.RatePerSecond, err = optionalNumber(variant, "ratePerSec"); err != nil {
					return nil, fmt.Errorf("%s.%s: %w", key, name, err)
				}
				entry.Tiers[tier] = v
			}
		}

		equipment[catalog.EquipmentClass(key)] = entry
	}

	return equipment, nil
}

// optionalNumber returns 0 for an absent field and an error for a non-numeric one
func optionalNumber(fields map[string]any, key string) (float64, error) {
	raw, present := fields[key]
	if !present || raw == nil {
		return 0, nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return 0, fmt.Errorf("%s is not a number", key)
	}
	return f, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
