// Package catalogjson reads the catalog data files (parts.json, heroes_minion.json,
// heroes_spell.json and equipments.json) into a catalog snapshot.
package catalogjson

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ohler55/ojg/oj"

	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
)

// Data file names inside a catalog directory
const (
	PartsFile        = "parts.json"
	MinionHeroesFile = "heroes_minion.json"
	SpellHeroesFile  = "heroes_spell.json"
	EquipmentFile    = "equipments.json"
)

// Importer loads a snapshot from a directory of data files.
// heroes_spell.json is optional; the other files are required.
type Importer struct {
	dir string
}

// NewImporter creates an importer rooted at dir
func NewImporter(dir string) *Importer {
	return &Importer{dir: dir}
}

// Dir returns the catalog directory
func (i *Importer) Dir() string {
	return i.dir
}

// Load reads and decodes every data file
func (i *Importer) Load(ctx context.Context) (*catalog.Snapshot, error) {
	snapshot := &catalog.Snapshot{}

	partsDoc, partsData, err := i.read(ctx, PartsFile, true)
	if err != nil {
		return nil, err
	}
	if snapshot.Parts, err = DecodeEntities(partsDoc, partsPath, ScanRecipeOrder(partsData, "parts")); err != nil {
		return nil, fmt.Errorf("%s: %w", PartsFile, err)
	}

	minionDoc, minionData, err := i.read(ctx, MinionHeroesFile, true)
	if err != nil {
		return nil, err
	}
	if snapshot.Heroes, err = DecodeEntities(minionDoc, heroesPath, ScanRecipeOrder(minionData, "heroes")); err != nil {
		return nil, fmt.Errorf("%s: %w", MinionHeroesFile, err)
	}

	spellDoc, spellData, err := i.read(ctx, SpellHeroesFile, false)
	if err != nil {
		return nil, err
	}
	if spellDoc != nil {
		spellHeroes, err := DecodeEntities(spellDoc, heroesPath, ScanRecipeOrder(spellData, "heroes"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", SpellHeroesFile, err)
		}
		snapshot.Heroes = append(snapshot.Heroes, spellHeroes...)

		if snapshot.Spells, err = DecodeEntities(spellDoc, spellsPath, ScanRecipeOrder(spellData, "spells")); err != nil {
			return nil, fmt.Errorf("%s: %w", SpellHeroesFile, err)
		}
	}

	equipmentDoc, _, err := i.read(ctx, EquipmentFile, true)
	if err != nil {
		return nil, err
	}
	if snapshot.Equipment, err = DecodeEquipment(equipmentDoc); err != nil {
		return nil, fmt.Errorf("%s: %w", EquipmentFile, err)
	}

	return snapshot, nil
}

// read parses one data file and also returns its raw bytes. A missing optional file
// yields a nil document.
func (i *Importer) read(ctx context.Context, name string, required bool) (any, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	path := filepath.Join(i.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := oj.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, data, nil
}
