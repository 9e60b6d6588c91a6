package steps

import (
	"context"
	"fmt"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/motif-planner/internal/adapters/catalogjson"
	"github.com/andrescamacho/motif-planner/internal/adapters/persistence"
	"github.com/andrescamacho/motif-planner/internal/application/planning/services"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/domain/production"
	"github.com/andrescamacho/motif-planner/test/helpers"
)

type catalogPersistenceContext struct {
	dir  string
	repo *persistence.GormCatalogRepository
}

func (ctx *catalogPersistenceContext) reset() error {
	ctx.dir = ""
	ctx.repo = persistence.NewGormCatalogRepository(helpers.SharedTestDB)
	return helpers.TruncateAllTables()
}

func (ctx *catalogPersistenceContext) theCatalogFilesIn(dir string) error {
	ctx.dir = dir
	return nil
}

func (ctx *catalogPersistenceContext) iImportTheCatalogFilesIntoTheDatabase() error {
	snapshot, err := catalogjson.NewImporter(ctx.dir).Load(context.Background())
	if err != nil {
		return err
	}
	return ctx.repo.Save(context.Background(), snapshot)
}

func (ctx *catalogPersistenceContext) theDatabaseCatalogHoldsEntities(expected int) error {
	snapshot, err := ctx.repo.Load(context.Background())
	if err != nil {
		return err
	}
	if got := catalog.NewCatalog(*snapshot).Len(); got != expected {
		return fmt.Errorf("expected %d entities, got %d", expected, got)
	}
	return nil
}

func (ctx *catalogPersistenceContext) theDatabaseCatalogHoldsEquipmentClasses(expected int) error {
	snapshot, err := ctx.repo.Load(context.Background())
	if err != nil {
		return err
	}
	if got := len(snapshot.Equipment); got != expected {
		return fmt.Errorf("expected %d equipment classes, got %d", expected, got)
	}
	return nil
}

func (ctx *catalogPersistenceContext) planningGivesTheSameTreeFromBothSources(entityID string, rate float64) error {
	fromFiles, err := ctx.build(catalogjson.NewImporter(ctx.dir), entityID, rate)
	if err != nil {
		return fmt.Errorf("planning from files: %w", err)
	}
	fromDatabase, err := ctx.build(ctx.repo, entityID, rate)
	if err != nil {
		return fmt.Errorf("planning from database: %w", err)
	}

	if !reflect.DeepEqual(fromFiles, fromDatabase) {
		return fmt.Errorf("trees differ for %s: files=%+v database=%+v", entityID, fromFiles, fromDatabase)
	}
	return nil
}

func (ctx *catalogPersistenceContext) build(loader catalog.Loader, entityID string, rate float64) (*production.RequirementNode, error) {
	cat, err := persistence.NewCachingCatalogProvider(loader).Catalog(context.Background())
	if err != nil {
		return nil, err
	}
	return services.NewRequirementTreeBuilder(cat).Build(entityID, rate, production.DefaultBundle())
}

// InitializeCatalogPersistenceScenario registers catalog import and storage step definitions
func InitializeCatalogPersistenceScenario(sc *godog.ScenarioContext) {
	ctx := &catalogPersistenceContext{}

	sc.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		return c, ctx.reset()
	})

	sc.Step(`^the catalog files in "([^"]*)"$`, ctx.theCatalogFilesIn)
	sc.Step(`^I import the catalog files into the database$`, ctx.iImportTheCatalogFilesIntoTheDatabase)
	sc.Step(`^the database catalog holds (\d+) entities$`, ctx.theDatabaseCatalogHoldsEntities)
	sc.Step(`^the database catalog holds (\d+) equipment classes$`, ctx.theDatabaseCatalogHoldsEquipmentClasses)
	sc.Step(`^planning "([^"]*)" at ([\d.]+) units per second gives the same tree from both sources$`, ctx.planningGivesTheSameTreeFromBothSources)
}
