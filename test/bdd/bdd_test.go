package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/motif-planner/test/bdd/steps"
	"github.com/andrescamacho/motif-planner/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/application", "features/adapters"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Register all step definitions
	steps.InitializePlanningScenario(sc)
	steps.InitializeCatalogPersistenceScenario(sc)
}

func TestMain(m *testing.M) {
	// One in-memory catalog database shared by every scenario, truncated between them
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}

	code := m.Run()
	helpers.CloseSharedTestDB()
	os.Exit(code)
}
