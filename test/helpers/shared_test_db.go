package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/motif-planner/internal/infrastructure/database"
)

// SharedTestDB is the singleton catalog database used across BDD scenarios
var SharedTestDB *gorm.DB

// InitializeSharedTestDB creates and migrates the shared test database.
// Called once in TestMain before running any scenarios.
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}

	SharedTestDB = db
	return nil
}

// TruncateAllTables clears the catalog tables, children before parents.
// Called before each scenario to ensure test isolation.
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	tables := []string{
		"catalog_recipe_lines",
		"catalog_entities",
		"catalog_equipment_tiers",
		"catalog_equipment",
	}

	for _, table := range tables {
		if err := SharedTestDB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return nil
}

// CloseSharedTestDB closes the shared database connection.
// Called in TestMain after all scenarios complete.
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	return database.Close(SharedTestDB)
}
