package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/motif-planner/internal/adapters/persistence"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/infrastructure/database"
)

// NewCatalogStore opens a migrated in-memory catalog store that closes with the test.
// A non-nil seed is saved through the catalog repository first.
func NewCatalogStore(t testing.TB, seed *catalog.Snapshot) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	require.NoError(t, err, "open catalog store")
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	if seed != nil {
		err := persistence.NewGormCatalogRepository(db).Save(context.Background(), seed)
		require.NoError(t, err, "seed catalog store")
	}
	return db
}
