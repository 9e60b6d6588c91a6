package persistence

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/motif-planner/internal/adapters/metrics"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
)

// CachingCatalogProvider loads a snapshot once, merges it and serves the merged
// catalog until Invalidate is called. Failed loads are not cached.
type CachingCatalogProvider struct {
	loader catalog.Loader

	mu      sync.RWMutex
	catalog *catalog.Catalog
}

// NewCachingCatalogProvider creates a provider over loader
func NewCachingCatalogProvider(loader catalog.Loader) *CachingCatalogProvider {
	return &CachingCatalogProvider{loader: loader}
}

// Catalog returns the cached catalog, loading it on first use
func (p *CachingCatalogProvider) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	p.mu.RLock()
	cached := p.catalog
	p.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Another caller may have loaded it while we waited
	if p.catalog != nil {
		return p.catalog, nil
	}

	snapshot, err := p.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	c := catalog.NewCatalog(*snapshot)
	for _, source := range []catalog.Source{catalog.SourcePart, catalog.SourceHero, catalog.SourceSpell} {
		metrics.RecordCatalogSize(string(source), len(c.EntitiesBySource(source)))
	}

	p.catalog = c
	return c, nil
}

// Invalidate drops the cached catalog so the next call reloads it
func (p *CachingCatalogProvider) Invalidate() {
	p.mu.Lock()
	p.catalog = nil
	p.mu.Unlock()
}
