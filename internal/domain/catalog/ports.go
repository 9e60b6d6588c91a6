package catalog

import "context"

// Loader reads a full snapshot from a data source
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Repository loads and stores catalog snapshots
type Repository interface {
	Loader

	// Save replaces the stored snapshot
	Save(ctx context.Context, snapshot *Snapshot) error
}

// Provider supplies a ready-to-use Catalog to the planner
type Provider interface {
	Catalog(ctx context.Context) (*Catalog, error)
}

// StaticProvider serves one fixed Catalog
type StaticProvider struct {
	catalog *Catalog
}

// NewStaticProvider wraps an already built catalog
func NewStaticProvider(c *Catalog) *StaticProvider {
	return &StaticProvider{catalog: c}
}

// Catalog returns the wrapped catalog
func (p *StaticProvider) Catalog(ctx context.Context) (*Catalog, error) {
	return p.catalog, nil
}
