package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/motif-planner/internal/adapters/catalogjson"
	"github.com/andrescamacho/motif-planner/internal/adapters/grpc"
	"github.com/andrescamacho/motif-planner/internal/adapters/metrics"
	"github.com/andrescamacho/motif-planner/internal/adapters/persistence"
	applogging "github.com/andrescamacho/motif-planner/internal/application/logging"
	"github.com/andrescamacho/motif-planner/internal/application/mediator"
	"github.com/andrescamacho/motif-planner/internal/application/planning/queries"
	"github.com/andrescamacho/motif-planner/internal/domain/catalog"
	"github.com/andrescamacho/motif-planner/internal/infrastructure/config"
	"github.com/andrescamacho/motif-planner/internal/infrastructure/database"
	"github.com/andrescamacho/motif-planner/internal/infrastructure/logging"
)

// Planner is the client API shared by the in-process and the gRPC planner clients
type Planner interface {
	Plan(ctx context.Context, query *queries.PlanRequirementsQuery) (*queries.PlanRequirementsResponse, error)
	ResolveEquipment(ctx context.Context, query *queries.ResolveEquipmentQuery) (*queries.ResolveEquipmentResponse, error)
	ListEntities(ctx context.Context, query *queries.ListEntitiesQuery) (*queries.ListEntitiesResponse, error)
	Close() error
}

// session bundles what a command needs: the effective config, a logger and a planner
type session struct {
	cfg     *config.Config
	logger  *logging.Logger
	planner Planner
	closers []func() error
}

// Context returns ctx carrying the session logger
func (s *session) Context(ctx context.Context) context.Context {
	return applogging.WithLogger(ctx, s.logger)
}

// Close releases the planner, the catalog store and the logger, in reverse order
func (s *session) Close() error {
	var errs []error
	if s.planner != nil {
		errs = append(errs, s.planner.Close())
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// loadConfig loads the config file and applies the global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if catalogDir != "" {
		cfg.Planner.CatalogDir = catalogDir
	}
	if catalogSource != "" {
		cfg.Planner.CatalogSource = catalogSource
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession wires a planner for the current flags: a gRPC client with --remote,
// otherwise an in-process mediator over the configured catalog
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	s := &session{cfg: cfg, logger: logger, closers: []func() error{logger.Close}}

	if remote {
		address := daemonAddress
		if address == "" {
			address = cfg.Server.Address
		}
		client, err := grpc.NewPlannerClientGRPC(address)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to connect to daemon at %s: %w", address, err)
		}
		s.planner = client
		return s, nil
	}

	loader, closeLoader, err := openCatalogLoader(cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.closers = append(s.closers, closeLoader)

	med, err := newPlannerMediator(logger, persistence.NewCachingCatalogProvider(loader), cfg.Planner)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.planner = grpc.NewPlannerClientLocal(med)
	return s, nil
}

// newPlannerMediator registers the planner queries behind the logging and metrics middleware
func newPlannerMediator(logger applogging.Logger, provider catalog.Provider, planner config.PlannerConfig) (mediator.Mediator, error) {
	med := mediator.NewMediator()
	med.RegisterMiddleware(applogging.Middleware(logger))

	if metrics.IsEnabled() {
		collector := metrics.NewQueryMetricsCollector()
		if err := collector.Register(); err != nil {
			return nil, fmt.Errorf("failed to register query metrics: %w", err)
		}
		med.RegisterMiddleware(metrics.PrometheusMiddleware(collector))
	}

	if err := queries.RegisterHandlers(med, provider, planner.Defaults, planner.MaxDepth); err != nil {
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	return med, nil
}

// openCatalogLoader returns the catalog source named by planner.catalog_source
func openCatalogLoader(cfg *config.Config) (catalog.Loader, func() error, error) {
	switch cfg.Planner.CatalogSource {
	case "database":
		repo, closeDB, err := openCatalogRepository(cfg)
		if err != nil {
			return nil, nil, err
		}
		return repo, closeDB, nil
	default:
		return catalogjson.NewImporter(cfg.Planner.CatalogDir), func() error { return nil }, nil
	}
}

// openCatalogRepository connects to the configured database and migrates the catalog tables
func openCatalogRepository(cfg *config.Config) (*persistence.GormCatalogRepository, func() error, error) {
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, nil, fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	return persistence.NewGormCatalogRepository(db), func() error { return database.Close(db) }, nil
}
