package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

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
	"github.com/andrescamacho/motif-planner/internal/infrastructure/pidfile"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to config file (default: search ., ./configs, /etc/motif-planner)")
	forceFlag := flag.Bool("force", false, "Kill any existing daemon and start a new one")
	flag.Parse()

	fmt.Println("Motif Planner Daemon")
	fmt.Println("====================")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configPath)

	// Acquire PID file lock to prevent multiple instances
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Server.PIDFile)
	pf := pidfile.New(cfg.Server.PIDFile)

	if err := pf.Acquire(); err != nil {
		if !*forceFlag {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to kill the existing daemon", err)
		}

		fmt.Println("Force mode enabled - attempting to kill existing daemon...")
		if killErr := pf.KillExisting(); killErr != nil {
			log.Fatalf("Failed to kill existing daemon: %v", killErr)
		}
		fmt.Println("Existing daemon killed")

		if err := pf.Acquire(); err != nil {
			log.Fatalf("Failed to acquire PID file lock after killing existing daemon: %v", err)
		}
	}

	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	// Initialize application. A PID file left behind by a fatal exit is stale and
	// gets replaced on the next start.
	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	// 1. Logger
	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// 2. Metrics (optional)
	var queryMetrics *metrics.QueryMetricsCollector
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		planningCollector := metrics.NewPlanningMetricsCollector()
		if err := planningCollector.Register(); err != nil {
			return fmt.Errorf("failed to register planning metrics: %w", err)
		}
		metrics.SetGlobalPlanningCollector(planningCollector)

		queryMetrics = metrics.NewQueryMetricsCollector()
		if err := queryMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register query metrics: %w", err)
		}

		metricsServer, err := metrics.NewServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		if err := metricsServer.Start(); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			metricsServer.Shutdown(ctx)
		}()
		fmt.Printf("Metrics available at http://%s%s\n", metricsServer.Addr(), cfg.Metrics.Path)
	}

	// 3. Catalog source
	var loader catalog.Loader
	switch cfg.Planner.CatalogSource {
	case "database":
		fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close(db)
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate catalog tables: %w", err)
		}
		loader = persistence.NewGormCatalogRepository(db)
		fmt.Println("Database connected")

		if cfg.Metrics.Enabled {
			storeMetrics := metrics.NewCatalogStoreMetricsCollector(db, cfg.Metrics.PollInterval)
			if err := storeMetrics.Register(); err != nil {
				return fmt.Errorf("failed to register catalog store metrics: %w", err)
			}
			storeMetrics.Start(context.Background())
			defer storeMetrics.Stop()
		}
	default:
		fmt.Printf("Reading catalog files from %s\n", cfg.Planner.CatalogDir)
		loader = catalogjson.NewImporter(cfg.Planner.CatalogDir)
	}
	provider := persistence.NewCachingCatalogProvider(loader)

	// Load once up front so a broken catalog fails the start instead of the first request
	cat, err := provider.Catalog(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	fmt.Printf("Catalog loaded: %d entities\n", len(cat.Entities()))

	// 4. Mediator (middleware must be registered before handlers run)
	med := mediator.NewMediator()
	med.RegisterMiddleware(applogging.Middleware(logger))
	med.RegisterMiddleware(metrics.PrometheusMiddleware(queryMetrics))

	if err := queries.RegisterHandlers(med, provider, cfg.Planner.Defaults, cfg.Planner.MaxDepth); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	// 5. gRPC server
	fmt.Printf("Starting planner server on: %s\n", cfg.Server.Address)
	server, err := grpc.NewPlannerServer(med, cfg.Server.Address, grpc.ServerOptions{
		RequestTimeout:  cfg.Server.RequestTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		RateLimit:       cfg.Server.RateLimit.Requests,
		Burst:           cfg.Server.RateLimit.Burst,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create planner server: %w", err)
	}

	fmt.Println("\n✓ Daemon is ready to accept connections")
	fmt.Println("Press Ctrl+C to stop")

	// Start serving (blocks until shutdown)
	if err := server.Start(); err != nil {
		return fmt.Errorf("planner server error: %w", err)
	}

	fmt.Println("\nDaemon stopped")
	return nil
}
