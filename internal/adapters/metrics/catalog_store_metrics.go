package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// catalogTables are the tables polled for row counts
var catalogTables = []string{
	"catalog_entities",
	"catalog_recipe_lines",
	"catalog_equipment",
	"catalog_equipment_tiers",
}

// CatalogStoreMetricsCollector polls the catalog tables of a database-backed catalog
type CatalogStoreMetricsCollector struct {
	// Dependencies
	db *gorm.DB

	rows          *prometheus.GaugeVec
	lastImportAge prometheus.Gauge
	pollErrors    *prometheus.CounterVec

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	pollInterval time.Duration
}

// NewCatalogStoreMetricsCollector creates a collector polling db every interval.
// A non-positive interval polls once a minute.
func NewCatalogStoreMetricsCollector(db *gorm.DB, interval time.Duration) *CatalogStoreMetricsCollector {
	if interval <= 0 {
		interval = 60 * time.Second
	}

	return &CatalogStoreMetricsCollector{
		db: db,

		rows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_store_rows",
				Help:      "Number of rows per catalog table",
			},
			[]string{"table"},
		),

		lastImportAge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_store_last_import_age_seconds",
				Help:      "Seconds since the stored catalog was last imported",
			},
		),

		pollErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_store_poll_errors_total",
				Help:      "Total number of failed catalog table polls",
			},
			[]string{"table"},
		),

		pollInterval: interval,
	}
}

// Register registers the catalog store metrics with the Prometheus registry
func (c *CatalogStoreMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.rows,
		c.lastImportAge,
		c.pollErrors,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start begins the polling goroutine
func (c *CatalogStoreMetricsCollector) Start(ctx context.Context) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollMetrics()
}

// Stop stops polling and waits for the goroutine to exit
func (c *CatalogStoreMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *CatalogStoreMetricsCollector) pollMetrics() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	// Do initial poll immediately
	c.updateAllMetrics()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.updateAllMetrics()
		}
	}
}

func (c *CatalogStoreMetricsCollector) updateAllMetrics() {
	if c.db == nil {
		return
	}

	for _, table := range catalogTables {
		var count int64
		if err := c.db.WithContext(c.ctx).Table(table).Count(&count).Error; err != nil {
			log.Printf("Failed to count %s rows: %v", table, err)
			c.pollErrors.WithLabelValues(table).Inc()
			continue
		}
		c.rows.WithLabelValues(table).Set(float64(count))
	}

	c.updateImportAge()
}

func (c *CatalogStoreMetricsCollector) updateImportAge() {
	var latest struct {
		ImportedAt time.Time
	}
	result := c.db.WithContext(c.ctx).
		Table("catalog_entities").
		Select("imported_at").
		Order("imported_at DESC").
		Limit(1).
		Scan(&latest)
	if result.Error != nil {
		log.Printf("Failed to read last catalog import: %v", result.Error)
		c.pollErrors.WithLabelValues("catalog_entities").Inc()
		return
	}
	if result.RowsAffected == 0 {
		return
	}
	c.lastImportAge.Set(time.Since(latest.ImportedAt).Seconds())
}
