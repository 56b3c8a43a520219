package container

import (
	"fmt"
	"net/http"

	"go-zone-diff/internal/analyzer"
	"go-zone-diff/internal/config"
	"go-zone-diff/internal/factory"
	"go-zone-diff/internal/logger"
	"go-zone-diff/internal/observer"
	"go-zone-diff/internal/repository"
	"go-zone-diff/internal/service"
	"go-zone-diff/internal/transport"
	zoneconfig "go-zone-diff/pkg/config"
	"go-zone-diff/pkg/models"

	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	config            *config.Config
	zones             models.ZoneSet
	factory           *factory.ComponentFactory
	history           repository.HistoryRepository
	metrics           *observer.MetricsObserver
	publisher         *observer.EventPublisher
	comparisonService service.ComparisonService
	handler           http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	logger.SetLevel(cfg.LogLevel)

	zones, err := zoneconfig.LoadZones(cfg.ZonesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load zones: %w", err)
	}

	components, err := factory.NewComponentFactory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create components: %w", err)
	}

	var history repository.HistoryRepository
	if cfg.HistoryDB != "" {
		h, err := repository.NewSQLiteHistoryRepository(cfg.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		history = h
	}

	metrics := observer.NewMetricsObserver()
	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	comparisonService, err := service.NewComparisonService(service.Dependencies{
		Images:    repository.NewFileImageRepository(),
		History:   history,
		Analyzer:  analyzer.NewPairAnalyzer(),
		Storage:   components.StorageFactory,
		Reports:   components.ReportFactory,
		Publisher: publisher,
	}, zones, service.Settings{
		OutputDir:    cfg.OutputDir,
		DiffBaseName: cfg.DiffBaseName,
	})
	if err != nil {
		if history != nil {
			history.Close()
		}
		return nil, err
	}

	c := &Container{
		config:            cfg,
		zones:             zones,
		factory:           components,
		history:           history,
		metrics:           metrics,
		publisher:         publisher,
		comparisonService: comparisonService,
	}
	c.handler = transport.NewHandler(transport.Dependencies{
		Service: comparisonService,
		History: history,
		Metrics: metrics,
		Config:  cfg,
	})

	logger.WithFields(logrus.Fields{
		"zones":   len(zones.Zones),
		"storage": components.StorageFactory.Type(),
		"history": cfg.HistoryDB != "",
	}).Debug("Container initialized")
	return c, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Service returns the comparison service
func (c *Container) Service() service.ComparisonService {
	return c.comparisonService
}

// History returns the run history, nil when not configured
func (c *Container) History() repository.HistoryRepository {
	return c.history
}

// Metrics returns the metrics observer
func (c *Container) Metrics() *observer.MetricsObserver {
	return c.metrics
}

// Zones returns the loaded zone set
func (c *Container) Zones() models.ZoneSet {
	return c.zones
}

// Close releases the history database
func (c *Container) Close() error {
	if c.history != nil {
		return c.history.Close()
	}
	return nil
}
