package cmd

import (
	"fmt"

	"inventory-audit/core/config"
	"inventory-audit/core/database"
	"inventory-audit/core/logger"
	"inventory-audit/core/metrics"
	"inventory-audit/core/storage"
	"inventory-audit/feature/audit"
	"inventory-audit/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles the dependencies shared by the commands.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  storage.Client
}

// newRuntime loads configuration, builds the logger and connects to the database.
// The schema is migrated when migrate is set. Object storage is created only when
// enabled in the configuration.
func newRuntime(migrate bool) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	logg.Info("Connected to database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("name", cfg.Database.Name))

	if migrate {
		if err := models.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	rt := &runtime{cfg: cfg, logger: logg, db: db}
	if cfg.Storage.Enabled {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		rt.store = store
		logg.Info("Object storage enabled",
			zap.String("endpoint", cfg.Storage.Endpoint),
			zap.String("bucket", cfg.Storage.Bucket))
	}
	return rt, nil
}

// auditService wires the audit service to the equipment catalog.
func (rt *runtime) auditService(catalog audit.Catalog, m *metrics.Metrics) *audit.Service {
	opts := []audit.Option{audit.WithMetrics(m)}
	if rt.store != nil {
		opts = append(opts, audit.WithStorage(rt.store, rt.cfg.Storage.Bucket, rt.cfg.Storage.ReportsPrefix))
	}
	return audit.NewService(rt.db, catalog, rt.logger, opts...)
}

func (rt *runtime) close() {
	if sqlDB, err := rt.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rt.logger.Sync()
}
