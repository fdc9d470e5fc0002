package integrity

import (
	"context"
	"errors"

	"inventory-audit/core/storage"
	"inventory-audit/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by storage checks when no client is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// Service handles integrity checks.
type Service struct {
	db      *gorm.DB
	client  storage.Client
	cfg     storage.Config
	logger  *zap.Logger
	folders []string
}

// NewService creates a new integrity service. client may be nil when object
// storage is not configured.
func NewService(db *gorm.DB, client storage.Client, cfg storage.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:      db,
		client:  client,
		cfg:     cfg,
		logger:  logger,
		folders: []string{storage.ObjectPath(cfg.ReportsPrefix)},
	}
}

// CheckSchema compares the live database with the inventory models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// CheckStorage reports the state of the report bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StructureReport, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckStructure(ctx, s.client, s.cfg.Bucket, s.folders)
}

// FixStorage creates whatever the report says is missing.
func (s *Service) FixStorage(ctx context.Context, report *checks.StructureReport) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	return checks.FixStructure(ctx, s.client, s.cfg.Bucket, s.cfg.Region, s.logger, report)
}
