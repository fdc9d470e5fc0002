package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventory-audit/core/database"
	"inventory-audit/core/metrics"
	"inventory-audit/core/reconcile"
	"inventory-audit/core/storage"
	"inventory-audit/core/validation"
	"inventory-audit/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service runs audit sessions: creation, scanning, reconciliation queries and reports.
type Service struct {
	db            *gorm.DB
	catalog       Catalog
	client        storage.Client
	bucket        string
	reportsPrefix string
	logger        *zap.Logger
	metrics       *metrics.Metrics
	validator     *validation.Validator
	now           func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithStorage enables report export to object storage.
func WithStorage(client storage.Client, bucket, reportsPrefix string) Option {
	return func(s *Service) {
		s.client = client
		s.bucket = bucket
		s.reportsPrefix = reportsPrefix
	}
}

// WithMetrics records scan outcomes and lifecycle events.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a new audit service.
func NewService(db *gorm.DB, catalog Catalog, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		db:        db,
		catalog:   catalog,
		logger:    logger,
		validator: validation.New(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanResult is the outcome of a successful scan.
type ScanResult struct {
	Message   string            `json:"message"`
	Equipment *models.Equipment `json:"equipment"`
	Item      *models.AuditItem `json:"item"`
}

type createRequest struct {
	Auditor string `json:"auditor" validate:"notblank,max=200"`
}

// CreateAudit opens a new audit session.
func (s *Service) CreateAudit(ctx context.Context, auditor string) (*models.InventoryAudit, error) {
	req := createRequest{Auditor: strings.TrimSpace(auditor)}
	if err := s.validator.Struct(req); err != nil {
		return nil, outcome(ErrValidation, "%s", err.Error())
	}

	now := s.now()
	audit := models.InventoryAudit{
		Auditor:   req.Auditor,
		Status:    models.AuditInProgress,
		AuditDate: now,
		CreatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&audit).Error; err != nil {
		return nil, fmt.Errorf("failed to create audit: %w", err)
	}

	s.metrics.ObserveAudit("created")
	s.logger.Info("Audit created", zap.String("audit_id", audit.ID), zap.String("auditor", audit.Auditor))
	return &audit, nil
}

// ListAudits returns all audits, newest first.
func (s *Service) ListAudits(ctx context.Context) ([]models.InventoryAudit, error) {
	var audits []models.InventoryAudit
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id").Find(&audits).Error; err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	return audits, nil
}

// GetAudit returns a single audit.
func (s *Service) GetAudit(ctx context.Context, auditID string) (*models.InventoryAudit, error) {
	return s.findAudit(s.db.WithContext(ctx), auditID)
}

func (s *Service) findAudit(db *gorm.DB, auditID string) (*models.InventoryAudit, error) {
	var audit models.InventoryAudit
	if err := db.First(&audit, "id = ?", auditID).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, outcome(ErrAuditNotFound, "audit %s not found", auditID)
		}
		return nil, fmt.Errorf("failed to get audit %s: %w", auditID, err)
	}
	return &audit, nil
}

// ScanBarcode records that the equipment carrying barcode was found during the audit.
// Each equipment item is counted at most once per audit; a repeated scan fails with
// ErrAlreadyScanned. Completed audits still accept scans.
func (s *Service) ScanBarcode(ctx context.Context, auditID, barcode string) (*ScanResult, error) {
	res, err := s.scan(ctx, auditID, barcode)
	s.metrics.ObserveScan(scanOutcome(err))
	return res, err
}

func (s *Service) scan(ctx context.Context, auditID, barcode string) (*ScanResult, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, outcome(ErrValidation, "barcode is required")
	}

	if _, err := s.findAudit(s.db.WithContext(ctx), auditID); err != nil {
		return nil, err
	}

	eq, err := s.catalog.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, outcome(ErrEquipmentNotFound, "equipment with barcode %s not found", barcode)
	}

	item := models.AuditItem{
		AuditID:     auditID,
		EquipmentID: eq.ID,
		Found:       true,
		ScannedAt:   s.now(),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.AuditItem{}).
			Where("audit_id = ? AND equipment_id = ?", auditID, eq.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyScanned
		}
		return tx.Omit("Audit", "Equipment").Create(&item).Error
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyScanned) || database.IsDuplicateKey(err) {
			return nil, outcome(ErrAlreadyScanned, "equipment %q has already been scanned in this audit", eq.Name)
		}
		return nil, fmt.Errorf("failed to record scan for audit %s: %w", auditID, err)
	}

	s.logger.Debug("Equipment scanned",
		zap.String("audit_id", auditID),
		zap.String("equipment_id", eq.ID),
		zap.String("barcode", barcode),
	)

	item.Equipment = eq
	return &ScanResult{
		Message:   fmt.Sprintf("equipment %q scanned successfully", eq.Name),
		Equipment: eq,
		Item:      &item,
	}, nil
}

func scanOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.ScanFound
	case errors.Is(err, ErrAlreadyScanned):
		return metrics.ScanAlreadyScanned
	case errors.Is(err, ErrEquipmentNotFound):
		return metrics.ScanUnknownBarcode
	default:
		return metrics.ScanError
	}
}

// GetAuditStats counts the whole catalog against the items found in the audit.
func (s *Service) GetAuditStats(ctx context.Context, auditID string) (reconcile.Summary, error) {
	total, err := s.catalog.CountAll(ctx)
	if err != nil {
		return reconcile.Summary{}, err
	}

	var found int64
	if err := s.db.WithContext(ctx).Model(&models.AuditItem{}).
		Where("audit_id = ?", auditID).
		Count(&found).Error; err != nil {
		return reconcile.Summary{}, fmt.Errorf("failed to count scans for audit %s: %w", auditID, err)
	}

	summary := reconcile.NewSummary(int(total), int(found))
	if !summary.Consistent() {
		s.logger.Warn("Audit has more scans than catalog entries",
			zap.String("audit_id", auditID),
			zap.Int("total", summary.Total),
			zap.Int("found", summary.Found))
	}
	return summary, nil
}

// GetNotFoundEquipment returns every catalog entry without a scan in the audit, by name.
func (s *Service) GetNotFoundEquipment(ctx context.Context, auditID string) ([]models.Equipment, error) {
	db := s.db.WithContext(ctx)
	scanned := db.Model(&models.AuditItem{}).Select("equipment_id").Where("audit_id = ?", auditID)

	var items []models.Equipment
	if err := db.Where("id NOT IN (?)", scanned).Order("name").Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list missing equipment for audit %s: %w", auditID, err)
	}
	return items, nil
}

// GetScannedItems returns the audit's scans with their equipment, most recent first.
func (s *Service) GetScannedItems(ctx context.Context, auditID string) ([]models.AuditItem, error) {
	var items []models.AuditItem
	err := s.db.WithContext(ctx).
		Preload("Equipment").Preload("Equipment.Workplace").Preload("Equipment.Employee").
		Where("audit_id = ?", auditID).
		Order("scanned_at DESC").Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scans for audit %s: %w", auditID, err)
	}
	return items, nil
}

// UnmarkAsFound removes a scan, moving the equipment back to not found.
func (s *Service) UnmarkAsFound(ctx context.Context, auditID, equipmentID string) (string, error) {
	res := s.db.WithContext(ctx).
		Where("audit_id = ? AND equipment_id = ?", auditID, equipmentID).
		Delete(&models.AuditItem{})
	if res.Error != nil {
		return "", fmt.Errorf("failed to unmark equipment %s in audit %s: %w", equipmentID, auditID, res.Error)
	}
	if res.RowsAffected == 0 {
		return "", outcome(ErrRecordNotFound, "equipment %s is not marked as found in audit %s", equipmentID, auditID)
	}

	name := equipmentID
	if eq, err := s.catalog.FindByID(ctx, equipmentID); err == nil && eq != nil {
		name = eq.Name
	}
	s.logger.Info("Scan removed", zap.String("audit_id", auditID), zap.String("equipment_id", equipmentID))
	return fmt.Sprintf("equipment %q moved back to not found", name), nil
}

// CompleteAudit closes the audit. Completing a completed audit is a no-op.
func (s *Service) CompleteAudit(ctx context.Context, auditID string) (*models.InventoryAudit, error) {
	db := s.db.WithContext(ctx)
	audit, err := s.findAudit(db, auditID)
	if err != nil {
		return nil, err
	}

	if err := db.Model(audit).Update("status", models.AuditCompleted).Error; err != nil {
		return nil, fmt.Errorf("failed to complete audit %s: %w", auditID, err)
	}
	audit.Status = models.AuditCompleted

	s.metrics.ObserveAudit("completed")
	s.logger.Info("Audit completed", zap.String("audit_id", auditID))
	return audit, nil
}

// DeleteAudit removes the audit and all of its scans.
func (s *Service) DeleteAudit(ctx context.Context, auditID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("audit_id = ?", auditID).Delete(&models.AuditItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.InventoryAudit{}, "id = ?", auditID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return outcome(ErrAuditNotFound, "audit %s not found", auditID)
		}
		return nil
	})
	if err != nil {
		var oe *OutcomeError
		if errors.As(err, &oe) {
			return err
		}
		return fmt.Errorf("failed to delete audit %s: %w", auditID, err)
	}

	s.metrics.ObserveAudit("deleted")
	s.logger.Info("Audit deleted", zap.String("audit_id", auditID))
	return nil
}
