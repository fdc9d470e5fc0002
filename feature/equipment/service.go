package equipment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventory-audit/core/database"
	"inventory-audit/core/validation"
	"inventory-audit/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TypeAll disables the type filter in Search.
const TypeAll = "all"

// Service manages the equipment catalog.
type Service struct {
	db        *gorm.DB
	logger    *zap.Logger
	validator *validation.Validator
}

// NewService creates a new equipment service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger, validator: validation.New()}
}

// Input carries the editable equipment fields.
type Input struct {
	Barcode      string     `json:"barcode" validate:"max=50"`
	Name         string     `json:"name" validate:"notblank,max=200"`
	Type         string     `json:"type" validate:"max=50"`
	Manufacturer string     `json:"manufacturer" validate:"max=100"`
	Model        string     `json:"model" validate:"max=100"`
	SerialNumber string     `json:"serialNumber" validate:"max=100"`
	PurchaseDate *time.Time `json:"purchaseDate"`
	Status       string     `json:"status" validate:"max=20"`
	Location     string     `json:"location" validate:"max=200"`
	AssignedTo   string     `json:"assignedTo" validate:"max=200"`
	Notes        string     `json:"notes" validate:"max=1000"`
	WorkplaceID  *string    `json:"workplaceId"`
	EmployeeID   *string    `json:"employeeId"`
}

func (s *Service) check(in *Input) error {
	if err := s.validator.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err.Error())
	}
	if in.Type != "" && !models.IsValidType(in.Type) {
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, in.Type)
	}
	if in.Status != "" && !models.IsValidStatus(in.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, in.Status)
	}
	return nil
}

// List returns all equipment, newest first.
func (s *Service) List(ctx context.Context) ([]models.Equipment, error) {
	var items []models.Equipment
	err := s.db.WithContext(ctx).
		Preload("Workplace").Preload("Employee").
		Order("created_at DESC").Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return items, nil
}

// ListAll returns the whole catalog ordered by name, with assignments loaded.
func (s *Service) ListAll(ctx context.Context) ([]models.Equipment, error) {
	var items []models.Equipment
	err := s.db.WithContext(ctx).
		Preload("Workplace").Preload("Employee").
		Order("name").Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return items, nil
}

// CountAll returns the catalog size.
func (s *Service) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Equipment{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count equipment: %w", err)
	}
	return count, nil
}

// FindByID returns the equipment with the given id, or nil when there is none.
func (s *Service) FindByID(ctx context.Context, id string) (*models.Equipment, error) {
	var eq models.Equipment
	err := s.db.WithContext(ctx).
		Preload("Workplace").Preload("Employee").
		First(&eq, "id = ?", id).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get equipment %s: %w", id, err)
	}
	return &eq, nil
}

// FindByBarcode returns the equipment carrying the barcode, or nil when there is none.
// Matching is exact and case-sensitive on every driver. Candidates are re-checked in
// Go since MySQL's default _ci collation matches "pc-001" against "PC-001".
// When several items share a tag, the oldest one wins.
func (s *Service) FindByBarcode(ctx context.Context, barcode string) (*models.Equipment, error) {
	var candidates []models.Equipment
	err := s.db.WithContext(ctx).
		Where("barcode = ?", barcode).
		Order("created_at ASC").Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find equipment by barcode: %w", err)
	}
	for i := range candidates {
		if candidates[i].Barcode == barcode {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// Search filters equipment by a case-insensitive term over name, barcode, model
// and serial number, and by type unless typ is empty or TypeAll.
func (s *Service) Search(ctx context.Context, term, typ string) ([]models.Equipment, error) {
	q := s.db.WithContext(ctx).Model(&models.Equipment{}).
		Preload("Workplace").Preload("Employee")

	if term = strings.TrimSpace(term); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(barcode) LIKE ? OR LOWER(model) LIKE ? OR LOWER(serial_number) LIKE ?",
			like, like, like, like)
	}
	if typ = strings.TrimSpace(typ); typ != "" && typ != TypeAll {
		q = q.Where("type = ?", typ)
	}

	var items []models.Equipment
	if err := q.Order("created_at DESC").Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to search equipment: %w", err)
	}
	return items, nil
}

// Create adds equipment to the catalog. A barcode is generated when none is given.
func (s *Service) Create(ctx context.Context, in Input) (*models.Equipment, error) {
	trim(&in)
	if err := s.check(&in); err != nil {
		return nil, err
	}
	if in.Barcode == "" {
		in.Barcode = GenerateBarcode()
	}

	eq := models.Equipment{}
	apply(&eq, in)
	eq.Barcode = in.Barcode

	if err := s.db.WithContext(ctx).Omit("Workplace", "Employee").Create(&eq).Error; err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}

	s.logger.Info("Equipment created", zap.String("id", eq.ID), zap.String("barcode", eq.Barcode))
	return &eq, nil
}

// Update overwrites the editable fields of existing equipment and refreshes UpdatedAt.
// The barcode is kept unless a new one is supplied.
func (s *Service) Update(ctx context.Context, id string, in Input) (*models.Equipment, error) {
	trim(&in)
	if err := s.check(&in); err != nil {
		return nil, err
	}

	var eq models.Equipment
	if err := s.db.WithContext(ctx).First(&eq, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get equipment %s: %w", id, err)
	}

	apply(&eq, in)
	if in.Barcode != "" {
		eq.Barcode = in.Barcode
	}
	eq.UpdatedAt = time.Now()

	if err := s.db.WithContext(ctx).Omit("Workplace", "Employee").Save(&eq).Error; err != nil {
		return nil, fmt.Errorf("failed to update equipment %s: %w", id, err)
	}
	return &eq, nil
}

// Delete removes equipment together with its audit scans.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("equipment_id = ?", id).Delete(&models.AuditItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Equipment{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete equipment %s: %w", id, err)
	}

	s.logger.Info("Equipment deleted", zap.String("id", id))
	return nil
}

func apply(eq *models.Equipment, in Input) {
	eq.Name = in.Name
	eq.Type = in.Type
	eq.Manufacturer = in.Manufacturer
	eq.Model = in.Model
	eq.SerialNumber = in.SerialNumber
	eq.PurchaseDate = in.PurchaseDate
	eq.Status = in.Status
	eq.Location = in.Location
	eq.AssignedTo = in.AssignedTo
	eq.Notes = in.Notes
	eq.WorkplaceID = emptyToNil(in.WorkplaceID)
	eq.EmployeeID = emptyToNil(in.EmployeeID)
	if eq.Type == "" {
		eq.Type = models.TypePC
	}
	if eq.Status == "" {
		eq.Status = models.StatusActive
	}
}

func trim(in *Input) {
	in.Barcode = strings.TrimSpace(in.Barcode)
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.Status = strings.TrimSpace(in.Status)
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
