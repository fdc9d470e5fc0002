package workplace

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

var (
	// ErrNotFound is returned when the workplace does not exist.
	ErrNotFound = errors.New("workplace not found")
	// ErrInvalid is returned when workplace input fails validation.
	ErrInvalid = errors.New("invalid workplace")
)

// Input carries the editable workplace fields.
type Input struct {
	Name        string  `json:"name" validate:"notblank,max=200"`
	Building    string  `json:"building" validate:"max=100"`
	Floor       string  `json:"floor" validate:"max=50"`
	Room        string  `json:"room" validate:"max=50"`
	Description string  `json:"description" validate:"max=500"`
	EmployeeID  *string `json:"employeeId"`
	IsActive    *bool   `json:"isActive"`
}

// Usage counts the equipment placed at a workplace.
type Usage struct {
	IsUsed         bool  `json:"isUsed"`
	EquipmentCount int64 `json:"equipmentCount"`
}

// Service manages workplaces. Deletion is soft by default.
type Service struct {
	db        *gorm.DB
	logger    *zap.Logger
	validator *validation.Validator
}

// NewService creates a new workplace service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger, validator: validation.New()}
}

func (s *Service) query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Employee")
}

// List returns workplaces ordered by name; inactive ones only when asked for.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]models.Workplace, error) {
	q := s.query(ctx)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var items []models.Workplace
	if err := q.Order("name").Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list workplaces: %w", err)
	}
	return items, nil
}

// Search matches active workplaces by name, building or room.
func (s *Service) Search(ctx context.Context, term string) ([]models.Workplace, error) {
	q := s.query(ctx).Where("is_active = ?", true)
	if term = strings.TrimSpace(term); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(building) LIKE ? OR LOWER(room) LIKE ?", like, like, like)
	}
	var items []models.Workplace
	if err := q.Order("name").Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to search workplaces: %w", err)
	}
	return items, nil
}

// ListByEmployee returns the active workplaces whose primary occupant is employeeID.
func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]models.Workplace, error) {
	var items []models.Workplace
	err := s.query(ctx).
		Where("is_active = ? AND employee_id = ?", true, employeeID).
		Order("name").Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list workplaces for employee %s: %w", employeeID, err)
	}
	return items, nil
}

// Get returns the workplace with its occupant.
func (s *Service) Get(ctx context.Context, id string) (*models.Workplace, error) {
	var w models.Workplace
	if err := s.query(ctx).First(&w, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get workplace %s: %w", id, err)
	}
	return &w, nil
}

// Create adds a workplace and returns it reloaded with its occupant.
func (s *Service) Create(ctx context.Context, in Input) (*models.Workplace, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, err.Error())
	}

	w := models.Workplace{IsActive: true}
	apply(&w, in)
	if err := s.db.WithContext(ctx).Omit("Employee").Create(&w).Error; err != nil {
		return nil, fmt.Errorf("failed to create workplace: %w", err)
	}
	s.logger.Info("Workplace created", zap.String("id", w.ID))
	return s.Get(ctx, w.ID)
}

// Update overwrites the editable fields of a workplace.
func (s *Service) Update(ctx context.Context, id string, in Input) (*models.Workplace, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, err.Error())
	}

	var w models.Workplace
	if err := s.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get workplace %s: %w", id, err)
	}
	apply(&w, in)
	w.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Omit("Employee").Save(&w).Error; err != nil {
		return nil, fmt.Errorf("failed to update workplace %s: %w", id, err)
	}
	return s.Get(ctx, id)
}

// Delete marks the workplace inactive.
func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.Workplace{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate workplace %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.logger.Info("Workplace deactivated", zap.String("id", id))
	return nil
}

// HardDelete removes the workplace row. Equipment placed there is detached.
func (s *Service) HardDelete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Workplace{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete workplace %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.logger.Info("Workplace deleted", zap.String("id", id))
	return nil
}

// CheckUsage counts equipment placed at the workplace.
func (s *Service) CheckUsage(ctx context.Context, id string) (*Usage, error) {
	var u Usage
	if err := s.db.WithContext(ctx).Model(&models.Equipment{}).Where("workplace_id = ?", id).Count(&u.EquipmentCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count equipment for workplace %s: %w", id, err)
	}
	u.IsUsed = u.EquipmentCount > 0
	return &u, nil
}

func apply(w *models.Workplace, in Input) {
	w.Name = in.Name
	w.Building = in.Building
	w.Floor = in.Floor
	w.Room = in.Room
	w.Description = in.Description
	w.EmployeeID = nil
	if in.EmployeeID != nil && strings.TrimSpace(*in.EmployeeID) != "" {
		id := strings.TrimSpace(*in.EmployeeID)
		w.EmployeeID = &id
	}
	if in.IsActive != nil {
		w.IsActive = *in.IsActive
	}
}
