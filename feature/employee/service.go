package employee

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
	// ErrNotFound is returned when the employee does not exist.
	ErrNotFound = errors.New("employee not found")
	// ErrInvalid is returned when employee input fails validation.
	ErrInvalid = errors.New("invalid employee")
)

// Input carries the editable employee fields. A nil IsActive keeps the current
// state on update and means active on create.
type Input struct {
	FullName   string `json:"fullName" validate:"notblank,max=200"`
	Position   string `json:"position" validate:"max=100"`
	Department string `json:"department" validate:"max=100"`
	Email      string `json:"email" validate:"omitempty,email,max=100"`
	Phone      string `json:"phone" validate:"max=50"`
	IsActive   *bool  `json:"isActive"`
}

// Usage counts the records that reference an employee.
type Usage struct {
	IsUsed         bool  `json:"isUsed"`
	EquipmentCount int64 `json:"equipmentCount"`
	WorkplaceCount int64 `json:"workplaceCount"`
}

// Service manages the employee directory. Deletion is soft by default.
type Service struct {
	db        *gorm.DB
	logger    *zap.Logger
	validator *validation.Validator
}

// NewService creates a new employee service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger, validator: validation.New()}
}

// List returns employees ordered by name; inactive ones only when asked for.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]models.Employee, error) {
	q := s.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var items []models.Employee
	if err := q.Order("full_name").Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return items, nil
}

// Search matches active employees by name, position or department.
func (s *Service) Search(ctx context.Context, term string) ([]models.Employee, error) {
	q := s.db.WithContext(ctx).Where("is_active = ?", true)
	if term = strings.TrimSpace(term); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(position) LIKE ? OR LOWER(department) LIKE ?", like, like, like)
	}
	var items []models.Employee
	if err := q.Order("full_name").Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	return items, nil
}

// Get returns the employee with the given id.
func (s *Service) Get(ctx context.Context, id string) (*models.Employee, error) {
	var e models.Employee
	if err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return &e, nil
}

// Create adds an employee.
func (s *Service) Create(ctx context.Context, in Input) (*models.Employee, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	if err := s.validator.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, err.Error())
	}

	e := models.Employee{IsActive: true}
	apply(&e, in)
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	s.logger.Info("Employee created", zap.String("id", e.ID))
	return &e, nil
}

// Update overwrites the editable fields of an employee.
func (s *Service) Update(ctx context.Context, id string, in Input) (*models.Employee, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	if err := s.validator.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, err.Error())
	}

	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(e, in)
	e.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(e).Error; err != nil {
		return nil, fmt.Errorf("failed to update employee %s: %w", id, err)
	}
	return e, nil
}

// Delete marks the employee inactive.
func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate employee %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.logger.Info("Employee deactivated", zap.String("id", id))
	return nil
}

// HardDelete removes the employee row. Equipment and workplaces referencing it are detached.
func (s *Service) HardDelete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Employee{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.logger.Info("Employee deleted", zap.String("id", id))
	return nil
}

// CheckUsage counts equipment and active workplaces assigned to the employee.
func (s *Service) CheckUsage(ctx context.Context, id string) (*Usage, error) {
	var u Usage
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Equipment{}).Where("employee_id = ?", id).Count(&u.EquipmentCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count equipment for employee %s: %w", id, err)
	}
	if err := db.Model(&models.Workplace{}).Where("employee_id = ? AND is_active = ?", id, true).Count(&u.WorkplaceCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count workplaces for employee %s: %w", id, err)
	}
	u.IsUsed = u.EquipmentCount > 0 || u.WorkplaceCount > 0
	return &u, nil
}

func apply(e *models.Employee, in Input) {
	e.FullName = in.FullName
	e.Position = in.Position
	e.Department = in.Department
	e.Email = in.Email
	e.Phone = in.Phone
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
}
