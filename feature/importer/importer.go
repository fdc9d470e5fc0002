package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"inventory-audit/core/utils"
	"inventory-audit/feature/inventory/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const batchSize = 200

var roomNumber = regexp.MustCompile(`№\s*(\d+)`)

// Result summarizes an import run.
type Result struct {
	Skipped    bool `json:"skipped"`
	Employees  int  `json:"employees"`
	Workplaces int  `json:"workplaces"`
	Equipment  int  `json:"equipment"`
}

// Importer seeds the catalog from the legacy inventory export.
type Importer struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a new importer.
func New(db *gorm.DB, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{db: db, logger: logger}
}

// ImportFile parses a .csv or .xlsx export and imports it.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var records []Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		records, err = ParseXLSX(f)
	default:
		records, err = ParseCSV(f)
	}
	if err != nil {
		return nil, err
	}

	i.logger.Info("Parsed import file", zap.String("path", path), zap.Int("records", len(records)))
	return i.Import(ctx, records)
}

// Import creates employees, workplaces and equipment from records in one
// transaction. Nothing is imported when the catalog already has equipment.
func (i *Importer) Import(ctx context.Context, records []Record) (*Result, error) {
	var existing int64
	if err := i.db.WithContext(ctx).Model(&models.Equipment{}).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to count equipment: %w", err)
	}
	if existing > 0 {
		i.logger.Info("Catalog already contains equipment, skipping import", zap.Int64("equipment", existing))
		return &Result{Skipped: true}, nil
	}

	employees := buildEmployees(records)
	workplaces := buildWorkplaces(records, employees)
	equipment := buildEquipment(records, employees, workplaces, time.Now())

	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if list := employees.list(); len(list) > 0 {
			if err := tx.CreateInBatches(list, batchSize).Error; err != nil {
				return fmt.Errorf("failed to create employees: %w", err)
			}
		}
		if list := workplaces.list(); len(list) > 0 {
			if err := tx.CreateInBatches(list, batchSize).Error; err != nil {
				return fmt.Errorf("failed to create workplaces: %w", err)
			}
		}
		if len(equipment) > 0 {
			if err := tx.CreateInBatches(equipment, batchSize).Error; err != nil {
				return fmt.Errorf("failed to create equipment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		Employees:  len(employees.order),
		Workplaces: len(workplaces.order),
		Equipment:  len(equipment),
	}
	i.logger.Info("Import completed",
		zap.Int("employees", res.Employees),
		zap.Int("workplaces", res.Workplaces),
		zap.Int("equipment", res.Equipment),
	)
	return res, nil
}

// index keeps entities by case-insensitive name in first-seen order.
type index[T any] struct {
	byName map[string]*T
	order  []*T
}

func newIndex[T any]() *index[T] {
	return &index[T]{byName: map[string]*T{}}
}

func (x *index[T]) get(name string) (*T, bool) {
	v, ok := x.byName[strings.ToLower(name)]
	return v, ok
}

func (x *index[T]) put(name string, v *T) {
	x.byName[strings.ToLower(name)] = v
	x.order = append(x.order, v)
}

func (x *index[T]) list() []*T {
	return x.order
}

func isSpecialEmployee(name string) bool {
	return name == writeOffEmployee || name == caretakerEmployee
}

// buildEmployees creates one employee per distinct name, with the department of
// its first row. The write-off and caretaker markers become pseudo employees
// after the real ones; the write-off one is inactive.
func buildEmployees(records []Record) *index[models.Employee] {
	employees := newIndex[models.Employee]()
	var special []string

	for _, r := range records {
		name := r.EmployeeName
		if name == "" {
			continue
		}
		if isSpecialEmployee(name) {
			special = append(special, name)
			continue
		}
		if _, ok := employees.get(name); ok {
			continue
		}
		employees.put(name, &models.Employee{
			ID:         uuid.NewString(),
			FullName:   utils.Truncate(name, 200),
			Department: utils.Truncate(r.DepartmentName, 100),
			IsActive:   true,
		})
	}

	for _, name := range special {
		if _, ok := employees.get(name); ok {
			continue
		}
		employees.put(name, &models.Employee{
			ID:         uuid.NewString(),
			FullName:   name,
			Department: name,
			IsActive:   name != writeOffEmployee,
		})
	}
	return employees
}

// buildWorkplaces creates one workplace per distinct name. The first row decides
// the occupant and description; the room number comes from a "№<digits>" suffix.
func buildWorkplaces(records []Record, employees *index[models.Employee]) *index[models.Workplace] {
	workplaces := newIndex[models.Workplace]()

	for _, r := range records {
		if r.WorkplaceName == "" {
			continue
		}
		if _, ok := workplaces.get(r.WorkplaceName); ok {
			continue
		}

		w := &models.Workplace{
			ID:          uuid.NewString(),
			Name:        utils.Truncate(r.WorkplaceName, 200),
			Description: utils.Truncate(r.DepartmentName, 500),
			IsActive:    r.EmployeeName != writeOffEmployee,
		}
		if m := roomNumber.FindStringSubmatch(r.WorkplaceName); m != nil {
			w.Room = utils.Cut(m[1], 50)
		}
		if e, ok := employees.get(r.EmployeeName); ok && r.EmployeeName != "" {
			w.EmployeeID = &e.ID
		}
		workplaces.put(r.WorkplaceName, w)
	}
	return workplaces
}

// buildEquipment creates one item per distinct barcode and notes pair. Rows
// without an inventory number get an AUTO-<object id> barcode.
func buildEquipment(records []Record, employees *index[models.Employee], workplaces *index[models.Workplace], base time.Time) []*models.Equipment {
	seen := map[string]struct{}{}
	var out []*models.Equipment

	for _, r := range records {
		barcode := r.InventoryNumber
		if barcode == "" {
			barcode = "AUTO-" + r.ObjectID
		}
		key := strings.ToLower(barcode + "|" + r.Notes)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		eq := &models.Equipment{
			Barcode:      utils.Cut(barcode, 50),
			SerialNumber: utils.Cut(barcode, 100),
			Name:         utils.Truncate(r.Name, 200),
			Type:         ClassifyType(r.Name),
			Status:       ClassifyStatus(r.Status),
			PurchaseDate: r.DateAdded,
			Notes:        utils.Truncate(r.Notes, 1000),
			// Millisecond steps survive datetime(3) and keep barcode lookups in row order.
			CreatedAt: base.Add(time.Duration(len(out)) * time.Millisecond),
		}
		if w, ok := workplaces.get(r.WorkplaceName); ok && r.WorkplaceName != "" {
			eq.WorkplaceID = &w.ID
		}
		if e, ok := employees.get(r.EmployeeName); ok && r.EmployeeName != "" {
			eq.EmployeeID = &e.ID
		}
		out = append(out, eq)
	}
	return out
}
