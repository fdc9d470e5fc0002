package equipment_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"inventory-audit/core/database"
	"inventory-audit/feature/equipment"
	"inventory-audit/feature/inventory/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*equipment.Service, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return equipment.NewService(db, zap.NewNop()), db
}

func TestCreate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	eq, err := svc.Create(ctx, equipment.Input{Name: "  Dell PC ", Model: "OptiPlex"})
	require.NoError(t, err)
	assert.Equal(t, "Dell PC", eq.Name)
	assert.Equal(t, models.TypePC, eq.Type)
	assert.Equal(t, models.StatusActive, eq.Status)
	assert.Regexp(t, regexp.MustCompile(`^EQ-[0-9A-F]{8}-[0-9A-F]{6}$`), eq.Barcode)

	eq, err = svc.Create(ctx, equipment.Input{Name: "HP Printer", Barcode: "INV-42", Type: models.TypePrinter})
	require.NoError(t, err)
	assert.Equal(t, "INV-42", eq.Barcode)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   equipment.Input
	}{
		{"blank name", equipment.Input{Name: "  "}},
		{"unknown type", equipment.Input{Name: "X", Type: "Toaster"}},
		{"unknown status", equipment.Input{Name: "X", Status: "lost"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, equipment.ErrInvalid)
		})
	}
}

func TestFindByBarcode(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	older := models.Equipment{ID: "b", Barcode: "SHARED", Name: "System unit", CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Equipment{ID: "a", Barcode: "SHARED", Name: "Monitor", CreatedAt: time.Now()}
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&older).Error)

	eq, err := svc.FindByBarcode(ctx, "SHARED")
	require.NoError(t, err)
	require.NotNil(t, eq)
	assert.Equal(t, "b", eq.ID)

	eq, err = svc.FindByBarcode(ctx, "shared")
	require.NoError(t, err)
	assert.Nil(t, eq)
}

// MySQL compares barcodes with a case-insensitive collation, so the database
// hands back rows whose tag differs only in case or trailing spaces.
func TestFindByBarcode_CaseInsensitiveCollation(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)
	svc := equipment.NewService(db, zap.NewNop())

	query := regexp.QuoteMeta("SELECT * FROM `equipment` WHERE barcode = ?")
	mock.ExpectQuery(query).WithArgs("pc-001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "barcode", "name"}).
			AddRow("1", "PC-001", "Dell OptiPlex").
			AddRow("2", "pc-001 ", "Spare"))

	eq, err := svc.FindByBarcode(context.Background(), "pc-001")
	require.NoError(t, err)
	assert.Nil(t, eq)

	mock.ExpectQuery(query).WithArgs("PC-001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "barcode", "name"}).
			AddRow("3", "pc-001", "Lower").
			AddRow("1", "PC-001", "Dell OptiPlex"))

	eq, err = svc.FindByBarcode(context.Background(), "PC-001")
	require.NoError(t, err)
	require.NotNil(t, eq)
	assert.Equal(t, "1", eq.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByBarcode_QueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)
	_, err = equipment.NewService(db, zap.NewNop()).FindByBarcode(context.Background(), "PC-001")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFindByBarcode_TieBreakOnID(t *testing.T) {
	svc, db := setupService(t)
	ts := time.Now().Truncate(time.Second)

	require.NoError(t, db.Create(&models.Equipment{ID: "z", Barcode: "T", Name: "Z", CreatedAt: ts}).Error)
	require.NoError(t, db.Create(&models.Equipment{ID: "m", Barcode: "T", Name: "M", CreatedAt: ts}).Error)

	eq, err := svc.FindByBarcode(context.Background(), "T")
	require.NoError(t, err)
	assert.Equal(t, "m", eq.ID)
}

func TestSearch(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, equipment.Input{Name: "Dell PC", Model: "OptiPlex 7090"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, equipment.Input{Name: "HP LaserJet", Type: models.TypePrinter, SerialNumber: "SN-777"})
	require.NoError(t, err)

	items, err := svc.Search(ctx, "optiplex", equipment.TypeAll)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dell PC", items[0].Name)

	items, err = svc.Search(ctx, "sn-777", "")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = svc.Search(ctx, "", models.TypePrinter)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "HP LaserJet", items[0].Name)

	items, err = svc.Search(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestUpdate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	eq, err := svc.Create(ctx, equipment.Input{Name: "Dell PC", Barcode: "EQ-1"})
	require.NoError(t, err)
	before := eq.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	updated, err := svc.Update(ctx, eq.ID, equipment.Input{Name: "Dell PC 2", Status: models.StatusRepair})
	require.NoError(t, err)
	assert.Equal(t, "Dell PC 2", updated.Name)
	assert.Equal(t, "EQ-1", updated.Barcode)
	assert.Equal(t, models.StatusRepair, updated.Status)
	assert.True(t, updated.UpdatedAt.After(before))

	_, err = svc.Update(ctx, "missing", equipment.Input{Name: "X"})
	assert.ErrorIs(t, err, equipment.ErrNotFound)
}

func TestDelete_RemovesScans(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	eq, err := svc.Create(ctx, equipment.Input{Name: "Dell PC"})
	require.NoError(t, err)
	audit := models.InventoryAudit{Auditor: "Ivanov"}
	require.NoError(t, db.Create(&audit).Error)
	require.NoError(t, db.Create(&models.AuditItem{AuditID: audit.ID, EquipmentID: eq.ID, Found: true}).Error)

	require.NoError(t, svc.Delete(ctx, eq.ID))

	var count int64
	require.NoError(t, db.Model(&models.AuditItem{}).Count(&count).Error)
	assert.Zero(t, count)

	total, err := svc.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	assert.ErrorIs(t, svc.Delete(ctx, eq.ID), equipment.ErrNotFound)
}

func TestListOrdering(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, db.Create(&models.Equipment{Barcode: "1", Name: "Bravo", CreatedAt: now.Add(-time.Minute)}).Error)
	require.NoError(t, db.Create(&models.Equipment{Barcode: "2", Name: "Alpha", CreatedAt: now}).Error)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", items[0].Name)

	items, err = svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Bravo"}, []string{items[0].Name, items[1].Name})
}

func TestGenerateBarcode(t *testing.T) {
	a, b := equipment.GenerateBarcode(), equipment.GenerateBarcode()
	assert.Len(t, a, len("EQ-XXXXXXXX-XXXXXX"))
	assert.NotEqual(t, a, b)
}
