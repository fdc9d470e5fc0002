package audit

import (
	"context"
	"errors"
	"net/http/httptest"
	"regexp"
	"testing"

	"inventory-audit/feature/inventory/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// stubCatalog is a fixed in-memory catalog.
type stubCatalog struct {
	items []models.Equipment
	err   error
}

func (c *stubCatalog) FindByBarcode(_ context.Context, barcode string) (*models.Equipment, error) {
	for i := range c.items {
		if c.items[i].Barcode == barcode {
			return &c.items[i], c.err
		}
	}
	return nil, c.err
}

func (c *stubCatalog) FindByID(_ context.Context, id string) (*models.Equipment, error) {
	for i := range c.items {
		if c.items[i].ID == id {
			return &c.items[i], c.err
		}
	}
	return nil, c.err
}

func (c *stubCatalog) CountAll(context.Context) (int64, error) {
	return int64(len(c.items)), c.err
}

func (c *stubCatalog) ListAll(context.Context) ([]models.Equipment, error) {
	return c.items, c.err
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return gormDB, mock
}

func TestStorageFailuresPropagate(t *testing.T) {
	db, mock := setupMockDB(t)
	catalog := &stubCatalog{items: []models.Equipment{{ID: "e1", Barcode: "PC-001", Name: "Dell PC"}}}
	svc := NewService(db, catalog, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `audit_items` WHERE audit_id = ?")).
		WithArgs("a1").
		WillReturnError(errors.New("connection reset"))

	_, err := svc.GetAuditStats(context.Background(), "a1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	var oe *OutcomeError
	assert.False(t, errors.As(err, &oe))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanInsertFailureIsNotAnOutcome(t *testing.T) {
	db, mock := setupMockDB(t)
	catalog := &stubCatalog{items: []models.Equipment{{ID: "e1", Barcode: "PC-001", Name: "Dell PC"}}}
	svc := NewService(db, catalog, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `inventory_audits` WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "auditor", "status"}).AddRow("a1", "Ivanov", models.AuditInProgress))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `audit_items`")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `audit_items`")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := svc.ScanBarcode(context.Background(), "a1", "PC-001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotErrorIs(t, err, ErrAlreadyScanned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerInternalError(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, &stubCatalog{err: errors.New("catalog offline")}, zap.NewNop())
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/audits/a1/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAuditStats_WarnsOnInconsistentCounts(t *testing.T) {
	db, mock := setupMockDB(t)
	core, logs := observer.New(zap.WarnLevel)
	svc := NewService(db, &stubCatalog{}, zap.New(core))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `audit_items` WHERE audit_id = ?")).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	stats, err := svc.GetAuditStats(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Found)
	assert.False(t, stats.Consistent())
	assert.Equal(t, 1, logs.FilterMessage("Audit has more scans than catalog entries").Len())
}
