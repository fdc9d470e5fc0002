package audit

import (
	"context"

	"inventory-audit/feature/inventory/models"
)

// Catalog is the read-only view of the equipment catalog audits reconcile against.
// Find methods return nil without an error when nothing matches.
type Catalog interface {
	FindByBarcode(ctx context.Context, barcode string) (*models.Equipment, error)
	FindByID(ctx context.Context, id string) (*models.Equipment, error)
	CountAll(ctx context.Context) (int64, error)
	ListAll(ctx context.Context) ([]models.Equipment, error)
}
