package audit

import (
	"context"

	"inventory-audit/core/reconcile"
	"inventory-audit/feature/inventory/models"
)

// Report row statuses.
const (
	StatusFound    = "Found"
	StatusNotFound = "Not Found"
)

// ReportRow is one line of an audit report.
type ReportRow struct {
	Status     string `json:"status"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Model      string `json:"model"`
	Barcode    string `json:"barcode"`
	Location   string `json:"location"`
	AssignedTo string `json:"assignedTo"`
}

func newReportRow(status string, eq *models.Equipment) ReportRow {
	return ReportRow{
		Status:     status,
		Name:       eq.Name,
		Type:       eq.Type,
		Model:      eq.Model,
		Barcode:    eq.Barcode,
		Location:   eq.DisplayLocation(),
		AssignedTo: eq.DisplayAssignee(),
	}
}

func (r ReportRow) values() []string {
	return []string{r.Status, r.Name, r.Type, r.Model, r.Barcode, r.Location, r.AssignedTo}
}

func equipmentKey(eq models.Equipment) string {
	return eq.ID
}

// GenerateReport lists found equipment, most recent scan first, followed by the
// rest of the catalog by name. An unknown audit yields an empty report.
//
// The not-found half is the catalog partitioned against the scanned set read
// for the found half, so no equipment appears in both.
func (s *Service) GenerateReport(ctx context.Context, auditID string) ([]ReportRow, error) {
	if _, err := s.GetAudit(ctx, auditID); err != nil {
		if isOutcome(err, ErrAuditNotFound) {
			return []ReportRow{}, nil
		}
		return nil, err
	}

	items, err := s.GetScannedItems(ctx, auditID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	scanned := reconcile.NewSet()
	rows := make([]ReportRow, 0, len(catalog))
	for _, item := range items {
		if item.Equipment == nil {
			continue
		}
		scanned.Add(item.EquipmentID)
		rows = append(rows, newReportRow(StatusFound, item.Equipment))
	}

	_, missing := reconcile.Partition(catalog, equipmentKey, scanned)
	for i := range missing {
		rows = append(rows, newReportRow(StatusNotFound, &missing[i]))
	}
	return rows, nil
}
