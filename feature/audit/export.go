package audit

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"inventory-audit/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Report formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// ReportSheet is the worksheet name of XLSX reports.
const ReportSheet = "Audit"

var reportHeader = []string{"Status", "Name", "Type", "Model", "Barcode", "Location", "AssignedTo"}

// ErrStorageDisabled is returned by export operations when no object storage is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// ContentType returns the MIME type of a report format.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// WriteCSV writes the report as CSV with a header row.
func WriteCSV(w io.Writer, rows []ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the report as a single-sheet workbook with a bold header row.
func WriteXLSX(w io.Writer, rows []ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return err
	}
	header := reportHeader
	if err := f.SetSheetRow(ReportSheet, "A1", &header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ReportSheet, "A1", "G1", style); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := r.values()
		if err := f.SetSheetRow(ReportSheet, cell, &values); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(ReportSheet, "B", "B", 30)
	_ = f.SetColWidth(ReportSheet, "E", "G", 25)

	return f.Write(w)
}

// Render serializes rows in the given format.
func Render(format string, rows []ReportRow) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatCSV:
		err = WriteCSV(&buf, rows)
	case FormatXLSX:
		err = WriteXLSX(&buf, rows)
	default:
		return nil, outcome(ErrValidation, "unsupported report format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s report: %w", format, err)
	}
	return buf.Bytes(), nil
}

func (s *Service) exportPrefix(auditID string) string {
	return storage.ObjectPath(s.reportsPrefix, "audits", auditID) + "/"
}

// ExportReport renders the audit report and uploads it to object storage.
// It returns the object name.
func (s *Service) ExportReport(ctx context.Context, auditID, format string) (string, error) {
	if s.client == nil {
		return "", ErrStorageDisabled
	}
	format = strings.ToLower(strings.TrimSpace(format))

	if _, err := s.GetAudit(ctx, auditID); err != nil {
		return "", err
	}
	rows, err := s.GenerateReport(ctx, auditID)
	if err != nil {
		return "", err
	}
	data, err := Render(format, rows)
	if err != nil {
		return "", err
	}

	name := s.exportPrefix(auditID) + s.now().UTC().Format("20060102T150405Z") + "." + format
	_, err = s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: ContentType(format),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", name, err)
	}

	s.logger.Info("Audit report exported",
		zap.String("audit_id", auditID),
		zap.String("object", name),
		zap.Int("rows", len(rows)),
	)
	return name, nil
}

// ListExports returns the object names of the audit's uploaded reports, sorted by name.
func (s *Service) ListExports(ctx context.Context, auditID string) ([]string, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.exportPrefix(auditID),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports for audit %s: %w", auditID, obj.Err)
		}
		if path.Ext(obj.Key) == "" {
			continue
		}
		names = append(names, obj.Key)
	}
	slices.Sort(names)
	return names, nil
}
