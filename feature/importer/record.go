package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// recordFields is the column count of the legacy inventory export.
const recordFields = 11

// Record is one row of the legacy inventory export.
type Record struct {
	ObjectID        string
	InventoryNumber string
	Name            string
	DateAdded       *time.Time
	WorkplaceID     string
	DepartmentID    string
	Notes           string
	WorkplaceName   string
	EmployeeName    string
	DepartmentName  string
	Status          string
}

var dateLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
}

// ParseCSV reads legacy CSV rows. The header row and rows with fewer than
// eleven columns are skipped.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var records []Record
	header := true
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		if header {
			header = false
			continue
		}
		if rec, ok := fromFields(fields); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// ParseXLSX reads legacy rows from the first worksheet of a workbook.
func ParseXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	var records []Record
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		// GetRows drops trailing empty cells.
		for len(row) < recordFields {
			row = append(row, "")
		}
		if rec, ok := fromFields(row); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func fromFields(fields []string) (Record, bool) {
	if len(fields) < recordFields {
		return Record{}, false
	}
	allBlank := true
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			allBlank = false
			break
		}
	}
	if allBlank {
		return Record{}, false
	}

	return Record{
		ObjectID:        strings.TrimSpace(fields[0]),
		InventoryNumber: normalize(fields[1]),
		Name:            normalize(fields[2]),
		DateAdded:       parseDate(fields[3]),
		WorkplaceID:     strings.TrimSpace(fields[4]),
		DepartmentID:    strings.TrimSpace(fields[5]),
		Notes:           normalize(fields[6]),
		WorkplaceName:   normalize(fields[7]),
		EmployeeName:    normalize(fields[8]),
		DepartmentName:  normalize(fields[9]),
		Status:          normalize(fields[10]),
	}, true
}

// normalize trims the value and maps the literal NULL to an empty string.
func normalize(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "NULL") {
		return ""
	}
	return v
}

func parseDate(v string) *time.Time {
	v = normalize(v)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}
