package checks

import (
	"fmt"
	"reflect"
	"strings"

	"inventory-audit/core/database"
	"inventory-audit/core/reconcile"
	"inventory-audit/feature/inventory/models"

	"gorm.io/gorm"
)

// RequiredIndex names an index the live schema must carry.
type RequiredIndex struct {
	Model any
	Name  string
}

// RequiredIndexes lists the indexes the reconciliation queries depend on.
func RequiredIndexes() []RequiredIndex {
	return []RequiredIndex{
		{Model: &models.AuditItem{}, Name: models.AuditItemsUniqueIndex},
		{Model: &models.Equipment{}, Name: "idx_equipment_barcode"},
	}
}

// SchemaReport is the result of a schema integrity check.
type SchemaReport struct {
	Driver         string                 `json:"driver"`
	Matched        bool                   `json:"matched"`
	Tables         map[string]TableReport `json:"tables"`
	MissingIndexes []string               `json:"missing_indexes"`
	// OrphanedEquipment lists equipment ids referenced by audit items but absent from the catalog.
	OrphanedEquipment []string `json:"orphaned_equipment"`
	Errors            []string `json:"errors"`
}

// TableReport describes the differences found in one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema compares every inventory model against the live database,
// using the GORM column and type tags as the source of truth.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:            db.Dialector.Name(),
		Matched:           true,
		Tables:            make(map[string]TableReport),
		MissingIndexes:    []string{},
		OrphanedEquipment: []string{},
	}

	for _, model := range models.All() {
		table, tblReport, err := CheckTable(db, model)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			report.Matched = false
			continue
		}
		if tblReport.Status != "ok" {
			report.Matched = false
		}
		report.Tables[table] = tblReport
	}

	for _, idx := range RequiredIndexes() {
		if !database.HasIndex(db, idx.Model, idx.Name) {
			report.MissingIndexes = append(report.MissingIndexes, idx.Name)
			report.Matched = false
		}
	}

	orphans, err := CheckOrphans(db)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		report.Matched = false
	} else if len(orphans) > 0 {
		report.OrphanedEquipment = orphans
		report.Matched = false
	}

	return report, nil
}

// CheckOrphans returns the equipment ids that audit items point to but the
// catalog no longer holds. Missing tables yield no orphans.
func CheckOrphans(db *gorm.DB) ([]string, error) {
	migrator := db.Migrator()
	if !migrator.HasTable(&models.AuditItem{}) || !migrator.HasTable(&models.Equipment{}) {
		return nil, nil
	}

	var scanned []string
	if err := db.Model(&models.AuditItem{}).Distinct("equipment_id").Pluck("equipment_id", &scanned).Error; err != nil {
		return nil, fmt.Errorf("failed to read scanned equipment: %w", err)
	}
	if len(scanned) == 0 {
		return nil, nil
	}

	var catalog []string
	if err := db.Model(&models.Equipment{}).Pluck("id", &catalog).Error; err != nil {
		return nil, fmt.Errorf("failed to read equipment ids: %w", err)
	}

	return reconcile.Orphans(catalog, func(id string) string { return id }, reconcile.NewSet(scanned...)), nil
}

// CheckTable inspects the table of a single model.
func CheckTable(db *gorm.DB, model any) (string, TableReport, error) {
	typ := reflect.TypeOf(model)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return "", TableReport{}, fmt.Errorf("model %s is not a struct", typ)
	}

	tabler, ok := reflect.New(typ).Interface().(interface{ TableName() string })
	if !ok {
		return "", TableReport{}, fmt.Errorf("model %s does not implement TableName", typ.Name())
	}
	table := tabler.TableName()

	tblReport := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	actualCols, err := database.GetTableColumns(db, table)
	if err != nil {
		return table, tblReport, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}

	actual := make(map[string]database.ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actual[col.Field] = col
	}

	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("gorm")
		colName := parseGormColumn(tag)
		if colName == "" {
			continue // associations
		}

		col, exists := actual[colName]
		if !exists {
			tblReport.MissingColumns = append(tblReport.MissingColumns, colName)
			tblReport.Status = "error"
			continue
		}

		expType := strings.ToLower(parseGormType(tag))
		if expType == "" {
			continue
		}
		if !strings.Contains(col.Type, expType) {
			tblReport.TypeMismatches = append(tblReport.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", colName, expType, col.Type))
			tblReport.Status = "error"
		}
	}

	return table, tblReport, nil
}

func parseGormColumn(tag string) string {
	return tagValue(tag, "column:")
}

func parseGormType(tag string) string {
	return tagValue(tag, "type:")
}

func tagValue(tag, key string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, key) {
			return strings.TrimPrefix(p, key)
		}
	}
	return ""
}
