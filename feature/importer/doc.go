// Package importer seeds an empty catalog from the legacy inventory export.
//
// The export has eleven columns: object id, inventory number, name, date added,
// workplace id, department id, notes, workplace name, employee name, department
// name and status. Both CSV and XLSX files are accepted. Employees, workplaces
// and equipment are derived from the rows and written in a single transaction.
package importer
