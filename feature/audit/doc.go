// Package audit runs physical inventory audits.
//
// An audit reconciles the whole equipment catalog against the barcodes scanned
// during the session. Scanning records at most one AuditItem per equipment and
// audit: the duplicate check and the insert share a transaction, and the unique
// index on (audit_id, equipment_id) rejects whatever a concurrent scan slips past
// the check. Both paths surface as ErrAlreadyScanned.
//
// Expected failures (unknown barcode, repeated scan, missing audit or scan,
// invalid input) are returned as *OutcomeError values whose message is meant
// for the user; test them with errors.Is against the package sentinels.
// Anything else is an infrastructure failure.
//
// # Reports
//
// GenerateReport returns found rows (most recent scan first) followed by
// not-found rows (by name). WriteCSV and WriteXLSX serialize them and
// ExportReport uploads the result under
// <reports_prefix>/audits/<audit_id>/<timestamp>.<format>.
package audit
