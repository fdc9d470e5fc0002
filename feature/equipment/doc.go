// Package equipment implements the equipment catalog: CRUD, search, barcode
// generation and the read-only lookups audits reconcile against.
//
// Lookups by barcode are exact and, since tags may be shared by compound assets,
// resolve to the oldest matching record.
package equipment
