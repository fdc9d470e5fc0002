// Package reconcile compares a catalog of entities against a set of observed keys.
//
// An audit is a reconciliation between two sources: the equipment catalog held in
// the database and the barcodes physically scanned during the audit. The package
// is storage-agnostic; callers load both sides and hand them over as a slice and
// a Set.
//
// # Usage Example
//
//	scanned := reconcile.NewSet(ids...)
//	found, missing := reconcile.Partition(equipment, keyFn, scanned)
//	summary := reconcile.NewSummary(len(equipment), len(found))
//
// Partition keeps catalog order in both halves. Orphans reports observed keys
// without a catalog entry.
package reconcile
