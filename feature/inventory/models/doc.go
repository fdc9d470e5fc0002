// Package models defines the persisted inventory entities: equipment, employees,
// workplaces, audits and audit items, together with their display labels.
//
// Relationships are expressed as foreign-key columns with belongs-to associations
// that callers Preload when needed. The audit_items table carries the unique
// index on (audit_id, equipment_id) that keeps a piece of equipment from being
// counted twice in one audit.
package models
