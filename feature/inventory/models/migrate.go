package models

import (
	"fmt"

	"gorm.io/gorm"
)

// All returns every persisted model, in dependency order.
func All() []any {
	return []any{
		&Employee{},
		&Workplace{},
		&Equipment{},
		&InventoryAudit{},
		&AuditItem{},
	}
}

// AutoMigrate creates or updates the inventory schema.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("failed to migrate inventory schema: %w", err)
	}
	return nil
}
