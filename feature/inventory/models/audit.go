package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit statuses. An audit only moves from in_progress to completed.
const (
	AuditInProgress = "in_progress"
	AuditCompleted  = "completed"
)

// AuditItemsUniqueIndex guarantees at most one scan per equipment per audit.
const AuditItemsUniqueIndex = "idx_audit_items_audit_equipment"

// InventoryAudit is one physical inventory session.
type InventoryAudit struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	AuditDate time.Time `gorm:"column:audit_date;not null" json:"auditDate"`
	Auditor   string    `gorm:"column:auditor;type:varchar(200);not null" json:"auditor"`
	Status    string    `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName overrides the table name.
func (InventoryAudit) TableName() string {
	return "inventory_audits"
}

// BeforeCreate assigns the identifier, the initial status and the audit date.
func (a *InventoryAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = AuditInProgress
	}
	if a.AuditDate.IsZero() {
		a.AuditDate = time.Now()
	}
	return nil
}

// IsCompleted reports whether the audit was closed.
func (a *InventoryAudit) IsCompleted() bool {
	return a.Status == AuditCompleted
}

// AuditItem records that an equipment item was physically found during an audit.
type AuditItem struct {
	ID          string          `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	AuditID     string          `gorm:"column:audit_id;type:varchar(36);not null;uniqueIndex:idx_audit_items_audit_equipment,priority:1" json:"auditId"`
	Audit       *InventoryAudit `gorm:"foreignKey:AuditID;constraint:OnDelete:CASCADE" json:"-"`
	EquipmentID string          `gorm:"column:equipment_id;type:varchar(36);not null;uniqueIndex:idx_audit_items_audit_equipment,priority:2" json:"equipmentId"`
	Equipment   *Equipment      `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE" json:"equipment,omitempty"`
	ScannedAt   time.Time       `gorm:"column:scanned_at;not null" json:"scannedAt"`
	Found       bool            `gorm:"column:found;not null" json:"found"`
	Notes       string          `gorm:"column:notes;type:varchar(500)" json:"notes"`
}

// TableName overrides the table name.
func (AuditItem) TableName() string {
	return "audit_items"
}

// BeforeCreate assigns the identifier and the scan time.
func (i *AuditItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.ScannedAt.IsZero() {
		i.ScannedAt = time.Now()
	}
	return nil
}
