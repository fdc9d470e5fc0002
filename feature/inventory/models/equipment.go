package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Equipment is a catalogued piece of equipment identified by its barcode tag.
// Barcodes are indexed but not unique: compound assets may share one tag.
type Equipment struct {
	ID           string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Barcode      string     `gorm:"column:barcode;type:varchar(50);not null;index:idx_equipment_barcode" json:"barcode"`
	Name         string     `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Type         string     `gorm:"column:type;type:varchar(50);not null" json:"type"`
	Manufacturer string     `gorm:"column:manufacturer;type:varchar(100)" json:"manufacturer"`
	Model        string     `gorm:"column:model;type:varchar(100)" json:"model"`
	SerialNumber string     `gorm:"column:serial_number;type:varchar(100)" json:"serialNumber"`
	PurchaseDate *time.Time `gorm:"column:purchase_date;type:date" json:"purchaseDate,omitempty"`
	Status       string     `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Location     string     `gorm:"column:location;type:varchar(200)" json:"location"`
	AssignedTo   string     `gorm:"column:assigned_to;type:varchar(200)" json:"assignedTo"`
	Notes        string     `gorm:"column:notes;type:varchar(1000)" json:"notes"`

	WorkplaceID *string    `gorm:"column:workplace_id;type:varchar(36);index" json:"workplaceId,omitempty"`
	Workplace   *Workplace `gorm:"foreignKey:WorkplaceID;constraint:OnDelete:SET NULL" json:"workplace,omitempty"`
	EmployeeID  *string    `gorm:"column:employee_id;type:varchar(36);index" json:"employeeId,omitempty"`
	Employee    *Employee  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:SET NULL" json:"employee,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName overrides the table name.
func (Equipment) TableName() string {
	return "equipment"
}

// BeforeCreate assigns the identifier and the type/status defaults.
func (e *Equipment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Type == "" {
		e.Type = TypePC
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	return nil
}

// DisplayLocation is the workplace name when assigned, else the free-text location.
func (e *Equipment) DisplayLocation() string {
	if e.Workplace != nil && e.Workplace.Name != "" {
		return e.Workplace.Name
	}
	return e.Location
}

// DisplayAssignee is the employee name when assigned, else the free-text assignee.
func (e *Equipment) DisplayAssignee() string {
	if e.Employee != nil && e.Employee.FullName != "" {
		return e.Employee.FullName
	}
	return e.AssignedTo
}
