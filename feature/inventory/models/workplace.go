package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workplace is a desk, room or office. EmployeeID is the optional primary occupant.
type Workplace struct {
	ID          string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Building    string    `gorm:"column:building;type:varchar(100)" json:"building"`
	Floor       string    `gorm:"column:floor;type:varchar(50)" json:"floor"`
	Room        string    `gorm:"column:room;type:varchar(50)" json:"room"`
	Description string    `gorm:"column:description;type:varchar(500)" json:"description"`
	EmployeeID  *string   `gorm:"column:employee_id;type:varchar(36);index" json:"employeeId,omitempty"`
	Employee    *Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:SET NULL" json:"employee,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null" json:"isActive"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName overrides the table name.
func (Workplace) TableName() string {
	return "workplaces"
}

// BeforeCreate assigns the identifier.
func (w *Workplace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
