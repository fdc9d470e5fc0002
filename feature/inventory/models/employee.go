package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a person equipment and workplaces can be assigned to.
// IsActive is the soft-delete flag.
type Employee struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	FullName   string    `gorm:"column:full_name;type:varchar(200);not null" json:"fullName"`
	Position   string    `gorm:"column:position;type:varchar(100)" json:"position"`
	Department string    `gorm:"column:department;type:varchar(100)" json:"department"`
	Email      string    `gorm:"column:email;type:varchar(100)" json:"email"`
	Phone      string    `gorm:"column:phone;type:varchar(50)" json:"phone"`
	IsActive   bool      `gorm:"column:is_active;not null" json:"isActive"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName overrides the table name.
func (Employee) TableName() string {
	return "employees"
}

// BeforeCreate assigns the identifier.
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
