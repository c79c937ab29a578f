package entity

import (
	"time"

	"github.com/restroworks/restropos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Table represents a physical dining table.
// Status is the raw stored code; the display state shown on the table view is
// derived per poll from this code plus the table's latest open bill.
type Table struct {
	ID           uint             `gorm:"primaryKey" json:"tableid"`
	Name         string           `gorm:"size:50;not null" json:"table_name"`
	OutletID     uint             `gorm:"not null;index" json:"outletid"`
	DepartmentID uint             `gorm:"not null;index" json:"departmentid"`
	Status       enum.TableStatus `gorm:"default:0" json:"status"`
	Capacity     int              `gorm:"default:4" json:"capacity"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName returns the table name for the Table model
func (Table) TableName() string {
	return "table_management"
}
