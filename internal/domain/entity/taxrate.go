package entity

import (
	"time"

	"gorm.io/gorm"
)

// TaxRate holds the tax percentages scoped to an outlet+department pair.
// Fetched once per selection change by the billing screen and cached server
// side; mutated only through the explicit override form.
type TaxRate struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	OutletID     uint           `gorm:"not null;uniqueIndex:idx_tax_outlet_dept" json:"outletid"`
	DepartmentID uint           `gorm:"not null;uniqueIndex:idx_tax_outlet_dept" json:"departmentid"`
	CGSTPct      float64        `gorm:"not null;default:0" json:"cgst_pct"`
	SGSTPct      float64        `gorm:"not null;default:0" json:"sgst_pct"`
	IGSTPct      float64        `gorm:"not null;default:0" json:"igst_pct"`
	CESSPct      float64        `gorm:"not null;default:0" json:"cess_pct"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the TaxRate model
func (TaxRate) TableName() string {
	return "rest_tax_master"
}
