package entity

import (
	"time"

	"gorm.io/gorm"
)

// Outlet represents one restaurant location
type Outlet struct {
	ID        uint           `gorm:"primaryKey" json:"outletid"`
	Name      string         `gorm:"size:255;not null" json:"outlet_name"`
	Code      string         `gorm:"size:50;uniqueIndex" json:"outlet_code"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	GSTIN     *string        `gorm:"size:50" json:"gstin,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Settings    *OutletSettings `gorm:"foreignKey:OutletID" json:"settings,omitempty"`
	Departments []Department    `gorm:"foreignKey:OutletID" json:"departments,omitempty"`
}

// TableName returns the table name for the Outlet model
func (Outlet) TableName() string {
	return "outlets"
}

// Department represents a service section of an outlet (AC hall, garden, bar)
type Department struct {
	ID        uint           `gorm:"primaryKey" json:"departmentid"`
	Name      string         `gorm:"size:255;not null" json:"department_name"`
	OutletID  uint           `gorm:"not null;index" json:"outletid"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the Department model
func (Department) TableName() string {
	return "table_departments"
}

// OutletSettings holds per-outlet billing and print behavior toggles.
// Zero-valued thresholds fall back to the global configuration defaults.
type OutletSettings struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	OutletID uint `gorm:"not null;uniqueIndex" json:"outletid"`

	// KOT/bill print display toggles
	ShowKOTNoOnBill  bool `gorm:"default:true" json:"show_kot_no_on_bill"`
	ShowTaxBreakup   bool `gorm:"default:true" json:"show_tax_breakup"`
	PrintKOTOnSave   bool `gorm:"default:true" json:"print_kot_on_save"`
	ShowItemNotes    bool `gorm:"default:true" json:"show_item_notes"`
	ShowCustomerInfo bool `gorm:"default:true" json:"show_customer_info"`

	// Billing thresholds (0 = use global default)
	PrintedTimeoutMinutes int     `gorm:"default:0" json:"printed_timeout_minutes"`
	StaffDiscountPct      float64 `gorm:"default:0" json:"staff_discount_pct"`

	DefaultPax    int     `gorm:"default:2" json:"default_pax"`
	DefaultWaiter *string `gorm:"size:100" json:"default_waiter,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the OutletSettings model
func (OutletSettings) TableName() string {
	return "outlet_settings"
}
