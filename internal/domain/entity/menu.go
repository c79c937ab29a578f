package entity

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem represents one orderable item keyed by its short code
type MenuItem struct {
	ID        uint           `gorm:"primaryKey" json:"itemid"`
	ItemCode  string         `gorm:"size:50;not null;uniqueIndex" json:"item_code"`
	Name      string         `gorm:"size:255;not null" json:"item_name"`
	ShortName *string        `gorm:"size:100" json:"short_name,omitempty"`
	Rate      float64        `gorm:"not null;default:0" json:"rate"`
	OutletID  uint           `gorm:"not null;index" json:"outletid"`
	Kitchen   *string        `gorm:"size:100" json:"kitchen,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
