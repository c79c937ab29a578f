package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/restroworks/restropos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Bill represents one running order / KOT transaction for a table.
// Amounts are stored at full float precision; rounding happens only when the
// bill is rendered for the API or the printer.
type Bill struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TxnNo    string    `gorm:"size:50;not null;uniqueIndex" json:"txn_no"`
	OrderNo  int       `gorm:"not null;index" json:"order_no"`
	OutletID uint      `gorm:"not null;index" json:"outletid"`

	DepartmentID uint       `gorm:"not null;index" json:"departmentid"`
	TableID      *uint      `gorm:"index" json:"tableid,omitempty"`
	CustomerID   *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName string     `gorm:"size:255" json:"customer_name"`
	MobileNo     string     `gorm:"size:20" json:"mobile_no"`
	Pax          int        `gorm:"default:0" json:"pax"`
	WaiterName   string     `gorm:"size:100" json:"waiter_name"`

	OrderType enum.OrderType `gorm:"default:0" json:"order_type"`

	GrossAmt float64 `gorm:"not null;default:0" json:"gross_amt"`
	CGST     float64 `gorm:"not null;default:0" json:"cgst"`
	SGST     float64 `gorm:"not null;default:0" json:"sgst"`
	IGST     float64 `gorm:"not null;default:0" json:"igst"`
	CESS     float64 `gorm:"not null;default:0" json:"cess"`

	DiscountType enum.DiscountType `gorm:"default:1" json:"discount_type"`
	DiscPer      float64           `gorm:"not null;default:0" json:"disc_per"`
	Discount     float64           `gorm:"not null;default:0" json:"discount"`
	DiscGivenBy  string            `gorm:"size:100" json:"disc_given_by"`
	DiscReason   string            `gorm:"size:255" json:"disc_reason"`

	Amount float64 `gorm:"not null;default:0" json:"amount"`

	IsBilled      int        `gorm:"default:0;index" json:"isbilled"`
	IsSettled     int        `gorm:"default:0;index" json:"is_settled"`
	BillPrintedAt *time.Time `json:"bill_printed_at,omitempty"`
	SettledAt     *time.Time `json:"settled_at,omitempty"`
	PaymentMode   string     `gorm:"size:50" json:"payment_mode"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items    []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
	Table    *Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "rest_transactions"
}

// IsOpen reports whether the bill still accepts KOT activity
func (b *Bill) IsOpen() bool {
	return b.IsSettled != 1
}

// BillItem is one order line on a bill. The tax columns are recomputed from
// the line's own subtotal every time the bill is saved, so a stale client
// payload can never persist inconsistent tax figures.
type BillItem struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BillID uuid.UUID `gorm:"type:uuid;not null;index" json:"bill_id"`

	ItemCode string  `gorm:"size:50;not null" json:"item_code"`
	ItemName string  `gorm:"size:255;not null" json:"item_name"`
	Qty      float64 `gorm:"not null;default:0" json:"qty"`
	Rate     float64 `gorm:"not null;default:0" json:"rate"`
	Total    float64 `gorm:"not null;default:0" json:"total"`

	CGST float64 `gorm:"not null;default:0" json:"cgst"`
	SGST float64 `gorm:"not null;default:0" json:"sgst"`
	IGST float64 `gorm:"not null;default:0" json:"igst"`
	CESS float64 `gorm:"not null;default:0" json:"cess"`

	KOTNo string `gorm:"size:50;index" json:"kot_no"`
	Note  string `gorm:"size:255" json:"note"`

	IsReversed int     `gorm:"default:0" json:"is_reversed"`
	RevQty     float64 `gorm:"default:0" json:"rev_qty"`
	RevReason  string  `gorm:"size:255" json:"rev_reason"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (i *BillItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "rest_transaction_details"
}
