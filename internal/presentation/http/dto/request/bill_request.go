package request

// KOTItemRequest is one order line in a save request. The client's tax
// columns are intentionally absent: taxes are always recomputed server side.
type KOTItemRequest struct {
	ItemCode string  `json:"item_code" binding:"required"`
	ItemName string  `json:"item_name" binding:"required"`
	Qty      float64 `json:"qty"`
	Rate     float64 `json:"rate" binding:"gte=0"`
	KOTRef   string  `json:"kot_ref"`
	Note     string  `json:"note"`
}

// DiscountRequest carries the discount applied on the billing screen
type DiscountRequest struct {
	Type    int     `json:"type"` // 1 = percentage, 2 = amount
	Value   float64 `json:"value" binding:"gte=0"`
	GivenBy string  `json:"given_by"`
	Reason  string  `json:"reason"`
}

// SaveKOTRequest represents a KOT save from the billing screen
type SaveKOTRequest struct {
	BillID       *string          `json:"bill_id"`
	DepartmentID uint             `json:"departmentid" binding:"required"`
	TableID      *uint            `json:"tableid"`
	OrderType    int              `json:"order_type"`
	CustomerID   *string          `json:"customer_id"`
	CustomerName string           `json:"customer_name"`
	MobileNo     string           `json:"mobile_no"`
	Pax          int              `json:"pax"`
	WaiterName   string           `json:"waiter_name"`
	Items        []KOTItemRequest `json:"items" binding:"required,dive"`
	Discount     *DiscountRequest `json:"discount"`
}

// SettleBillRequest represents a bill settlement request
type SettleBillRequest struct {
	PaymentMode string `json:"payment_mode" binding:"required"`
}

// ReverseKOTRequest represents a KOT line reversal request
type ReverseKOTRequest struct {
	ItemID string  `json:"item_id" binding:"required"`
	Qty    float64 `json:"qty" binding:"required,gt=0"`
	Reason string  `json:"reason" binding:"required"`
}
