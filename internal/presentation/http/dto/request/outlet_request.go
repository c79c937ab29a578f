package request

// TaxRateRequest represents a tax override for one department
type TaxRateRequest struct {
	DepartmentID uint    `json:"departmentid" binding:"required"`
	CGSTPct      float64 `json:"cgst_pct" binding:"gte=0,lte=100"`
	SGSTPct      float64 `json:"sgst_pct" binding:"gte=0,lte=100"`
	IGSTPct      float64 `json:"igst_pct" binding:"gte=0,lte=100"`
	CESSPct      float64 `json:"cess_pct" binding:"gte=0,lte=100"`
}

// SettingsRequest represents an outlet settings update
type SettingsRequest struct {
	ShowKOTNoOnBill  bool `json:"show_kot_no_on_bill"`
	ShowTaxBreakup   bool `json:"show_tax_breakup"`
	PrintKOTOnSave   bool `json:"print_kot_on_save"`
	ShowItemNotes    bool `json:"show_item_notes"`
	ShowCustomerInfo bool `json:"show_customer_info"`

	PrintedTimeoutMinutes int     `json:"printed_timeout_minutes" binding:"gte=0"`
	StaffDiscountPct      float64 `json:"staff_discount_pct" binding:"gte=0,lte=100"`

	DefaultPax    int     `json:"default_pax" binding:"gte=0"`
	DefaultWaiter *string `json:"default_waiter"`
}

// MenuItemRequest represents a create/update menu item request
type MenuItemRequest struct {
	ItemCode  string  `json:"item_code" binding:"required"`
	Name      string  `json:"item_name" binding:"required"`
	ShortName *string `json:"short_name"`
	Rate      float64 `json:"rate" binding:"gte=0"`
	Kitchen   *string `json:"kitchen"`
	IsActive  *bool   `json:"is_active"`
}
