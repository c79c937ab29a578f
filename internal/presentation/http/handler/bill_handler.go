package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/restroworks/restropos-api/internal/application/service"
	"github.com/restroworks/restropos-api/internal/domain/billing"
	"github.com/restroworks/restropos-api/internal/domain/enum"
	domainRepo "github.com/restroworks/restropos-api/internal/domain/repository"
	"github.com/restroworks/restropos-api/internal/presentation/http/dto/request"
	"github.com/restroworks/restropos-api/internal/presentation/http/dto/response"
	"github.com/restroworks/restropos-api/pkg/pagination"
)

// BillHandler handles bill and KOT HTTP requests
type BillHandler struct {
	billingService *service.BillingService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingService *service.BillingService) *BillHandler {
	return &BillHandler{billingService: billingService}
}

// Save handles a KOT save from the billing screen
// @Summary Save KOT
// @Description Persist the working order as a KOT; taxes are recomputed server side
// @Tags bills
// @Accept json
// @Produce json
// @Param request body request.SaveKOTRequest true "Order payload"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /bills [post]
func (h *BillHandler) Save(c *gin.Context) {
	var req request.SaveKOTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	input := &service.SaveKOTInput{
		OutletID:     GetOutletID(c),
		DepartmentID: req.DepartmentID,
		TableID:      req.TableID,
		OrderType:    enum.OrderType(req.OrderType),
		CustomerName: req.CustomerName,
		MobileNo:     req.MobileNo,
		Pax:          req.Pax,
		WaiterName:   req.WaiterName,
		UserID:       *userID,
		UserRole:     GetUserRole(c),
	}

	if req.BillID != nil {
		billID, err := uuid.Parse(*req.BillID)
		if err != nil {
			response.BadRequest(c, "Invalid bill ID")
			return
		}
		input.BillID = &billID
	}
	if req.CustomerID != nil {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		input.CustomerID = &customerID
	}

	for _, item := range req.Items {
		input.Items = append(input.Items, billing.LineItem{
			ItemCode: item.ItemCode,
			ItemName: item.ItemName,
			Quantity: item.Qty,
			Rate:     item.Rate,
			KOTRef:   item.KOTRef,
			Note:     item.Note,
		})
	}
	if req.Discount != nil {
		input.Discount = billing.Discount{
			Type:    enum.DiscountType(req.Discount.Type),
			Value:   req.Discount.Value,
			GivenBy: req.Discount.GivenBy,
			Reason:  req.Discount.Reason,
		}
	}

	bill, err := h.billingService.SaveKOT(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "KOT saved", bill)
}

// List returns the bill history with pagination and optional filters
func (h *BillHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	filter := &domainRepo.BillFilterParams{
		Pagination: params,
		OutletID:   GetOutletID(c),
		Search:     c.Query("search"),
	}
	if v := c.Query("table_id"); v != "" {
		tableID, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid table ID")
			return
		}
		id := uint(tableID)
		filter.TableID = &id
	}
	if v := c.Query("is_billed"); v != "" {
		flag, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "Invalid is_billed filter")
			return
		}
		filter.IsBilled = &flag
	}
	if v := c.Query("is_settled"); v != "" {
		flag, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "Invalid is_settled filter")
			return
		}
		filter.IsSettled = &flag
	}

	bills, total, err := h.billingService.ListBills(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(bills, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Bills retrieved", result)
}

// Get returns one bill with its items
func (h *BillHandler) Get(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), billID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill retrieved", bill)
}

// ListSavedKOTs returns open bills with at least one KOT line, optionally
// narrowed to unbilled orders or a single table
func (h *BillHandler) ListSavedKOTs(c *gin.Context) {
	filter := &domainRepo.SavedKOTFilter{}
	if v := c.Query("is_billed"); v != "" {
		flag, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "Invalid is_billed filter")
			return
		}
		filter.IsBilled = &flag
	}
	if v := c.Query("table_id"); v != "" {
		tableID, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid table ID")
			return
		}
		id := uint(tableID)
		filter.TableID = &id
	}

	bills, err := h.billingService.ListSavedKOTs(c.Request.Context(), GetOutletID(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Saved KOTs retrieved", bills)
}

// TableStatus returns the billing state of one table
func (h *BillHandler) TableStatus(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("table_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	status, err := h.billingService.GetTableBillStatus(c.Request.Context(), uint(tableID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table status retrieved", status)
}

// Print marks the bill as printed and sends it to the counter printer
func (h *BillHandler) Print(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.PrintBill(c.Request.Context(), billID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill printed", bill)
}

// Settle closes the bill and frees its table
func (h *BillHandler) Settle(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req request.SettleBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billingService.SettleBill(c.Request.Context(), billID, req.PaymentMode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill settled", bill)
}

// ReverseKOT cancels quantity from a saved line
func (h *BillHandler) ReverseKOT(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req request.ReverseKOTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	bill, err := h.billingService.ReverseKOT(c.Request.Context(), &service.ReverseKOTInput{
		BillID:   billID,
		ItemID:   itemID,
		Qty:      req.Qty,
		Reason:   req.Reason,
		UserID:   *userID,
		UserRole: GetUserRole(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "KOT line reversed", bill)
}

// UPIQR renders the bill's UPI payment string as a PNG QR code
func (h *BillHandler) UPIQR(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	png, err := h.billingService.GenerateUPIQR(c.Request.Context(), billID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(200, "image/png", png)
}
