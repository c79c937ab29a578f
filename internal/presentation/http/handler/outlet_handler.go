package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/restroworks/restropos-api/internal/application/service"
	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/internal/presentation/http/dto/request"
	"github.com/restroworks/restropos-api/internal/presentation/http/dto/response"
)

// OutletHandler handles outlet, settings and tax master HTTP requests
type OutletHandler struct {
	outletService  *service.OutletService
	taxRateService *service.TaxRateService
}

// NewOutletHandler creates a new outlet handler
func NewOutletHandler(outletService *service.OutletService, taxRateService *service.TaxRateService) *OutletHandler {
	return &OutletHandler{outletService: outletService, taxRateService: taxRateService}
}

// Get returns the caller's outlet with settings and departments
func (h *OutletHandler) Get(c *gin.Context) {
	outlet, err := h.outletService.GetByID(c.Request.Context(), GetOutletID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Outlet retrieved", outlet)
}

// GetSettings returns the outlet's settings
func (h *OutletHandler) GetSettings(c *gin.Context) {
	settings, err := h.outletService.GetSettings(c.Request.Context(), GetOutletID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings retrieved", settings)
}

// UpdateSettings replaces the outlet's settings
func (h *OutletHandler) UpdateSettings(c *gin.Context) {
	var req request.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.outletService.UpdateSettings(c.Request.Context(), &entity.OutletSettings{
		OutletID:              GetOutletID(c),
		ShowKOTNoOnBill:       req.ShowKOTNoOnBill,
		ShowTaxBreakup:        req.ShowTaxBreakup,
		PrintKOTOnSave:        req.PrintKOTOnSave,
		ShowItemNotes:         req.ShowItemNotes,
		ShowCustomerInfo:      req.ShowCustomerInfo,
		PrintedTimeoutMinutes: req.PrintedTimeoutMinutes,
		StaffDiscountPct:      req.StaffDiscountPct,
		DefaultPax:            req.DefaultPax,
		DefaultWaiter:         req.DefaultWaiter,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings updated", settings)
}

// ListTaxRates returns the outlet's tax master rows
func (h *OutletHandler) ListTaxRates(c *gin.Context) {
	rates, err := h.taxRateService.List(c.Request.Context(), GetOutletID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tax rates retrieved", rates)
}

// UpsertTaxRate overrides the rates for one department
func (h *OutletHandler) UpsertTaxRate(c *gin.Context) {
	var req request.TaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rate := &entity.TaxRate{
		OutletID:     GetOutletID(c),
		DepartmentID: req.DepartmentID,
		CGSTPct:      req.CGSTPct,
		SGSTPct:      req.SGSTPct,
		IGSTPct:      req.IGSTPct,
		CESSPct:      req.CESSPct,
	}
	if err := h.taxRateService.SetRates(c.Request.Context(), rate); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tax rates updated", rate)
}
