package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/restroworks/restropos-api/internal/application/service"
	"github.com/restroworks/restropos-api/internal/presentation/http/dto/request"
	"github.com/restroworks/restropos-api/internal/presentation/http/dto/response"
	"github.com/restroworks/restropos-api/pkg/pagination"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List returns customers with pagination and optional search
func (h *CustomerHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()
	search := c.Query("search")

	customers, total, err := h.customerService.List(c.Request.Context(), GetOutletID(c), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(customers, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Customers retrieved", result)
}

// GetByMobile looks up a customer by mobile number
func (h *CustomerHandler) GetByMobile(c *gin.Context) {
	mobile := c.Param("mobile")
	if mobile == "" {
		response.BadRequest(c, "Mobile number is required")
		return
	}

	customer, err := h.customerService.GetByMobile(c.Request.Context(), GetOutletID(c), mobile)
	if err != nil {
		response.Error(c, err)
		return
	}
	if customer == nil {
		response.NotFound(c, "No customer with this mobile number")
		return
	}
	response.OK(c, "Customer retrieved", customer)
}

// Get returns one customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer retrieved", customer)
}

// Create creates a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), &service.CustomerInput{
		OutletID: GetOutletID(c),
		Name:     req.Name,
		Mobile:   req.Mobile,
		Email:    req.Email,
		Address:  req.Address,
		GSTIN:    req.GSTIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Customer created", customer)
}

// Update updates an existing customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, &service.CustomerInput{
		OutletID: GetOutletID(c),
		Name:     req.Name,
		Mobile:   req.Mobile,
		Email:    req.Email,
		Address:  req.Address,
		GSTIN:    req.GSTIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated", customer)
}

// Delete removes a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer deleted", nil)
}
