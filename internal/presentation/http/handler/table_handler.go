package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/restroworks/restropos-api/internal/application/service"
	"github.com/restroworks/restropos-api/internal/domain/enum"
	"github.com/restroworks/restropos-api/internal/presentation/http/dto/request"
	"github.com/restroworks/restropos-api/internal/presentation/http/dto/response"
)

// TableHandler handles table view HTTP requests
type TableHandler struct {
	tableService  *service.TableService
	outletService *service.OutletService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *service.TableService, outletService *service.OutletService) *TableHandler {
	return &TableHandler{tableService: tableService, outletService: outletService}
}

// List returns all tables with their derived display status
// @Summary List tables
// @Description Tables with status derived from the stored code and open bills
// @Tags tables
// @Produce json
// @Param departmentid query int false "Filter by department"
// @Success 200 {object} response.APIResponse
// @Router /tables [get]
func (h *TableHandler) List(c *gin.Context) {
	var departmentID *uint
	if raw := c.Query("departmentid"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid department ID")
			return
		}
		deptID := uint(id)
		departmentID = &deptID
	}

	views, err := h.tableService.ListWithStatus(c.Request.Context(), GetOutletID(c), departmentID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tables retrieved", views)
}

// UpdateStatus sets a table's raw status code
func (h *TableHandler) UpdateStatus(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	var req request.UpdateTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tableService.UpdateStatus(c.Request.Context(), uint(tableID), enum.TableStatus(*req.Status)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table status updated", nil)
}

// Create creates a new table
func (h *TableHandler) Create(c *gin.Context) {
	var req request.TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.tableService.Create(c.Request.Context(), &service.TableInput{
		OutletID:     GetOutletID(c),
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Capacity:     req.Capacity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Table created", table)
}

// Update updates an existing table
func (h *TableHandler) Update(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	var req request.TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.tableService.Update(c.Request.Context(), uint(tableID), &service.TableInput{
		OutletID:     GetOutletID(c),
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Capacity:     req.Capacity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table updated", table)
}

// Delete removes a table
func (h *TableHandler) Delete(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	if err := h.tableService.Delete(c.Request.Context(), uint(tableID)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table deleted", nil)
}

// ListDepartments returns the outlet's table departments
func (h *TableHandler) ListDepartments(c *gin.Context) {
	depts, err := h.outletService.ListDepartments(c.Request.Context(), GetOutletID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Departments retrieved", depts)
}
