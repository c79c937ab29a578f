package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/restroworks/restropos-api/internal/application/service"
	"github.com/restroworks/restropos-api/internal/presentation/http/dto/request"
	"github.com/restroworks/restropos-api/internal/presentation/http/dto/response"
)

// MenuHandler handles menu item HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// List returns active menu items, optionally filtered by a search term
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.menuService.List(c.Request.Context(), GetOutletID(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu retrieved", items)
}

// GetByCode returns a menu item by its short code
func (h *MenuHandler) GetByCode(c *gin.Context) {
	item, err := h.menuService.GetByCode(c.Request.Context(), GetOutletID(c), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item retrieved", item)
}

// Create creates a new menu item
func (h *MenuHandler) Create(c *gin.Context) {
	var req request.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	item, err := h.menuService.Create(c.Request.Context(), &service.MenuItemInput{
		OutletID:  GetOutletID(c),
		ItemCode:  req.ItemCode,
		Name:      req.Name,
		ShortName: req.ShortName,
		Rate:      req.Rate,
		Kitchen:   req.Kitchen,
		IsActive:  isActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Menu item created", item)
}

// Update updates an existing menu item
func (h *MenuHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req request.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	item, err := h.menuService.Update(c.Request.Context(), uint(id), &service.MenuItemInput{
		OutletID:  GetOutletID(c),
		ItemCode:  req.ItemCode,
		Name:      req.Name,
		ShortName: req.ShortName,
		Rate:      req.Rate,
		Kitchen:   req.Kitchen,
		IsActive:  isActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item updated", item)
}

// Delete removes a menu item
func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	if err := h.menuService.Delete(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item deleted", nil)
}
