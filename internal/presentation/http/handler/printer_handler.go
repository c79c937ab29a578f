package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/restroworks/restropos-api/internal/application/service"
	"github.com/restroworks/restropos-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer status and test HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Status returns the connection state of the kitchen and counter printers
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status", h.printerService.Status())
}

// Test sends a test page to both printers
func (h *PrinterHandler) Test(c *gin.Context) {
	if err := h.printerService.TestPrint(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Test page sent", nil)
}
