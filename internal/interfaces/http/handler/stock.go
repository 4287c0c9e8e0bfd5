package handler

import (
	inventoryapp "github.com/edipub/backend/internal/application/inventory"
	"github.com/edipub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// StockHandler handles stock movement endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// RegisterRoutes registers stock routes. The ledger is staff territory.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock", middleware.RequireStaff())
	stock.POST("/movements", h.CreateMovement)
	stock.GET("/movements", h.ListMovements)
}

// CreateMovement records a manual stock movement
func (h *StockHandler) CreateMovement(c *gin.Context) {
	performedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req inventoryapp.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	resp, err := h.stockService.CreateMovement(c.Request.Context(), performedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListMovements returns the movement history
func (h *StockHandler) ListMovements(c *gin.Context) {
	filter := listFilter(c, "work_id", "type", "reference", "partner_id", "date_from", "date_to")
	movements, total, err := h.stockService.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}
