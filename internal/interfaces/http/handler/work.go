package handler

import (
	catalogapp "github.com/edipub/backend/internal/application/catalog"
	"github.com/edipub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// WorkHandler handles catalog endpoints
type WorkHandler struct {
	BaseHandler
	workService *catalogapp.WorkService
}

// NewWorkHandler creates a new WorkHandler
func NewWorkHandler(workService *catalogapp.WorkService) *WorkHandler {
	return &WorkHandler{workService: workService}
}

// RegisterRoutes registers catalog routes. Reads are open to every
// authenticated user; writes are staff-only.
func (h *WorkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	works := rg.Group("/works")
	works.GET("", h.List)
	works.GET("/low-stock", middleware.RequireStaff(), h.ListLowStock)
	works.GET("/:id", h.Get)
	works.POST("", middleware.RequireStaff(), h.Create)
	works.PUT("/:id", middleware.RequireStaff(), h.Update)
	works.DELETE("/:id", middleware.RequireStaff(), h.Delete)
}

// List returns works matching the filter
func (h *WorkHandler) List(c *gin.Context) {
	filter := listFilter(c, "status", "author_id")
	page, err := h.workService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListLowStock returns works at or below their minimum stock
func (h *WorkHandler) ListLowStock(c *gin.Context) {
	works, err := h.workService.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, works)
}

// Get returns a single work
func (h *WorkHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid work ID")
		return
	}
	resp, err := h.workService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create adds a work to the catalog
func (h *WorkHandler) Create(c *gin.Context) {
	var req catalogapp.CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	resp, err := h.workService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update modifies a work
func (h *WorkHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid work ID")
		return
	}
	var req catalogapp.UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	resp, err := h.workService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a work
func (h *WorkHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid work ID")
		return
	}
	if err := h.workService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
