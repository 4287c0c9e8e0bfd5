package handler

import (
	orderapp "github.com/edipub/backend/internal/application/order"
	"github.com/edipub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DeliveryNoteHandler handles delivery note endpoints
type DeliveryNoteHandler struct {
	BaseHandler
	noteService       *orderapp.DeliveryNoteService
	validationService *orderapp.ValidationService
}

// NewDeliveryNoteHandler creates a new DeliveryNoteHandler
func NewDeliveryNoteHandler(noteService *orderapp.DeliveryNoteService, validationService *orderapp.ValidationService) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{
		noteService:       noteService,
		validationService: validationService,
	}
}

// RegisterRoutes registers delivery note routes
func (h *DeliveryNoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/delivery-notes", middleware.RequireStaff())
	notes.GET("", h.List)
	notes.GET("/:id", h.Get)
	notes.GET("/reference/:reference", h.GetByReference)
	notes.POST("/backfill", h.Backfill)
}

// List returns delivery notes matching the filter
func (h *DeliveryNoteHandler) List(c *gin.Context) {
	filter := listFilter(c, "order_id")
	notes, total, err := h.noteService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, notes, total, filter.Page, filter.PageSize)
}

// Get returns a delivery note by id
func (h *DeliveryNoteHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid delivery note ID")
		return
	}
	resp, err := h.noteService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByReference returns a delivery note by its BS reference
func (h *DeliveryNoteHandler) GetByReference(c *gin.Context) {
	resp, err := h.noteService.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Backfill creates delivery notes for validated orders that lack one
func (h *DeliveryNoteHandler) Backfill(c *gin.Context) {
	generatedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	created, err := h.validationService.CreateMissingDeliveryNotes(c.Request.Context(), generatedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"created": created, "count": len(created)})
}
