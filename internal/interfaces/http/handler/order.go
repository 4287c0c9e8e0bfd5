package handler

import (
	orderapp "github.com/edipub/backend/internal/application/order"
	"github.com/edipub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	orderService      *orderapp.OrderService
	validationService *orderapp.ValidationService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService, validationService *orderapp.ValidationService) *OrderHandler {
	return &OrderHandler{
		orderService:      orderService,
		validationService: validationService,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/:id", h.Get)
	orders.PUT("/:id", middleware.RequireStaff(), h.Update)
	orders.DELETE("/:id", middleware.RequireStaff(), h.Delete)
	orders.POST("/:id/validate", middleware.RequireStaff(), h.Validate)
	orders.POST("/:id/cancel", h.Cancel)
	orders.POST("/:id/payment-proof", h.SubmitPaymentProof)
	orders.POST("/:id/confirm-reception", h.ConfirmReception)
}

// Create creates a pending order for the authenticated user
func (h *OrderHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	resp, err := h.orderService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns orders visible to the actor
func (h *OrderHandler) List(c *gin.Context) {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	filter := listFilter(c, "status", "payment_status", "delivery_status", "user_id", "partner_id", "date_from", "date_to")
	orders, total, err := h.orderService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Get returns an order if the actor may see it
func (h *OrderHandler) Get(c *gin.Context) {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	resp, err := h.orderService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies a partial update to an order. A status transition to
// VALIDATED runs the validation workflow.
func (h *OrderHandler) Update(c *gin.Context) {
	updatedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	var req orderapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	resp, err := h.orderService.Update(c.Request.Context(), id, updatedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes an order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Validate runs the order validation workflow. The update fields of the
// body are applied inside the validation transaction.
func (h *OrderHandler) Validate(c *gin.Context) {
	validatedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	var req orderapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		middleware.HandleValidationError(c, err)
		return
	}
	result, err := h.validationService.Validate(c.Request.Context(), id, validatedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel cancels a pending order
func (h *OrderHandler) Cancel(c *gin.Context) {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	resp, err := h.orderService.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SubmitPaymentProof attaches payment evidence to an order
func (h *OrderHandler) SubmitPaymentProof(c *gin.Context) {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	var req orderapp.SubmitPaymentProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	resp, err := h.orderService.SubmitPaymentProof(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ConfirmReception records the client's reception of a delivered order
func (h *OrderHandler) ConfirmReception(c *gin.Context) {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	resp, err := h.orderService.ConfirmReception(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
