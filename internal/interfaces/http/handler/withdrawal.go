package handler

import (
	"context"

	financeapp "github.com/edipub/backend/internal/application/finance"
	"github.com/edipub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WithdrawalHandler handles payout request endpoints
type WithdrawalHandler struct {
	BaseHandler
	withdrawalService *financeapp.WithdrawalService
}

// NewWithdrawalHandler creates a new WithdrawalHandler
func NewWithdrawalHandler(withdrawalService *financeapp.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalService: withdrawalService}
}

// RegisterRoutes registers withdrawal routes
func (h *WithdrawalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	withdrawals := rg.Group("/withdrawals")
	withdrawals.POST("", h.Request)
	withdrawals.GET("/me", h.ListMine)
	withdrawals.GET("/balance", h.Balance)
	withdrawals.GET("", middleware.RequireStaff(), h.List)
	withdrawals.POST("/:id/approve", middleware.RequireStaff(), h.Approve)
	withdrawals.POST("/:id/reject", middleware.RequireStaff(), h.Reject)
	withdrawals.POST("/:id/pay", middleware.RequireStaff(), h.MarkPaid)
}

// Request creates a pending withdrawal for the authenticated user
func (h *WithdrawalHandler) Request(c *gin.Context) {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req financeapp.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	resp, err := h.withdrawalService.Request(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListMine returns the authenticated user's withdrawal requests
func (h *WithdrawalHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	filter := listFilter(c, "status")
	withdrawals, err := h.withdrawalService.ListForUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, withdrawals)
}

// Balance returns the authenticated user's available balance
func (h *WithdrawalHandler) Balance(c *gin.Context) {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	available, err := h.withdrawalService.AvailableBalance(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"available": available, "currency": "XAF"})
}

// List returns all withdrawal requests
func (h *WithdrawalHandler) List(c *gin.Context) {
	filter := listFilter(c, "user_id", "status")
	withdrawals, total, err := h.withdrawalService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, withdrawals, total, filter.Page, filter.PageSize)
}

// Approve marks a pending withdrawal as approved
func (h *WithdrawalHandler) Approve(c *gin.Context) {
	h.transition(c, h.withdrawalService.Approve)
}

// MarkPaid marks an approved withdrawal as paid out
func (h *WithdrawalHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.withdrawalService.MarkPaid)
}

// Reject marks a pending withdrawal as rejected
func (h *WithdrawalHandler) Reject(c *gin.Context) {
	by, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid withdrawal ID")
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		middleware.HandleValidationError(c, err)
		return
	}
	resp, err := h.withdrawalService.Reject(c.Request.Context(), id, by, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *WithdrawalHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, id, by uuid.UUID) (*financeapp.WithdrawalResponse, error),
) {
	by, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid withdrawal ID")
		return
	}
	resp, err := fn(c.Request.Context(), id, by)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
