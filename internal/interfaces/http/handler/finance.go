package handler

import (
	financeapp "github.com/edipub/backend/internal/application/finance"
	"github.com/edipub/backend/internal/domain/identity"
	"github.com/edipub/backend/internal/domain/partner"
	"github.com/edipub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// FinanceHandler handles royalty, rebate and commission rate endpoints
type FinanceHandler struct {
	BaseHandler
	royaltyService    *financeapp.RoyaltyService
	rateService       *financeapp.RateService
	settlementService *financeapp.SettlementService
	partners          partner.PartnerRepository
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(
	royaltyService *financeapp.RoyaltyService,
	rateService *financeapp.RateService,
	settlementService *financeapp.SettlementService,
	partners partner.PartnerRepository,
) *FinanceHandler {
	return &FinanceHandler{
		royaltyService:    royaltyService,
		rateService:       rateService,
		settlementService: settlementService,
		partners:          partners,
	}
}

// RegisterRoutes registers finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	finance := rg.Group("/finance")
	finance.GET("/royalties/me", h.MyRoyalties)
	finance.GET("/royalties", middleware.RequireStaff(), h.ListRoyalties)
	finance.GET("/rebates", middleware.RequireStaff(), h.ListRebates)
	finance.GET("/rebates/me", h.MyRebates)
	finance.POST("/orders/:id/settle", middleware.RequireStaff(), h.SettleOrder)

	rates := finance.Group("/rates", middleware.RequireStaff())
	rates.POST("", h.CreateRate)
	rates.GET("", h.ListRates)
	rates.GET("/:id", h.GetRate)
	rates.PUT("/:id", h.UpdateRate)
	rates.DELETE("/:id", h.DeleteRate)
}

// MyRoyalties returns the authenticated author's royalty summary
func (h *FinanceHandler) MyRoyalties(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	filter := listFilter(c, "paid", "work_id")
	summary, err := h.royaltyService.AuthorSummary(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ListRoyalties returns all royalties matching the filter
func (h *FinanceHandler) ListRoyalties(c *gin.Context) {
	filter := listFilter(c, "user_id", "work_id", "order_id", "paid")
	royalties, total, err := h.royaltyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, royalties, total, filter.Page, filter.PageSize)
}

// ListRebates returns all partner rebates matching the filter
func (h *FinanceHandler) ListRebates(c *gin.Context) {
	filter := listFilter(c, "partner_id", "order_id", "status")
	rebates, total, err := h.royaltyService.ListRebates(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rebates, total, filter.Page, filter.PageSize)
}

// MyRebates returns the rebates of the partner linked to the
// authenticated account
func (h *FinanceHandler) MyRebates(c *gin.Context) {
	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	if actor.Role != identity.RolePartenaire {
		h.Forbidden(c, "Accès réservé aux partenaires")
		return
	}
	p, err := h.partners.FindByUserID(c.Request.Context(), actor.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if p == nil {
		h.Success(c, []financeapp.RebateResponse{})
		return
	}
	filter := listFilter(c, "status")
	rebates, err := h.royaltyService.PartnerRebates(c.Request.Context(), p.ID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rebates)
}

// SettleOrder recomputes the settlement of a validated order. Existing
// rebate and royalty rows are left untouched; only missing ones are added.
func (h *FinanceHandler) SettleOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	if err := h.settlementService.SettleOrder(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Règlement recalculé"})
}

// CreateRate records a new commission rate
func (h *FinanceHandler) CreateRate(c *gin.Context) {
	var req financeapp.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	resp, err := h.rateService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListRates returns configured commission rates
func (h *FinanceHandler) ListRates(c *gin.Context) {
	filter := listFilter(c, "scope", "is_active")
	rates, total, err := h.rateService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rates, total, filter.Page, filter.PageSize)
}

// GetRate returns a single commission rate
func (h *FinanceHandler) GetRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid rate ID")
		return
	}
	resp, err := h.rateService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateRate modifies a commission rate
func (h *FinanceHandler) UpdateRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid rate ID")
		return
	}
	var req financeapp.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	resp, err := h.rateService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteRate removes a commission rate
func (h *FinanceHandler) DeleteRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid rate ID")
		return
	}
	if err := h.rateService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
