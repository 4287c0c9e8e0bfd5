package finance

import (
	"time"

	"github.com/edipub/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// RoyaltyResponse is the API representation of a royalty
type RoyaltyResponse struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	WorkID    string          `json:"work_id"`
	WorkTitle string          `json:"work_title,omitempty"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Rate      decimal.Decimal `json:"rate"`
	Paid      bool            `json:"paid"`
	CreatedAt time.Time       `json:"created_at"`
}

// RoyaltySummary aggregates an author's royalties
type RoyaltySummary struct {
	Royalties   []RoyaltyResponse `json:"royalties"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	UnpaidTotal decimal.Decimal   `json:"unpaid_total"`
}

// RebateResponse is the API representation of a partner rebate
type RebateResponse struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	PartnerID string          `json:"partner_id"`
	Amount    decimal.Decimal `json:"amount"`
	Rate      decimal.Decimal `json:"rate"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// RateRequest is the input for creating or updating a rebate rate
type RateRequest struct {
	Scope     string          `json:"scope" binding:"required,oneof=GLOBAL PARTNER AUTHOR WORK"`
	Rate      decimal.Decimal `json:"rate" binding:"required"`
	PartnerID *string         `json:"partner_id" binding:"omitempty,uuid"`
	UserID    *string         `json:"user_id" binding:"omitempty,uuid"`
	WorkID    *string         `json:"work_id" binding:"omitempty,uuid"`
	IsActive  *bool           `json:"is_active"`
	StartDate *time.Time      `json:"start_date"`
	EndDate   *time.Time      `json:"end_date"`
}

// RateResponse is the API representation of a rebate rate
type RateResponse struct {
	ID        string          `json:"id"`
	Scope     string          `json:"scope"`
	Rate      decimal.Decimal `json:"rate"`
	PartnerID string          `json:"partner_id,omitempty"`
	UserID    string          `json:"user_id,omitempty"`
	WorkID    string          `json:"work_id,omitempty"`
	IsActive  bool            `json:"is_active"`
	StartDate *time.Time      `json:"start_date,omitempty"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// WithdrawalRequest is the input for a payout request
type WithdrawalRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required"`
	PhoneNumber string          `json:"phone_number"`
	Notes       string          `json:"notes"`
}

// WithdrawalResponse is the API representation of a withdrawal
type WithdrawalResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Method      string          `json:"method,omitempty"`
	PhoneNumber string          `json:"phone_number,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToRoyaltyResponse converts a domain royalty
func ToRoyaltyResponse(r *finance.Royalty) RoyaltyResponse {
	resp := RoyaltyResponse{
		ID:        r.ID.String(),
		OrderID:   r.OrderID.String(),
		WorkID:    r.WorkID.String(),
		UserID:    r.UserID.String(),
		Amount:    r.Amount,
		Rate:      r.Rate,
		Paid:      r.Paid,
		CreatedAt: r.CreatedAt,
	}
	if r.Work != nil {
		resp.WorkTitle = r.Work.Title
	}
	return resp
}

// ToRebateResponse converts a domain partner rebate
func ToRebateResponse(r *finance.PartnerRebate) RebateResponse {
	return RebateResponse{
		ID:        r.ID.String(),
		OrderID:   r.OrderID.String(),
		PartnerID: r.PartnerID.String(),
		Amount:    r.Amount,
		Rate:      r.Rate,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

// ToRateResponse converts a domain rebate rate
func ToRateResponse(r *finance.RebateRate) RateResponse {
	resp := RateResponse{
		ID:        r.ID.String(),
		Scope:     string(r.Scope),
		Rate:      r.Rate,
		IsActive:  r.IsActive,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		CreatedAt: r.CreatedAt,
	}
	if r.PartnerID != nil {
		resp.PartnerID = r.PartnerID.String()
	}
	if r.UserID != nil {
		resp.UserID = r.UserID.String()
	}
	if r.WorkID != nil {
		resp.WorkID = r.WorkID.String()
	}
	return resp
}

// ToWithdrawalResponse converts a domain withdrawal
func ToWithdrawalResponse(w *finance.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:          w.ID.String(),
		UserID:      w.UserID.String(),
		Amount:      w.Amount,
		Status:      string(w.Status),
		Method:      w.Method,
		PhoneNumber: w.PhoneNumber,
		Notes:       w.Notes,
		ProcessedAt: w.ProcessedAt,
		CreatedAt:   w.CreatedAt,
	}
}
