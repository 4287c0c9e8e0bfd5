package finance

import (
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RebateStatus tracks a partner rebate through payout
type RebateStatus string

const (
	RebateStatusPending  RebateStatus = "PENDING"
	RebateStatusApproved RebateStatus = "APPROVED"
	RebateStatusPaid     RebateStatus = "PAID"
)

// PartnerRebate is a partner's commission on a validated order. At most one
// rebate exists per (order, partner); settlement relies on a unique index
// to stay idempotent.
type PartnerRebate struct {
	shared.BaseEntity
	PartnerID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_rebate_order_partner" json:"partner_id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_rebate_order_partner" json:"order_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Rate      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rate"`
	Status    RebateStatus    `gorm:"size:32;not null;default:'PENDING';index" json:"status"`
}

// TableName returns the database table name
func (PartnerRebate) TableName() string {
	return "partner_rebates"
}

// NewPartnerRebate creates a rebate record for a partner on an order
func NewPartnerRebate(orderID, partnerID uuid.UUID, amount, rate decimal.Decimal) *PartnerRebate {
	return &PartnerRebate{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		PartnerID:  partnerID,
		Amount:     amount,
		Rate:       rate,
		Status:     RebateStatusPending,
	}
}

// Approve moves a pending rebate to approved
func (r *PartnerRebate) Approve() error {
	if r.Status != RebateStatusPending {
		return shared.NewInvalidStateError("only pending rebates can be approved")
	}
	r.Status = RebateStatusApproved
	r.Touch()
	return nil
}

// MarkPaid moves an approved rebate to paid
func (r *PartnerRebate) MarkPaid() error {
	if r.Status != RebateStatusApproved {
		return shared.NewInvalidStateError("only approved rebates can be paid")
	}
	r.Status = RebateStatusPaid
	r.Touch()
	return nil
}
