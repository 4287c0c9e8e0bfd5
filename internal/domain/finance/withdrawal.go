package finance

import (
	"time"

	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalStatus tracks a withdrawal request through processing
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "PENDING"
	WithdrawalStatusApproved WithdrawalStatus = "APPROVED"
	WithdrawalStatusRejected WithdrawalStatus = "REJECTED"
	WithdrawalStatusPaid     WithdrawalStatus = "PAID"
)

// Withdrawal is a payout request by an author or partner against their
// accumulated royalty or rebate balance.
type Withdrawal struct {
	shared.BaseEntity
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount      decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"amount"`
	Status      WithdrawalStatus `gorm:"size:32;not null;default:'PENDING';index" json:"status"`
	Method      string           `gorm:"size:64" json:"method,omitempty"`
	PhoneNumber string           `gorm:"size:32" json:"phone_number,omitempty"`
	Notes       string           `gorm:"size:512" json:"notes,omitempty"`
	ProcessedAt *time.Time       `json:"processed_at,omitempty"`
	ProcessedBy *uuid.UUID       `gorm:"type:uuid" json:"processed_by,omitempty"`
}

// TableName returns the database table name
func (Withdrawal) TableName() string {
	return "withdrawals"
}

// NewWithdrawal creates a pending withdrawal request
func NewWithdrawal(userID uuid.UUID, amount decimal.Decimal, method string) (*Withdrawal, error) {
	if !amount.IsPositive() {
		return nil, shared.NewInvalidInputError("withdrawal amount must be positive")
	}
	return &Withdrawal{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Amount:     amount,
		Method:     method,
		Status:     WithdrawalStatusPending,
	}, nil
}

func (w *Withdrawal) process(status WithdrawalStatus, by uuid.UUID) {
	now := time.Now()
	w.Status = status
	w.ProcessedAt = &now
	w.ProcessedBy = &by
	w.Touch()
}

// Approve moves a pending request to approved
func (w *Withdrawal) Approve(by uuid.UUID) error {
	if w.Status != WithdrawalStatusPending {
		return shared.NewInvalidStateError("only pending withdrawals can be approved")
	}
	w.process(WithdrawalStatusApproved, by)
	return nil
}

// Reject moves a pending request to rejected, keeping the reviewer's notes
func (w *Withdrawal) Reject(by uuid.UUID, reason string) error {
	if w.Status != WithdrawalStatusPending {
		return shared.NewInvalidStateError("only pending withdrawals can be rejected")
	}
	if reason != "" {
		w.Notes = reason
	}
	w.process(WithdrawalStatusRejected, by)
	return nil
}

// MarkPaid moves an approved request to paid
func (w *Withdrawal) MarkPaid(by uuid.UUID) error {
	if w.Status != WithdrawalStatusApproved {
		return shared.NewInvalidStateError("only approved withdrawals can be paid")
	}
	w.process(WithdrawalStatusPaid, by)
	return nil
}
