package finance

import (
	"context"

	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoyaltyRepository defines persistence operations for royalties
type RoyaltyRepository interface {
	// CreateIfAbsent inserts the royalty unless one already exists for the
	// same (order, work, author). Returns true when a row was inserted.
	CreateIfAbsent(ctx context.Context, royalty *Royalty) (bool, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID, filter shared.Filter) ([]Royalty, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Royalty, error)
	SumUnpaidByAuthor(ctx context.Context, authorID uuid.UUID) (decimal.Decimal, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PartnerRebateRepository defines persistence operations for partner rebates
type PartnerRebateRepository interface {
	// CreateIfAbsent inserts the rebate unless one already exists for the
	// same (order, partner). Returns true when a row was inserted.
	CreateIfAbsent(ctx context.Context, rebate *PartnerRebate) (bool, error)
	FindByPartner(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]PartnerRebate, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PartnerRebate, error)
	SumUnpaidByPartner(ctx context.Context, partnerID uuid.UUID) (decimal.Decimal, error)
	Save(ctx context.Context, rebate *PartnerRebate) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// RebateRateRepository defines persistence operations for configured rates
type RebateRateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RebateRate, error)
	// FindActiveByScope returns active rates for the scope, optionally
	// narrowed to a reference id (partner, author or work depending on the
	// scope), newest first
	FindActiveByScope(ctx context.Context, scope RateScope, refID *uuid.UUID) ([]RebateRate, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]RebateRate, error)
	Save(ctx context.Context, rate *RebateRate) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// WithdrawalRepository defines persistence operations for withdrawals
type WithdrawalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Withdrawal, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Withdrawal, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Withdrawal, error)
	Save(ctx context.Context, withdrawal *Withdrawal) error
	// SumActiveByUser totals the user's withdrawals that are pending,
	// approved or already paid, used for balance checks
	SumActiveByUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
