package finance

import (
	"context"
	"time"

	"github.com/edipub/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateResolver resolves the applicable commission rate following the
// scope hierarchy WORK > AUTHOR > PARTNER > GLOBAL, falling back to the
// built-in defaults when no configured rate matches.
type RateResolver struct {
	rates finance.RebateRateRepository
}

// NewRateResolver creates a new rate resolver
func NewRateResolver(rates finance.RebateRateRepository) *RateResolver {
	return &RateResolver{rates: rates}
}

// ResolvePartnerRate returns the rebate rate for a partner
func (r *RateResolver) ResolvePartnerRate(ctx context.Context, partnerID uuid.UUID) decimal.Decimal {
	now := time.Now()
	if rate, ok := r.firstApplicable(ctx, finance.RateScopePartner, &partnerID, now); ok {
		return rate
	}
	if rate, ok := r.firstApplicable(ctx, finance.RateScopeGlobal, nil, now); ok {
		return rate
	}
	return finance.DefaultPartnerRate
}

// ResolveAuthorRate returns the royalty rate for an author on a work
func (r *RateResolver) ResolveAuthorRate(ctx context.Context, workID, authorID uuid.UUID) decimal.Decimal {
	now := time.Now()
	if rate, ok := r.firstApplicable(ctx, finance.RateScopeWork, &workID, now); ok {
		return rate
	}
	if rate, ok := r.firstApplicable(ctx, finance.RateScopeAuthor, &authorID, now); ok {
		return rate
	}
	if rate, ok := r.firstApplicable(ctx, finance.RateScopeGlobal, nil, now); ok {
		return rate
	}
	return finance.DefaultAuthorRate
}

// firstApplicable returns the newest active rate for the scope that is
// inside its validity window. Lookup failures fall through to the next
// level of the hierarchy rather than failing settlement.
func (r *RateResolver) firstApplicable(ctx context.Context, scope finance.RateScope, refID *uuid.UUID, at time.Time) (decimal.Decimal, bool) {
	rates, err := r.rates.FindActiveByScope(ctx, scope, refID)
	if err != nil {
		return decimal.Zero, false
	}
	for i := range rates {
		if rates[i].AppliesAt(at) {
			return rates[i].Rate, true
		}
	}
	return decimal.Zero, false
}
