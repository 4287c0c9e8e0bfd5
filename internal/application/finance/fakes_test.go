package finance

import (
	"context"

	"github.com/edipub/backend/internal/domain/finance"
	"github.com/edipub/backend/internal/domain/order"
	"github.com/edipub/backend/internal/domain/partner"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory fakes shared by the service tests in this package.

type memOrderRepo struct {
	orders map[uuid.UUID]*order.Order
}

func newMemOrderRepo(orders ...*order.Order) *memOrderRepo {
	r := &memOrderRepo{orders: make(map[uuid.UUID]*order.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	return r.orders[id], nil
}

func (r *memOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]order.Order, error) {
	var result []order.Order
	for _, o := range r.orders {
		result = append(result, *o)
	}
	return result, nil
}

func (r *memOrderRepo) Save(_ context.Context, o *order.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *memOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) FindValidatedWithoutDeliveryNote(_ context.Context) ([]order.Order, error) {
	return nil, nil
}

func (r *memOrderRepo) CountByStatus(_ context.Context) (map[order.OrderStatus]int64, error) {
	return nil, nil
}

func (r *memOrderRepo) RevenueTotal(_ context.Context) (float64, error) {
	return 0, nil
}

type royaltyKey struct {
	orderID uuid.UUID
	workID  uuid.UUID
	userID  uuid.UUID
}

type memRoyaltyRepo struct {
	royalties map[royaltyKey]*finance.Royalty
}

func newMemRoyaltyRepo() *memRoyaltyRepo {
	return &memRoyaltyRepo{royalties: make(map[royaltyKey]*finance.Royalty)}
}

func (r *memRoyaltyRepo) CreateIfAbsent(_ context.Context, royalty *finance.Royalty) (bool, error) {
	key := royaltyKey{royalty.OrderID, royalty.WorkID, royalty.UserID}
	if _, exists := r.royalties[key]; exists {
		return false, nil
	}
	r.royalties[key] = royalty
	return true, nil
}

func (r *memRoyaltyRepo) FindByAuthor(_ context.Context, authorID uuid.UUID, _ shared.Filter) ([]finance.Royalty, error) {
	var result []finance.Royalty
	for _, royalty := range r.royalties {
		if royalty.UserID == authorID {
			result = append(result, *royalty)
		}
	}
	return result, nil
}

func (r *memRoyaltyRepo) FindAll(_ context.Context, _ shared.Filter) ([]finance.Royalty, error) {
	var result []finance.Royalty
	for _, royalty := range r.royalties {
		result = append(result, *royalty)
	}
	return result, nil
}

func (r *memRoyaltyRepo) SumUnpaidByAuthor(_ context.Context, authorID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, royalty := range r.royalties {
		if royalty.UserID == authorID && !royalty.Paid {
			sum = sum.Add(royalty.Amount)
		}
	}
	return sum, nil
}

func (r *memRoyaltyRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.royalties)), nil
}

type rebateKey struct {
	orderID   uuid.UUID
	partnerID uuid.UUID
}

type memRebateRepo struct {
	rebates map[rebateKey]*finance.PartnerRebate
}

func newMemRebateRepo() *memRebateRepo {
	return &memRebateRepo{rebates: make(map[rebateKey]*finance.PartnerRebate)}
}

func (r *memRebateRepo) CreateIfAbsent(_ context.Context, rebate *finance.PartnerRebate) (bool, error) {
	key := rebateKey{rebate.OrderID, rebate.PartnerID}
	if _, exists := r.rebates[key]; exists {
		return false, nil
	}
	r.rebates[key] = rebate
	return true, nil
}

func (r *memRebateRepo) FindByPartner(_ context.Context, partnerID uuid.UUID, _ shared.Filter) ([]finance.PartnerRebate, error) {
	var result []finance.PartnerRebate
	for _, rebate := range r.rebates {
		if rebate.PartnerID == partnerID {
			result = append(result, *rebate)
		}
	}
	return result, nil
}

func (r *memRebateRepo) FindAll(_ context.Context, _ shared.Filter) ([]finance.PartnerRebate, error) {
	var result []finance.PartnerRebate
	for _, rebate := range r.rebates {
		result = append(result, *rebate)
	}
	return result, nil
}

func (r *memRebateRepo) SumUnpaidByPartner(_ context.Context, partnerID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, rebate := range r.rebates {
		if rebate.PartnerID == partnerID && rebate.Status != finance.RebateStatusPaid {
			sum = sum.Add(rebate.Amount)
		}
	}
	return sum, nil
}

func (r *memRebateRepo) Save(_ context.Context, rebate *finance.PartnerRebate) error {
	r.rebates[rebateKey{rebate.OrderID, rebate.PartnerID}] = rebate
	return nil
}

func (r *memRebateRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.rebates)), nil
}

type memRateRepo struct {
	rates []*finance.RebateRate
}

func (r *memRateRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.RebateRate, error) {
	for _, rate := range r.rates {
		if rate.ID == id {
			return rate, nil
		}
	}
	return nil, nil
}

func (r *memRateRepo) FindActiveByScope(_ context.Context, scope finance.RateScope, refID *uuid.UUID) ([]finance.RebateRate, error) {
	var result []finance.RebateRate
	for _, rate := range r.rates {
		if rate.Scope != scope || !rate.IsActive {
			continue
		}
		if refID != nil {
			var ref *uuid.UUID
			switch scope {
			case finance.RateScopePartner:
				ref = rate.PartnerID
			case finance.RateScopeAuthor:
				ref = rate.UserID
			case finance.RateScopeWork:
				ref = rate.WorkID
			}
			if ref == nil || *ref != *refID {
				continue
			}
		}
		result = append(result, *rate)
	}
	return result, nil
}

func (r *memRateRepo) FindAll(_ context.Context, _ shared.Filter) ([]finance.RebateRate, error) {
	var result []finance.RebateRate
	for _, rate := range r.rates {
		result = append(result, *rate)
	}
	return result, nil
}

func (r *memRateRepo) Save(_ context.Context, rate *finance.RebateRate) error {
	for i, existing := range r.rates {
		if existing.ID == rate.ID {
			r.rates[i] = rate
			return nil
		}
	}
	r.rates = append(r.rates, rate)
	return nil
}

func (r *memRateRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, rate := range r.rates {
		if rate.ID == id {
			r.rates = append(r.rates[:i], r.rates[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memRateRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.rates)), nil
}

type memWithdrawalRepo struct {
	withdrawals map[uuid.UUID]*finance.Withdrawal
}

func newMemWithdrawalRepo() *memWithdrawalRepo {
	return &memWithdrawalRepo{withdrawals: make(map[uuid.UUID]*finance.Withdrawal)}
}

func (r *memWithdrawalRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.Withdrawal, error) {
	return r.withdrawals[id], nil
}

func (r *memWithdrawalRepo) FindByUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]finance.Withdrawal, error) {
	var result []finance.Withdrawal
	for _, w := range r.withdrawals {
		if w.UserID == userID {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (r *memWithdrawalRepo) FindAll(_ context.Context, _ shared.Filter) ([]finance.Withdrawal, error) {
	var result []finance.Withdrawal
	for _, w := range r.withdrawals {
		result = append(result, *w)
	}
	return result, nil
}

func (r *memWithdrawalRepo) Save(_ context.Context, w *finance.Withdrawal) error {
	r.withdrawals[w.ID] = w
	return nil
}

func (r *memWithdrawalRepo) SumActiveByUser(_ context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, w := range r.withdrawals {
		if w.UserID != userID {
			continue
		}
		switch w.Status {
		case finance.WithdrawalStatusPending, finance.WithdrawalStatusApproved, finance.WithdrawalStatusPaid:
			sum = sum.Add(w.Amount)
		}
	}
	return sum, nil
}

func (r *memWithdrawalRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.withdrawals)), nil
}

type memPartnerRepo struct {
	partners map[uuid.UUID]*partner.Partner
}

func newMemPartnerRepo(partners ...*partner.Partner) *memPartnerRepo {
	r := &memPartnerRepo{partners: make(map[uuid.UUID]*partner.Partner)}
	for _, p := range partners {
		r.partners[p.ID] = p
	}
	return r
}

func (r *memPartnerRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Partner, error) {
	return r.partners[id], nil
}

func (r *memPartnerRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*partner.Partner, error) {
	for _, p := range r.partners {
		if p.UserID != nil && *p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPartnerRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Partner, error) {
	var result []partner.Partner
	for _, p := range r.partners {
		result = append(result, *p)
	}
	return result, nil
}

func (r *memPartnerRepo) Save(_ context.Context, p *partner.Partner) error {
	r.partners[p.ID] = p
	return nil
}

func (r *memPartnerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.partners, id)
	return nil
}

func (r *memPartnerRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.partners)), nil
}
