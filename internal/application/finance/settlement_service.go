package finance

import (
	"context"

	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/finance"
	"github.com/edipub/backend/internal/domain/order"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var oneHundred = decimal.NewFromInt(100)

// SettlementService computes partner rebates and author royalties for
// validated orders. It is idempotent: unique keys on (order, partner) and
// (order, work, author) make repeated settlement of the same order a
// no-op, so it doubles as the recalculation entry point.
type SettlementService struct {
	orders    order.OrderRepository
	royalties finance.RoyaltyRepository
	rebates   finance.PartnerRebateRepository
	resolver  *RateResolver
	base      CommissionBase
	logger    *zap.Logger
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	orders order.OrderRepository,
	royalties finance.RoyaltyRepository,
	rebates finance.PartnerRebateRepository,
	resolver *RateResolver,
	base CommissionBase,
	logger *zap.Logger,
) *SettlementService {
	return &SettlementService{
		orders:    orders,
		royalties: royalties,
		rebates:   rebates,
		resolver:  resolver,
		base:      base,
		logger:    logger,
	}
}

// SettleOrder computes and records the rebate and royalties of a
// validated order
func (s *SettlementService) SettleOrder(ctx context.Context, orderID uuid.UUID) error {
	ord, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return shared.NewNotFoundError("order")
	}
	if ord.Status != order.OrderStatusValidated {
		return shared.NewInvalidStateError("only validated orders can be settled")
	}

	ratio := s.base.Ratio(ord)

	if ord.PartnerID != nil {
		rate := s.resolver.ResolvePartnerRate(ctx, *ord.PartnerID)
		amount := ord.Total.Mul(rate).Div(oneHundred).Round(2)
		rebate := finance.NewPartnerRebate(ord.ID, *ord.PartnerID, amount, rate)
		inserted, err := s.rebates.CreateIfAbsent(ctx, rebate)
		if err != nil {
			return err
		}
		if inserted {
			s.logger.Info("partner rebate recorded",
				zap.String("order_id", ord.ID.String()),
				zap.String("partner_id", ord.PartnerID.String()),
				zap.String("amount", amount.String()),
			)
		}
	}

	for i := range ord.Items {
		item := &ord.Items[i]
		if item.Work == nil || item.Work.AuthorID == nil {
			continue
		}
		amount, rate := s.computeRoyalty(ctx, item, ratio)
		royalty := finance.NewRoyalty(ord.ID, item.WorkID, *item.Work.AuthorID, amount, rate)
		inserted, err := s.royalties.CreateIfAbsent(ctx, royalty)
		if err != nil {
			return err
		}
		if inserted {
			s.logger.Info("royalty recorded",
				zap.String("order_id", ord.ID.String()),
				zap.String("work_id", item.WorkID.String()),
				zap.String("author_id", item.Work.AuthorID.String()),
				zap.String("amount", amount.String()),
			)
		}
	}

	return nil
}

// computeRoyalty applies the work-level royalty configuration when set,
// otherwise the resolved rate hierarchy. Fixed royalties are per copy,
// scaled by the commission ratio; percentage royalties apply to the
// discounted sale amount.
func (s *SettlementService) computeRoyalty(ctx context.Context, item *order.OrderItem, ratio decimal.Decimal) (amount, rate decimal.Decimal) {
	work := item.Work
	saleAmount := item.LineTotal().Mul(ratio)

	if work.RoyaltyRate != nil {
		rate = *work.RoyaltyRate
		if work.RoyaltyType == catalog.RoyaltyTypeFixed {
			amount = rate.Mul(decimal.NewFromInt(int64(item.Quantity))).Mul(ratio)
		} else {
			amount = saleAmount.Mul(rate).Div(oneHundred)
		}
		return amount.Round(2), rate
	}

	rate = s.resolver.ResolveAuthorRate(ctx, item.WorkID, *work.AuthorID)
	amount = saleAmount.Mul(rate).Div(oneHundred)
	return amount.Round(2), rate
}
