package finance

import (
	"context"
	"testing"

	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/finance"
	"github.com/edipub/backend/internal/domain/order"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type settlementFixture struct {
	service   *SettlementService
	orders    *memOrderRepo
	royalties *memRoyaltyRepo
	rebates   *memRebateRepo
	rates     *memRateRepo
}

func newSettlementFixture(t *testing.T, orders ...*order.Order) *settlementFixture {
	t.Helper()
	f := &settlementFixture{
		orders:    newMemOrderRepo(orders...),
		royalties: newMemRoyaltyRepo(),
		rebates:   newMemRebateRepo(),
		rates:     &memRateRepo{},
	}
	f.service = NewSettlementService(
		f.orders, f.royalties, f.rebates,
		NewRateResolver(f.rates), TotalOverSubtotal{}, zap.NewNop())
	return f
}

// validatedOrder builds a validated order with one line of the given work
func validatedOrder(t *testing.T, work *catalog.Work, quantity int, partnerID *uuid.UUID) *order.Order {
	t.Helper()
	o := order.NewOrder(uuid.New())
	o.PartnerID = partnerID
	require.NoError(t, o.AddItem(work.ID, quantity, work.Price, work.Price, false))
	o.Items[0].Work = work
	o.RecalculateTotals()
	o.MarkValidated(uuid.New())
	return o
}

func authoredWork(t *testing.T, price int64) *catalog.Work {
	t.Helper()
	w, err := catalog.NewWork("Une Vie de Boy", decimal.NewFromInt(price))
	require.NoError(t, err)
	w.TVARate = decimal.Zero
	authorID := uuid.New()
	w.AuthorID = &authorID
	return w
}

func TestSettlementService_SettleOrder(t *testing.T) {
	t.Run("applies the default rates", func(t *testing.T) {
		work := authoredWork(t, 5000)
		partnerID := uuid.New()
		o := validatedOrder(t, work, 2, &partnerID)
		f := newSettlementFixture(t, o)

		require.NoError(t, f.service.SettleOrder(context.Background(), o.ID))

		rebate := f.rebates.rebates[rebateKey{o.ID, partnerID}]
		require.NotNil(t, rebate)
		assert.Equal(t, "1000", rebate.Amount.String())
		assert.Equal(t, "10", rebate.Rate.String())

		royalty := f.royalties.royalties[royaltyKey{o.ID, work.ID, *work.AuthorID}]
		require.NotNil(t, royalty)
		assert.Equal(t, "1500", royalty.Amount.String())
		assert.Equal(t, "15", royalty.Rate.String())
	})

	t.Run("work scoped rate beats the defaults", func(t *testing.T) {
		work := authoredWork(t, 5000)
		o := validatedOrder(t, work, 2, nil)
		f := newSettlementFixture(t, o)

		rate, err := finance.NewRebateRate(finance.RateScopeWork, decimal.NewFromInt(20))
		require.NoError(t, err)
		rate.WorkID = &work.ID
		require.NoError(t, f.rates.Save(context.Background(), rate))

		require.NoError(t, f.service.SettleOrder(context.Background(), o.ID))

		royalty := f.royalties.royalties[royaltyKey{o.ID, work.ID, *work.AuthorID}]
		require.NotNil(t, royalty)
		assert.Equal(t, "2000", royalty.Amount.String())
	})

	t.Run("work level percentage royalty wins over resolved rates", func(t *testing.T) {
		work := authoredWork(t, 5000)
		rate := decimal.NewFromInt(12)
		work.RoyaltyRate = &rate
		o := validatedOrder(t, work, 2, nil)
		f := newSettlementFixture(t, o)

		require.NoError(t, f.service.SettleOrder(context.Background(), o.ID))

		royalty := f.royalties.royalties[royaltyKey{o.ID, work.ID, *work.AuthorID}]
		require.NotNil(t, royalty)
		assert.Equal(t, "1200", royalty.Amount.String())
	})

	t.Run("fixed royalty pays per copy", func(t *testing.T) {
		work := authoredWork(t, 5000)
		rate := decimal.NewFromInt(500)
		work.RoyaltyRate = &rate
		work.RoyaltyType = catalog.RoyaltyTypeFixed
		o := validatedOrder(t, work, 3, nil)
		f := newSettlementFixture(t, o)

		require.NoError(t, f.service.SettleOrder(context.Background(), o.ID))

		royalty := f.royalties.royalties[royaltyKey{o.ID, work.ID, *work.AuthorID}]
		require.NotNil(t, royalty)
		assert.Equal(t, "1500", royalty.Amount.String())
	})

	t.Run("discount scales the royalty through the ratio", func(t *testing.T) {
		work := authoredWork(t, 5000)
		o := validatedOrder(t, work, 2, nil)
		o.Discount = decimal.NewFromInt(1000)
		o.RecalculateTotals()
		f := newSettlementFixture(t, o)

		require.NoError(t, f.service.SettleOrder(context.Background(), o.ID))

		// subtotal 10000, total 9000, ratio 0.9
		royalty := f.royalties.royalties[royaltyKey{o.ID, work.ID, *work.AuthorID}]
		require.NotNil(t, royalty)
		assert.Equal(t, "1350", royalty.Amount.String())
	})

	t.Run("no partner means no rebate", func(t *testing.T) {
		work := authoredWork(t, 5000)
		o := validatedOrder(t, work, 1, nil)
		f := newSettlementFixture(t, o)

		require.NoError(t, f.service.SettleOrder(context.Background(), o.ID))
		assert.Empty(t, f.rebates.rebates)
	})

	t.Run("items without an author are skipped", func(t *testing.T) {
		work, err := catalog.NewWork("Anonyme", decimal.NewFromInt(5000))
		require.NoError(t, err)
		o := validatedOrder(t, work, 1, nil)
		f := newSettlementFixture(t, o)

		require.NoError(t, f.service.SettleOrder(context.Background(), o.ID))
		assert.Empty(t, f.royalties.royalties)
	})

	t.Run("settling twice does not duplicate records", func(t *testing.T) {
		work := authoredWork(t, 5000)
		partnerID := uuid.New()
		o := validatedOrder(t, work, 2, &partnerID)
		f := newSettlementFixture(t, o)

		require.NoError(t, f.service.SettleOrder(context.Background(), o.ID))
		require.NoError(t, f.service.SettleOrder(context.Background(), o.ID))

		assert.Len(t, f.rebates.rebates, 1)
		assert.Len(t, f.royalties.royalties, 1)
	})

	t.Run("pending order cannot be settled", func(t *testing.T) {
		work := authoredWork(t, 5000)
		o := order.NewOrder(uuid.New())
		require.NoError(t, o.AddItem(work.ID, 1, work.Price, work.Price, false))
		o.RecalculateTotals()
		f := newSettlementFixture(t, o)

		err := f.service.SettleOrder(context.Background(), o.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("unknown order yields not found", func(t *testing.T) {
		f := newSettlementFixture(t)
		err := f.service.SettleOrder(context.Background(), uuid.New())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestRateResolver(t *testing.T) {
	t.Run("partner rate falls back to global then default", func(t *testing.T) {
		rates := &memRateRepo{}
		resolver := NewRateResolver(rates)
		partnerID := uuid.New()

		assert.Equal(t, finance.DefaultPartnerRate.String(),
			resolver.ResolvePartnerRate(context.Background(), partnerID).String())

		global, err := finance.NewRebateRate(finance.RateScopeGlobal, decimal.NewFromInt(8))
		require.NoError(t, err)
		require.NoError(t, rates.Save(context.Background(), global))
		assert.Equal(t, "8", resolver.ResolvePartnerRate(context.Background(), partnerID).String())

		specific, err := finance.NewRebateRate(finance.RateScopePartner, decimal.NewFromInt(18))
		require.NoError(t, err)
		specific.PartnerID = &partnerID
		require.NoError(t, rates.Save(context.Background(), specific))
		assert.Equal(t, "18", resolver.ResolvePartnerRate(context.Background(), partnerID).String())
	})

	t.Run("author hierarchy prefers work over author", func(t *testing.T) {
		rates := &memRateRepo{}
		resolver := NewRateResolver(rates)
		workID := uuid.New()
		authorID := uuid.New()

		assert.Equal(t, finance.DefaultAuthorRate.String(),
			resolver.ResolveAuthorRate(context.Background(), workID, authorID).String())

		authorRate, err := finance.NewRebateRate(finance.RateScopeAuthor, decimal.NewFromInt(17))
		require.NoError(t, err)
		authorRate.UserID = &authorID
		require.NoError(t, rates.Save(context.Background(), authorRate))
		assert.Equal(t, "17", resolver.ResolveAuthorRate(context.Background(), workID, authorID).String())

		workRate, err := finance.NewRebateRate(finance.RateScopeWork, decimal.NewFromInt(22))
		require.NoError(t, err)
		workRate.WorkID = &workID
		require.NoError(t, rates.Save(context.Background(), workRate))
		assert.Equal(t, "22", resolver.ResolveAuthorRate(context.Background(), workID, authorID).String())
	})
}
