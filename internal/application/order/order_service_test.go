package order

import (
	"context"
	"testing"

	appinv "github.com/edipub/backend/internal/application/inventory"
	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/identity"
	"github.com/edipub/backend/internal/domain/order"
	"github.com/edipub/backend/internal/domain/partner"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/edipub/backend/internal/infrastructure/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderServiceFixture struct {
	service   *OrderService
	orders    *memOrderRepo
	works     *memWorkRepo
	users     *memUserRepo
	partners  *memPartnerRepo
	notes     *memNoteRepo
	movements *memMovementRepo
	settler   *stubSettler
	notifier  *stubNotifier
}

func newOrderServiceFixture(t *testing.T, users []*identity.User, works []*catalog.Work, partners []*partner.Partner) *orderServiceFixture {
	t.Helper()
	f := &orderServiceFixture{
		orders:    newMemOrderRepo(),
		works:     newMemWorkRepo(works...),
		users:     newMemUserRepo(users...),
		partners:  newMemPartnerRepo(partners...),
		notes:     newMemNoteRepo(),
		movements: &memMovementRepo{},
		settler:   &stubSettler{},
		notifier:  &stubNotifier{},
	}
	scope := &appinv.NoOpTransactionScope{
		OrderRepo:        f.orders,
		WorkRepo:         f.works,
		DeliveryNoteRepo: f.notes,
		MovementRepo:     f.movements,
	}
	validation := NewValidationService(scope, f.settler, f.notifier, zap.NewNop())
	f.service = NewOrderService(
		f.orders, f.works, f.users, f.partners,
		pricing.DefaultClientTierPricing(), validation, f.notifier, zap.NewNop())
	return f
}

func testClient(t *testing.T, clientType string) *identity.User {
	t.Helper()
	u, err := identity.NewUser("Client Test", "client@example.com", "secret123", identity.RoleClient)
	require.NoError(t, err)
	u.ClientType = clientType
	return u
}

func TestOrderService_Create(t *testing.T) {
	t.Run("librairie pays the tier reference price", func(t *testing.T) {
		user := testClient(t, identity.ClientTypeLibrairie)
		work := sellableWork(t, "Une Vie de Boy", 100)
		f := newOrderServiceFixture(t, []*identity.User{user}, []*catalog.Work{work}, nil)

		resp, err := f.service.Create(context.Background(), user.ID, CreateOrderRequest{
			Items: []CreateOrderItemRequest{{WorkID: work.ID.String(), Quantity: 5}},
		})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, "4250", resp.Items[0].Price.String())
		assert.False(t, resp.Items[0].IsPriceOverride)
		assert.Equal(t, "21250", resp.Total.String())
	})

	t.Run("explicit price beyond the tolerance records an override", func(t *testing.T) {
		user := testClient(t, identity.ClientTypeParticulier)
		work := sellableWork(t, "Une Vie de Boy", 100)
		f := newOrderServiceFixture(t, []*identity.User{user}, []*catalog.Work{work}, nil)

		override := decimal.NewFromInt(4000)
		resp, err := f.service.Create(context.Background(), user.ID, CreateOrderRequest{
			Items: []CreateOrderItemRequest{{WorkID: work.ID.String(), Quantity: 1, Price: &override}},
		})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, "4000", resp.Items[0].Price.String())
		assert.Equal(t, "5000", resp.Items[0].OriginalPrice.String())
		assert.True(t, resp.Items[0].IsPriceOverride)
	})

	t.Run("price within the tolerance keeps the reference", func(t *testing.T) {
		user := testClient(t, identity.ClientTypeParticulier)
		work := sellableWork(t, "Une Vie de Boy", 100)
		f := newOrderServiceFixture(t, []*identity.User{user}, []*catalog.Work{work}, nil)

		almost := decimal.NewFromFloat(5000.005)
		resp, err := f.service.Create(context.Background(), user.ID, CreateOrderRequest{
			Items: []CreateOrderItemRequest{{WorkID: work.ID.String(), Quantity: 1, Price: &almost}},
		})
		require.NoError(t, err)

		assert.Equal(t, "5000", resp.Items[0].Price.String())
		assert.False(t, resp.Items[0].IsPriceOverride)
	})

	t.Run("tax applies each work's rate to the total", func(t *testing.T) {
		user := testClient(t, identity.ClientTypeParticulier)
		a, err := catalog.NewWork("Une Vie de Boy", decimal.NewFromInt(1000))
		require.NoError(t, err)
		a.Status = catalog.WorkStatusOnSale
		a.Stock = 10
		b, err := catalog.NewWork("Ville Cruelle", decimal.NewFromInt(500))
		require.NoError(t, err)
		b.Status = catalog.WorkStatusOnSale
		b.Stock = 10
		f := newOrderServiceFixture(t, []*identity.User{user}, []*catalog.Work{a, b}, nil)

		resp, err := f.service.Create(context.Background(), user.ID, CreateOrderRequest{
			Items: []CreateOrderItemRequest{
				{WorkID: a.ID.String(), Quantity: 3},
				{WorkID: b.ID.String(), Quantity: 2},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "4000", resp.Subtotal.String())
		assert.Equal(t, "720", resp.Tax.String())
		assert.Equal(t, "4720", resp.Total.String())
	})

	t.Run("order beyond available stock is rejected", func(t *testing.T) {
		user := testClient(t, identity.ClientTypeParticulier)
		work := sellableWork(t, "Une Vie de Boy", 1)
		f := newOrderServiceFixture(t, []*identity.User{user}, []*catalog.Work{work}, nil)

		_, err := f.service.Create(context.Background(), user.ID, CreateOrderRequest{
			Items: []CreateOrderItemRequest{{WorkID: work.ID.String(), Quantity: 50}},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Empty(t, f.orders.orders)
	})

	t.Run("grossiste below the minimum quantity is rejected", func(t *testing.T) {
		user := testClient(t, identity.ClientTypeGrossiste)
		work := sellableWork(t, "Une Vie de Boy", 100)
		f := newOrderServiceFixture(t, []*identity.User{user}, []*catalog.Work{work}, nil)

		_, err := f.service.Create(context.Background(), user.ID, CreateOrderRequest{
			Items: []CreateOrderItemRequest{{WorkID: work.ID.String(), Quantity: 9}},
		})
		assert.Error(t, err)
	})

	t.Run("draft work is not sellable", func(t *testing.T) {
		user := testClient(t, identity.ClientTypeParticulier)
		work, err := catalog.NewWork("Brouillon", decimal.NewFromInt(5000))
		require.NoError(t, err)
		f := newOrderServiceFixture(t, []*identity.User{user}, []*catalog.Work{work}, nil)

		_, err = f.service.Create(context.Background(), user.ID, CreateOrderRequest{
			Items: []CreateOrderItemRequest{{WorkID: work.ID.String(), Quantity: 1}},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("unknown partner is rejected", func(t *testing.T) {
		user := testClient(t, identity.ClientTypeParticulier)
		work := sellableWork(t, "Une Vie de Boy", 100)
		f := newOrderServiceFixture(t, []*identity.User{user}, []*catalog.Work{work}, nil)

		missing := uuid.New().String()
		_, err := f.service.Create(context.Background(), user.ID, CreateOrderRequest{
			Items:     []CreateOrderItemRequest{{WorkID: work.ID.String(), Quantity: 1}},
			PartnerID: &missing,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("delivery details are kept on the order", func(t *testing.T) {
		user := testClient(t, identity.ClientTypeParticulier)
		work := sellableWork(t, "Une Vie de Boy", 100)
		f := newOrderServiceFixture(t, []*identity.User{user}, []*catalog.Work{work}, nil)

		resp, err := f.service.Create(context.Background(), user.ID, CreateOrderRequest{
			Items:            []CreateOrderItemRequest{{WorkID: work.ID.String(), Quantity: 1}},
			DeliveryAddress:  "Quartier Louis, Libreville",
			DeliveryTimeFrom: "09:00",
			DeliveryTimeTo:   "12:00",
		})
		require.NoError(t, err)

		stored := f.orders.orders[uuid.MustParse(resp.ID)]
		require.NotNil(t, stored.PaymentReference)
		assert.Equal(t, "Quartier Louis, Libreville", stored.PaymentReference.Address)
	})
}

func TestOrderService_Update(t *testing.T) {
	t.Run("setting status validated runs the validation workflow", func(t *testing.T) {
		user := testClient(t, identity.ClientTypeParticulier)
		staff, err := identity.NewUser("Gestionnaire", "staff@example.com", "secret123", identity.RoleRepresentant)
		require.NoError(t, err)
		work := sellableWork(t, "Une Vie de Boy", 10)
		f := newOrderServiceFixture(t, []*identity.User{user, staff}, []*catalog.Work{work}, nil)
		o := pendingOrder(t, order.OrderItem{WorkID: work.ID, Quantity: 3, Price: decimal.NewFromInt(5000)})
		require.NoError(t, f.orders.Save(context.Background(), o))

		validated := string(order.OrderStatusValidated)
		resp, err := f.service.Update(context.Background(), o.ID, staff.ID, UpdateOrderRequest{Status: &validated})
		require.NoError(t, err)

		assert.Equal(t, string(order.OrderStatusValidated), resp.Status)
		assert.Equal(t, 7, work.Stock)
		require.Len(t, f.movements.movements, 1)
		assert.Equal(t, []uuid.UUID{o.ID}, f.settler.calls)

		note := f.notes.notes[o.ID]
		require.NotNil(t, note)
		assert.Equal(t, staff.ID, note.GeneratedBy)
	})

	t.Run("discount update recalculates totals", func(t *testing.T) {
		user := testClient(t, identity.ClientTypeParticulier)
		work := sellableWork(t, "Une Vie de Boy", 100)
		f := newOrderServiceFixture(t, []*identity.User{user}, []*catalog.Work{work}, nil)
		o := pendingOrder(t, order.OrderItem{WorkID: work.ID, Quantity: 2, Price: decimal.NewFromInt(5000)})
		require.NoError(t, f.orders.Save(context.Background(), o))

		discount := decimal.NewFromInt(1000)
		resp, err := f.service.Update(context.Background(), o.ID, uuid.New(), UpdateOrderRequest{Discount: &discount})
		require.NoError(t, err)
		assert.Equal(t, "9000", resp.Total.String())
	})
}

func TestOrderService_Cancel(t *testing.T) {
	t.Run("owner cancels and a notification goes out", func(t *testing.T) {
		user := testClient(t, identity.ClientTypeParticulier)
		work := sellableWork(t, "Une Vie de Boy", 100)
		f := newOrderServiceFixture(t, []*identity.User{user}, []*catalog.Work{work}, nil)
		o := order.NewOrder(user.ID)
		require.NoError(t, o.AddItem(work.ID, 1, decimal.NewFromInt(5000), decimal.NewFromInt(5000), false))
		require.NoError(t, f.orders.Save(context.Background(), o))

		resp, err := f.service.Cancel(context.Background(), user, o.ID)
		require.NoError(t, err)
		assert.Equal(t, string(order.OrderStatusCancelled), resp.Status)
		assert.Equal(t, []uuid.UUID{o.ID}, f.notifier.cancelled)
	})

	t.Run("non-staff actor cannot touch another user's order", func(t *testing.T) {
		owner := testClient(t, identity.ClientTypeParticulier)
		stranger, err := identity.NewUser("Autre Client", "autre@example.com", "secret123", identity.RoleClient)
		require.NoError(t, err)
		work := sellableWork(t, "Une Vie de Boy", 100)
		f := newOrderServiceFixture(t, []*identity.User{owner, stranger}, []*catalog.Work{work}, nil)
		o := order.NewOrder(owner.ID)
		require.NoError(t, o.AddItem(work.ID, 1, decimal.NewFromInt(5000), decimal.NewFromInt(5000), false))
		require.NoError(t, f.orders.Save(context.Background(), o))

		_, err = f.service.Cancel(context.Background(), stranger, o.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("staff can reach any order", func(t *testing.T) {
		owner := testClient(t, identity.ClientTypeParticulier)
		staff, err := identity.NewUser("Gestionnaire", "staff@example.com", "secret123", identity.RoleRepresentant)
		require.NoError(t, err)
		work := sellableWork(t, "Une Vie de Boy", 100)
		f := newOrderServiceFixture(t, []*identity.User{owner, staff}, []*catalog.Work{work}, nil)
		o := order.NewOrder(owner.ID)
		require.NoError(t, o.AddItem(work.ID, 1, decimal.NewFromInt(5000), decimal.NewFromInt(5000), false))
		require.NoError(t, f.orders.Save(context.Background(), o))

		_, err = f.service.Cancel(context.Background(), staff, o.ID)
		assert.NoError(t, err)
	})
}

func TestOrderService_SubmitPaymentProof(t *testing.T) {
	user := testClient(t, identity.ClientTypeParticulier)
	work := sellableWork(t, "Une Vie de Boy", 100)
	f := newOrderServiceFixture(t, []*identity.User{user}, []*catalog.Work{work}, nil)
	o := order.NewOrder(user.ID)
	require.NoError(t, o.AddItem(work.ID, 1, decimal.NewFromInt(5000), decimal.NewFromInt(5000), false))
	require.NoError(t, f.orders.Save(context.Background(), o))

	_, err := f.service.SubmitPaymentProof(context.Background(), user, o.ID, SubmitPaymentProofRequest{
		TransactionID: "TX-99",
		PaymentPhone:  "074000000",
	})
	require.NoError(t, err)

	stored := f.orders.orders[o.ID]
	require.NotNil(t, stored.PaymentReference)
	assert.Equal(t, "TX-99", stored.PaymentReference.TransactionID)
}
