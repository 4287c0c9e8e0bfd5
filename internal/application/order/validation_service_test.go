package order

import (
	"context"
	"errors"
	"testing"
	"time"

	appinv "github.com/edipub/backend/internal/application/inventory"
	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/order"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type validationFixture struct {
	service   *ValidationService
	orders    *memOrderRepo
	works     *memWorkRepo
	notes     *memNoteRepo
	movements *memMovementRepo
	settler   *stubSettler
	notifier  *stubNotifier
}

func newValidationFixture(t *testing.T, works ...*catalog.Work) *validationFixture {
	t.Helper()
	f := &validationFixture{
		orders:    newMemOrderRepo(),
		works:     newMemWorkRepo(works...),
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
	f.service = NewValidationService(scope, f.settler, f.notifier, zap.NewNop())
	return f
}

func sellableWork(t *testing.T, title string, stock int) *catalog.Work {
	t.Helper()
	w, err := catalog.NewWork(title, decimal.NewFromInt(5000))
	require.NoError(t, err)
	w.Status = catalog.WorkStatusOnSale
	w.TVARate = decimal.Zero
	w.Stock = stock
	w.PhysicalStock = stock
	return w
}

func pendingOrder(t *testing.T, items ...order.OrderItem) *order.Order {
	t.Helper()
	o := order.NewOrder(uuid.New())
	for _, item := range items {
		require.NoError(t, o.AddItem(item.WorkID, item.Quantity, item.Price, item.Price, false))
	}
	o.RecalculateTotals()
	return o
}

func TestValidationService_Validate(t *testing.T) {
	validator := uuid.New()

	t.Run("validates and creates a delivery note", func(t *testing.T) {
		work := sellableWork(t, "Une Vie de Boy", 10)
		f := newValidationFixture(t, work)
		o := pendingOrder(t, order.OrderItem{WorkID: work.ID, Quantity: 3, Price: decimal.NewFromInt(5000)})
		require.NoError(t, f.orders.Save(context.Background(), o))

		result, err := f.service.Validate(context.Background(), o.ID, validator, UpdateOrderRequest{})
		require.NoError(t, err)

		year := order.DeliveryNoteYear(time.Now())
		assert.Equal(t, order.FormatDeliveryNoteReference(year, 1), result.DeliveryNoteReference)
		assert.True(t, result.DeliveryNoteCreated)
		assert.Equal(t, order.OrderStatusValidated, f.orders.orders[o.ID].Status)

		assert.Equal(t, 7, work.Stock)
		assert.Equal(t, 7, work.PhysicalStock)

		require.Len(t, f.movements.movements, 1)
		movement := f.movements.movements[0]
		assert.Equal(t, work.ID, movement.WorkID)
		assert.Equal(t, -3, movement.Quantity)
		assert.Equal(t, "Commande validée", movement.Reason)
		assert.Equal(t, result.DeliveryNoteReference, movement.Reference)

		assert.Equal(t, []uuid.UUID{o.ID}, f.settler.calls)
		assert.Equal(t, []string{result.DeliveryNoteReference}, f.notifier.validated)
	})

	t.Run("revalidation reuses the note and leaves stock alone", func(t *testing.T) {
		work := sellableWork(t, "Une Vie de Boy", 10)
		f := newValidationFixture(t, work)
		o := pendingOrder(t, order.OrderItem{WorkID: work.ID, Quantity: 3, Price: decimal.NewFromInt(5000)})
		require.NoError(t, f.orders.Save(context.Background(), o))

		first, err := f.service.Validate(context.Background(), o.ID, validator, UpdateOrderRequest{})
		require.NoError(t, err)

		second, err := f.service.Validate(context.Background(), o.ID, validator, UpdateOrderRequest{})
		require.NoError(t, err)

		assert.Equal(t, first.DeliveryNoteReference, second.DeliveryNoteReference)
		assert.False(t, second.DeliveryNoteCreated)
		assert.Equal(t, 7, work.Stock)
		assert.Len(t, f.movements.movements, 1)
	})

	t.Run("insufficient stock fails without touching counters", func(t *testing.T) {
		available := sellableWork(t, "Une Vie de Boy", 10)
		short := sellableWork(t, "Ville Cruelle", 1)
		f := newValidationFixture(t, available, short)
		o := pendingOrder(t,
			order.OrderItem{WorkID: available.ID, Quantity: 3, Price: decimal.NewFromInt(5000)},
			order.OrderItem{WorkID: short.ID, Quantity: 5, Price: decimal.NewFromInt(3000)},
		)
		require.NoError(t, f.orders.Save(context.Background(), o))

		_, err := f.service.Validate(context.Background(), o.ID, validator, UpdateOrderRequest{})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

		assert.Equal(t, 10, available.Stock)
		assert.Equal(t, 1, short.Stock)
		assert.Empty(t, f.movements.movements)
		assert.Empty(t, f.settler.calls)
		assert.Equal(t, order.OrderStatusPending, o.Status)
	})

	t.Run("cancelled order cannot be validated", func(t *testing.T) {
		work := sellableWork(t, "Une Vie de Boy", 10)
		f := newValidationFixture(t, work)
		o := pendingOrder(t, order.OrderItem{WorkID: work.ID, Quantity: 1, Price: decimal.NewFromInt(5000)})
		require.NoError(t, o.Cancel())
		require.NoError(t, f.orders.Save(context.Background(), o))

		_, err := f.service.Validate(context.Background(), o.ID, validator, UpdateOrderRequest{})
		assert.Error(t, err)
		assert.Empty(t, f.notes.notes)
	})

	t.Run("unknown order yields not found", func(t *testing.T) {
		f := newValidationFixture(t)

		_, err := f.service.Validate(context.Background(), uuid.New(), validator, UpdateOrderRequest{})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("settlement failure does not fail validation", func(t *testing.T) {
		work := sellableWork(t, "Une Vie de Boy", 10)
		f := newValidationFixture(t, work)
		f.settler.err = errors.New("settlement backend down")
		o := pendingOrder(t, order.OrderItem{WorkID: work.ID, Quantity: 1, Price: decimal.NewFromInt(5000)})
		require.NoError(t, f.orders.Save(context.Background(), o))

		result, err := f.service.Validate(context.Background(), o.ID, validator, UpdateOrderRequest{})
		require.NoError(t, err)
		assert.True(t, result.DeliveryNoteCreated)
		assert.Len(t, f.settler.calls, 1)
		assert.Len(t, f.notifier.validated, 1)
	})

	t.Run("status from the update payload is ignored", func(t *testing.T) {
		work := sellableWork(t, "Une Vie de Boy", 10)
		f := newValidationFixture(t, work)
		o := pendingOrder(t, order.OrderItem{WorkID: work.ID, Quantity: 1, Price: decimal.NewFromInt(5000)})
		require.NoError(t, f.orders.Save(context.Background(), o))

		cancelled := string(order.OrderStatusCancelled)
		_, err := f.service.Validate(context.Background(), o.ID, validator, UpdateOrderRequest{Status: &cancelled})
		require.NoError(t, err)
		assert.Equal(t, order.OrderStatusValidated, o.Status)
	})

	t.Run("mobile money order with transaction id is auto settled", func(t *testing.T) {
		work := sellableWork(t, "Une Vie de Boy", 10)
		f := newValidationFixture(t, work)
		o := pendingOrder(t, order.OrderItem{WorkID: work.ID, Quantity: 2, Price: decimal.NewFromInt(5000)})
		o.PaymentMethod = "airtel-money-gabon"
		o.PaymentReference = &order.PaymentReference{TransactionID: "TX-42"}
		require.NoError(t, f.orders.Save(context.Background(), o))

		_, err := f.service.Validate(context.Background(), o.ID, validator, UpdateOrderRequest{})
		require.NoError(t, err)
		assert.Equal(t, order.PaymentStatusPaid, o.PaymentStatus)
		assert.True(t, o.RemainingAmount.IsZero())
	})
}

func TestValidationService_CreateMissingDeliveryNotes(t *testing.T) {
	t.Run("no validated orders without notes", func(t *testing.T) {
		f := newValidationFixture(t)

		created, err := f.service.CreateMissingDeliveryNotes(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Empty(t, created)
	})
}
