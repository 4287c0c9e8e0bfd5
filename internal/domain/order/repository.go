package order

import (
	"context"

	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	// FindByID fetches an order with its items, the item works, the user
	// and the partner expanded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	// Delete removes an order and its items
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindValidatedWithoutDeliveryNote lists validated orders missing a
	// delivery note, used by the backfill operation
	FindValidatedWithoutDeliveryNote(ctx context.Context) ([]Order, error)
	// CountByStatus returns the number of orders per status
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)
	// RevenueTotal sums order totals, excluding cancelled orders
	RevenueTotal(ctx context.Context) (float64, error)
}

// DeliveryNoteRepository defines persistence operations for delivery notes
// and their year-scoped reference sequence
type DeliveryNoteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryNote, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*DeliveryNote, error)
	FindByReference(ctx context.Context, reference string) (*DeliveryNote, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]DeliveryNote, error)
	Save(ctx context.Context, note *DeliveryNote) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// NextReference atomically reserves the next sequence number for the
	// year and returns the formatted reference. Must be called inside the
	// transaction that inserts the note.
	NextReference(ctx context.Context, year int) (string, error)
}
