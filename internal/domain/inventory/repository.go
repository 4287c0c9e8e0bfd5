package inventory

import (
	"context"

	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockMovementRepository defines persistence operations for the stock
// ledger. Movements are append-only; there is no update or delete.
type StockMovementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockMovement, error)
	Save(ctx context.Context, movement *StockMovement) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
