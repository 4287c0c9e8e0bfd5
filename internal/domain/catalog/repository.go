package catalog

import (
	"context"

	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WorkRepository defines persistence operations for works
type WorkRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Work, error)
	// FindByIDForUpdate fetches a work holding a row lock for the duration
	// of the surrounding transaction. Only meaningful when called through
	// a transaction scope.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Work, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Work, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Work, error)
	FindLowStock(ctx context.Context) ([]Work, error)
	Save(ctx context.Context, work *Work) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
