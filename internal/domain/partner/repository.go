package partner

import (
	"context"

	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerRepository defines persistence operations for partners
type PartnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Partner, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Partner, error)
	Save(ctx context.Context, p *Partner) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
