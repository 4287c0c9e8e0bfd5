package catalog

import (
	"context"

	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WorkService manages the catalog of works
type WorkService struct {
	works  catalog.WorkRepository
	logger *zap.Logger
}

// NewWorkService creates a new work service
func NewWorkService(works catalog.WorkRepository, logger *zap.Logger) *WorkService {
	return &WorkService{works: works, logger: logger}
}

// Create adds a work to the catalog
func (s *WorkService) Create(ctx context.Context, req CreateWorkRequest) (*WorkResponse, error) {
	work, err := catalog.NewWork(req.Title, req.Price)
	if err != nil {
		return nil, err
	}
	work.ISBN = req.ISBN
	if req.TVARate != nil {
		work.TVARate = *req.TVARate
	}
	if req.Stock != nil {
		work.Stock = *req.Stock
		work.PhysicalStock = *req.Stock
	}
	if req.MinStock != nil {
		work.MinStock = *req.MinStock
	}
	if req.Status != nil {
		work.Status = catalog.WorkStatus(*req.Status)
	}
	if req.AuthorID != nil && *req.AuthorID != "" {
		authorID, err := uuid.Parse(*req.AuthorID)
		if err != nil {
			return nil, shared.NewInvalidInputError("invalid author id")
		}
		work.AuthorID = &authorID
	}
	if req.RoyaltyRate != nil {
		work.RoyaltyRate = req.RoyaltyRate
	}
	if req.RoyaltyType != nil {
		work.RoyaltyType = catalog.RoyaltyType(*req.RoyaltyType)
	}

	if err := s.works.Save(ctx, work); err != nil {
		return nil, err
	}
	s.logger.Info("work created",
		zap.String("work_id", work.ID.String()),
		zap.String("title", work.Title),
	)
	resp := ToWorkResponse(work)
	return &resp, nil
}

// Get returns a single work
func (s *WorkService) Get(ctx context.Context, id uuid.UUID) (*WorkResponse, error) {
	work, err := s.works.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if work == nil {
		return nil, shared.NewNotFoundError("work")
	}
	resp := ToWorkResponse(work)
	return &resp, nil
}

// List returns works matching the filter
func (s *WorkService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[WorkResponse], error) {
	works, err := s.works.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.works.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]WorkResponse, len(works))
	for i := range works {
		responses[i] = ToWorkResponse(&works[i])
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// ListLowStock returns works at or below their minimum stock
func (s *WorkService) ListLowStock(ctx context.Context) ([]WorkResponse, error) {
	works, err := s.works.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]WorkResponse, len(works))
	for i := range works {
		responses[i] = ToWorkResponse(&works[i])
	}
	return responses, nil
}

// Update modifies a work. Stock counters are not touched here; stock
// changes go through movements so the ledger stays complete.
func (s *WorkService) Update(ctx context.Context, id uuid.UUID, req UpdateWorkRequest) (*WorkResponse, error) {
	work, err := s.works.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if work == nil {
		return nil, shared.NewNotFoundError("work")
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, shared.NewInvalidInputError("title is required")
		}
		work.Title = *req.Title
	}
	if req.ISBN != nil {
		work.ISBN = *req.ISBN
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, shared.NewInvalidInputError("price cannot be negative")
		}
		work.Price = *req.Price
	}
	if req.TVARate != nil {
		work.TVARate = *req.TVARate
	}
	if req.MinStock != nil {
		work.MinStock = *req.MinStock
	}
	if req.Status != nil {
		work.Status = catalog.WorkStatus(*req.Status)
	}
	if req.AuthorID != nil {
		if *req.AuthorID == "" {
			work.AuthorID = nil
		} else {
			authorID, err := uuid.Parse(*req.AuthorID)
			if err != nil {
				return nil, shared.NewInvalidInputError("invalid author id")
			}
			work.AuthorID = &authorID
		}
	}
	if req.RoyaltyRate != nil {
		work.RoyaltyRate = req.RoyaltyRate
	}
	if req.RoyaltyType != nil {
		work.RoyaltyType = catalog.RoyaltyType(*req.RoyaltyType)
	}
	work.Touch()

	if err := s.works.Save(ctx, work); err != nil {
		return nil, err
	}
	resp := ToWorkResponse(work)
	return &resp, nil
}

// Delete removes a work from the catalog
func (s *WorkService) Delete(ctx context.Context, id uuid.UUID) error {
	work, err := s.works.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if work == nil {
		return shared.NewNotFoundError("work")
	}
	return s.works.Delete(ctx, id)
}
