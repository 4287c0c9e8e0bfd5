package inventory

import (
	"context"

	"github.com/edipub/backend/internal/domain/inventory"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockService handles manual stock movements and ledger queries.
// Movements that change counters run inside a transaction scope so the
// ledger entry and the counter update commit together.
type StockService struct {
	scope     TransactionScope
	movements inventory.StockMovementRepository
	logger    *zap.Logger
}

// NewStockService creates a new stock service
func NewStockService(scope TransactionScope, movements inventory.StockMovementRepository, logger *zap.Logger) *StockService {
	return &StockService{
		scope:     scope,
		movements: movements,
		logger:    logger,
	}
}

// CreateMovement records a manual stock movement and applies it to the
// work's counters atomically
func (s *StockService) CreateMovement(ctx context.Context, performedBy uuid.UUID, req CreateMovementRequest) (*MovementResponse, error) {
	workID, err := uuid.Parse(req.WorkID)
	if err != nil {
		return nil, shared.NewInvalidInputError("invalid work id")
	}
	movementType := inventory.MovementType(req.Type)
	if !movementType.IsValid() {
		return nil, shared.NewInvalidInputError("unknown movement type: " + req.Type)
	}

	var partnerID *uuid.UUID
	if req.PartnerID != nil {
		id, err := uuid.Parse(*req.PartnerID)
		if err != nil {
			return nil, shared.NewInvalidInputError("invalid partner id")
		}
		partnerID = &id
	}

	var movement *inventory.StockMovement
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		work, err := repos.Works().FindByIDForUpdate(ctx, workID)
		if err != nil {
			return err
		}
		if work == nil {
			return shared.NewNotFoundError("work")
		}

		switch movementType {
		case inventory.MovementTypeInbound:
			if err := work.IncrementStock(req.Quantity); err != nil {
				return err
			}
			movement, err = inventory.NewInboundMovement(workID, req.Quantity, req.Reason, req.Source, performedBy, req.UnitPrice)
			if err != nil {
				return err
			}
		case inventory.MovementTypeOutbound:
			if err := work.DecrementStock(req.Quantity); err != nil {
				return err
			}
			movement, err = inventory.NewOutboundMovement(workID, req.Quantity, req.Reason, req.Reference, performedBy, partnerID, req.UnitPrice)
			if err != nil {
				return err
			}
			movement.Destination = req.Destination
		case inventory.MovementTypeAdjustment:
			if err := work.AdjustStock(req.Quantity); err != nil {
				return err
			}
			movement, err = inventory.NewAdjustmentMovement(workID, req.Quantity, req.Reason, performedBy)
			if err != nil {
				return err
			}
		}

		if err := repos.Works().Save(ctx, work); err != nil {
			return err
		}
		return repos.Movements().Save(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock movement recorded",
		zap.String("movement_id", movement.ID.String()),
		zap.String("work_id", workID.String()),
		zap.String("type", string(movementType)),
		zap.Int("quantity", movement.Quantity),
	)

	resp := ToMovementResponse(movement)
	return &resp, nil
}

// ListMovements returns the movement history matching the filter
func (s *StockService) ListMovements(ctx context.Context, filter shared.Filter) ([]MovementResponse, int64, error) {
	movements, err := s.movements.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.movements.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses, total, nil
}
