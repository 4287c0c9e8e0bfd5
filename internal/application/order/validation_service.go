package order

import (
	"context"
	"sort"
	"time"

	appinv "github.com/edipub/backend/internal/application/inventory"
	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/inventory"
	"github.com/edipub/backend/internal/domain/order"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Settler runs the financial settlement of a validated order. Settlement
// is best-effort: the validation workflow logs failures and never rolls
// back on them.
type Settler interface {
	SettleOrder(ctx context.Context, orderID uuid.UUID) error
}

// ValidationService runs the order validation workflow: the atomic
// stock-check / delivery-note / stock-decrement transaction, followed by
// best-effort settlement and notification.
type ValidationService struct {
	scope      appinv.TransactionScope
	settlement Settler
	notifier   Notifier
	logger     *zap.Logger
}

// NewValidationService creates a new validation service
func NewValidationService(scope appinv.TransactionScope, settlement Settler, notifier Notifier, logger *zap.Logger) *ValidationService {
	return &ValidationService{
		scope:      scope,
		settlement: settlement,
		notifier:   notifier,
		logger:     logger,
	}
}

// Validate atomically validates an order. Inside one transaction it locks
// every item's work, re-checks stock all-or-nothing, applies the update
// fields and the validated status, applies the mobile money auto-settle
// rule, reuses or creates the delivery note, and decrements stock exactly
// once per order. After commit it triggers settlement and notification,
// neither of which can fail the request.
func (s *ValidationService) Validate(ctx context.Context, orderID, validatedBy uuid.UUID, req UpdateOrderRequest) (*ValidateOrderResult, error) {
	var (
		ord         *order.Order
		noteRef     string
		noteCreated bool
	)

	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		var err error
		ord, err = repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return shared.NewNotFoundError("order")
		}
		if err := ord.CanBeValidated(); err != nil {
			return err
		}

		// Lock work rows in a stable order so concurrent validations of
		// overlapping orders cannot deadlock.
		works, err := lockWorks(ctx, repos.Works(), ord)
		if err != nil {
			return err
		}

		// All-or-nothing availability check before any counter moves.
		for _, item := range ord.Items {
			work := works[item.WorkID]
			if !work.HasStock(item.Quantity) {
				return shared.NewInsufficientStockError(work.Title, work.Stock, item.Quantity)
			}
		}

		req.Status = nil
		applyOrderUpdate(ord, req)
		ord.MarkValidated(validatedBy)
		ord.AutoSettleMobileMoney()

		note, err := repos.DeliveryNotes().FindByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		if note == nil {
			year := order.DeliveryNoteYear(time.Now())
			ref, err := repos.DeliveryNotes().NextReference(ctx, year)
			if err != nil {
				return err
			}
			note = order.NewDeliveryNote(orderID, ref, validatedBy)
			if err := repos.DeliveryNotes().Save(ctx, note); err != nil {
				return err
			}
			noteCreated = true
		}
		noteRef = note.Reference

		// Stock moves only the first time a note is generated for the
		// order; revalidation reuses the note and leaves counters alone.
		if noteCreated {
			for _, item := range ord.Items {
				work := works[item.WorkID]
				if err := work.DecrementStock(item.Quantity); err != nil {
					return err
				}
				if err := repos.Works().Save(ctx, work); err != nil {
					return err
				}
				movement, err := inventory.NewOutboundMovement(
					work.ID, item.Quantity, "Commande validée", noteRef,
					validatedBy, ord.PartnerID, item.Price)
				if err != nil {
					return err
				}
				if err := repos.Movements().Save(ctx, movement); err != nil {
					return err
				}
			}
		}

		return repos.Orders().Save(ctx, ord)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order validated",
		zap.String("order_id", orderID.String()),
		zap.String("delivery_note", noteRef),
		zap.Bool("note_created", noteCreated),
	)

	if err := s.settlement.SettleOrder(ctx, orderID); err != nil {
		s.logger.Error("settlement failed after validation",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
	}
	s.notifier.OrderValidated(ctx, ord, noteRef)

	return &ValidateOrderResult{
		Order:                 ToOrderResponse(ord),
		DeliveryNoteReference: noteRef,
		DeliveryNoteCreated:   noteCreated,
	}, nil
}

// CreateMissingDeliveryNotes backfills delivery notes for validated orders
// that lack one. Stock is not touched; the backfill only repairs the
// paper trail. Returns the created references.
func (s *ValidationService) CreateMissingDeliveryNotes(ctx context.Context, generatedBy uuid.UUID) ([]string, error) {
	var created []string
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		orders, err := repos.Orders().FindValidatedWithoutDeliveryNote(ctx)
		if err != nil {
			return err
		}
		for i := range orders {
			ord := &orders[i]
			year := order.DeliveryNoteYear(time.Now())
			if ord.ValidatedAt != nil {
				year = order.DeliveryNoteYear(*ord.ValidatedAt)
			}
			ref, err := repos.DeliveryNotes().NextReference(ctx, year)
			if err != nil {
				return err
			}
			note := order.NewDeliveryNote(ord.ID, ref, generatedBy)
			if err := repos.DeliveryNotes().Save(ctx, note); err != nil {
				return err
			}
			created = append(created, ref)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(created) > 0 {
		s.logger.Info("backfilled delivery notes", zap.Int("count", len(created)))
	}
	return created, nil
}

// lockWorks fetches and row-locks every distinct work of the order, in
// ascending id order
func lockWorks(ctx context.Context, works catalog.WorkRepository, ord *order.Order) (map[uuid.UUID]*catalog.Work, error) {
	ids := make([]uuid.UUID, 0, len(ord.Items))
	seen := make(map[uuid.UUID]bool, len(ord.Items))
	for _, item := range ord.Items {
		if !seen[item.WorkID] {
			seen[item.WorkID] = true
			ids = append(ids, item.WorkID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	locked := make(map[uuid.UUID]*catalog.Work, len(ids))
	for _, id := range ids {
		work, err := works.FindByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if work == nil {
			return nil, shared.NewNotFoundError("work")
		}
		locked[id] = work
	}
	return locked, nil
}
