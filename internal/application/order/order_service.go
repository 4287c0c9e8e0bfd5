package order

import (
	"context"
	"fmt"

	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/identity"
	"github.com/edipub/backend/internal/domain/order"
	"github.com/edipub/backend/internal/domain/partner"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// priceOverrideTolerance is the maximum divergence between a submitted
// price and the reference price that is still treated as the reference
// price rather than an override.
var priceOverrideTolerance = decimal.NewFromFloat(0.01)

// PriceResolver resolves the reference price of a work for a client tier
// and enforces the minimum order policy.
type PriceResolver interface {
	ReferencePrice(basePrice decimal.Decimal, clientType string) decimal.Decimal
	CheckOrderMinimums(clientType string, totalQuantity int, total decimal.Decimal) error
}

// Notifier sends fire-and-forget user notifications on order events.
// Implementations must never return an error to the caller.
type Notifier interface {
	OrderValidated(ctx context.Context, o *order.Order, reference string)
	OrderCancelled(ctx context.Context, o *order.Order)
}

// Validator runs the order validation workflow. Satisfied by
// ValidationService; the order service dispatches status transitions to
// VALIDATED through it.
type Validator interface {
	Validate(ctx context.Context, orderID, validatedBy uuid.UUID, req UpdateOrderRequest) (*ValidateOrderResult, error)
}

// OrderService handles order creation and lifecycle operations outside the
// validation workflow
type OrderService struct {
	orders    order.OrderRepository
	works     catalog.WorkRepository
	users     identity.UserRepository
	partners  partner.PartnerRepository
	pricing   PriceResolver
	validator Validator
	notifier  Notifier
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orders order.OrderRepository,
	works catalog.WorkRepository,
	users identity.UserRepository,
	partners partner.PartnerRepository,
	pricing PriceResolver,
	validator Validator,
	notifier Notifier,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		works:     works,
		users:     users,
		partners:  partners,
		pricing:   pricing,
		validator: validator,
		notifier:  notifier,
		logger:    logger,
	}
}

// Create creates a pending order for the user. Every work must be
// sellable with enough stock to cover its quantity. Prices come from the
// client-tier reference price unless an explicit price diverges beyond the
// tolerance, which records a price override keeping the reference price as
// the original.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewNotFoundError("user")
	}

	o := order.NewOrder(userID)
	o.PaymentMethod = req.PaymentMethod
	o.PromoCode = req.PromoCode
	o.Notes = req.Notes
	if req.Discount.IsPositive() {
		o.Discount = req.Discount
	}

	if req.PartnerID != nil {
		partnerID, err := uuid.Parse(*req.PartnerID)
		if err != nil {
			return nil, shared.NewInvalidInputError("invalid partner id")
		}
		p, err := s.partners.FindByID(ctx, partnerID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, shared.NewNotFoundError("partner")
		}
		o.PartnerID = &partnerID
	}

	workIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		id, err := uuid.Parse(item.WorkID)
		if err != nil {
			return nil, shared.NewInvalidInputError("invalid work id: " + item.WorkID)
		}
		workIDs = append(workIDs, id)
	}

	works, err := s.works.FindByIDs(ctx, workIDs)
	if err != nil {
		return nil, err
	}
	worksByID := make(map[uuid.UUID]*catalog.Work, len(works))
	for i := range works {
		worksByID[works[i].ID] = &works[i]
	}

	for i, item := range req.Items {
		work, ok := worksByID[workIDs[i]]
		if !ok {
			return nil, shared.NewNotFoundError("work")
		}
		if !work.IsSellable() {
			return nil, shared.NewInvalidStateError(
				fmt.Sprintf("L'œuvre \"%s\" n'est pas disponible à la vente", work.Title))
		}
		if !work.HasStock(item.Quantity) {
			return nil, shared.NewInsufficientStockError(work.Title, work.Stock, item.Quantity)
		}

		reference := s.pricing.ReferencePrice(work.Price, user.ClientType)
		price := reference
		override := false
		if item.Price != nil {
			diff := item.Price.Sub(reference).Abs()
			if diff.GreaterThan(priceOverrideTolerance) {
				price = *item.Price
				override = true
			}
		}
		if err := o.AddItem(work.ID, item.Quantity, price, reference, override); err != nil {
			return nil, err
		}
		o.Items[len(o.Items)-1].Work = work
	}

	o.RecalculateTotals()

	if err := s.pricing.CheckOrderMinimums(user.ClientType, o.TotalQuantity(), o.Total); err != nil {
		return nil, err
	}

	if req.DeliveryAddress != "" || req.DeliveryTimeFrom != "" || req.DeliveryTimeTo != "" {
		o.PaymentReference = &order.PaymentReference{
			Address:          req.DeliveryAddress,
			DeliveryTimeFrom: req.DeliveryTimeFrom,
			DeliveryTimeTo:   req.DeliveryTimeTo,
		}
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", o.Total.String()),
	)

	o.User = user
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List returns orders visible to the actor. Staff see all orders;
// everyone else only their own.
func (s *OrderService) List(ctx context.Context, actor *identity.User, filter shared.Filter) ([]OrderResponse, int64, error) {
	if !actor.Role.IsStaff() {
		filter = filter.WithFilter("user_id", actor.ID)
	}
	orders, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// Get returns an order if the actor may see it
func (s *OrderService) Get(ctx context.Context, actor *identity.User, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.findVisible(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// Update applies a partial update to an order. A status transition to
// VALIDATED is dispatched to the validation workflow with the remaining
// fields applied inside its transaction; all other updates are a direct
// field merge.
func (s *OrderService) Update(ctx context.Context, orderID, updatedBy uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	if req.Status != nil && order.OrderStatus(*req.Status) == order.OrderStatusValidated {
		result, err := s.validator.Validate(ctx, orderID, updatedBy, req)
		if err != nil {
			return nil, err
		}
		return &result.Order, nil
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, shared.NewNotFoundError("order")
	}

	applyOrderUpdate(o, req)

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// Delete removes an order and its items
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return shared.NewNotFoundError("order")
	}
	return s.orders.Delete(ctx, orderID)
}

// Cancel cancels a pending order on behalf of the actor
func (s *OrderService) Cancel(ctx context.Context, actor *identity.User, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.findVisible(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	s.notifier.OrderCancelled(ctx, o)
	resp := ToOrderResponse(o)
	return &resp, nil
}

// SubmitPaymentProof attaches payment evidence to the actor's order
func (s *OrderService) SubmitPaymentProof(ctx context.Context, actor *identity.User, orderID uuid.UUID, req SubmitPaymentProofRequest) (*OrderResponse, error) {
	o, err := s.findVisible(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.AttachPaymentProof(req.TransactionID, req.PaymentProof, req.PaymentPhone); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ConfirmReception records the client's reception of a delivered order
func (s *OrderService) ConfirmReception(ctx context.Context, actor *identity.User, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.findVisible(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.ConfirmReception(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// findVisible fetches an order, enforcing that non-staff actors only reach
// their own orders
func (s *OrderService) findVisible(ctx context.Context, actor *identity.User, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, shared.NewNotFoundError("order")
	}
	if !actor.Role.IsStaff() && o.UserID != actor.ID {
		return nil, shared.ErrForbidden
	}
	return o, nil
}

// applyOrderUpdate merges the non-nil request fields into the order
func applyOrderUpdate(o *order.Order, req UpdateOrderRequest) {
	if req.Status != nil {
		o.Status = order.OrderStatus(*req.Status)
	}
	if req.PaymentStatus != nil {
		o.PaymentStatus = order.PaymentStatus(*req.PaymentStatus)
	}
	if req.PaymentMethod != nil {
		o.PaymentMethod = *req.PaymentMethod
	}
	if req.AmountPaid != nil {
		o.AmountPaid = *req.AmountPaid
		o.RemainingAmount = o.Total.Sub(o.AmountPaid)
	}
	if req.Discount != nil {
		o.Discount = *req.Discount
		o.RecalculateTotals()
	}
	if req.PaymentDueDate != nil {
		o.PaymentDueDate = req.PaymentDueDate
	}
	if req.DeliveryStatus != nil {
		o.DeliveryStatus = order.DeliveryStatus(*req.DeliveryStatus)
	}
	if req.DeliveryDate != nil {
		o.DeliveryDate = req.DeliveryDate
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}
	o.Touch()
}
