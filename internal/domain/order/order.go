package order

import (
	"time"

	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/identity"
	"github.com/edipub/backend/internal/domain/partner"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusValidated OrderStatus = "VALIDATED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// PaymentStatus tracks how much of the order total has been paid
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// DeliveryStatus tracks the physical delivery of an order
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusReceived  DeliveryStatus = "RECEIVED"
)

// Mobile money payment methods that auto-settle an order at validation
// when a transaction id has been submitted.
var mobileMoneyMethods = map[string]bool{
	"airtel-money-gabon": true,
	"mobile_money":       true,
	"mobile-money":       true,
}

// IsMobileMoneyMethod reports whether the payment method is a recognized
// mobile money channel
func IsMobileMoneyMethod(method string) bool {
	return mobileMoneyMethods[method]
}

// OrderItem is a line of an order. Price is the unit price actually
// charged; OriginalPrice keeps the reference price when staff overrode it.
type OrderItem struct {
	shared.BaseEntity
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	WorkID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"work_id"`
	Work            *catalog.Work   `gorm:"foreignKey:WorkID" json:"work,omitempty"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	OriginalPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"original_price"`
	IsPriceOverride bool            `gorm:"not null;default:false" json:"is_price_override"`
}

// TableName returns the database table name
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal returns price times quantity for the item
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the sales order aggregate
type Order struct {
	shared.BaseEntity
	UserID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User             *identity.User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PartnerID        *uuid.UUID        `gorm:"type:uuid;index" json:"partner_id,omitempty"`
	Partner          *partner.Partner  `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	Items            []OrderItem       `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal         decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0" json:"subtotal"`
	Tax              decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0" json:"tax"`
	Discount         decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0" json:"discount"`
	Total            decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0" json:"total"`
	Status           OrderStatus       `gorm:"size:32;not null;default:'PENDING';index" json:"status"`
	PaymentStatus    PaymentStatus     `gorm:"size:32;not null;default:'PENDING'" json:"payment_status"`
	PaymentMethod    string            `gorm:"size:64" json:"payment_method,omitempty"`
	AmountPaid       decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0" json:"amount_paid"`
	RemainingAmount  decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0" json:"remaining_amount"`
	PaymentDueDate   *time.Time        `json:"payment_due_date,omitempty"`
	FullPaymentDate  *time.Time        `json:"full_payment_date,omitempty"`
	PaymentReference *PaymentReference `gorm:"type:text" json:"payment_reference,omitempty"`
	DeliveryStatus   DeliveryStatus    `gorm:"size:32;not null;default:'PENDING'" json:"delivery_status"`
	DeliveryDate     *time.Time        `json:"delivery_date,omitempty"`
	ReceivedAt       *time.Time        `json:"received_at,omitempty"`
	PromoCode        string            `gorm:"size:64" json:"promo_code,omitempty"`
	Notes            string            `gorm:"size:1024" json:"notes,omitempty"`
	ValidatedAt      *time.Time        `json:"validated_at,omitempty"`
	ValidatedBy      *uuid.UUID        `gorm:"type:uuid" json:"validated_by,omitempty"`
}

// TableName returns the database table name
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new pending order for a user
func NewOrder(userID uuid.UUID) *Order {
	return &Order{
		BaseEntity:      shared.NewBaseEntity(),
		UserID:          userID,
		Status:          OrderStatusPending,
		PaymentStatus:   PaymentStatusPending,
		DeliveryStatus:  DeliveryStatusPending,
		Subtotal:        decimal.Zero,
		Tax:             decimal.Zero,
		Discount:        decimal.Zero,
		Total:           decimal.Zero,
		AmountPaid:      decimal.Zero,
		RemainingAmount: decimal.Zero,
	}
}

// AddItem appends a line to the order
func (o *Order) AddItem(workID uuid.UUID, quantity int, price, originalPrice decimal.Decimal, override bool) error {
	if quantity <= 0 {
		return shared.NewInvalidInputError("quantity must be positive")
	}
	if price.IsNegative() {
		return shared.NewInvalidInputError("price cannot be negative")
	}
	item := OrderItem{
		BaseEntity:      shared.NewBaseEntity(),
		OrderID:         o.ID,
		WorkID:          workID,
		Quantity:        quantity,
		Price:           price,
		OriginalPrice:   originalPrice,
		IsPriceOverride: override,
	}
	o.Items = append(o.Items, item)
	return nil
}

// RecalculateTotals recomputes subtotal, tax and total from the items.
// Tax applies each work's TVA rate to the line total; the grand total is
// floored at zero so an oversized discount never produces a negative total.
func (o *Order) RecalculateTotals() {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, item := range o.Items {
		line := item.LineTotal()
		subtotal = subtotal.Add(line)
		if item.Work != nil && item.Work.TVARate.IsPositive() {
			tax = tax.Add(line.Mul(item.Work.TVARate))
		}
	}
	o.Subtotal = subtotal
	o.Tax = tax.Round(2)
	total := subtotal.Add(o.Tax).Sub(o.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	o.Total = total
	o.RemainingAmount = o.Total.Sub(o.AmountPaid)
	o.Touch()
}

// EffectiveSubtotal returns the stored subtotal when positive, otherwise
// the sum of line totals. Settlement uses it to derive the discount ratio
// for orders persisted before subtotals were stored.
func (o *Order) EffectiveSubtotal() decimal.Decimal {
	if o.Subtotal.IsPositive() {
		return o.Subtotal
	}
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// TotalQuantity returns the number of copies across all items
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// CanBeValidated reports whether the validation workflow may run.
// A cancelled order can never be validated; a validated order may be
// revalidated (the workflow is idempotent on the delivery note).
func (o *Order) CanBeValidated() error {
	if o.Status == OrderStatusCancelled {
		return shared.NewInvalidStateError("Impossible de valider une commande annulée")
	}
	if len(o.Items) == 0 {
		return shared.NewInvalidStateError("La commande ne contient aucun article")
	}
	return nil
}

// MarkValidated sets the validated status and stamps the validator
func (o *Order) MarkValidated(validatedBy uuid.UUID) {
	now := time.Now()
	o.Status = OrderStatusValidated
	o.ValidatedAt = &now
	o.ValidatedBy = &validatedBy
	o.Touch()
}

// AutoSettleMobileMoney marks the order fully paid when it was paid through
// a mobile money channel and a transaction id is on file. Returns true when
// the auto-settle rule applied.
func (o *Order) AutoSettleMobileMoney() bool {
	if !IsMobileMoneyMethod(o.PaymentMethod) {
		return false
	}
	if !o.PaymentReference.HasTransactionID() {
		return false
	}
	now := time.Now()
	o.PaymentStatus = PaymentStatusPaid
	o.AmountPaid = o.Total
	o.RemainingAmount = decimal.Zero
	o.FullPaymentDate = &now
	o.Touch()
	return true
}

// Cancel cancels the order. Only pending orders can be cancelled.
func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending {
		return shared.NewInvalidStateError("Seules les commandes en attente peuvent être annulées")
	}
	o.Status = OrderStatusCancelled
	o.Touch()
	return nil
}

// ConfirmReception records the client's reception of a delivered order
func (o *Order) ConfirmReception() error {
	if o.DeliveryStatus != DeliveryStatusDelivered {
		return shared.NewInvalidStateError("La commande n'a pas encore été livrée")
	}
	now := time.Now()
	o.DeliveryStatus = DeliveryStatusReceived
	o.ReceivedAt = &now
	o.Touch()
	return nil
}

// AttachPaymentProof merges the submitted proof into the payment reference
// bundle and stamps the submission time
func (o *Order) AttachPaymentProof(transactionID, proof, phone string) error {
	if transactionID == "" && proof == "" {
		return shared.NewInvalidInputError("transaction id or payment proof is required")
	}
	if o.PaymentReference == nil {
		o.PaymentReference = &PaymentReference{}
	}
	now := time.Now()
	o.PaymentReference.Merge(PaymentReference{
		TransactionID: transactionID,
		PaymentProof:  proof,
		PaymentPhone:  phone,
		SubmittedAt:   &now,
	})
	o.Touch()
	return nil
}
