package order

import (
	"time"

	"github.com/edipub/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest is a requested order line. Price is optional;
// when present and diverging from the reference price it becomes a staff
// price override.
type CreateOrderItemRequest struct {
	WorkID   string           `json:"work_id" binding:"required,uuid"`
	Quantity int              `json:"quantity" binding:"required,min=1"`
	Price    *decimal.Decimal `json:"price"`
}

// CreateOrderRequest is the input for order creation
type CreateOrderRequest struct {
	Items            []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PartnerID        *string                  `json:"partner_id" binding:"omitempty,uuid"`
	PaymentMethod    string                   `json:"payment_method"`
	PromoCode        string                   `json:"promo_code"`
	Discount         decimal.Decimal          `json:"discount"`
	Notes            string                   `json:"notes"`
	DeliveryAddress  string                   `json:"delivery_address"`
	DeliveryTimeFrom string                   `json:"delivery_time_from"`
	DeliveryTimeTo   string                   `json:"delivery_time_to"`
}

// UpdateOrderRequest is a partial update of an order. Nil fields are left
// untouched. Status VALIDATED is rejected here; validation runs through
// the dedicated workflow.
type UpdateOrderRequest struct {
	Status         *string          `json:"status"`
	PaymentStatus  *string          `json:"payment_status"`
	PaymentMethod  *string          `json:"payment_method"`
	AmountPaid     *decimal.Decimal `json:"amount_paid"`
	Discount       *decimal.Decimal `json:"discount"`
	PaymentDueDate *time.Time       `json:"payment_due_date"`
	DeliveryStatus *string          `json:"delivery_status"`
	DeliveryDate   *time.Time       `json:"delivery_date"`
	Notes          *string          `json:"notes"`
}

// SubmitPaymentProofRequest carries a client's payment evidence
type SubmitPaymentProofRequest struct {
	TransactionID string `json:"transaction_id"`
	PaymentProof  string `json:"payment_proof"`
	PaymentPhone  string `json:"payment_phone"`
}

// OrderItemResponse is the API representation of an order line
type OrderItemResponse struct {
	ID              string          `json:"id"`
	WorkID          string          `json:"work_id"`
	WorkTitle       string          `json:"work_title,omitempty"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	IsPriceOverride bool            `json:"is_price_override"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID               string                  `json:"id"`
	UserID           string                  `json:"user_id"`
	UserName         string                  `json:"user_name,omitempty"`
	PartnerID        string                  `json:"partner_id,omitempty"`
	PartnerName      string                  `json:"partner_name,omitempty"`
	Items            []OrderItemResponse     `json:"items"`
	Subtotal         decimal.Decimal         `json:"subtotal"`
	Tax              decimal.Decimal         `json:"tax"`
	Discount         decimal.Decimal         `json:"discount"`
	Total            decimal.Decimal         `json:"total"`
	Status           string                  `json:"status"`
	PaymentStatus    string                  `json:"payment_status"`
	PaymentMethod    string                  `json:"payment_method,omitempty"`
	AmountPaid       decimal.Decimal         `json:"amount_paid"`
	RemainingAmount  decimal.Decimal         `json:"remaining_amount"`
	PaymentDueDate   *time.Time              `json:"payment_due_date,omitempty"`
	FullPaymentDate  *time.Time              `json:"full_payment_date,omitempty"`
	PaymentReference *order.PaymentReference `json:"payment_reference,omitempty"`
	DeliveryStatus   string                  `json:"delivery_status"`
	DeliveryDate     *time.Time              `json:"delivery_date,omitempty"`
	ReceivedAt       *time.Time              `json:"received_at,omitempty"`
	PromoCode        string                  `json:"promo_code,omitempty"`
	Notes            string                  `json:"notes,omitempty"`
	ValidatedAt      *time.Time              `json:"validated_at,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// ValidateOrderResult is returned by the validation workflow
type ValidateOrderResult struct {
	Order                 OrderResponse `json:"order"`
	DeliveryNoteReference string        `json:"delivery_note_reference"`
	DeliveryNoteCreated   bool          `json:"delivery_note_created"`
}

// DeliveryNoteResponse is the API representation of a delivery note
type DeliveryNoteResponse struct {
	ID          string         `json:"id"`
	OrderID     string         `json:"order_id"`
	Reference   string         `json:"reference"`
	GeneratedBy string         `json:"generated_by"`
	CreatedAt   time.Time      `json:"created_at"`
	Order       *OrderResponse `json:"order,omitempty"`
}

// ToOrderItemResponse converts a domain order item
func ToOrderItemResponse(item *order.OrderItem) OrderItemResponse {
	resp := OrderItemResponse{
		ID:              item.ID.String(),
		WorkID:          item.WorkID.String(),
		Quantity:        item.Quantity,
		Price:           item.Price,
		OriginalPrice:   item.OriginalPrice,
		IsPriceOverride: item.IsPriceOverride,
		LineTotal:       item.LineTotal(),
	}
	if item.Work != nil {
		resp.WorkTitle = item.Work.Title
	}
	return resp
}

// ToOrderResponse converts a domain order
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}
	resp := OrderResponse{
		ID:               o.ID.String(),
		UserID:           o.UserID.String(),
		Items:            items,
		Subtotal:         o.Subtotal,
		Tax:              o.Tax,
		Discount:         o.Discount,
		Total:            o.Total,
		Status:           string(o.Status),
		PaymentStatus:    string(o.PaymentStatus),
		PaymentMethod:    o.PaymentMethod,
		AmountPaid:       o.AmountPaid,
		RemainingAmount:  o.RemainingAmount,
		PaymentDueDate:   o.PaymentDueDate,
		FullPaymentDate:  o.FullPaymentDate,
		PaymentReference: o.PaymentReference,
		DeliveryStatus:   string(o.DeliveryStatus),
		DeliveryDate:     o.DeliveryDate,
		ReceivedAt:       o.ReceivedAt,
		PromoCode:        o.PromoCode,
		Notes:            o.Notes,
		ValidatedAt:      o.ValidatedAt,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	if o.User != nil {
		resp.UserName = o.User.Name
	}
	if o.PartnerID != nil {
		resp.PartnerID = o.PartnerID.String()
	}
	if o.Partner != nil {
		resp.PartnerName = o.Partner.Name
	}
	return resp
}

// ToDeliveryNoteResponse converts a domain delivery note
func ToDeliveryNoteResponse(n *order.DeliveryNote) DeliveryNoteResponse {
	resp := DeliveryNoteResponse{
		ID:          n.ID.String(),
		OrderID:     n.OrderID.String(),
		Reference:   n.Reference,
		GeneratedBy: n.GeneratedBy.String(),
		CreatedAt:   n.CreatedAt,
	}
	if n.Order != nil {
		o := ToOrderResponse(n.Order)
		resp.Order = &o
	}
	return resp
}
