package inventory

import (
	"time"

	"github.com/edipub/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateMovementRequest is the input for a manual stock movement
type CreateMovementRequest struct {
	WorkID      string          `json:"work_id" binding:"required,uuid"`
	Type        string          `json:"type" binding:"required,oneof=INBOUND OUTBOUND ADJUSTMENT"`
	Quantity    int             `json:"quantity" binding:"required"`
	Reason      string          `json:"reason" binding:"required"`
	Reference   string          `json:"reference"`
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	PartnerID   *string         `json:"partner_id" binding:"omitempty,uuid"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// MovementResponse is the API representation of a stock movement
type MovementResponse struct {
	ID          string          `json:"id"`
	WorkID      string          `json:"work_id"`
	WorkTitle   string          `json:"work_title,omitempty"`
	Type        string          `json:"type"`
	Quantity    int             `json:"quantity"`
	Reason      string          `json:"reason,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Source      string          `json:"source,omitempty"`
	Destination string          `json:"destination,omitempty"`
	PerformedBy string          `json:"performed_by"`
	PartnerID   string          `json:"partner_id,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToMovementResponse converts a domain movement to its API representation
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	resp := MovementResponse{
		ID:          m.ID.String(),
		WorkID:      m.WorkID.String(),
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		Reference:   m.Reference,
		Source:      m.Source,
		Destination: m.Destination,
		PerformedBy: m.PerformedBy.String(),
		UnitPrice:   m.UnitPrice,
		TotalAmount: m.TotalAmount,
		CreatedAt:   m.CreatedAt,
	}
	if m.Work != nil {
		resp.WorkTitle = m.Work.Title
	}
	if m.PartnerID != nil {
		resp.PartnerID = m.PartnerID.String()
	}
	return resp
}
