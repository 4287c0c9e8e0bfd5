package inventory

import (
	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies stock ledger entries
type MovementType string

const (
	MovementTypeInbound    MovementType = "INBOUND"
	MovementTypeOutbound   MovementType = "OUTBOUND"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

// IsValid reports whether the movement type is known
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeInbound, MovementTypeOutbound, MovementTypeAdjustment:
		return true
	}
	return false
}

// StockMovement is an append-only ledger entry recording a change to a
// work's stock. Quantity is signed: outbound entries carry a negative
// quantity, inbound entries a positive one, adjustments either.
type StockMovement struct {
	shared.BaseEntity
	WorkID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"work_id"`
	Work        *catalog.Work   `gorm:"foreignKey:WorkID" json:"work,omitempty"`
	Type        MovementType    `gorm:"size:32;not null;index" json:"type"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Reason      string          `gorm:"size:255" json:"reason,omitempty"`
	Reference   string          `gorm:"size:64;index" json:"reference,omitempty"`
	Source      string          `gorm:"size:255" json:"source,omitempty"`
	Destination string          `gorm:"size:255" json:"destination,omitempty"`
	PerformedBy uuid.UUID       `gorm:"type:uuid;not null" json:"performed_by"`
	PartnerID   *uuid.UUID      `gorm:"type:uuid;index" json:"partner_id,omitempty"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unit_price"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_amount"`
}

// TableName returns the database table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewOutboundMovement records a stock exit. Quantity is given positive and
// stored negative; the total amount is valued at unit price times quantity.
func NewOutboundMovement(workID uuid.UUID, quantity int, reason, reference string, performedBy uuid.UUID, partnerID *uuid.UUID, unitPrice decimal.Decimal) (*StockMovement, error) {
	if quantity <= 0 {
		return nil, shared.NewInvalidInputError("quantity must be positive")
	}
	return &StockMovement{
		BaseEntity:  shared.NewBaseEntity(),
		WorkID:      workID,
		Type:        MovementTypeOutbound,
		Quantity:    -quantity,
		Reason:      reason,
		Reference:   reference,
		PerformedBy: performedBy,
		PartnerID:   partnerID,
		UnitPrice:   unitPrice,
		TotalAmount: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// NewInboundMovement records a stock entry
func NewInboundMovement(workID uuid.UUID, quantity int, reason, source string, performedBy uuid.UUID, unitPrice decimal.Decimal) (*StockMovement, error) {
	if quantity <= 0 {
		return nil, shared.NewInvalidInputError("quantity must be positive")
	}
	return &StockMovement{
		BaseEntity:  shared.NewBaseEntity(),
		WorkID:      workID,
		Type:        MovementTypeInbound,
		Quantity:    quantity,
		Reason:      reason,
		Source:      source,
		PerformedBy: performedBy,
		UnitPrice:   unitPrice,
		TotalAmount: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// NewAdjustmentMovement records a signed stock correction
func NewAdjustmentMovement(workID uuid.UUID, delta int, reason string, performedBy uuid.UUID) (*StockMovement, error) {
	if delta == 0 {
		return nil, shared.NewInvalidInputError("adjustment delta cannot be zero")
	}
	return &StockMovement{
		BaseEntity:  shared.NewBaseEntity(),
		WorkID:      workID,
		Type:        MovementTypeAdjustment,
		Quantity:    delta,
		Reason:      reason,
		PerformedBy: performedBy,
	}, nil
}
