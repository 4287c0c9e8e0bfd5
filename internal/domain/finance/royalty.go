package finance

import (
	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Royalty is an author's earning on a validated order line. At most one
// royalty exists per (order, work, author); settlement relies on a unique
// index to stay idempotent.
type Royalty struct {
	shared.BaseEntity
	WorkID  uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_royalty_order_work_user" json:"work_id"`
	Work    *catalog.Work   `gorm:"foreignKey:WorkID" json:"work,omitempty"`
	UserID  uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_royalty_order_work_user" json:"user_id"`
	OrderID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_royalty_order_work_user" json:"order_id"`
	Amount  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Rate    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rate"`
	Paid    bool            `gorm:"not null;default:false;index" json:"paid"`
}

// TableName returns the database table name
func (Royalty) TableName() string {
	return "royalties"
}

// NewRoyalty creates a royalty record for an author on an order line
func NewRoyalty(orderID, workID, authorID uuid.UUID, amount, rate decimal.Decimal) *Royalty {
	return &Royalty{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		WorkID:     workID,
		UserID:     authorID,
		Amount:     amount,
		Rate:       rate,
	}
}
