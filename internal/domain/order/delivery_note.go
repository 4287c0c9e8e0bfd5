package order

import (
	"fmt"
	"time"

	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryNote (bon de sortie) certifies that stock left the warehouse for
// an order. At most one note exists per order; its reference is unique and
// sequential within a year.
type DeliveryNote struct {
	shared.BaseEntity
	OrderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Order       *Order    `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Reference   string    `gorm:"size:32;not null;uniqueIndex" json:"reference"`
	GeneratedBy uuid.UUID `gorm:"type:uuid;not null" json:"generated_by"`
}

// TableName returns the database table name
func (DeliveryNote) TableName() string {
	return "delivery_notes"
}

// NewDeliveryNote creates a delivery note for an order with the given
// sequential reference
func NewDeliveryNote(orderID uuid.UUID, reference string, generatedBy uuid.UUID) *DeliveryNote {
	return &DeliveryNote{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		Reference:   reference,
		GeneratedBy: generatedBy,
	}
}

// FormatDeliveryNoteReference renders a reference as BS-{year}-{seq},
// zero-padding the sequence to four digits.
func FormatDeliveryNoteReference(year, sequence int) string {
	return fmt.Sprintf("BS-%d-%04d", year, sequence)
}

// DeliveryNoteYear returns the sequencing year for a note generated now
func DeliveryNoteYear(now time.Time) int {
	return now.Year()
}
