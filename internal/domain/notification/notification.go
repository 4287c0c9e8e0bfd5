package notification

import (
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Type classifies notifications for client-side rendering
type Type string

const (
	TypeOrderValidated Type = "ORDER_VALIDATED"
	TypeOrderCancelled Type = "ORDER_CANCELLED"
	TypeOrderDelivered Type = "ORDER_DELIVERED"
	TypeWithdrawal     Type = "WITHDRAWAL"
	TypeSystem         Type = "SYSTEM"
)

// Notification is an in-app message for a user. Creation is always
// fire-and-forget; a failed notification never fails the operation that
// produced it.
type Notification struct {
	shared.BaseEntity
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title   string    `gorm:"size:255;not null" json:"title"`
	Message string    `gorm:"size:1024;not null" json:"message"`
	Type    Type      `gorm:"size:32;not null;default:'SYSTEM'" json:"type"`
	Read    bool      `gorm:"not null;default:false;index" json:"read"`
}

// TableName returns the database table name
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates an unread notification for a user
func NewNotification(userID uuid.UUID, notifType Type, title, message string) *Notification {
	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Title:      title,
		Message:    message,
		Type:       notifType,
	}
}
