package notification

import (
	"context"
	"fmt"

	"github.com/edipub/backend/internal/domain/notification"
	"github.com/edipub/backend/internal/domain/order"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService records in-app notifications and serves them back
// to their recipients. Event hooks are fire-and-forget: a failed insert
// is logged and swallowed so it never fails the producing operation.
type NotificationService struct {
	notifications notification.NotificationRepository
	logger        *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifications notification.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

// OrderValidated notifies the order's owner that their order was validated
func (s *NotificationService) OrderValidated(ctx context.Context, o *order.Order, reference string) {
	s.record(ctx, notification.NewNotification(
		o.UserID,
		notification.TypeOrderValidated,
		"Commande validée",
		fmt.Sprintf("Votre commande a été validée. Bon de sortie: %s", reference),
	))
}

// OrderCancelled notifies the order's owner that their order was cancelled
func (s *NotificationService) OrderCancelled(ctx context.Context, o *order.Order) {
	s.record(ctx, notification.NewNotification(
		o.UserID,
		notification.TypeOrderCancelled,
		"Commande annulée",
		"Votre commande a été annulée.",
	))
}

func (s *NotificationService) record(ctx context.Context, n *notification.Notification) {
	if err := s.notifications.Save(ctx, n); err != nil {
		s.logger.Warn("failed to record notification",
			zap.String("user_id", n.UserID.String()),
			zap.String("type", string(n.Type)),
			zap.Error(err),
		)
	}
}

// ListForUser returns a user's notifications with their unread count
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]notification.Notification, int64, error) {
	notifications, err := s.notifications.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all of the user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifications.MarkAllRead(ctx, userID)
}
