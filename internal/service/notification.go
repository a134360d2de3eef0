package service

import (
	"context"
	"errors"
	"time"

	"github.com/authorshaven/content/internal/store"
)

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store store.Store) *NotificationService {
	return &NotificationService{
		store: store,
	}
}

// NotificationService exposes the in-app notifications written by the
// follow event dispatcher.
type NotificationService struct {
	store store.Store
}

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// List retrieves a user's notifications, newest first.
func (n *NotificationService) List(ctx context.Context, userID string) ([]*Notification, error) {
	notifications, err := n.store.ListNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}

	payloads := make([]*Notification, 0, len(notifications))
	for _, notification := range notifications {
		payloads = append(payloads, &Notification{
			ID:        notification.ID,
			Message:   notification.Message,
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
		})
	}

	return payloads, nil
}

// MarkRead marks one of the user's own notifications as read.
func (n *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := n.store.MarkNotificationRead(ctx, id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}
