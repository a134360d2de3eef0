package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/authorshaven/content/internal/model"
	"github.com/authorshaven/content/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Dispatcher consumes follow events and persists in-app notifications for
// profiles that have notifications enabled. Delivery failures are logged
// and dropped; the follow edge is already committed by the time an event
// reaches the dispatcher.
type Dispatcher struct {
	bus   *Bus
	store store.Store
}

func NewDispatcher(bus *Bus, store store.Store) *Dispatcher {
	return &Dispatcher{
		bus:   bus,
		store: store,
	}
}

// Run blocks consuming follow events until the context is cancelled or
// the bus is closed.
func (d *Dispatcher) Run(ctx context.Context) error {
	messages, err := d.bus.Subscribe(ctx)
	if err != nil {
		return err
	}

	for msg := range messages {
		d.handle(ctx, msg.Payload)
		msg.Ack()
	}

	return nil
}

func (d *Dispatcher) handle(ctx context.Context, payload []byte) {
	var event FollowedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		logrus.Errorf("dropping malformed follow event: %v", err)
		return
	}

	profile, err := d.store.GetProfile(ctx, event.FollowedID)
	if err != nil {
		logrus.Errorf("follow notification for unknown profile %s: %v", event.FollowedID, err)
		return
	}

	if !profile.AppNotifications {
		return
	}

	notification := &model.Notification{
		ID:      uuid.New().String(),
		UserID:  event.FollowedID,
		Message: fmt.Sprintf("%s is now following you", event.FollowerUsername),
	}

	if err := d.store.CreateNotification(ctx, notification); err != nil {
		logrus.Errorf("failed to persist follow notification: %v", err)
	}
}
