package notify

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicFollowed carries follow events from the profile service to the
// notification dispatcher.
const TopicFollowed = "profile.followed"

// FollowedEvent is published after a follow edge is durably committed.
type FollowedEvent struct {
	FollowedID       string `json:"followed_id"`
	FollowerID       string `json:"follower_id"`
	FollowerUsername string `json:"follower_username"`
}

// Notifier announces follow events. Callers treat delivery as
// fire-and-forget: a publish error never rolls back the follow edge.
type Notifier interface {
	FollowerAdded(ctx context.Context, event *FollowedEvent) error
}

var _ Notifier = (*Bus)(nil)

// Bus is an in-process event bus backed by a watermill go channel. It can
// later be substituted with a broker-backed pub/sub without touching the
// services that publish to it.
type Bus struct {
	ch *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		// Persistent keeps events published before the dispatcher
		// subscribes, so startup ordering does not lose follows.
		ch: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
			Persistent:          true,
		}, watermill.NewStdLogger(false, false)),
	}
}

func (b *Bus) FollowerAdded(ctx context.Context, event *FollowedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return b.ch.Publish(TopicFollowed, message.NewMessage(watermill.NewUUID(), payload))
}

// Subscribe returns the stream of follow events. Used by the dispatcher.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.ch.Subscribe(ctx, TopicFollowed)
}

func (b *Bus) Close() error {
	return b.ch.Close()
}

var _ Notifier = (*Noop)(nil)

// Noop discards all events. Used in tests that do not exercise delivery.
type Noop struct {
}

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) FollowerAdded(ctx context.Context, event *FollowedEvent) error {
	return nil
}
