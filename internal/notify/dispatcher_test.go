package notify

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/authorshaven/content/internal/model"
	"github.com/authorshaven/content/internal/store"
	"github.com/authorshaven/content/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}

func seedProfile(t *testing.T, s store.Store, username string, notifications bool) string {
	t.Helper()

	id := uuid.New().String()
	err := s.CreateProfile(context.TODO(), &model.Profile{
		ID:               id,
		Username:         username,
		AppNotifications: notifications,
	})
	assert.NoError(t, err)

	return id
}

func TestDispatcher_PersistsNotification(t *testing.T) {
	tester.Setup()

	contentStore := store.NewGormStore(tester.TestDB())
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := NewDispatcher(bus, contentStore)
	go func() {
		_ = dispatcher.Run(ctx)
	}()

	followed := seedProfile(t, contentStore, "dave", true)
	follower := seedProfile(t, contentStore, "carol", true)

	err := bus.FollowerAdded(ctx, &FollowedEvent{
		FollowedID:       followed,
		FollowerID:       follower,
		FollowerUsername: "carol",
	})
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		notifications, err := contentStore.ListNotifications(context.TODO(), followed)
		return err == nil && len(notifications) == 1
	}, 2*time.Second, 10*time.Millisecond)

	notifications, err := contentStore.ListNotifications(context.TODO(), followed)
	assert.NoError(t, err)
	assert.Equal(t, "carol is now following you", notifications[0].Message)
	assert.False(t, notifications[0].Read)
}

func TestDispatcher_HonorsNotificationToggle(t *testing.T) {
	tester.Setup()

	contentStore := store.NewGormStore(tester.TestDB())
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := NewDispatcher(bus, contentStore)
	go func() {
		_ = dispatcher.Run(ctx)
	}()

	muted := seedProfile(t, contentStore, "muted", false)
	listening := seedProfile(t, contentStore, "listening", true)
	follower := seedProfile(t, contentStore, "carol", true)

	for _, followed := range []string{muted, listening} {
		err := bus.FollowerAdded(ctx, &FollowedEvent{
			FollowedID:       followed,
			FollowerID:       follower,
			FollowerUsername: "carol",
		})
		assert.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		notifications, err := contentStore.ListNotifications(context.TODO(), listening)
		return err == nil && len(notifications) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// the muted profile never gets a row
	notifications, err := contentStore.ListNotifications(context.TODO(), muted)
	assert.NoError(t, err)
	assert.Empty(t, notifications)
}
