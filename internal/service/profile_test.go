package service

import (
	"context"
	"testing"

	"github.com/authorshaven/content/internal/notify"
	"github.com/authorshaven/content/internal/store"
	"github.com/authorshaven/content/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newProfileService() *ProfileService {
	return NewProfileService(store.NewGormStore(tester.TestDB()), notify.NewNoop())
}

// registerProfile creates a profile and returns its user id.
func registerProfile(t *testing.T, client *ProfileService, username string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := client.Create(context.TODO(), id, username)
	assert.NoError(t, err)

	return id
}

func TestProfileService_Create(t *testing.T) {
	tester.Setup()

	client := newProfileService()

	profile, err := client.Create(context.TODO(), uuid.New().String(), "alice")
	assert.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.True(t, profile.AppNotifications)

	_, err = client.Create(context.TODO(), uuid.New().String(), "alice")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = client.Create(context.TODO(), uuid.New().String(), "  ")
	assert.ErrorIs(t, err, ErrUsernameRequired)
}

func TestProfileService_Follow(t *testing.T) {
	tester.Setup()

	client := newProfileService()
	carol := registerProfile(t, client, "carol")
	registerProfile(t, client, "dave")

	// self-follow is rejected outright
	_, err := client.Follow(context.TODO(), carol, "carol")
	assert.ErrorIs(t, err, ErrSelfFollow)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	followed, err := client.Follow(context.TODO(), carol, "dave")
	assert.NoError(t, err)
	assert.True(t, followed.Following)

	// duplicate edge is detected, not merged
	_, err = client.Follow(context.TODO(), carol, "dave")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = client.Follow(context.TODO(), carol, "nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	relations, err := client.Relations(context.TODO(), "dave", "")
	assert.NoError(t, err)
	assert.Len(t, relations.Followers, 1)
	assert.Equal(t, "carol", relations.Followers[0].Username)
	assert.Empty(t, relations.Following)
}

func TestProfileService_Unfollow(t *testing.T) {
	tester.Setup()

	client := newProfileService()
	carol := registerProfile(t, client, "carol")
	registerProfile(t, client, "dave")

	// unfollowing without a prior follow is a conflict
	_, err := client.Unfollow(context.TODO(), carol, "dave")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = client.Follow(context.TODO(), carol, "dave")
	assert.NoError(t, err)

	_, err = client.Unfollow(context.TODO(), carol, "dave")
	assert.NoError(t, err)

	relations, err := client.Relations(context.TODO(), "dave", "")
	assert.NoError(t, err)
	assert.Empty(t, relations.Followers)

	// the edge is gone, so following again works
	_, err = client.Follow(context.TODO(), carol, "dave")
	assert.NoError(t, err)
}

func TestProfileService_Relations(t *testing.T) {
	tester.Setup()

	client := newProfileService()
	alice := registerProfile(t, client, "alice")
	bob := registerProfile(t, client, "bob")
	registerProfile(t, client, "carol")

	_, err := client.Follow(context.TODO(), alice, "carol")
	assert.NoError(t, err)
	_, err = client.Follow(context.TODO(), bob, "carol")
	assert.NoError(t, err)
	_, err = client.Follow(context.TODO(), alice, "bob")
	assert.NoError(t, err)

	// alice asks for carol's relations: bob shows up decorated with
	// whether alice follows him
	relations, err := client.Relations(context.TODO(), "carol", alice)
	assert.NoError(t, err)
	assert.Len(t, relations.Followers, 2)
	assert.Empty(t, relations.Following)

	byName := map[string]bool{}
	for _, follower := range relations.Followers {
		byName[follower.Username] = follower.Following
	}
	assert.True(t, byName["bob"])
	assert.False(t, byName["alice"])

	_, err = client.Relations(context.TODO(), "nobody", alice)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_ToggleNotifications(t *testing.T) {
	tester.Setup()

	client := newProfileService()
	alice := registerProfile(t, client, "alice")

	enabled, err := client.ToggleNotifications(context.TODO(), alice)
	assert.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = client.ToggleNotifications(context.TODO(), alice)
	assert.NoError(t, err)
	assert.True(t, enabled)

	_, err = client.ToggleNotifications(context.TODO(), uuid.New().String())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
