package service

import (
	"context"
	"errors"
	"strings"

	"github.com/authorshaven/content/internal/model"
	"github.com/authorshaven/content/internal/notify"
	"github.com/authorshaven/content/internal/store"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

// NewProfileService creates a new ProfileService.
func NewProfileService(store store.Store, notifier notify.Notifier) *ProfileService {
	return &ProfileService{
		store:    store,
		notifier: notifier,
	}
}

// ProfileService owns profiles and the follow graph. The graph is a pure
// set-membership model over directed edges with two guards enforced on
// every mutation: no self-follow and no duplicate edge. The duplicate
// guard is backed by a unique database index, not a check-then-insert.
type ProfileService struct {
	store    store.Store
	notifier notify.Notifier
}

// Profile is the profile read model. Following reports whether the
// requesting user follows this profile; it is computed at read time and
// never stored.
type Profile struct {
	Username         string `json:"username"`
	Bio              string `json:"bio,omitempty"`
	Avatar           string `json:"avatar,omitempty"`
	AppNotifications bool   `json:"app_notifications"`
	Following        bool   `json:"following"`
}

// Relations lists both directions of a user's follow edges.
type Relations struct {
	Followers []*Profile `json:"followers"`
	Following []*Profile `json:"following"`
}

// Create registers a profile for an externally authenticated user id.
func (p *ProfileService) Create(ctx context.Context, id, username string) (*Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	profile := &model.Profile{
		ID:               id,
		Username:         username,
		AppNotifications: true,
	}

	if err := p.store.CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return p.payload(ctx, profile, ""), nil
}

// Get retrieves a profile by username, decorated with whether the
// requester follows it.
func (p *ProfileService) Get(ctx context.Context, username, requesterID string) (*Profile, error) {
	profile, err := p.byUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return p.payload(ctx, profile, requesterID), nil
}

// List retrieves all profiles.
func (p *ProfileService) List(ctx context.Context) ([]*Profile, error) {
	profiles, err := p.store.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	payloads := make([]*Profile, 0, len(profiles))
	for _, profile := range profiles {
		payloads = append(payloads, &Profile{
			Username:         profile.Username,
			Bio:              profile.Bio,
			Avatar:           profile.Avatar,
			AppNotifications: profile.AppNotifications,
		})
	}

	return payloads, nil
}

// Follow creates the edge follower -> username and announces it to the
// notifier. The edge is committed before the announcement, and a failed
// announcement is logged and dropped, never surfaced to the caller.
func (p *ProfileService) Follow(ctx context.Context, followerID, username string) (*Profile, error) {
	followed, err := p.byUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if followed.ID == followerID {
		return nil, ErrSelfFollow
	}

	if _, err := p.store.GetFollow(ctx, followerID, followed.ID); err == nil {
		return nil, alreadyFollowing(username)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	edge := &model.Follow{
		FollowerID: followerID,
		FollowedID: followed.ID,
	}
	if err := p.store.CreateFollow(ctx, edge); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, alreadyFollowing(username)
		}
		return nil, err
	}

	p.announce(ctx, followerID, followed.ID)

	payload := p.payload(ctx, followed, "")
	payload.Following = true
	return payload, nil
}

// Unfollow removes the edge follower -> username. Unfollowing someone
// you do not follow is a conflict, not a no-op.
func (p *ProfileService) Unfollow(ctx context.Context, followerID, username string) (*Profile, error) {
	followed, err := p.byUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if followed.ID == followerID {
		return nil, ErrSelfFollow
	}

	if _, err := p.store.GetFollow(ctx, followerID, followed.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFollowing(username)
		}
		return nil, err
	}

	if err := p.store.DeleteFollow(ctx, followerID, followed.ID); err != nil {
		return nil, err
	}

	return p.payload(ctx, followed, ""), nil
}

// Relations lists a user's followers and following, each entry decorated
// with whether the requester follows that entry.
func (p *ProfileService) Relations(ctx context.Context, username, requesterID string) (*Relations, error) {
	profile, err := p.byUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := p.store.ListFollowers(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	following, err := p.store.ListFollowing(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	requesterFollows := mapset.NewSet[string]()
	if requesterID != "" {
		ids, err := p.store.ListFollowingIDs(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		requesterFollows.Append(ids...)
	}

	return &Relations{
		Followers: decorate(followers, requesterFollows),
		Following: decorate(following, requesterFollows),
	}, nil
}

// ToggleNotifications flips a profile's in-app notification preference
// and returns the new value.
func (p *ProfileService) ToggleNotifications(ctx context.Context, userID string) (bool, error) {
	profile, err := p.store.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrProfileNotFound
		}
		return false, err
	}

	profile.AppNotifications = !profile.AppNotifications
	if err := p.store.UpdateProfile(ctx, profile); err != nil {
		return false, err
	}

	return profile.AppNotifications, nil
}

func (p *ProfileService) byUsername(ctx context.Context, username string) (*model.Profile, error) {
	profile, err := p.store.GetProfileByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (p *ProfileService) announce(ctx context.Context, followerID, followedID string) {
	event := &notify.FollowedEvent{
		FollowedID: followedID,
		FollowerID: followerID,
	}

	if follower, err := p.store.GetProfile(ctx, followerID); err == nil {
		event.FollowerUsername = follower.Username
	} else {
		event.FollowerUsername = followerID
	}

	if err := p.notifier.FollowerAdded(ctx, event); err != nil {
		logrus.Errorf("dropping follow notification for %s: %v", followedID, err)
	}
}

func (p *ProfileService) payload(ctx context.Context, profile *model.Profile, requesterID string) *Profile {
	payload := &Profile{
		Username:         profile.Username,
		Bio:              profile.Bio,
		Avatar:           profile.Avatar,
		AppNotifications: profile.AppNotifications,
	}

	if requesterID != "" && requesterID != profile.ID {
		if _, err := p.store.GetFollow(ctx, requesterID, profile.ID); err == nil {
			payload.Following = true
		}
	}

	return payload
}

func decorate(profiles []*model.Profile, follows mapset.Set[string]) []*Profile {
	payloads := make([]*Profile, 0, len(profiles))
	for _, profile := range profiles {
		payloads = append(payloads, &Profile{
			Username:  profile.Username,
			Bio:       profile.Bio,
			Avatar:    profile.Avatar,
			Following: follows.Contains(profile.ID),
		})
	}
	return payloads
}
