package store

import (
	"context"
	"errors"
	"time"

	"github.com/authorshaven/content/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert violates a uniqueness
	// constraint (slug, vote pair or follow edge).
	ErrDuplicateKey = errors.New("duplicate key")
)

type Store interface {
	ProfileStore
	ArticleStore
	LikeStore
	FollowStore
	NotificationStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type ProfileStore interface {
	// CreateProfile creates a new profile.
	CreateProfile(ctx context.Context, profile *model.Profile) error
	// GetProfile retrieves a profile by user id.
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	// GetProfileByUsername retrieves a profile by username.
	GetProfileByUsername(ctx context.Context, username string) (*model.Profile, error)
	// ListProfiles retrieves all profiles.
	ListProfiles(ctx context.Context) ([]*model.Profile, error)
	// UpdateProfile updates a profile.
	UpdateProfile(ctx context.Context, profile *model.Profile) error
}

type ArticleStore interface {
	// CreateArticle creates a new article.
	CreateArticle(ctx context.Context, article *model.Article) error
	// GetArticleBySlug retrieves an article regardless of publication or
	// activation state.
	GetArticleBySlug(ctx context.Context, slug string) (*model.Article, error)
	// GetArticleBySlugForUpdate retrieves an article regardless of state
	// and row-locks it until the enclosing transaction ends, so two
	// concurrent mutations of the same slug serialize instead of losing
	// one write. Dialects without row-level locking run a plain read.
	GetArticleBySlugForUpdate(ctx context.Context, slug string) (*model.Article, error)
	// GetVisibleArticle retrieves an article only when it is published
	// and activated.
	GetVisibleArticle(ctx context.Context, slug string) (*model.Article, error)
	// ListVisibleArticles retrieves a page of published, activated
	// articles together with the total visible count.
	ListVisibleArticles(ctx context.Context, limit, offset int) ([]*model.Article, int64, error)
	// UpdateArticle persists all fields of an article.
	UpdateArticle(ctx context.Context, article *model.Article) error
}

type LikeStore interface {
	// CreateLike inserts a vote row. Returns ErrDuplicateKey when the
	// (user, article) pair already holds a vote.
	CreateLike(ctx context.Context, like *model.Like) error
	// GetLike retrieves a vote by id.
	GetLike(ctx context.Context, id string) (*model.Like, error)
	// GetLikeByUserArticle retrieves the vote a user holds on an article.
	GetLikeByUserArticle(ctx context.Context, userID, articleID string) (*model.Like, error)
	// UpdateLike persists a vote.
	UpdateLike(ctx context.Context, like *model.Like) error
	// DeleteLike removes a vote row.
	DeleteLike(ctx context.Context, id string) error
	// CountLikes returns fresh like and dislike counts for an article.
	CountLikes(ctx context.Context, articleID string) (likes int64, dislikes int64, err error)
}

type FollowStore interface {
	// CreateFollow inserts a follow edge. Returns ErrDuplicateKey when
	// the edge already exists.
	CreateFollow(ctx context.Context, follow *model.Follow) error
	// GetFollow retrieves the edge follower -> followed.
	GetFollow(ctx context.Context, followerID, followedID string) (*model.Follow, error)
	// DeleteFollow removes the edge follower -> followed.
	DeleteFollow(ctx context.Context, followerID, followedID string) error
	// ListFollowers retrieves the profiles following a user.
	ListFollowers(ctx context.Context, userID string) ([]*model.Profile, error)
	// ListFollowing retrieves the profiles a user follows.
	ListFollowing(ctx context.Context, userID string) ([]*model.Profile, error)
	// ListFollowingIDs retrieves the ids of users a follower follows.
	ListFollowingIDs(ctx context.Context, followerID string) ([]string, error)
}

type NotificationStore interface {
	// CreateNotification creates a new in-app notification.
	CreateNotification(ctx context.Context, notification *model.Notification) error
	// ListNotifications retrieves a user's notifications, newest first.
	ListNotifications(ctx context.Context, userID string) ([]*model.Notification, error)
	// MarkNotificationRead marks a user's notification as read.
	MarkNotificationRead(ctx context.Context, id, userID string) error
	// DeleteReadNotificationsBefore removes read notifications created
	// before the cutoff.
	DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) error
}
