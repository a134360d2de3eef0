package service

import (
	"context"
	"errors"

	"github.com/authorshaven/content/internal/model"
	"github.com/authorshaven/content/internal/store"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// NewLikeService creates a new LikeService.
func NewLikeService(store store.Store) *LikeService {
	return &LikeService{
		store: store,
	}
}

// LikeService owns votes: at most one like-or-dislike row per
// (user, article) pair. The pair is guarded by a unique database index,
// so a concurrent duplicate cast fails on insert rather than racing a
// check-then-act.
//
// Votes are not cascaded when an article is soft-deleted: slug-based
// reads already fail as not found for invisible articles, and the owner
// can still withdraw a vote by id.
type LikeService struct {
	store store.Store
}

// Like is the vote read model.
type Like struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ArticleID string `json:"article_id"`
	IsLike    bool   `json:"is_like"`
}

// Tally holds fresh vote counts for an article. Counts are always
// derived from the rows, never stored, so they cannot drift.
type Tally struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// Cast records a user's first vote on a visible article. A second cast
// for the same pair fails; flipping a vote goes through Update.
func (l *LikeService) Cast(ctx context.Context, userID, slug string, isLike bool) (*Like, error) {
	article, err := l.visibleArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	like := &model.Like{
		ID:        uuid.New().String(),
		UserID:    userID,
		ArticleID: article.ID,
		IsLike:    isLike,
	}

	if err := l.store.CreateLike(ctx, like); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrAlreadyVoted
		}
		return nil, err
	}

	return payloadLike(like)
}

// Get retrieves the vote a user holds on a visible article.
func (l *LikeService) Get(ctx context.Context, userID, slug string) (*Like, error) {
	article, err := l.visibleArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	like, err := l.store.GetLikeByUserArticle(ctx, userID, article.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoVote
		}
		return nil, err
	}

	return payloadLike(like)
}

// Update flips a vote between like and dislike. Only the voting user may
// touch their own vote.
func (l *LikeService) Update(ctx context.Context, id, requesterID string, isLike bool) (*Like, error) {
	like, err := l.ownedLike(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	like.IsLike = isLike
	if err := l.store.UpdateLike(ctx, like); err != nil {
		return nil, err
	}

	return payloadLike(like)
}

// Delete withdraws a vote. Only the voting user may remove their own vote.
func (l *LikeService) Delete(ctx context.Context, id, requesterID string) error {
	like, err := l.ownedLike(ctx, id, requesterID)
	if err != nil {
		return err
	}

	return l.store.DeleteLike(ctx, like.ID)
}

// Tally counts likes and dislikes for a visible article.
func (l *LikeService) Tally(ctx context.Context, slug string) (*Tally, error) {
	article, err := l.visibleArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	likes, dislikes, err := l.store.CountLikes(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	return &Tally{Likes: likes, Dislikes: dislikes}, nil
}

func (l *LikeService) visibleArticle(ctx context.Context, slug string) (*model.Article, error) {
	article, err := l.store.GetVisibleArticle(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

func (l *LikeService) ownedLike(ctx context.Context, id, requesterID string) (*model.Like, error) {
	like, err := l.store.GetLike(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLikeNotFound
		}
		return nil, err
	}

	if like.UserID != requesterID {
		return nil, ErrNotLikeOwner
	}

	return like, nil
}

func payloadLike(like *model.Like) (*Like, error) {
	payload := &Like{}
	if err := copier.Copy(payload, like); err != nil {
		return nil, err
	}
	return payload, nil
}
