package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/authorshaven/content/internal/cache"
	"github.com/authorshaven/content/internal/compress"
	"github.com/authorshaven/content/internal/model"
	"github.com/authorshaven/content/internal/store"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"
)

// NewArticleService creates a new ArticleService.
func NewArticleService(compress compress.Compress, store store.Store, cache cache.ArticleCache) *ArticleService {
	return &ArticleService{
		compress: compress,
		store:    store,
		cache:    cache,
	}
}

// ArticleService owns the article lifecycle: draft -> published ->
// soft-deleted. Every mutation runs as a read-modify-write inside a store
// transaction keyed by slug, so two concurrent edits cannot produce a
// lost update. Ownership is checked before activation so non-owners
// always see a forbidden error, never the activation state.
type ArticleService struct {
	compress compress.Compress
	store    store.Store
	cache    cache.ArticleCache
}

// Article is the read model handed to the transport layer.
type Article struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tags        string    `json:"tags,omitempty"`
	Author      string    `json:"author"`
	Draft       string    `json:"draft,omitempty"`
	Body        string    `json:"body,omitempty"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateArticleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	Draft       string `json:"draft"`
}

// UpdateArticleRequest is a partial field merge: nil fields are left
// untouched. Fields outside this set are ignored by the transport layer,
// not rejected.
type UpdateArticleRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Tags        *string `json:"tags"`
	Draft       *string `json:"draft"`
}

// Create starts a new article in the draft, activated state. The slug is
// derived from the title and never changes afterwards.
func (a *ArticleService) Create(ctx context.Context, authorID string, request *CreateArticleRequest) (*Article, error) {
	title := strings.TrimSpace(request.Title)
	slug := model.Slugify(title)
	if slug == "" {
		return nil, ErrTitleRequired
	}

	draft, err := a.compress.Encode([]byte(request.Draft))
	if err != nil {
		return nil, err
	}

	article := &model.Article{
		ID:          uuid.New().String(),
		Slug:        slug,
		AuthorID:    authorID,
		Title:       title,
		Description: request.Description,
		Tags:        request.Tags,
		Draft:       string(draft),
		Compression: a.compress.Name(),
		Published:   false,
		Activated:   true,
	}

	if err := a.store.CreateArticle(ctx, article); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	return a.payload(article)
}

// Update applies a partial field merge to an author's own article. The
// merge is all-or-nothing: a validation failure inside the transaction
// leaves every field unchanged.
func (a *ArticleService) Update(ctx context.Context, slug, requesterID string, request *UpdateArticleRequest) (*Article, error) {
	var updated *model.Article

	err := a.store.Transaction(ctx, func(tx store.Store) error {
		article, err := a.ownedArticle(ctx, tx, slug, requesterID)
		if err != nil {
			return err
		}

		if request.Title != nil {
			title := strings.TrimSpace(*request.Title)
			if title == "" {
				return ErrTitleRequired
			}
			article.Title = title
		}
		if request.Description != nil {
			article.Description = *request.Description
		}
		if request.Tags != nil {
			article.Tags = *request.Tags
		}
		if request.Draft != nil {
			draft, err := a.compress.Encode([]byte(*request.Draft))
			if err != nil {
				return err
			}
			article.Draft = string(draft)
			article.Compression = a.compress.Name()
		}

		if err := tx.UpdateArticle(ctx, article); err != nil {
			return err
		}

		updated = article
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.invalidate(ctx, slug)
	return a.payload(updated)
}

// Publish copies the draft into the body and flips the article to
// published. Publishing an empty draft fails and leaves the article
// untouched.
func (a *ArticleService) Publish(ctx context.Context, slug, requesterID string) (*Article, error) {
	var published *model.Article

	err := a.store.Transaction(ctx, func(tx store.Store) error {
		article, err := a.ownedArticle(ctx, tx, slug, requesterID)
		if err != nil {
			return err
		}

		draft, err := compress.FromName(article.Compression).Decode([]byte(article.Draft))
		if err != nil {
			return err
		}
		if len(strings.TrimSpace(string(draft))) == 0 {
			return ErrEmptyDraft
		}

		article.Body = article.Draft
		article.Published = true

		if err := tx.UpdateArticle(ctx, article); err != nil {
			return err
		}

		published = article
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.invalidate(ctx, slug)
	return a.payload(published)
}

// SoftDelete deactivates an article. The transition is one-way: there is
// no un-delete, and every later read or edit fails as not found, for the
// author as much as for anyone else.
func (a *ArticleService) SoftDelete(ctx context.Context, slug, requesterID string) error {
	err := a.store.Transaction(ctx, func(tx store.Store) error {
		article, err := a.ownedArticle(ctx, tx, slug, requesterID)
		if err != nil {
			return err
		}

		article.Activated = false
		return tx.UpdateArticle(ctx, article)
	})
	if err != nil {
		return err
	}

	a.invalidate(ctx, slug)
	return nil
}

// Get retrieves a visible article, consulting the cache first. A cached
// copy that is no longer visible is ignored; invalidation failures are
// logged and swallowed, so the copy can outlive a soft delete.
func (a *ArticleService) Get(ctx context.Context, slug string) (*Article, error) {
	cached, err := a.cache.GetArticle(ctx, slug)
	if err != nil {
		logrus.Errorf("article cache read failed for %s: %v", slug, err)
	}
	if cached != nil && cached.Visible() {
		return a.payload(cached)
	}

	article, err := a.store.GetVisibleArticle(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	if err := a.cache.SetArticle(ctx, article); err != nil {
		logrus.Errorf("article cache write failed for %s: %v", slug, err)
	}

	return a.payload(article)
}

// List retrieves a page of visible articles. An empty visible set is
// reported as ErrNoArticles so the caller can render absence explicitly
// instead of an empty success payload.
func (a *ArticleService) List(ctx context.Context, limit, offset int) ([]*Article, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	articles, total, err := a.store.ListVisibleArticles(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, ErrNoArticles
	}

	payloads := make([]*Article, 0, len(articles))
	for _, article := range articles {
		payload, err := a.payload(article)
		if err != nil {
			return nil, 0, err
		}
		payloads = append(payloads, payload)
	}

	return payloads, total, nil
}

// ownedArticle loads and row-locks an article for an owner mutation,
// holding the lock until the enclosing transaction ends. The ownership
// check comes before the activation check: a non-owner gets forbidden
// whatever the activation state, the owner of a deactivated article gets
// not found.
func (a *ArticleService) ownedArticle(ctx context.Context, tx store.Store, slug, requesterID string) (*model.Article, error) {
	article, err := tx.GetArticleBySlugForUpdate(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	if article.AuthorID != requesterID {
		return nil, ErrNotArticleOwner
	}

	if !article.Activated {
		return nil, ErrArticleDeactivated
	}

	return article, nil
}

func (a *ArticleService) invalidate(ctx context.Context, slug string) {
	if err := a.cache.DeleteArticle(ctx, slug); err != nil {
		logrus.Errorf("article cache invalidation failed for %s: %v", slug, err)
	}
}

func (a *ArticleService) payload(article *model.Article) (*Article, error) {
	payload := &Article{}
	if err := copier.Copy(payload, article); err != nil {
		return nil, err
	}
	payload.Author = article.AuthorID

	codec := compress.FromName(article.Compression)

	if article.Draft != "" {
		draft, err := codec.Decode([]byte(article.Draft))
		if err != nil {
			return nil, err
		}
		payload.Draft = string(draft)
	}

	if article.Body != "" {
		body, err := codec.Decode([]byte(article.Body))
		if err != nil {
			return nil, err
		}
		payload.Body = string(body)
	}

	return payload, nil
}
