package cache

import (
	"context"

	"github.com/authorshaven/content/internal/model"
)

// ArticleCache is a read-through cache of visible articles keyed by slug.
// A miss is reported as (nil, nil); the store stays the source of truth
// and every article mutation invalidates the slug.
type ArticleCache interface {
	// GetArticle retrieves a cached article, or nil on a miss.
	GetArticle(ctx context.Context, slug string) (*model.Article, error)
	// SetArticle caches an article under its slug.
	SetArticle(ctx context.Context, article *model.Article) error
	// DeleteArticle drops a slug from the cache.
	DeleteArticle(ctx context.Context, slug string) error
}

var _ ArticleCache = (*Noop)(nil)

// Noop is an ArticleCache that caches nothing. Used in tests and when no
// redis address is configured.
type Noop struct {
}

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) GetArticle(ctx context.Context, slug string) (*model.Article, error) {
	return nil, nil
}

func (n *Noop) SetArticle(ctx context.Context, article *model.Article) error {
	return nil
}

func (n *Noop) DeleteArticle(ctx context.Context, slug string) error {
	return nil
}
