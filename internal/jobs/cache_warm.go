package jobs

import (
	"context"

	"github.com/authorshaven/content/internal/cache"
	"github.com/authorshaven/content/internal/store"
	"github.com/sirupsen/logrus"
)

const warmPageSize = 100

// CacheWarmTask keeps the most recent visible articles in the cache so
// cold reads after a restart or invalidation do not all hit the database.
type CacheWarmTask struct {
	store store.Store
	cache cache.ArticleCache
	cron  string
}

func NewCacheWarmTask(interval string, store store.Store, cache cache.ArticleCache) *CacheWarmTask {
	return &CacheWarmTask{
		store: store,
		cache: cache,
		cron:  interval,
	}
}

func (c *CacheWarmTask) Name() string {
	return "cache_warm"
}

func (c *CacheWarmTask) Schedule() string {
	return c.cron
}

func (c *CacheWarmTask) Run() {
	ctx := context.Background()

	articles, _, err := c.store.ListVisibleArticles(ctx, warmPageSize, 0)
	if err != nil {
		logrus.Errorf("cache warm: listing visible articles failed: %v", err)
		return
	}

	for _, article := range articles {
		if err := c.cache.SetArticle(ctx, article); err != nil {
			logrus.Errorf("cache warm: caching %s failed: %v", article.Slug, err)
			return
		}
	}
}
