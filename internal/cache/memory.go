package cache

import (
	"context"
	"sync"

	"github.com/authorshaven/content/internal/model"
)

var _ ArticleCache = (*Memory)(nil)

// Memory is an in-process ArticleCache backed by a map. Entries go
// through the same wire form as the Redis cache and never expire.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) GetArticle(ctx context.Context, slug string) (*model.Article, error) {
	m.mu.RLock()
	buf, ok := m.entries[articleKey(slug)]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	return decodeArticle(buf)
}

func (m *Memory) SetArticle(ctx context.Context, article *model.Article) error {
	buf, err := encodeArticle(article)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.entries[articleKey(article.Slug)] = buf
	m.mu.Unlock()

	return nil
}

func (m *Memory) DeleteArticle(ctx context.Context, slug string) error {
	m.mu.Lock()
	delete(m.entries, articleKey(slug))
	m.mu.Unlock()

	return nil
}
