package cache

import (
	"context"
	"errors"
	"time"

	"github.com/authorshaven/content/internal/model"
	redis "github.com/redis/go-redis/v9"
)

const articleTTL = time.Hour

func articleKey(slug string) string {
	return "article:" + slug
}

var _ ArticleCache = (*Redis)(nil)

type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		Protocol: 2,
	})

	return &Redis{client: client}
}

func (r *Redis) GetArticle(ctx context.Context, slug string) (*model.Article, error) {
	res := r.client.Get(ctx, articleKey(slug))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	return decodeArticle(buf)
}

func (r *Redis) SetArticle(ctx context.Context, article *model.Article) error {
	marshal, err := encodeArticle(article)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, articleKey(article.Slug), marshal, articleTTL).Err()
}

func (r *Redis) DeleteArticle(ctx context.Context, slug string) error {
	return r.client.Del(ctx, articleKey(slug)).Err()
}
