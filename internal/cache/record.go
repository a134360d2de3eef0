package cache

import (
	"encoding/json"
	"time"

	"github.com/authorshaven/content/internal/model"
)

// articleRecord is the wire form of a cached article. Draft and Body
// hold compressed bytes, which are not valid UTF-8; carrying them as
// []byte makes them travel base64-encoded, where a raw string would let
// json substitute the invalid sequences and corrupt the payload.
type articleRecord struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	AuthorID    string    `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        string    `json:"tags"`
	Draft       []byte    `json:"draft"`
	Body        []byte    `json:"body"`
	Compression string    `json:"compression"`
	Published   bool      `json:"published"`
	Activated   bool      `json:"activated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func encodeArticle(article *model.Article) ([]byte, error) {
	return json.Marshal(&articleRecord{
		ID:          article.ID,
		Slug:        article.Slug,
		AuthorID:    article.AuthorID,
		Title:       article.Title,
		Description: article.Description,
		Tags:        article.Tags,
		Draft:       []byte(article.Draft),
		Body:        []byte(article.Body),
		Compression: article.Compression,
		Published:   article.Published,
		Activated:   article.Activated,
		CreatedAt:   article.CreatedAt,
		UpdatedAt:   article.UpdatedAt,
	})
}

func decodeArticle(buf []byte) (*model.Article, error) {
	record := &articleRecord{}
	if err := json.Unmarshal(buf, record); err != nil {
		return nil, err
	}

	article := &model.Article{
		ID:          record.ID,
		Slug:        record.Slug,
		AuthorID:    record.AuthorID,
		Title:       record.Title,
		Description: record.Description,
		Tags:        record.Tags,
		Draft:       string(record.Draft),
		Body:        string(record.Body),
		Compression: record.Compression,
		Published:   record.Published,
		Activated:   record.Activated,
	}
	article.CreatedAt = record.CreatedAt
	article.UpdatedAt = record.UpdatedAt

	return article, nil
}
