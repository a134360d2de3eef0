package cache

import (
	"context"
	"testing"

	"github.com/authorshaven/content/internal/compress"
	"github.com/authorshaven/content/internal/model"
	"github.com/stretchr/testify/assert"
)

func compressedArticle(t *testing.T, draft, body string) *model.Article {
	t.Helper()

	codec := compress.NewGZip()
	encodedDraft, err := codec.Encode([]byte(draft))
	assert.NoError(t, err)
	encodedBody, err := codec.Encode([]byte(body))
	assert.NoError(t, err)

	return &model.Article{
		ID:          "11111111-2222-3333-4444-555555555555",
		Slug:        "compressed-at-rest",
		AuthorID:    "66666666-7777-8888-9999-000000000000",
		Title:       "Compressed At Rest",
		Draft:       string(encodedDraft),
		Body:        string(encodedBody),
		Compression: codec.Name(),
		Published:   true,
		Activated:   true,
	}
}

// Draft and Body hold gzip output, which is not valid UTF-8. The cache
// wire form must hand the bytes back untouched or a hit can no longer
// be decompressed.
func TestArticleRecord_RoundTrip(t *testing.T) {
	article := compressedArticle(t, "the working copy", "the published copy")

	buf, err := encodeArticle(article)
	assert.NoError(t, err)

	got, err := decodeArticle(buf)
	assert.NoError(t, err)
	assert.Equal(t, []byte(article.Draft), []byte(got.Draft))
	assert.Equal(t, []byte(article.Body), []byte(got.Body))
	assert.Equal(t, article.Slug, got.Slug)
	assert.Equal(t, article.Compression, got.Compression)
	assert.True(t, got.Visible())

	codec := compress.FromName(got.Compression)
	draft, err := codec.Decode([]byte(got.Draft))
	assert.NoError(t, err)
	assert.Equal(t, "the working copy", string(draft))

	body, err := codec.Decode([]byte(got.Body))
	assert.NoError(t, err)
	assert.Equal(t, "the published copy", string(body))
}

func TestMemory(t *testing.T) {
	articles := NewMemory()
	article := compressedArticle(t, "draft", "body")

	// a miss is (nil, nil)
	got, err := articles.GetArticle(context.TODO(), article.Slug)
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, articles.SetArticle(context.TODO(), article))

	got, err = articles.GetArticle(context.TODO(), article.Slug)
	assert.NoError(t, err)
	assert.Equal(t, article.ID, got.ID)
	assert.Equal(t, []byte(article.Body), []byte(got.Body))

	assert.NoError(t, articles.DeleteArticle(context.TODO(), article.Slug))

	got, err = articles.GetArticle(context.TODO(), article.Slug)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
