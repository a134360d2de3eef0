package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/authorshaven/content/internal/compress"
	"github.com/authorshaven/content/internal/notify"
	"github.com/authorshaven/content/internal/service"
	"github.com/authorshaven/content/internal/store"
	"github.com/authorshaven/content/internal/tester"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}

type testServer struct {
	router *gin.Engine
	bus    *notify.Bus
	cancel context.CancelFunc
}

func newTestServer() *testServer {
	tester.Setup()

	contentStore := store.NewGormStore(tester.TestDB())
	bus := notify.NewBus()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = notify.NewDispatcher(bus, contentStore).Run(ctx)
	}()

	api := &API{
		articles:      service.NewArticleService(compress.NewGZip(), contentStore, tester.Cache()),
		likes:         service.NewLikeService(contentStore),
		profiles:      service.NewProfileService(contentStore, bus),
		notifications: service.NewNotificationService(contentStore),
	}

	return &testServer{
		router: NewRouter("test", api),
		bus:    bus,
		cancel: cancel,
	}
}

func (s *testServer) close() {
	s.cancel()
	_ = s.bus.Close()
}

func (s *testServer) do(t *testing.T, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(userHeader, user)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestArticleLifecycleOverHTTP(t *testing.T) {
	s := newTestServer()
	defer s.close()

	alice := uuid.New().String()
	bob := uuid.New().String()

	// unauthenticated creation is rejected before the handler runs
	w := s.do(t, http.MethodPost, "/api/articles", "", gin.H{"title": "Hello", "draft": "hello"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/articles", alice, gin.H{"title": "Hello", "draft": "hello"})
	assert.Equal(t, http.StatusCreated, w.Code)
	article := decode(t, w)["article"].(map[string]any)
	slug := article["slug"].(string)
	assert.Equal(t, "hello", slug)

	// drafts are invisible
	w = s.do(t, http.MethodGet, "/api/articles/"+slug, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodGet, "/api/articles", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode(t, w)["detail"], "no articles have been found")

	// bob cannot publish alice's article
	w = s.do(t, http.MethodPatch, "/api/articles/"+slug, bob, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPatch, "/api/articles/"+slug, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	published := decode(t, w)
	assert.Equal(t, "published", published["status"])
	assert.Equal(t, "hello", published["article"].(map[string]any)["body"])

	// bob likes it
	w = s.do(t, http.MethodPost, "/api/articles/"+slug+"/like", bob, gin.H{"is_like": true})
	assert.Equal(t, http.StatusCreated, w.Code)

	// a second cast is a conflict
	w = s.do(t, http.MethodPost, "/api/articles/"+slug+"/like", bob, gin.H{"is_like": false})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/articles/"+slug+"/likes", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	tally := decode(t, w)
	assert.Equal(t, float64(1), tally["likes"])
	assert.Equal(t, float64(0), tally["dislikes"])

	// soft delete returns a confirmation body, not the article
	w = s.do(t, http.MethodDelete, "/api/articles/"+slug, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "this article has been deleted", decode(t, w)["detail"])

	// everything slug-based now reads as not found, votes included
	w = s.do(t, http.MethodGet, "/api/articles/"+slug, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodGet, "/api/articles/"+slug+"/likes", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// and deletion is final for alice too
	w = s.do(t, http.MethodDelete, "/api/articles/"+slug, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowGraphOverHTTP(t *testing.T) {
	s := newTestServer()
	defer s.close()

	carol := uuid.New().String()
	dave := uuid.New().String()

	w := s.do(t, http.MethodPost, "/api/profiles", carol, gin.H{"username": "carol"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = s.do(t, http.MethodPost, "/api/profiles", dave, gin.H{"username": "dave"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// self-follow
	w = s.do(t, http.MethodPost, "/api/profiles/carol/follow", carol, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["detail"], "cannot follow yourself")

	w = s.do(t, http.MethodPost, "/api/profiles/dave/follow", carol, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/profiles/dave/relations", carol, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	relations := decode(t, w)
	followers := relations["followers"].([]any)
	assert.Len(t, followers, 1)
	assert.Equal(t, "carol", followers[0].(map[string]any)["username"])

	// duplicate follow
	w = s.do(t, http.MethodPost, "/api/profiles/dave/follow", carol, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// the committed follow produced an in-app notification for dave
	assert.Eventually(t, func() bool {
		w := s.do(t, http.MethodGet, "/api/notifications", dave, nil)
		if w.Code != http.StatusOK {
			return false
		}
		notifications := decode(t, w)["notifications"].([]any)
		return len(notifications) == 1
	}, 2*time.Second, 10*time.Millisecond)

	w = s.do(t, http.MethodDelete, "/api/profiles/dave/follow", carol, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// unfollow without an edge
	w = s.do(t, http.MethodDelete, "/api/profiles/dave/follow", carol, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/profiles/dave/relations", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["followers"])
}
