package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/authorshaven/content/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// userHeader carries the opaque user id supplied by the external identity
// provider. This service trusts it and never authenticates.
const userHeader = "X-User-Id"

// API bundles the services exposed over HTTP.
type API struct {
	articles      *service.ArticleService
	likes         *service.LikeService
	profiles      *service.ProfileService
	notifications *service.NotificationService
}

func NewRouter(env string, api *API) *gin.Engine {
	if env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	root := r.Group("/api")

	root.POST("/articles", authenticated(api.createArticle))
	root.GET("/articles", api.listArticles)
	root.GET("/articles/:slug", api.getArticle)
	root.PUT("/articles/:slug", authenticated(api.updateArticle))
	root.PATCH("/articles/:slug", authenticated(api.publishArticle))
	root.DELETE("/articles/:slug", authenticated(api.deleteArticle))

	root.POST("/articles/:slug/like", authenticated(api.castLike))
	root.GET("/articles/:slug/like", authenticated(api.getLike))
	root.GET("/articles/:slug/likes", api.tallyLikes)
	root.PATCH("/likes/:id", authenticated(api.updateLike))
	root.DELETE("/likes/:id", authenticated(api.deleteLike))

	root.POST("/profiles", authenticated(api.createProfile))
	root.GET("/profiles", authenticated(api.listProfiles))
	root.GET("/profiles/:username", api.getProfile)
	root.GET("/profiles/:username/relations", api.listRelations)
	root.POST("/profiles/:username/follow", authenticated(api.follow))
	root.DELETE("/profiles/:username/follow", authenticated(api.unfollow))

	root.PUT("/profile/notifications", authenticated(api.toggleNotifications))
	root.GET("/notifications", authenticated(api.listNotifications))
	root.PATCH("/notifications/:id/read", authenticated(api.readNotification))

	return r
}

// authenticated rejects requests without a user id header before the
// handler runs.
func authenticated(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if requester(c) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
			return
		}
		handler(c)
	}
}

func requester(c *gin.Context) string {
	return c.GetHeader(userHeader)
}

// renderError maps a service error kind to a transport status. The
// message is the kind-stripped service message, stable per violation.
func renderError(c *gin.Context, err error) {
	var code int

	switch {
	case errors.Is(err, service.ErrNotArticleOwner):
		// article ownership failures read as unauthorized, the rest of
		// the forbidden family as 403
		code = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrEmptyResult):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrInvalidOperation):
		code = http.StatusBadRequest
	default:
		logrus.Errorf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(code, gin.H{"detail": detail(err)})
}

func detail(err error) string {
	msg := err.Error()
	if _, rest, found := strings.Cut(msg, ": "); found {
		return rest
	}
	return msg
}
