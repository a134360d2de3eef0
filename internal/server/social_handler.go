package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type castLikeRequest struct {
	IsLike *bool `json:"is_like" binding:"required"`
}

func (a *API) castLike(c *gin.Context) {
	var request castLikeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "is_like is required"})
		return
	}

	like, err := a.likes.Cast(c.Request.Context(), requester(c), c.Param("slug"), *request.IsLike)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"like": like})
}

func (a *API) getLike(c *gin.Context) {
	like, err := a.likes.Get(c.Request.Context(), requester(c), c.Param("slug"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"like": like})
}

func (a *API) tallyLikes(c *gin.Context) {
	tally, err := a.likes.Tally(c.Request.Context(), c.Param("slug"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, tally)
}

func (a *API) updateLike(c *gin.Context) {
	var request castLikeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "is_like is required"})
		return
	}

	like, err := a.likes.Update(c.Request.Context(), c.Param("id"), requester(c), *request.IsLike)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"like": like})
}

func (a *API) deleteLike(c *gin.Context) {
	if err := a.likes.Delete(c.Request.Context(), c.Param("id"), requester(c)); err != nil {
		renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type createProfileRequest struct {
	Username string `json:"username" binding:"required"`
}

func (a *API) createProfile(c *gin.Context) {
	var request createProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username is required"})
		return
	}

	profile, err := a.profiles.Create(c.Request.Context(), requester(c), request.Username)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

func (a *API) listProfiles(c *gin.Context) {
	profiles, err := a.profiles.List(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

func (a *API) getProfile(c *gin.Context) {
	profile, err := a.profiles.Get(c.Request.Context(), c.Param("username"), requester(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (a *API) listRelations(c *gin.Context) {
	relations, err := a.profiles.Relations(c.Request.Context(), c.Param("username"), requester(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, relations)
}

func (a *API) follow(c *gin.Context) {
	username := c.Param("username")

	profile, err := a.profiles.Follow(c.Request.Context(), requester(c), username)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("you are now following %s", username),
		"profile": profile,
	})
}

func (a *API) unfollow(c *gin.Context) {
	username := c.Param("username")

	profile, err := a.profiles.Unfollow(c.Request.Context(), requester(c), username)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("you just unfollowed %s", username),
		"profile": profile,
	})
}

func (a *API) toggleNotifications(c *gin.Context) {
	enabled, err := a.profiles.ToggleNotifications(c.Request.Context(), requester(c))
	if err != nil {
		renderError(c, err)
		return
	}

	state := "off"
	if enabled {
		state = "on"
	}

	c.JSON(http.StatusOK, gin.H{"message": "you have turned app notifications " + state})
}

func (a *API) listNotifications(c *gin.Context) {
	notifications, err := a.notifications.List(c.Request.Context(), requester(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (a *API) readNotification(c *gin.Context) {
	if err := a.notifications.MarkRead(c.Request.Context(), c.Param("id"), requester(c)); err != nil {
		renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
