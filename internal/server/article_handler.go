package server

import (
	"net/http"
	"strconv"

	"github.com/authorshaven/content/internal/service"
	"github.com/gin-gonic/gin"
)

func (a *API) createArticle(c *gin.Context) {
	var request service.CreateArticleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	article, err := a.articles.Create(c.Request.Context(), requester(c), &request)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

func (a *API) listArticles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	articles, total, err := a.articles.List(c.Request.Context(), limit, offset)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles, "count": total})
}

func (a *API) getArticle(c *gin.Context) {
	article, err := a.articles.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

func (a *API) updateArticle(c *gin.Context) {
	var request service.UpdateArticleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	article, err := a.articles.Update(c.Request.Context(), c.Param("slug"), requester(c), &request)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

func (a *API) publishArticle(c *gin.Context) {
	article, err := a.articles.Publish(c.Request.Context(), c.Param("slug"), requester(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article, "status": "published"})
}

func (a *API) deleteArticle(c *gin.Context) {
	err := a.articles.SoftDelete(c.Request.Context(), c.Param("slug"), requester(c))
	if err != nil {
		renderError(c, err)
		return
	}

	// the article payload is withheld on purpose: deletion is final
	c.JSON(http.StatusOK, gin.H{"detail": "this article has been deleted"})
}
