package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ArticleHandler serves article lookup endpoints.
type ArticleHandler struct {
	svc ArticleService
	log *logrus.Logger
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(svc ArticleService, log *logrus.Logger) *ArticleHandler {
	return &ArticleHandler{svc: svc, log: log}
}

// Get handles GET /api/v1/articles/:id.
func (h *ArticleHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "id must be a positive integer")
		return
	}

	article, err := h.svc.GetArticle(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting article")
		return
	}

	c.JSON(http.StatusOK, article)
}

// Resolve handles GET /api/v1/articles?title=.
func (h *ArticleHandler) Resolve(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "title query parameter is required")
		return
	}

	article, err := h.svc.Resolve(c.Request.Context(), title)
	if err != nil {
		respondServiceError(c, h.log, err, "resolving title")
		return
	}

	c.JSON(http.StatusOK, article)
}
