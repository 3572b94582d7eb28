package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/middleware"
	"github.com/wikipath/wikipath/internal/models"
	"github.com/wikipath/wikipath/internal/service"
)

// maxBulkItems caps the items in one bulk request.
const maxBulkItems = 5000

// BulkHandler serves batch load endpoints.
type BulkHandler struct {
	svc BulkService
	log *logrus.Logger
}

// NewBulkHandler creates a BulkHandler.
func NewBulkHandler(svc BulkService, log *logrus.Logger) *BulkHandler {
	return &BulkHandler{svc: svc, log: log}
}

// bindBulk decodes a JSON array body and enforces the item cap.
func bindBulk[T any](c *gin.Context) ([]T, bool) {
	var items []T
	if err := c.ShouldBindJSON(&items); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return nil, false
	}

	if len(items) > maxBulkItems {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "bulk request exceeds maximum of 5000 items")
		return nil, false
	}

	return items, true
}

// respondBulkError handles the write-specific errors before the shared
// mapping. A link naming a missing article is a bad request, not a lookup
// miss.
func (h *BulkHandler) respondBulkError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrReadOnly):
		respondError(c, http.StatusForbidden, ErrCodeForbidden, "bulk loading is disabled on this server")
	case errors.Is(err, models.ErrNodeNotFound):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
	default:
		respondServiceError(c, h.log, err, action)
	}
}

// Articles handles POST /api/v1/bulk/articles.
func (h *BulkHandler) Articles(c *gin.Context) {
	reqs, ok := bindBulk[models.CreateArticleRequest](c)
	if !ok {
		return
	}

	n, err := h.svc.BulkUpsertArticles(c.Request.Context(), reqs)
	if err != nil {
		h.respondBulkError(c, err, "bulk upserting articles")
		return
	}

	middleware.Logger(c, h.log).WithFields(logrus.Fields{"action": "bulk.articles", "upserted": n}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"upserted": n})
}

// Links handles POST /api/v1/bulk/links.
func (h *BulkHandler) Links(c *gin.Context) {
	reqs, ok := bindBulk[models.CreateLinkRequest](c)
	if !ok {
		return
	}

	n, err := h.svc.BulkInsertLinks(c.Request.Context(), reqs)
	if err != nil {
		h.respondBulkError(c, err, "bulk inserting links")
		return
	}

	middleware.Logger(c, h.log).WithFields(logrus.Fields{"action": "bulk.links", "inserted": n}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"inserted": n})
}
