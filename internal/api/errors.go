package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/httputil"
	"github.com/wikipath/wikipath/internal/metrics"
	"github.com/wikipath/wikipath/internal/middleware"
)

// Error codes for standardized API responses.
const (
	ErrCodeInvalidRequest  = httputil.CodeInvalidRequest
	ErrCodeValidationError = httputil.CodeValidation
	ErrCodeNotFound        = httputil.CodeNotFound
	ErrCodeNoPath          = httputil.CodeNoPath
	ErrCodeAmbiguous       = httputil.CodeAmbiguous
	ErrCodeForbidden       = httputil.CodeForbidden
	ErrCodeInternalError   = httputil.CodeInternal
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondServiceError maps err to a response. Server-side failures are
// logged with action and their details withheld from the client.
func respondServiceError(c *gin.Context, log *logrus.Logger, err error, action string) {
	status, code, message := httputil.Classify(err)
	if status == http.StatusInternalServerError {
		middleware.Logger(c, log).WithError(err).Error(action)
	}

	respondError(c, status, code, message)
}
