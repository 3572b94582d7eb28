package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/wikipath/wikipath/internal/models"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeInvalidRequest = "invalid_request"
	CodeValidation     = "validation_error"
	CodeNotFound       = "not_found"
	CodeNoPath         = "no_path"
	CodeAmbiguous      = "ambiguous_title"
	CodeForbidden      = "forbidden"
	CodeTimeout        = "timeout"
	CodeInternal       = "internal_error"
)

// Classify maps a service error to an HTTP status and error code. The
// message is err's text for client errors and a generic one otherwise.
func Classify(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, models.ErrAmbiguousTitle):
		return http.StatusConflict, CodeAmbiguous, err.Error()
	case errors.Is(err, models.ErrTitleNotFound), errors.Is(err, models.ErrNodeNotFound):
		return http.StatusNotFound, CodeNotFound, err.Error()
	case errors.Is(err, models.ErrInvalidID),
		errors.Is(err, models.ErrMissingTitle),
		errors.Is(err, models.ErrMissingSrc),
		errors.Is(err, models.ErrMissingDst),
		errors.Is(err, models.ErrUnknownAlgorithm),
		errors.Is(err, models.ErrTooLong),
		errors.Is(err, models.ErrTooManyDestinations):
		return http.StatusBadRequest, CodeValidation, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeTimeout, "search timed out"
	default:
		return http.StatusInternalServerError, CodeInternal, "internal server error"
	}
}
