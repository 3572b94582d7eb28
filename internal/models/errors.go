package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrInvalidID    = errors.New("id must be a positive integer")
	ErrMissingTitle = errors.New("title is required")
	ErrMissingSrc   = errors.New("src is required")
	ErrMissingDst   = errors.New("dst is required")

	// ErrUnknownAlgorithm means the requested search algorithm is not supported.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrTooManyDestinations means a query names more than MaxDestinations.
	ErrTooManyDestinations = errors.New("too many destinations")

	// ErrTooLong means a field exceeds its maximum length.
	ErrTooLong = errors.New("field too long")
)

// Sentinel errors for lookups.
var (
	// ErrNodeNotFound means an article id does not name an existing article.
	ErrNodeNotFound = errors.New("node not found")

	// ErrTitleNotFound means no article carries the requested title.
	ErrTitleNotFound = errors.New("title not found")

	// ErrAmbiguousTitle means more than one article carries the requested title.
	ErrAmbiguousTitle = errors.New("ambiguous title")
)

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d: %w", field, maxLen, ErrTooLong)
}
