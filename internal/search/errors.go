package search

import (
	"errors"
	"fmt"

	"github.com/jonathan/leadgen/internal/types"
)

var (
	// ErrEngineNotConfigured is returned when a platform has no API key or engine id.
	ErrEngineNotConfigured = errors.New("search engine not configured")
	// ErrInvalidFilters wraps validation failures of a filter set.
	ErrInvalidFilters = errors.New("invalid filters")
)

// Error describes a failed page fetch.
type Error struct {
	Platform types.Platform
	Page     int
	Cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("search failed for %s page %d: %v", e.Platform, e.Page, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
