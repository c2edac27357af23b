package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/leadgen/internal/enrich"
	"github.com/jonathan/leadgen/internal/export"
	"github.com/jonathan/leadgen/internal/fetch"
	"github.com/jonathan/leadgen/internal/schemas"
	"github.com/jonathan/leadgen/internal/search"
)

// errSuperseded is the cancellation cause of a search replaced by a newer one.
var errSuperseded = errors.New("search superseded by a newer request")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// newValidationError converts schema and struct validation failures into an
// *ErrValidation naming the first offending field.
func newValidationError(err error) error {
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0 {
		fe := schemaErr.Errors[0]
		return &ErrValidation{Field: fe.Field, Message: fe.Message}
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := "failed " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		return &ErrValidation{Field: lowerFirst(fe.Field()), Message: msg}
	}

	return &ErrValidation{Message: err.Error()}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var exportErr *export.ExportError
	var enrichErr *enrich.Error

	switch {
	case errors.As(err, &validationErr), errors.Is(err, search.ErrInvalidFilters),
		errors.Is(err, enrich.ErrUnsupportedHost), errors.Is(err, fetch.ErrBlockedAddress):
		return http.StatusBadRequest
	case errors.As(err, &exportErr), errors.As(err, &enrichErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
