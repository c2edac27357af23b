// Package schemas provides JSON Schema validation for configuration and filter documents.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	embedded "github.com/jonathan/leadgen/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Rule    string // failed keyword, e.g. "required" or "enum"
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateJSONString validates JSON string content against schema string content.
func ValidateJSONString(schemaContent, jsonContent string) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaContent))
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema could not be compiled",
			Cause:   err,
		}
	}
	return validate(schema, []byte(jsonContent))
}

func validate(schema *gojsonschema.Schema, doc []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Rule: "json", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		validationErr.Errors = append(validationErr.Errors, fieldError(desc))
	}
	return validationErr
}

// fieldError names the offending field. Missing required properties are
// reported on the property rather than on its parent.
func fieldError(desc gojsonschema.ResultError) FieldError {
	field := desc.Field()
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			if field == "(root)" || field == "" {
				field = prop
			} else {
				field += "." + prop
			}
		}
	}
	if field == "" {
		field = "(root)"
	}
	return FieldError{Field: field, Rule: desc.Type(), Message: desc.Description()}
}

// compiled embedded schemas, built on first use
var (
	configSchema    = sync.OnceValues(func() (*gojsonschema.Schema, error) { return compile("config.schema.json", embedded.Config) })
	filterSetSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) { return compile("filter_set.schema.json", embedded.FilterSet) })
)

func compile(name, content string) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "embedded schema could not be compiled", Cause: err}
	}
	return schema, nil
}

// ValidateConfig validates a JSON configuration document.
func ValidateConfig(jsonContent []byte) error {
	schema, err := configSchema()
	if err != nil {
		return err
	}
	return validate(schema, jsonContent)
}

// ValidateFilterSet validates a JSON filter set document. It runs on every
// search request, so the schema is compiled once.
func ValidateFilterSet(jsonContent []byte) error {
	schema, err := filterSetSchema()
	if err != nil {
		return err
	}
	return validate(schema, jsonContent)
}
