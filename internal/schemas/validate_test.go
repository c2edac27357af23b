package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSONString_Valid(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`
	assert.NoError(t, ValidateJSONString(schema, `{"name":"leadgen"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	err := ValidateJSONString(schema, `{"name": 5}`)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "name", verr.Errors[0].Field)
}

func TestValidateJSONString_BrokenSchema(t *testing.T) {
	err := ValidateJSONString(`{not a schema`, `{}`)
	require.Error(t, err)

	var lerr *SchemaLoadError
	assert.ErrorAs(t, err, &lerr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "port", Message: "Must be less than or equal to 65535"},
		{Field: "(root)", Message: "Additional property foo is not allowed"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. port: Must be less than or equal to 65535")
	assert.Contains(t, msg, "2. (root): Additional property foo is not allowed")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"empty object", `{}`, false},
		{"full", `{"port":9000,"cache_ttl":"5m","use_browser":true,"engines":{"twitter":{"api_key":"k","engine_id":"cx"}}}`, false},
		{"unknown field", `{"job_url":"https://example.com"}`, true},
		{"port out of range", `{"port":70000}`, true},
		{"bad duration", `{"request_timeout":"soon"}`, true},
		{"unknown engine platform", `{"engines":{"myspace":{"api_key":"k"}}}`, true},
		{"unknown engine field", `{"engines":{"linkedin":{"token":"k"}}}`, true},
		{"bad redis url", `{"redis_url":"localhost:6379"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFilterSet(t *testing.T) {
	assert.NoError(t, ValidateFilterSet([]byte(`{"platform":"linkedin","page":2,"jobTitle":"CFO"}`)))
	assert.Error(t, ValidateFilterSet([]byte(`{"jobTitle":"CFO"}`)))
	assert.Error(t, ValidateFilterSet([]byte(`{"platform":"linkedin","page":0}`)))
	assert.Error(t, ValidateFilterSet([]byte(`{"platform":"linkedin","seniority":"intern"}`)))
}

func TestValidateFilterSet_MissingPropertyNamesField(t *testing.T) {
	err := ValidateFilterSet([]byte(`{"jobTitle":"CFO"}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Errors)
	assert.Equal(t, "platform", verr.Errors[0].Field)
	assert.Equal(t, "required", verr.Errors[0].Rule)
}

func TestValidateFilterSet_EnumRule(t *testing.T) {
	err := ValidateFilterSet([]byte(`{"platform":"linkedin","education":"kindergarten"}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "education", verr.Errors[0].Field)
	assert.Equal(t, "enum", verr.Errors[0].Rule)
}

func TestValidateFilterSet_NotJSON(t *testing.T) {
	var verr *ValidationError
	require.ErrorAs(t, ValidateFilterSet([]byte(`{"platform":`)), &verr)
	assert.Equal(t, "(root)", verr.Errors[0].Field)
}
