package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResume = `{
	"personalDetails": {"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"},
	"objective": {"summary": "Engines", "desiredRoles": []},
	"education": [{"degree": "BSc", "university": "London", "graduationYear": "1835", "coursework": []}],
	"skills": {"technical": ["math"], "soft": [], "additional": []},
	"experience": [{"jobTitle": "Analyst", "company": "Babbage", "startDate": "1842", "achievements": "Note G"}],
	"projects": [{"title": "Engine", "description": "Analytical"}],
	"extraCurricular": {"socialLinks": []},
	"leadership": {}
}`

func TestValidateBytes_ValidResume(t *testing.T) {
	assert.NoError(t, ValidateBytes(ResumeDataSchema, []byte(validResume)))
}

func TestValidateBytes_NullListRejected(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(validResume), &doc))
	doc["skills"].(map[string]any)["soft"] = nil

	err := Validate(ResumeDataSchema, doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, ResumeDataSchema, validationErr.Schema)
	require.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, validationErr.Errors[0].Field, "skills.soft")
}

func TestValidateBytes_MissingSection(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(validResume), &doc))
	delete(doc, "projects")

	err := Validate(ResumeDataSchema, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projects")
}

func TestValidateBytes_EmptyEducation(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(validResume), &doc))
	doc["education"] = []any{}

	err := Validate(ResumeDataSchema, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "education")
}

func TestValidateBytes_UnknownSchema(t *testing.T) {
	err := ValidateBytes("missing.schema.json", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "schema not embedded")
	assert.NotNil(t, loadErr.Unwrap())
}

func TestValidateBytes_MalformedDocument(t *testing.T) {
	err := ValidateBytes(ResumeDataSchema, []byte(`{ invalid json }`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidate_CoverLetterDraft(t *testing.T) {
	assert.NoError(t, Validate(CoverLetterDraftSchema, map[string]string{
		"jobTitle":    "Engineer",
		"companyName": "Acme",
		"content":     "Dear Acme,",
	}))

	err := Validate(CoverLetterDraftSchema, map[string]string{"jobTitle": "Engineer"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "companyName")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))

	err := ValidateJSONString(schema, `{"name": 1}`)
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{
		Schema: "x.schema.json",
		Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}},
	}
	assert.Equal(t, "validation failed against x.schema.json:\n  1. a: bad\n  2. b: worse\n", err.Error())
}
