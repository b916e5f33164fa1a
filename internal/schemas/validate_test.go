package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validEnhancement = `{
	"summary": "Strong backend profile with a gap in distributed systems.",
	"strengths": ["REST API experience", "Strong SQL"],
	"gaps": ["No Kubernetes exposure"],
	"suggestions": ["Quantify the latency win on the payments project"],
	"tailored_pitch": "Backend engineer who ships measured improvements.",
	"estimated_fit_pct": 72
}`

const validRoadmap = `{
	"target_role": "Backend Engineer",
	"total_weeks": 12,
	"phases": [
		{
			"title": "Foundations",
			"weeks": 4,
			"focus": "Core language and tooling",
			"topics": ["Go basics", "git"],
			"milestone": "CLI tool published on GitHub"
		},
		{
			"title": "Services",
			"weeks": 8,
			"focus": "HTTP services and persistence",
			"topics": ["REST", "PostgreSQL"],
			"milestone": "Deployed CRUD service with tests"
		}
	]
}`

func TestValidateEnhancement_Valid(t *testing.T) {
	assert.NoError(t, ValidateEnhancement([]byte(validEnhancement)))
}

func TestValidateEnhancement_MissingFields(t *testing.T) {
	err := ValidateEnhancement([]byte(`{"summary": "only a summary"}`))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, err.Error(), "strengths")
}

func TestValidateEnhancement_FitOutOfRange(t *testing.T) {
	doc := `{
		"summary": "s",
		"strengths": ["a"],
		"gaps": [],
		"suggestions": ["b"],
		"tailored_pitch": "p",
		"estimated_fit_pct": 140
	}`
	err := ValidateEnhancement([]byte(doc))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "estimated_fit_pct")
}

func TestValidateEnhancement_UnknownField(t *testing.T) {
	doc := `{
		"summary": "s",
		"strengths": ["a"],
		"gaps": [],
		"suggestions": ["b"],
		"tailored_pitch": "p",
		"estimated_fit_pct": 50,
		"extra": true
	}`
	assert.Error(t, ValidateEnhancement([]byte(doc)))
}

func TestValidateRoadmap_Valid(t *testing.T) {
	assert.NoError(t, ValidateRoadmap([]byte(validRoadmap)))
}

func TestValidateRoadmap_EmptyPhases(t *testing.T) {
	doc := `{"target_role": "SRE", "total_weeks": 6, "phases": []}`
	err := ValidateRoadmap([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phases")
}

func TestValidateRoadmap_PhaseMissingMilestone(t *testing.T) {
	doc := `{
		"target_role": "SRE",
		"total_weeks": 4,
		"phases": [
			{"title": "Phase", "weeks": 4, "focus": "f", "topics": ["t"]}
		]
	}`
	err := ValidateRoadmap([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "milestone")
}

func TestValidate_NotJSON(t *testing.T) {
	err := ValidateEnhancement([]byte("not json at all"))
	require.Error(t, err)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))
	require.Error(t, err)

	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}
