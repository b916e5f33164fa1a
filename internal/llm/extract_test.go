package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCandidate_FencedBlock(t *testing.T) {
	raw := "Sure! Here is the analysis you asked for:\n\n```json\n{\"summary\": \"good fit\"}\n```\n\nLet me know if you need anything else."

	candidate, ok := ExtractCandidate(raw)

	require.True(t, ok)
	assert.Equal(t, `{"summary": "good fit"}`, candidate)
}

func TestExtractCandidate_FencedBlockWinsOverBraces(t *testing.T) {
	raw := "Preamble {not this one}\n```json\n{\"picked\": true}\n```"

	candidate, ok := ExtractCandidate(raw)

	require.True(t, ok)
	assert.Equal(t, `{"picked": true}`, candidate)
}

func TestExtractCandidate_BraceSpan(t *testing.T) {
	raw := `The result is {"a": 1, "nested": {"b": 2}} as computed.`

	candidate, ok := ExtractCandidate(raw)

	require.True(t, ok)
	assert.Equal(t, `{"a": 1, "nested": {"b": 2}}`, candidate)
}

func TestExtractCandidate_None(t *testing.T) {
	for _, raw := range []string{
		"",
		"no structured data here at all",
		"an unmatched } brace",
		"} reversed {",
	} {
		_, ok := ExtractCandidate(raw)
		assert.False(t, ok, "input %q must yield no candidate", raw)
	}
}

func TestParseStrict_ThreeOutcomes(t *testing.T) {
	type payload struct {
		Summary string `json:"summary"`
	}

	t.Run("parsed", func(t *testing.T) {
		var p payload
		status := ParseStrict("prose\n```json\n{\"summary\": \"ok\"}\n```", &p)
		assert.Equal(t, StatusParsed, status)
		assert.Equal(t, "ok", p.Summary)
	})

	t.Run("malformed block inside fence", func(t *testing.T) {
		var p payload
		status := ParseStrict("```json\n{\"summary\": \"ok\",}\nnot json\n```", &p)
		assert.Equal(t, StatusParseFailed, status)
	})

	t.Run("no candidate", func(t *testing.T) {
		var p payload
		status := ParseStrict("I could not produce a structured answer.", &p)
		assert.Equal(t, StatusNoCandidate, status)
	})
}

func TestParseStatus_String(t *testing.T) {
	assert.Equal(t, "no candidate", StatusNoCandidate.String())
	assert.Equal(t, "parse failed", StatusParseFailed.String())
	assert.Equal(t, "parsed", StatusParsed.String())
}
