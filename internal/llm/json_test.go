package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON_Plain(t *testing.T) {
	got := ExtractJSON(`Here are the insights: {"mistakes": ["rushed close"]}`)
	assert.JSONEq(t, `{"mistakes": ["rushed close"]}`, got)
}

func TestExtractJSON_MarkdownFence(t *testing.T) {
	in := "```json\n{\"strengths\": [\"rapport\"]}\n```"
	assert.JSONEq(t, `{"strengths": ["rapport"]}`, ExtractJSON(in))
}

func TestExtractJSON_NestedObjects(t *testing.T) {
	in := `prose {"a": {"b": 1}, "c": 2} trailing`
	assert.JSONEq(t, `{"a": {"b": 1}, "c": 2}`, ExtractJSON(in))
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	in := `{"note": "uses { and } inside", "n": 1}`
	assert.JSONEq(t, in, ExtractJSON(in))
}

func TestExtractJSON_NoObject(t *testing.T) {
	assert.Equal(t, "", ExtractJSON("no json here"))
	assert.Equal(t, "", ExtractJSON(""))
}

func TestExtractJSON_Unbalanced(t *testing.T) {
	assert.Equal(t, "", ExtractJSON(`{"never": "closed"`))
}
