package thesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractionObject(t *testing.T) {
	ext := ParseExtraction(`{"label":"Title","theses":[{"text":"a","summary":"s"}]}`)

	assert.Equal(t, "Title", ext.Label)
	require.Len(t, ext.Theses, 1)
	assert.Equal(t, Segment{Text: "a", Summary: "s"}, ext.Theses[0])
}

func TestParseExtractionLabelOnly(t *testing.T) {
	ext := ParseExtraction(`{"label":"Just a Title"}`)
	assert.Equal(t, "Just a Title", ext.Label)
	assert.Empty(t, ext.Theses)
}

func TestParseExtractionBareArray(t *testing.T) {
	ext := ParseExtraction(`[{"text":"a","summary":"s"},{"text":"b","summary":"t"}]`)

	assert.Empty(t, ext.Label)
	require.Len(t, ext.Theses, 2)
	assert.Equal(t, "b", ext.Theses[1].Text)
}

func TestParseExtractionMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"not json at all",
		`{"unrelated":true}`,
		`42`,
	} {
		ext := ParseExtraction(raw)
		assert.Empty(t, ext.Label, "input %q", raw)
		assert.Empty(t, ext.Theses, "input %q", raw)
	}
}

func TestParseExtractionSurroundingWhitespace(t *testing.T) {
	ext := ParseExtraction("\n  {\"label\":\"x\",\"theses\":[]}  \n")
	assert.Equal(t, "x", ext.Label)
}
