package thesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcilePreservesUnchangedSummaries(t *testing.T) {
	prev := []Thesis{
		{Key: Fingerprint("Segment A"), Text: "Segment A", Summary: "cached summary A"},
	}
	ext := Extraction{Theses: []Segment{
		{Text: "Segment A", Summary: "fresh summary A"},
		{Text: "Segment B", Summary: "fresh summary B"},
	}}

	result := Reconcile(prev, "Segment A Segment B", ext)
	require.Len(t, result.Theses, 2)

	// A is verbatim-unchanged: the cached summary survives the round trip.
	assert.Equal(t, "cached summary A", result.Theses[0].Summary)
	assert.Equal(t, "fresh summary B", result.Theses[1].Summary)
	assert.Equal(t, Fingerprint("Segment B"), result.Theses[1].Key)
}

func TestReconcileChangedTextGetsNewSummary(t *testing.T) {
	prev := []Thesis{
		{Key: Fingerprint("old text"), Text: "old text", Summary: "stale"},
	}
	ext := Extraction{Theses: []Segment{
		{Text: "brand new text", Summary: "minted"},
	}}

	result := Reconcile(prev, "brand new text", ext)
	require.Len(t, result.Theses, 1)
	assert.Equal(t, "minted", result.Theses[0].Summary)
	assert.NotEqual(t, "stale", result.Theses[0].Summary)
}

func TestReconcileBracketFallback(t *testing.T) {
	result := Reconcile(nil, "[[first point]] noise between [[second point]]", Extraction{})

	require.Len(t, result.Theses, 2)
	assert.Equal(t, "first point", result.Theses[0].Text)
	assert.Equal(t, "second point", result.Theses[1].Text)
	assert.Equal(t, "[[first point]]\n\n[[second point]]", result.NormalizedBody)
}

func TestReconcilePlainBodyFallback(t *testing.T) {
	result := Reconcile(nil, "  a single undelimited thought  ", Extraction{})

	require.Len(t, result.Theses, 1)
	assert.Equal(t, "a single undelimited thought", result.Theses[0].Text)
	assert.Equal(t, "[[a single undelimited thought]]", result.NormalizedBody)
}

func TestReconcileBlankSegmentsDropped(t *testing.T) {
	result := Reconcile(nil, "[[keep]] [[   ]] [[also keep]]", Extraction{})

	require.Len(t, result.Theses, 2)
	assert.Equal(t, "keep", result.Theses[0].Text)
	assert.Equal(t, "also keep", result.Theses[1].Text)
}

func TestReconcileBlankBody(t *testing.T) {
	result := Reconcile(nil, "   ", Extraction{})

	assert.Empty(t, result.Theses)
	assert.Empty(t, result.MergedContext)
	assert.Empty(t, result.NormalizedBody)
}

func TestReconcileMergedContext(t *testing.T) {
	ext := Extraction{Theses: []Segment{
		{Text: "one", Summary: "summary one"},
		{Text: "two", Summary: "summary two"},
	}}

	result := Reconcile(nil, "one two", ext)
	assert.Equal(t, "summary one; summary two", result.MergedContext)
}

func TestReconcileLocalSummaryWhenExtractionSilent(t *testing.T) {
	ext := Extraction{Theses: []Segment{
		{Text: "Compilers translate source programs into machine code"},
	}}

	result := Reconcile(nil, "whatever", ext)
	require.Len(t, result.Theses, 1)
	assert.Equal(t, Summarize("Compilers translate source programs into machine code"), result.Theses[0].Summary)
	assert.NotEmpty(t, result.Theses[0].Summary)
}

func TestReconcileExtractionOrderWins(t *testing.T) {
	// Extraction segments take priority even when brackets are present.
	ext := Extraction{Theses: []Segment{
		{Text: "from extraction", Summary: "s"},
	}}

	result := Reconcile(nil, "[[from brackets]]", ext)
	require.Len(t, result.Theses, 1)
	assert.Equal(t, "from extraction", result.Theses[0].Text)
}

func TestResolveLabel(t *testing.T) {
	theses := []Thesis{{Summary: "first summary"}}

	t.Run("explicit wins", func(t *testing.T) {
		got := ResolveLabel(" My Label ", Extraction{Label: "ext"}, theses, "raw body")
		assert.Equal(t, "My Label", got)
	})

	t.Run("extraction label", func(t *testing.T) {
		got := ResolveLabel("", Extraction{Label: "Document Title"}, theses, "raw body")
		assert.Equal(t, "Document Title", got)
	})

	t.Run("first summary", func(t *testing.T) {
		got := ResolveLabel("", Extraction{}, theses, "raw body")
		assert.Equal(t, "first summary", got)
	})

	t.Run("first words of body", func(t *testing.T) {
		got := ResolveLabel("", Extraction{}, nil, "one two three four five six")
		assert.Equal(t, "one two three four", got)
	})

	t.Run("placeholder", func(t *testing.T) {
		got := ResolveLabel("", Extraction{}, nil, "   ")
		assert.Equal(t, "Untitled", got)
	})
}

func TestFingerprintStability(t *testing.T) {
	assert.Equal(t, Fingerprint("hello"), Fingerprint("hello"))
	assert.NotEqual(t, Fingerprint("hello"), Fingerprint("hello "))
	assert.Len(t, Fingerprint("anything at all"), 8)
	assert.Equal(t, "00000000", Fingerprint(""))
}
