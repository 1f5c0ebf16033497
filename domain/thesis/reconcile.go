package thesis

import (
	"regexp"
	"strings"
)

// Thesis is a content segment paired with a short summary. The key is
// derived purely from the verbatim text, so it doubles as the segment's
// identity across edits.
type Thesis struct {
	Key     string `json:"key"`
	Text    string `json:"text"`
	Summary string `json:"thesis"`
}

// Segment is one extracted {text, summary} pair as returned by the
// external text-segmentation capability.
type Segment struct {
	Text    string `json:"text"`
	Summary string `json:"summary"`
}

// Extraction is the structured result of a thesis_extract round trip.
// A zero Extraction (no label, no segments) is the graceful-degradation
// value used when the provider returned something unusable.
type Extraction struct {
	Label  string    `json:"label"`
	Theses []Segment `json:"theses"`
}

// Result is the outcome of reconciling new raw text against the
// previously stored theses of a node.
type Result struct {
	Theses         []Thesis
	MergedContext  string
	NormalizedBody string
}

var bracketSegment = regexp.MustCompile(`(?s)\[\[(.*?)\]\]`)

// Reconcile splits rawBody into ordered segments, matches each against
// prev by content fingerprint and merges summaries.
//
// Segment selection, in strict priority order: the extraction's own
// segments; else [[...]] spans already present in rawBody; else the
// whole trimmed body as a single segment. Blank segments never produce
// a thesis.
//
// A previous thesis whose key and verbatim text both match keeps its
// cached summary untouched. Anything else gets the extraction's summary
// for that segment when present, otherwise the local fallback summary.
func Reconcile(prev []Thesis, rawBody string, extraction Extraction) Result {
	segments := selectSegments(rawBody, extraction)

	prevByKey := make(map[string]Thesis, len(prev))
	for _, t := range prev {
		prevByKey[t.Key] = t
	}

	extSummaries := make(map[string]string, len(extraction.Theses))
	for _, seg := range extraction.Theses {
		if seg.Summary != "" {
			extSummaries[seg.Text] = seg.Summary
		}
	}

	var theses []Thesis
	for _, seg := range segments {
		key := Fingerprint(seg)

		if old, ok := prevByKey[key]; ok && old.Text == seg {
			theses = append(theses, old)
			continue
		}

		summary := extSummaries[seg]
		if summary == "" {
			summary = Summarize(seg)
		}
		theses = append(theses, Thesis{Key: key, Text: seg, Summary: summary})
	}

	return Result{
		Theses:         theses,
		MergedContext:  mergeContext(theses),
		NormalizedBody: normalizeBody(theses),
	}
}

// selectSegments picks the canonical ordered segment list for rawBody,
// dropping blank entries.
func selectSegments(rawBody string, extraction Extraction) []string {
	var candidates []string

	switch {
	case len(extraction.Theses) > 0:
		for _, seg := range extraction.Theses {
			candidates = append(candidates, seg.Text)
		}
	case bracketSegment.MatchString(rawBody):
		for _, m := range bracketSegment.FindAllStringSubmatch(rawBody, -1) {
			candidates = append(candidates, strings.TrimSpace(m[1]))
		}
	default:
		candidates = append(candidates, strings.TrimSpace(rawBody))
	}

	var segments []string
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		segments = append(segments, c)
	}
	return segments
}

// mergeContext joins the non-blank summaries in segment order.
func mergeContext(theses []Thesis) string {
	var parts []string
	for _, t := range theses {
		if s := strings.TrimSpace(t.Summary); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "; ")
}

// normalizeBody re-serializes the segments in canonical bracketed form,
// regardless of how the input was delimited.
func normalizeBody(theses []Thesis) string {
	var parts []string
	for _, t := range theses {
		parts = append(parts, "[["+t.Text+"]]")
	}
	return strings.Join(parts, "\n\n")
}

const placeholderLabel = "Untitled"

// ResolveLabel picks a node label: an explicitly entered one wins, then
// the extraction's document-level label, then the first thesis summary,
// then the first words of the raw body, then a fixed placeholder.
func ResolveLabel(explicit string, extraction Extraction, theses []Thesis, rawBody string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}
	if s := strings.TrimSpace(extraction.Label); s != "" {
		return s
	}
	if len(theses) > 0 {
		if s := strings.TrimSpace(theses[0].Summary); s != "" {
			return s
		}
	}
	if words := strings.Fields(rawBody); len(words) > 0 {
		if len(words) > 4 {
			words = words[:4]
		}
		return strings.Join(words, " ")
	}
	return placeholderLabel
}
