package thesis

import (
	"encoding/json"
	"strings"
)

// ParseExtraction decodes a provider's thesis_extract payload. Two
// shapes are accepted: the full {"label": ..., "theses": [...]} object
// and, for older prompts, a bare array of {text, summary} items.
// Anything else degrades to a zero Extraction so the caller can fall
// back to local segmentation and summaries instead of failing the
// whole request.
func ParseExtraction(raw string) Extraction {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Extraction{}
	}

	var ext Extraction
	if err := json.Unmarshal([]byte(trimmed), &ext); err == nil && (len(ext.Theses) > 0 || ext.Label != "") {
		return ext
	}

	var bare []Segment
	if err := json.Unmarshal([]byte(trimmed), &bare); err == nil {
		return Extraction{Theses: bare}
	}

	return Extraction{}
}
