// Package thesis splits free-form node text into ordered content
// segments and merges AI-produced summaries against prior state by
// content fingerprint.
package thesis

import "fmt"

// Fingerprint returns a stable content key for a segment text: a 32-bit
// rolling hash (h = h*31 + rune) rendered as fixed-width hex. Two
// segments share a key exactly when their verbatim text matches, which
// is what lets a summary survive unrelated edits elsewhere in the body.
func Fingerprint(text string) string {
	var h uint32
	for _, r := range text {
		h = h*31 + uint32(r)
	}
	return fmt.Sprintf("%08x", h)
}
