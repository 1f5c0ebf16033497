package ai

import (
	"regexp"
	"strings"
)

// Question is one parsed clarifying-question block.
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// nextMarker is appended to every option list so the UI always has an
// advance affordance.
const nextMarker = "Next ->"

var optionLine = regexp.MustCompile(`^\s*-\s*(.+)$`)

// ParseQuestions extracts Q:/bullet blocks from untrusted provider
// text. The recognized grammar is deliberately narrow: everything
// before the first "Q:" marker is discarded, a block is a "Q:" line
// followed by "- " bullets, any other line inside a block is ignored,
// and a question without at least one option is dropped entirely.
func ParseQuestions(raw string) []Question {
	start := strings.Index(raw, "Q:")
	if start < 0 {
		return nil
	}

	var questions []Question
	var current *Question

	flush := func() {
		if current != nil && current.Question != "" && len(current.Options) > 0 {
			current.Options = append(current.Options, nextMarker)
			current.ID = len(questions) + 1
			questions = append(questions, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(raw[start:], "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Q:") {
			flush()
			current = &Question{Question: strings.TrimSpace(trimmed[len("Q:"):])}
			continue
		}
		if current == nil {
			continue
		}
		if m := optionLine.FindStringSubmatch(line); m != nil {
			current.Options = append(current.Options, strings.TrimSpace(m[1]))
		}
	}
	flush()

	return questions
}
