package thesis

import "strings"

const maxSummaryTokens = 8

// stopWords is the fixed bilingual set dropped by the fallback
// summarizer. Tokens of one or two runes are dropped regardless, so
// only longer function words need to be listed.
var stopWords = map[string]bool{
	// English
	"the": true, "and": true, "for": true, "that": true, "this": true,
	"with": true, "are": true, "was": true, "were": true, "been": true,
	"have": true, "has": true, "had": true, "not": true, "but": true,
	"you": true, "your": true, "its": true, "from": true, "they": true,
	"will": true, "would": true, "could": true, "should": true,
	"there": true, "their": true, "what": true, "when": true, "which": true,
	// Russian
	"это": true, "как": true, "так": true, "или": true, "для": true,
	"что": true, "чтобы": true, "если": true, "когда": true, "где": true,
	"его": true, "она": true, "они": true, "оно": true, "еще": true,
	"ещё": true, "уже": true, "только": true, "быть": true, "был": true,
	"была": true, "были": true, "есть": true, "нет": true, "при": true,
	"над": true, "под": true, "все": true, "всё": true, "также": true,
}

// clauseDelimiters terminate the first sentence-like clause.
const clauseDelimiters = ".!?;\n"

// strippedRunes are bracket and quote characters removed from tokens.
const strippedRunes = "[]{}()\"'«»“”‘’`"

// Summarize derives a short summary from a segment when the external
// extraction did not provide one: the first clause is tokenized, short
// and stop-word tokens are filtered out and the first few survivors are
// joined back together. If filtering leaves nothing, the raw tokens of
// the clause are used instead.
func Summarize(segment string) string {
	clause := firstClause(segment)
	raw := strings.Fields(strings.Map(stripRune, clause))

	var kept []string
	for _, tok := range raw {
		if len([]rune(tok)) <= 2 {
			continue
		}
		if stopWords[strings.ToLower(tok)] {
			continue
		}
		kept = append(kept, tok)
		if len(kept) == maxSummaryTokens {
			break
		}
	}

	if len(kept) == 0 {
		kept = raw
		if len(kept) > maxSummaryTokens {
			kept = kept[:maxSummaryTokens]
		}
	}

	return strings.Join(kept, " ")
}

func firstClause(s string) string {
	if i := strings.IndexAny(s, clauseDelimiters); i >= 0 {
		return s[:i]
	}
	return s
}

func stripRune(r rune) rune {
	if strings.ContainsRune(strippedRunes, r) {
		return -1
	}
	return r
}
