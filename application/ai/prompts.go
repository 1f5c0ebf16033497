package ai

// Response-format and language instruction texts. Providers can be
// given overrides per variant when one model needs different phrasing
// to hold the format.
const (
	textInstruction = "Answer the user's message directly. Be concise and do not " +
		"restate the question."

	qnaInstruction = "Ask clarifying questions about the user's message. Respond " +
		"strictly in this format, with no prose before or after:\n" +
		"Q: <question>\n- <option>\n- <option>"

	qnaInstructionGroq = "Ask clarifying questions about the user's message. Your " +
		"entire reply must consist of blocks of the exact form below and nothing " +
		"else:\nQ: <question>\n- <option>\n- <option>"

	thesisInstruction = "The user message is a JSON object of the form " +
		`{"text": ..., "contexts": [...]}. Split the text into coherent thesis ` +
		"segments. Respond with strict JSON only, no code fences, in the form " +
		`{"label": "<short document title>", "theses": [{"text": "<verbatim ` +
		`segment>", "summary": "<one short sentence>"}]}.`

	languageRu = "Отвечай на русском языке."
	languageEn = "Respond in English."
)

// DefaultLibrary returns the template library every deployment starts
// from.
func DefaultLibrary() *Library {
	l := NewLibrary()

	l.Register("response_type", "text", "", textInstruction)
	l.Register("response_type", "simple_qna", "", qnaInstruction)
	l.Register("response_type", "simple_qna", "groq", qnaInstructionGroq)
	l.Register("response_type", "thesis_extract", "", thesisInstruction)

	l.Register("language", "ru", "", languageRu)
	l.Register("language", "en", "", languageEn)
	l.Register("language", "", "", languageRu)

	return l
}
