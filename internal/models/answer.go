package models

// Raw answer payloads as received from the renderer, one shape per question
// type. They arrive as json.RawMessage on the submission and are decoded by
// the grading engine; decoding failures are treated as an unanswered
// question, never as an error.

type CategorizeAnswer struct {
	Items []CategorizedItem `json:"items"`
}

// CategorizedItem records where the respondent dropped one item. ItemID is
// preferred for matching against the question's item list; Text is the
// fallback identity for older clients.
type CategorizedItem struct {
	ItemID   string `json:"itemId,omitempty"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// ClozeAnswer is positional: Blanks[i] answers the question's Blanks[i].
type ClozeAnswer struct {
	Blanks []BlankAnswer `json:"blanks"`
}

type BlankAnswer struct {
	Answer string `json:"answer"`
}

// ComprehensionAnswer is positional over the question's sub-question list.
type ComprehensionAnswer struct {
	Questions []SubQuestionAnswer `json:"questions"`
}

type SubQuestionAnswer struct {
	Answer string `json:"answer"`
}
