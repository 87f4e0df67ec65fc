// Package grading converts a question and a respondent's raw answer payload
// into a percentage score. Every scorer is a pure function and total over
// its inputs: malformed or missing payloads score 0 instead of failing, so
// one bad answer can never abort scoring of the rest of a submission.
package grading

import (
	"encoding/json"
	"strings"

	"github.com/formforge/formbuilder-service/internal/models"
)

// Result is the graded outcome for a single question. Points is a
// percentage in [0, 100]. IsCorrect is only meaningful for categorize and
// cloze questions; comprehension tracks correctness per sub-question inside
// its score and leaves the flag unset.
type Result struct {
	Points    float64
	IsCorrect bool
}

// Score grades one question against the raw payload submitted for it.
func Score(q models.Question, raw json.RawMessage) Result {
	switch q.Type {
	case models.QuestionCategorize:
		return scoreCategorize(q, raw)
	case models.QuestionCloze:
		return scoreCloze(q, raw)
	case models.QuestionComprehension:
		return scoreComprehension(q, raw)
	default:
		return Result{}
	}
}

// scoreCategorize awards one unit per item placed in its correct category.
// The question's item list is the denominator; submitted entries are matched
// by item id first, then by exact text. Items the respondent never placed
// count as incorrect.
func scoreCategorize(q models.Question, raw json.RawMessage) Result {
	total := len(q.Items)
	if total == 0 {
		return Result{}
	}

	var answer models.CategorizeAnswer
	if err := json.Unmarshal(raw, &answer); err != nil {
		return Result{}
	}

	correct := 0
	for _, item := range q.Items {
		placed, ok := findPlacedItem(answer.Items, item)
		if ok && placed.Category == item.Category {
			correct++
		}
	}

	return Result{
		Points:    float64(correct) / float64(total) * 100,
		IsCorrect: correct == total,
	}
}

func findPlacedItem(placed []models.CategorizedItem, item models.Item) (models.CategorizedItem, bool) {
	for _, p := range placed {
		if item.ID != "" && p.ItemID == item.ID {
			return p, true
		}
		if p.Text == item.Text {
			return p, true
		}
	}
	return models.CategorizedItem{}, false
}

// scoreCloze compares blanks positionally. The engine trusts the caller for
// blank order; both sides are trimmed and lower-cased before comparison.
func scoreCloze(q models.Question, raw json.RawMessage) Result {
	total := len(q.Blanks)
	if total == 0 {
		return Result{}
	}

	var answer models.ClozeAnswer
	if err := json.Unmarshal(raw, &answer); err != nil {
		return Result{}
	}

	correct := 0
	for i, blank := range q.Blanks {
		if i >= len(answer.Blanks) {
			break
		}
		if normalize(answer.Blanks[i].Answer) == normalize(blank.Answer) {
			correct++
		}
	}

	return Result{
		Points:    float64(correct) / float64(total) * 100,
		IsCorrect: correct == total,
	}
}

// scoreComprehension weighs each sub-question by its own points. Multiple
// choice and true/false earn full points on an exact match. Short answers
// earn half points when the submission contains the correct answer
// case-insensitively; the leniency is intentional.
func scoreComprehension(q models.Question, raw json.RawMessage) Result {
	var totalPoints float64
	for _, sub := range q.SubQuestions {
		totalPoints += sub.Points
	}
	if totalPoints == 0 {
		return Result{}
	}

	var answer models.ComprehensionAnswer
	if err := json.Unmarshal(raw, &answer); err != nil {
		return Result{}
	}

	var earned float64
	for i, sub := range q.SubQuestions {
		if i >= len(answer.Questions) {
			break
		}
		earned += scoreSubQuestion(sub, answer.Questions[i].Answer)
	}

	return Result{Points: earned / totalPoints * 100}
}

func scoreSubQuestion(sub models.SubQuestion, submitted string) float64 {
	switch sub.Type {
	case models.SubQuestionMultipleChoice, models.SubQuestionTrueFalse:
		if submitted == sub.CorrectAnswer {
			return sub.Points
		}
	case models.SubQuestionShortAnswer:
		if submitted != "" && strings.Contains(strings.ToLower(submitted), strings.ToLower(sub.CorrectAnswer)) {
			return sub.Points * 0.5
		}
	}
	return 0
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
