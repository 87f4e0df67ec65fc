package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveAnswerOptions(t *testing.T) {
	t.Run("uses configured options when present", func(t *testing.T) {
		q := Question{
			Type:          QuestionCloze,
			Blanks:        []Blank{{Answer: "Paris"}},
			AnswerOptions: []string{"Paris", "London", "Rome"},
		}

		assert.Equal(t, []string{"Paris", "London", "Rome"}, q.EffectiveAnswerOptions())
	})

	t.Run("falls back to blank answers", func(t *testing.T) {
		q := Question{
			Type:   QuestionCloze,
			Blanks: []Blank{{Answer: "Paris"}, {Answer: "Seine"}},
		}

		assert.Equal(t, []string{"Paris", "Seine"}, q.EffectiveAnswerOptions())
	})

	t.Run("empty for question without blanks", func(t *testing.T) {
		assert.Empty(t, Question{Type: QuestionCloze}.EffectiveAnswerOptions())
	})
}

