package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionCategorize    QuestionType = "categorize"
	QuestionCloze         QuestionType = "cloze"
	QuestionComprehension QuestionType = "comprehension"
)

type SubQuestionType string

const (
	SubQuestionMultipleChoice SubQuestionType = "multiple-choice"
	SubQuestionTrueFalse      SubQuestionType = "true-false"
	SubQuestionShortAnswer    SubQuestionType = "short-answer"
)

// Question is one of three variants discriminated by Type. Only the fields
// belonging to the variant are populated; the rest stay at their zero value.
type Question struct {
	ID       string       `json:"id"`
	Type     QuestionType `json:"type" validate:"required,question_type"`
	Title    string       `json:"title" validate:"required"`
	Image    *string      `json:"image"`
	Required bool         `json:"required"`
	Order    int          `json:"order" validate:"gte=0"`

	// Categorize fields
	Categories []Category `json:"categories,omitempty"`
	Items      []Item     `json:"items,omitempty"`

	// Cloze fields
	Text          string   `json:"text,omitempty"`
	Blanks        []Blank  `json:"blanks,omitempty"`
	AnswerOptions []string `json:"answerOptions,omitempty"`

	// Comprehension fields
	Passage      string        `json:"passage,omitempty"`
	SubQuestions []SubQuestion `json:"questions,omitempty"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}

// Item is a draggable element of a categorize question. Category holds the
// name of the correct category; it is not checked against Categories at
// write time.
type Item struct {
	ID       string `json:"id"`
	Text     string `json:"text" validate:"required"`
	Category string `json:"category"`
}

// Blank is one fill-in slot of a cloze question, one entry per blank marker
// occurrence in Text.
type Blank struct {
	Text   string `json:"text"`
	Answer string `json:"answer" validate:"required"`
	Hint   string `json:"hint"`
}

type SubQuestion struct {
	Question      string          `json:"question" validate:"required"`
	Type          SubQuestionType `json:"type" validate:"required,sub_question_type"`
	Options       []string        `json:"options,omitempty"`
	CorrectAnswer string          `json:"correctAnswer"`
	Points        float64         `json:"points" validate:"gte=0"`
}

// EffectiveAnswerOptions returns the draggable choices offered for a cloze
// question. When the author did not configure any, the blank answers
// themselves are offered.
func (q Question) EffectiveAnswerOptions() []string {
	if len(q.AnswerOptions) > 0 {
		return q.AnswerOptions
	}
	options := make([]string, 0, len(q.Blanks))
	for _, b := range q.Blanks {
		options = append(options, b.Answer)
	}
	return options
}

type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	BackgroundColor string `json:"backgroundColor"`
}

func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:    "#3B82F6",
		BackgroundColor: "#FFFFFF",
	}
}

type FormSettings struct {
	ShowProgressBar     bool `json:"showProgressBar"`
	ShowQuestionNumbers bool `json:"showQuestionNumbers"`
}

func DefaultFormSettings() FormSettings {
	return FormSettings{
		ShowProgressBar:     true,
		ShowQuestionNumbers: true,
	}
}

// Form is an authored document of ordered questions. Questions have no
// lifecycle of their own; every update replaces the whole question list.
type Form struct {
	ID                     uint                             `json:"id" gorm:"primaryKey"`
	Title                  string                           `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description            string                           `json:"description" gorm:"type:text" validate:"max=1000"`
	HeaderImage            *string                          `json:"headerImage"`
	Questions              datatypes.JSONSlice[Question]    `json:"questions" gorm:"type:jsonb"`
	IsPublished            bool                             `json:"isPublished" gorm:"default:false;index"`
	AllowMultipleResponses bool                             `json:"allowMultipleResponses" gorm:"default:false"`
	Theme                  datatypes.JSONType[Theme]        `json:"theme" gorm:"type:jsonb"`
	Settings               datatypes.JSONType[FormSettings] `json:"settings" gorm:"type:jsonb"`
	CreatedBy              string                           `json:"createdBy" gorm:"size:100;default:Anonymous"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Computed fields (not stored)
	ResponseCount int `json:"response_count" gorm:"-"`
}

func (Form) TableName() string {
	return "forms"
}
