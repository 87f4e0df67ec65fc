package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Respondent struct {
	Name      string `json:"name"`
	Email     string `json:"email" validate:"omitempty,email"`
	Anonymous bool   `json:"anonymous"`
}

// Answer is a respondent's graded input for one question. RawAnswer keeps
// the payload exactly as submitted; Points is the percentage score the
// grading engine produced for it.
type Answer struct {
	QuestionID   string          `json:"questionId"`
	QuestionType QuestionType    `json:"questionType"`
	RawAnswer    json.RawMessage `json:"answer"`
	Points       float64         `json:"points"`
	IsCorrect    bool            `json:"isCorrect"`
}

// Response is a respondent's full submission against one form. It references
// the form by id only; answers are embedded and owned exclusively by the
// response.
type Response struct {
	ID         uint                           `json:"id" gorm:"primaryKey"`
	FormID     uint                           `json:"formId" gorm:"not null;index"`
	Respondent datatypes.JSONType[Respondent] `json:"respondent" gorm:"type:jsonb"`
	Answers    datatypes.JSONSlice[Answer]    `json:"answers" gorm:"type:jsonb"`

	// TotalScore and MaxScore are both in percentage-normalized units:
	// every question contributes up to 100.
	TotalScore float64 `json:"totalScore"`
	MaxScore   float64 `json:"maxScore"`

	TimeSpent   int       `json:"timeSpent"` // seconds
	IPAddress   string    `json:"ipAddress" gorm:"size:64"`
	UserAgent   string    `json:"userAgent" gorm:"size:512"`
	StartedAt   time.Time `json:"startedAt"`
	SubmittedAt time.Time `json:"submittedAt" gorm:"index"`

	// Relations
	Form Form `json:"-" gorm:"foreignKey:FormID"`
}

func (Response) TableName() string {
	return "responses"
}
