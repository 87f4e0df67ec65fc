package events

import (
	"time"

	"github.com/formforge/formbuilder-service/internal/models"
	"github.com/google/uuid"
)

type EventType string

const (
	EventResponseSubmitted EventType = "response.submitted"
	EventFormPublished     EventType = "form.published"
	EventFormUnpublished   EventType = "form.unpublished"
)

// Event is the envelope every published message shares.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

type ResponseSubmittedPayload struct {
	ResponseID  uint      `json:"response_id"`
	FormID      uint      `json:"form_id"`
	TotalScore  float64   `json:"total_score"`
	MaxScore    float64   `json:"max_score"`
	AnswerCount int       `json:"answer_count"`
	Anonymous   bool      `json:"anonymous"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type FormPublishedPayload struct {
	FormID        uint   `json:"form_id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
	Published     bool   `json:"published"`
}

func newEvent(eventType EventType, payload interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "formbuilder-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// NewResponseSubmittedEvent builds the event emitted after a response insert.
func NewResponseSubmittedEvent(response *models.Response) *Event {
	return newEvent(EventResponseSubmitted, ResponseSubmittedPayload{
		ResponseID:  response.ID,
		FormID:      response.FormID,
		TotalScore:  response.TotalScore,
		MaxScore:    response.MaxScore,
		AnswerCount: len(response.Answers),
		Anonymous:   response.Respondent.Data().Anonymous,
		SubmittedAt: response.SubmittedAt,
	})
}

// NewFormPublishedEvent builds the event emitted when a form's published
// flag flips.
func NewFormPublishedEvent(form *models.Form, published bool) *Event {
	eventType := EventFormPublished
	if !published {
		eventType = EventFormUnpublished
	}
	return newEvent(eventType, FormPublishedPayload{
		FormID:        form.ID,
		Title:         form.Title,
		QuestionCount: len(form.Questions),
		Published:     published,
	})
}
