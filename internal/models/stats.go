package models

// FormStats aggregates all responses of a form. Always recomputed from the
// stored responses on read; nothing here is incrementally maintained.
type FormStats struct {
	TotalResponses int            `json:"totalResponses"`
	AverageScore   float64        `json:"averageScore"`
	CompletionRate float64        `json:"completionRate"` // percentage, 0-100
	QuestionStats  []QuestionStat `json:"questionStats"`
}

// QuestionStat is the per-position average over all responses that answered
// that position.
type QuestionStat struct {
	QuestionIndex int     `json:"questionIndex"`
	AverageScore  float64 `json:"averageScore"`
	ResponseCount int     `json:"responseCount"`
}
