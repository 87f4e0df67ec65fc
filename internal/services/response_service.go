package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/formforge/formbuilder-service/internal/cache"
	"github.com/formforge/formbuilder-service/internal/events"
	"github.com/formforge/formbuilder-service/internal/grading"
	"github.com/formforge/formbuilder-service/internal/models"
	"github.com/formforge/formbuilder-service/internal/repositories"
	"github.com/formforge/formbuilder-service/internal/utils"
	"gorm.io/datatypes"
)

// statsCacheTTL bounds how stale cached form statistics can get; the cache
// is also invalidated on every submit and delete.
const statsCacheTTL = 5 * time.Minute

type responseService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
	cache     cache.CacheService
	publisher events.EventPublisher
}

func NewResponseService(
	repo repositories.Repository,
	logger utils.Logger,
	validator *utils.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
) ResponseService {
	return &responseService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cache:     cacheService,
		publisher: publisher,
	}
}

// ===== SUBMISSION =====

// Submit grades a raw submission against the form's questions and persists
// the result as one document. Grading is total: unmatched or malformed
// answers score zero and the rest of the submission is unaffected.
func (s *responseService) Submit(ctx context.Context, formID uint, req *SubmitResponseRequest, meta RequestMeta) (*models.Response, error) {
	s.logger.Info("Submitting response", "form_id", formID, "answers_count", len(req.Answers))

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	form, err := s.repo.Form().GetByID(ctx, formID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	if !form.IsPublished {
		return nil, ErrFormNotPublished
	}

	answers, totalScore := s.gradeSubmission(form, req.Answers)

	startedAt := time.Now()
	if req.StartedAt != nil {
		startedAt = *req.StartedAt
	}

	response := &models.Response{
		FormID:     form.ID,
		Respondent: datatypes.NewJSONType(req.Respondent),
		Answers:    answers,
		TotalScore: totalScore,
		// Percentage-normalized: every question is worth up to 100.
		MaxScore:    float64(len(form.Questions)) * 100,
		TimeSpent:   req.TimeSpent,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		StartedAt:   startedAt,
		SubmittedAt: time.Now(),
	}

	if err := s.repo.Response().Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}

	s.logger.Info("Response submitted",
		"response_id", response.ID,
		"form_id", form.ID,
		"total_score", response.TotalScore,
		"max_score", response.MaxScore)

	// Both best-effort: the response is already persisted.
	if err := s.publisher.Publish(ctx, events.NewResponseSubmittedEvent(response)); err != nil {
		s.logger.LogError(err, "Failed to publish response event", "response_id", response.ID)
	}
	s.invalidateStats(ctx, form.ID)

	return response, nil
}

// gradeSubmission walks the submitted answers, resolves each to a question
// and grades it. Resolution is by question id first; entries without an id
// fall back to their position, so clients that predate ids keep working.
// Each question earns points at most once: a submission repeating a question
// id cannot push TotalScore past MaxScore.
func (s *responseService) gradeSubmission(form *models.Form, submitted []SubmittedAnswer) (datatypes.JSONSlice[models.Answer], float64) {
	answers := make([]models.Answer, 0, len(submitted))
	graded := make(map[int]bool, len(form.Questions))
	var totalScore float64

	for i, sub := range submitted {
		question, pos, ok := resolveQuestion(form, sub.QuestionID, i)
		if !ok || graded[pos] {
			// No such question, or it was already graded by an earlier
			// entry: keep the raw answer with zero points.
			answers = append(answers, models.Answer{
				QuestionID:   sub.QuestionID,
				QuestionType: sub.QuestionType,
				RawAnswer:    sub.Answer,
			})
			continue
		}
		graded[pos] = true

		result := grading.Score(question, sub.Answer)
		answers = append(answers, models.Answer{
			QuestionID:   question.ID,
			QuestionType: question.Type,
			RawAnswer:    sub.Answer,
			Points:       result.Points,
			IsCorrect:    result.IsCorrect,
		})
		totalScore += result.Points
	}

	return answers, totalScore
}

func resolveQuestion(form *models.Form, questionID string, index int) (models.Question, int, bool) {
	if questionID != "" {
		for i, q := range form.Questions {
			if q.ID == questionID {
				return q, i, true
			}
		}
		return models.Question{}, 0, false
	}
	if index < len(form.Questions) {
		return form.Questions[index], index, true
	}
	return models.Question{}, 0, false
}

// ===== QUERIES =====

func (s *responseService) GetByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.Response, int64, error) {
	responses, total, err := s.repo.Response().GetByForm(ctx, formID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get responses: %w", err)
	}

	return responses, total, nil
}

func (s *responseService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting response", "response_id", id)

	response, err := s.repo.Response().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrResponseNotFound
		}
		return fmt.Errorf("failed to get response: %w", err)
	}

	if err := s.repo.Response().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrResponseNotFound
		}
		return fmt.Errorf("failed to delete response: %w", err)
	}

	s.invalidateStats(ctx, response.FormID)
	return nil
}

// ===== STATISTICS =====

// GetStats recomputes the form's aggregates from all stored responses.
// Results are cached; the cache is invalidated whenever the response set
// changes.
func (s *responseService) GetStats(ctx context.Context, formID uint) (*models.FormStats, error) {
	key := statsCacheKey(formID)

	var cached models.FormStats
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.LogError(err, "Stats cache read failed", "form_id", formID)
	}

	responses, _, err := s.repo.Response().GetByForm(ctx, formID, repositories.ResponseFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	stats := computeStats(responses)

	if err := s.cache.Set(ctx, key, stats, statsCacheTTL); err != nil {
		s.logger.LogError(err, "Stats cache write failed", "form_id", formID)
	}

	return stats, nil
}

func computeStats(responses []*models.Response) *models.FormStats {
	stats := &models.FormStats{
		QuestionStats: []models.QuestionStat{},
	}
	if len(responses) == 0 {
		return stats
	}

	stats.TotalResponses = len(responses)

	var scoreSum float64
	for _, r := range responses {
		scoreSum += r.TotalScore
	}
	stats.AverageScore = round2(scoreSum / float64(len(responses)))

	// Completion is a heuristic: a response counts as complete when it has
	// as many answers as the oldest stored response. The repository returns
	// responses newest first, so select the anchor by timestamp.
	oldest := responses[0]
	for _, r := range responses[1:] {
		if r.SubmittedAt.Before(oldest.SubmittedAt) {
			oldest = r
		}
	}
	expectedAnswers := len(oldest.Answers)
	completed := 0
	for _, r := range responses {
		if len(r.Answers) == expectedAnswers {
			completed++
		}
	}
	stats.CompletionRate = round2(float64(completed) / float64(len(responses)) * 100)

	for i := 0; i < expectedAnswers; i++ {
		var pointsSum float64
		count := 0
		for _, r := range responses {
			if i < len(r.Answers) {
				pointsSum += r.Answers[i].Points
				count++
			}
		}

		stat := models.QuestionStat{QuestionIndex: i, ResponseCount: count}
		if count > 0 {
			stat.AverageScore = round2(pointsSum / float64(count))
		}
		stats.QuestionStats = append(stats.QuestionStats, stat)
	}

	return stats
}

func (s *responseService) invalidateStats(ctx context.Context, formID uint) {
	if err := s.cache.Delete(ctx, statsCacheKey(formID)); err != nil {
		s.logger.LogError(err, "Stats cache invalidation failed", "form_id", formID)
	}
}

func statsCacheKey(formID uint) string {
	return fmt.Sprintf("form:%d:stats", formID)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
