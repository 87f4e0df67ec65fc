package services

import (
	"context"
	"fmt"

	"github.com/formforge/formbuilder-service/internal/events"
	"github.com/formforge/formbuilder-service/internal/models"
	"github.com/formforge/formbuilder-service/internal/repositories"
	"github.com/formforge/formbuilder-service/internal/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type formService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
	publisher events.EventPublisher
}

func NewFormService(
	repo repositories.Repository,
	logger utils.Logger,
	validator *utils.Validator,
	publisher events.EventPublisher,
) FormService {
	return &formService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// ===== CORE FORM OPERATIONS =====

func (s *formService) Create(ctx context.Context, req *SaveFormRequest) (*models.Form, error) {
	s.logger.Info("Creating form", "title", req.Title, "questions", len(req.Questions))

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	form := &models.Form{
		Title:                  req.Title,
		Description:            req.Description,
		HeaderImage:            req.HeaderImage,
		Questions:              normalizeQuestions(req.Questions),
		AllowMultipleResponses: req.AllowMultipleResponses,
		Theme:                  datatypes.NewJSONType(themeOrDefault(req.Theme)),
		Settings:               datatypes.NewJSONType(settingsOrDefault(req.Settings)),
		CreatedBy:              createdByOrAnonymous(req.CreatedBy),
	}

	if err := s.repo.Form().Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	s.logger.Info("Form created", "form_id", form.ID, "title", form.Title)
	return form, nil
}

func (s *formService) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	form, err := s.repo.Form().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	return form, nil
}

func (s *formService) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	forms, total, err := s.repo.Form().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list forms: %w", err)
	}

	for _, form := range forms {
		count, err := s.repo.Response().CountByForm(ctx, form.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count responses: %w", err)
		}
		form.ResponseCount = int(count)
	}

	return forms, total, nil
}

// Update replaces the whole stored document, matching the authoring UI's
// replace-on-save behavior. The published flag is kept as stored; flipping
// it goes through SetPublished.
func (s *formService) Update(ctx context.Context, id uint, req *SaveFormRequest) (*models.Form, error) {
	s.logger.Info("Updating form", "form_id", id)

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	form, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	form.Title = req.Title
	form.Description = req.Description
	form.HeaderImage = req.HeaderImage
	form.Questions = normalizeQuestions(req.Questions)
	form.AllowMultipleResponses = req.AllowMultipleResponses
	form.Theme = datatypes.NewJSONType(themeOrDefault(req.Theme))
	form.Settings = datatypes.NewJSONType(settingsOrDefault(req.Settings))
	if req.CreatedBy != "" {
		form.CreatedBy = req.CreatedBy
	}

	if err := s.repo.Form().Update(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to update form: %w", err)
	}

	return form, nil
}

func (s *formService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting form", "form_id", id)

	if err := s.repo.Form().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrFormNotFound
		}
		return fmt.Errorf("failed to delete form: %w", err)
	}

	return nil
}

// ===== PUBLISH LIFECYCLE =====

func (s *formService) SetPublished(ctx context.Context, id uint, published bool) (*models.Form, error) {
	s.logger.Info("Setting form published flag", "form_id", id, "published", published)

	form, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Form().SetPublished(ctx, id, published); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to set published flag: %w", err)
	}
	form.IsPublished = published

	// Event delivery is best-effort; publish state is already persisted.
	if err := s.publisher.Publish(ctx, events.NewFormPublishedEvent(form, published)); err != nil {
		s.logger.LogError(err, "Failed to publish form event", "form_id", id)
	}

	return form, nil
}

// ===== IMAGE REFERENCES =====

// SetHeaderImage records an already-uploaded image URL on the form. Upload
// and storage are handled elsewhere.
func (s *formService) SetHeaderImage(ctx context.Context, id uint, imageURL string) (*models.Form, error) {
	form, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	form.HeaderImage = &imageURL
	if err := s.repo.Form().Update(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to update header image: %w", err)
	}

	return form, nil
}

func (s *formService) SetQuestionImage(ctx context.Context, id uint, questionIndex int, imageURL string) (*models.Form, error) {
	form, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if questionIndex < 0 || questionIndex >= len(form.Questions) {
		return nil, ErrQuestionIndexInvalid
	}

	questions := []models.Question(form.Questions)
	questions[questionIndex].Image = &imageURL
	form.Questions = questions

	if err := s.repo.Form().Update(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to update question image: %w", err)
	}

	return form, nil
}

// ===== HELPERS =====

// normalizeQuestions assigns ids to questions, categories and items that
// arrive without one, so answers can be matched by id later, and fills in
// the cloze answer options when the author left them empty.
func normalizeQuestions(questions []models.Question) []models.Question {
	normalized := make([]models.Question, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		for j := range q.Categories {
			if q.Categories[j].ID == "" {
				q.Categories[j].ID = uuid.NewString()
			}
		}
		for j := range q.Items {
			if q.Items[j].ID == "" {
				q.Items[j].ID = uuid.NewString()
			}
		}
		if q.Type == models.QuestionCloze && len(q.AnswerOptions) == 0 {
			q.AnswerOptions = q.EffectiveAnswerOptions()
		}
		normalized[i] = q
	}
	return normalized
}

func themeOrDefault(theme *models.Theme) models.Theme {
	if theme == nil {
		return models.DefaultTheme()
	}
	t := *theme
	if t.PrimaryColor == "" {
		t.PrimaryColor = models.DefaultTheme().PrimaryColor
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = models.DefaultTheme().BackgroundColor
	}
	return t
}

func settingsOrDefault(settings *models.FormSettings) models.FormSettings {
	if settings == nil {
		return models.DefaultFormSettings()
	}
	return *settings
}

func createdByOrAnonymous(createdBy string) string {
	if createdBy == "" {
		return "Anonymous"
	}
	return createdBy
}
