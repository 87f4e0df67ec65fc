package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/formforge/formbuilder-service/internal/cache"
	"github.com/formforge/formbuilder-service/internal/events"
	"github.com/formforge/formbuilder-service/internal/models"
	"github.com/formforge/formbuilder-service/internal/repositories"
	"github.com/formforge/formbuilder-service/internal/utils"
)

// ===== REQUEST / RESPONSE DTOS =====

// SaveFormRequest carries the full form document; both create and update
// replace the stored document with it.
type SaveFormRequest struct {
	Title                  string               `json:"title" validate:"required,min=1,max=200"`
	Description            string               `json:"description" validate:"max=1000"`
	HeaderImage            *string              `json:"headerImage"`
	Questions              []models.Question    `json:"questions" validate:"dive"`
	AllowMultipleResponses bool                 `json:"allowMultipleResponses"`
	Theme                  *models.Theme        `json:"theme"`
	Settings               *models.FormSettings `json:"settings"`
	CreatedBy              string               `json:"createdBy"`
}

// SubmittedAnswer is one raw per-question answer from the renderer. The
// payload shape depends on QuestionType and is decoded by the grading
// engine.
type SubmittedAnswer struct {
	QuestionID   string              `json:"questionId"`
	QuestionType models.QuestionType `json:"questionType" validate:"omitempty,question_type"`
	Answer       json.RawMessage     `json:"answer"`
}

type SubmitResponseRequest struct {
	Respondent models.Respondent `json:"respondent"`
	Answers    []SubmittedAnswer `json:"answers" validate:"dive"`
	TimeSpent  int               `json:"timeSpent" validate:"gte=0"`
	StartedAt  *time.Time        `json:"startedAt"`
}

// RequestMeta carries transport-level details the HTTP layer extracts for
// the stored response record.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// ===== SERVICE INTERFACES =====

type FormService interface {
	Create(ctx context.Context, req *SaveFormRequest) (*models.Form, error)
	GetByID(ctx context.Context, id uint) (*models.Form, error)
	List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error)
	Update(ctx context.Context, id uint, req *SaveFormRequest) (*models.Form, error)
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) (*models.Form, error)
	SetHeaderImage(ctx context.Context, id uint, imageURL string) (*models.Form, error)
	SetQuestionImage(ctx context.Context, id uint, questionIndex int, imageURL string) (*models.Form, error)
}

type ResponseService interface {
	Submit(ctx context.Context, formID uint, req *SubmitResponseRequest, meta RequestMeta) (*models.Response, error)
	GetByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.Response, int64, error)
	Delete(ctx context.Context, id uint) error
	GetStats(ctx context.Context, formID uint) (*models.FormStats, error)
}

type ExportService interface {
	ExportResponses(ctx context.Context, formID uint) ([]byte, error)
}

// ServiceManager bundles the services behind one handle for wiring.
type ServiceManager interface {
	Form() FormService
	Response() ResponseService
	Export() ExportService
}

type serviceManager struct {
	form     FormService
	response ResponseService
	export   ExportService
}

func NewServiceManager(
	repo repositories.Repository,
	logger utils.Logger,
	validator *utils.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
) ServiceManager {
	return &serviceManager{
		form:     NewFormService(repo, logger, validator, publisher),
		response: NewResponseService(repo, logger, validator, cacheService, publisher),
		export:   NewExportService(repo, logger),
	}
}

func (m *serviceManager) Form() FormService {
	return m.form
}

func (m *serviceManager) Response() ResponseService {
	return m.response
}

func (m *serviceManager) Export() ExportService {
	return m.export
}
