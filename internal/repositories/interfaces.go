package repositories

import (
	"context"
	"time"

	"github.com/formforge/formbuilder-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type FormFilters struct {
	Published *bool      `json:"published"`
	CreatedBy *string    `json:"created_by"`
	Search    string     `json:"search"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortBy    string     `json:"sort_by"`    // "created_at", "updated_at", "title"
	SortOrder string     `json:"sort_order"` // "asc", "desc"
}

type ResponseFilters struct {
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

// FormRepository persists authored forms. Updates are full-document
// replacements; partial mutation of the embedded question list happens in
// the service layer before Update is called.
type FormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	GetByID(ctx context.Context, id uint) (*models.Form, error)
	Update(ctx context.Context, form *models.Form) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters FormFilters) ([]*models.Form, int64, error)
	SetPublished(ctx context.Context, id uint, published bool) error
}

// ResponseRepository persists submitted responses. A response is written
// once with a single insert and never mutated afterwards.
type ResponseRepository interface {
	Create(ctx context.Context, response *models.Response) error
	GetByID(ctx context.Context, id uint) (*models.Response, error)
	Delete(ctx context.Context, id uint) error
	GetByForm(ctx context.Context, formID uint, filters ResponseFilters) ([]*models.Response, int64, error)
	CountByForm(ctx context.Context, formID uint) (int64, error)
}

// Repository bundles the per-aggregate repositories behind one handle.
type Repository interface {
	Form() FormRepository
	Response() ResponseRepository
}
