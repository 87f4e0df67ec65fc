package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/formforge/formbuilder-service/internal/events"
	"github.com/formforge/formbuilder-service/internal/models"
	"github.com/formforge/formbuilder-service/internal/repositories"
	"github.com/formforge/formbuilder-service/internal/utils"
	"github.com/stretchr/testify/mock"
)

// MockFormRepository is a mock implementation of FormRepository
type MockFormRepository struct {
	mock.Mock
}

func (m *MockFormRepository) Create(ctx context.Context, form *models.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockFormRepository) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

func (m *MockFormRepository) Update(ctx context.Context, form *models.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockFormRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFormRepository) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Form), args.Get(1).(int64), args.Error(2)
}

func (m *MockFormRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	args := m.Called(ctx, id, published)
	return args.Error(0)
}

// MockResponseRepository is a mock implementation of ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(ctx context.Context, response *models.Response) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockResponseRepository) GetByID(ctx context.Context, id uint) (*models.Response, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

func (m *MockResponseRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResponseRepository) GetByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.Response, int64, error) {
	args := m.Called(ctx, formID, filters)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Response), args.Get(1).(int64), args.Error(2)
}

func (m *MockResponseRepository) CountByForm(ctx context.Context, formID uint) (int64, error) {
	args := m.Called(ctx, formID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRepository bundles the per-aggregate mocks behind the Repository
// interface for service construction.
type MockRepository struct {
	formRepo     *MockFormRepository
	responseRepo *MockResponseRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		formRepo:     &MockFormRepository{},
		responseRepo: &MockResponseRepository{},
	}
}

func (m *MockRepository) Form() repositories.FormRepository {
	return m.formRepo
}

func (m *MockRepository) Response() repositories.ResponseRepository {
	return m.responseRepo
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testPublisher() *events.MockEventPublisher {
	return events.NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
