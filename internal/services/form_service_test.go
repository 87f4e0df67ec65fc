package services

import (
	"context"
	"testing"

	"github.com/formforge/formbuilder-service/internal/events"
	"github.com/formforge/formbuilder-service/internal/models"
	"github.com/formforge/formbuilder-service/internal/repositories"
	"github.com/formforge/formbuilder-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestFormService(repo *MockRepository, publisher events.EventPublisher) FormService {
	return NewFormService(repo, testLogger(), utils.NewValidator(), publisher)
}

func TestFormService_Create(t *testing.T) {
	tests := []struct {
		name        string
		request     *SaveFormRequest
		setupMocks  func(*MockFormRepository)
		expectError error
		check       func(*testing.T, *models.Form)
	}{
		{
			name: "assigns ids and defaults",
			request: &SaveFormRequest{
				Title: "Biology Quiz",
				Questions: []models.Question{
					{
						Type:  models.QuestionCategorize,
						Title: "Sort the animals",
						Categories: []models.Category{
							{Name: "Mammal"},
							{Name: "Fish"},
						},
						Items: []models.Item{
							{Text: "Whale", Category: "Mammal"},
							{Text: "Shark", Category: "Fish"},
						},
					},
				},
			},
			setupMocks: func(formRepo *MockFormRepository) {
				formRepo.On("Create", mock.Anything, mock.MatchedBy(func(form *models.Form) bool {
					return form.Title == "Biology Quiz"
				})).Return(nil)
			},
			check: func(t *testing.T, form *models.Form) {
				require.Len(t, form.Questions, 1)
				q := form.Questions[0]
				assert.NotEmpty(t, q.ID)
				assert.NotEmpty(t, q.Categories[0].ID)
				assert.NotEmpty(t, q.Items[0].ID)
				assert.Equal(t, "Anonymous", form.CreatedBy)
				assert.Equal(t, models.DefaultTheme(), form.Theme.Data())
				assert.Equal(t, models.DefaultFormSettings(), form.Settings.Data())
				assert.False(t, form.IsPublished)
			},
		},
		{
			name: "derives cloze answer options from blanks",
			request: &SaveFormRequest{
				Title: "Geography",
				Questions: []models.Question{
					{
						Type:  models.QuestionCloze,
						Title: "Fill in the blanks",
						Text:  "The capital of France is ___ on the ___.",
						Blanks: []models.Blank{
							{Answer: "Paris"},
							{Answer: "Seine"},
						},
					},
				},
			},
			setupMocks: func(formRepo *MockFormRepository) {
				formRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, form *models.Form) {
				require.Len(t, form.Questions, 1)
				assert.Equal(t, []string{"Paris", "Seine"}, form.Questions[0].AnswerOptions)
			},
		},
		{
			name: "keeps explicit ids and created by",
			request: &SaveFormRequest{
				Title:     "Survey",
				CreatedBy: "alex",
				Questions: []models.Question{
					{ID: "q-1", Type: models.QuestionComprehension, Title: "Read", Passage: "..."},
				},
			},
			setupMocks: func(formRepo *MockFormRepository) {
				formRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, form *models.Form) {
				assert.Equal(t, "q-1", form.Questions[0].ID)
				assert.Equal(t, "alex", form.CreatedBy)
			},
		},
		{
			name:        "missing title fails validation",
			request:     &SaveFormRequest{},
			setupMocks:  func(formRepo *MockFormRepository) {},
			expectError: ErrValidationFailed,
		},
		{
			name: "bad question type fails validation",
			request: &SaveFormRequest{
				Title: "Broken",
				Questions: []models.Question{
					{Type: "ranking", Title: "Rank these"},
				},
			},
			setupMocks:  func(formRepo *MockFormRepository) {},
			expectError: ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := NewMockRepository()
			tt.setupMocks(mockRepo.formRepo)
			service := newTestFormService(mockRepo, testPublisher())

			form, err := service.Create(context.Background(), tt.request)

			if tt.expectError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, form)
			} else {
				require.NoError(t, err)
				require.NotNil(t, form)
				tt.check(t, form)
			}

			mockRepo.formRepo.AssertExpectations(t)
		})
	}
}

func TestFormService_GetByID_NotFound(t *testing.T) {
	mockRepo := NewMockRepository()
	mockRepo.formRepo.On("GetByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)
	service := newTestFormService(mockRepo, testPublisher())

	form, err := service.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrFormNotFound)
	assert.Nil(t, form)
	mockRepo.formRepo.AssertExpectations(t)
}

func TestFormService_SetPublished(t *testing.T) {
	stored := &models.Form{
		ID:    1,
		Title: "Biology Quiz",
		Questions: datatypes.NewJSONSlice([]models.Question{
			{ID: "q-1", Type: models.QuestionCategorize, Title: "Sort"},
		}),
	}

	mockRepo := NewMockRepository()
	mockRepo.formRepo.On("GetByID", mock.Anything, uint(1)).Return(stored, nil)
	mockRepo.formRepo.On("SetPublished", mock.Anything, uint(1), true).Return(nil)

	publisher := testPublisher()
	service := newTestFormService(mockRepo, publisher)

	form, err := service.SetPublished(context.Background(), 1, true)

	require.NoError(t, err)
	assert.True(t, form.IsPublished)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, events.EventFormPublished, publisher.Events[0].Type)
	mockRepo.formRepo.AssertExpectations(t)
}

func TestFormService_SetPublished_Unpublish(t *testing.T) {
	stored := &models.Form{ID: 2, Title: "Survey", IsPublished: true}

	mockRepo := NewMockRepository()
	mockRepo.formRepo.On("GetByID", mock.Anything, uint(2)).Return(stored, nil)
	mockRepo.formRepo.On("SetPublished", mock.Anything, uint(2), false).Return(nil)

	publisher := testPublisher()
	service := newTestFormService(mockRepo, publisher)

	form, err := service.SetPublished(context.Background(), 2, false)

	require.NoError(t, err)
	assert.False(t, form.IsPublished)
	require.Len(t, publisher.Events, 1)
	assert.Equal(t, events.EventFormUnpublished, publisher.Events[0].Type)
}

func TestFormService_SetQuestionImage(t *testing.T) {
	makeForm := func() *models.Form {
		return &models.Form{
			ID: 1,
			Questions: datatypes.NewJSONSlice([]models.Question{
				{ID: "q-1", Type: models.QuestionCloze, Title: "Fill in"},
				{ID: "q-2", Type: models.QuestionComprehension, Title: "Read"},
			}),
		}
	}

	t.Run("sets image on the addressed question", func(t *testing.T) {
		mockRepo := NewMockRepository()
		mockRepo.formRepo.On("GetByID", mock.Anything, uint(1)).Return(makeForm(), nil)
		mockRepo.formRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		service := newTestFormService(mockRepo, testPublisher())

		form, err := service.SetQuestionImage(context.Background(), 1, 1, "https://cdn.example.com/q2.png")

		require.NoError(t, err)
		require.NotNil(t, form.Questions[1].Image)
		assert.Equal(t, "https://cdn.example.com/q2.png", *form.Questions[1].Image)
		assert.Nil(t, form.Questions[0].Image)
		mockRepo.formRepo.AssertExpectations(t)
	})

	t.Run("rejects out of range index", func(t *testing.T) {
		mockRepo := NewMockRepository()
		mockRepo.formRepo.On("GetByID", mock.Anything, uint(1)).Return(makeForm(), nil)
		service := newTestFormService(mockRepo, testPublisher())

		_, err := service.SetQuestionImage(context.Background(), 1, 5, "https://cdn.example.com/q.png")

		assert.ErrorIs(t, err, ErrQuestionIndexInvalid)
		mockRepo.formRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestFormService_List_AttachesResponseCounts(t *testing.T) {
	forms := []*models.Form{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
	}

	mockRepo := NewMockRepository()
	mockRepo.formRepo.On("List", mock.Anything, mock.Anything).Return(forms, int64(2), nil)
	mockRepo.responseRepo.On("CountByForm", mock.Anything, uint(1)).Return(int64(3), nil)
	mockRepo.responseRepo.On("CountByForm", mock.Anything, uint(2)).Return(int64(0), nil)
	service := newTestFormService(mockRepo, testPublisher())

	result, total, err := service.List(context.Background(), repositories.FormFilters{})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 3, result[0].ResponseCount)
	assert.Equal(t, 0, result[1].ResponseCount)
	mockRepo.responseRepo.AssertExpectations(t)
}
