// Seeds the database with a published demo form covering all three
// question types, handy for local development.
package main

import (
	"log"

	"github.com/formforge/formbuilder-service/internal/config"
	"github.com/formforge/formbuilder-service/internal/models"
	"github.com/formforge/formbuilder-service/pkg"
	"gorm.io/datatypes"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := pkg.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	form := demoForm()
	if err := db.Create(form).Error; err != nil {
		log.Fatalf("failed to seed demo form: %v", err)
	}

	log.Printf("seeded demo form %d (%s)", form.ID, form.Title)
}

func demoForm() *models.Form {
	return &models.Form{
		Title:       "Customer Satisfaction Survey",
		Description: "Help us improve our services by providing your valuable feedback",
		IsPublished: true,
		Theme:       datatypes.NewJSONType(models.DefaultTheme()),
		Settings:    datatypes.NewJSONType(models.DefaultFormSettings()),
		CreatedBy:   "Marketing Team",
		Questions: datatypes.NewJSONSlice([]models.Question{
			{
				ID:       "q-service",
				Type:     models.QuestionCategorize,
				Title:    "How would you rate our customer service?",
				Required: true,
				Order:    1,
				Categories: []models.Category{
					{ID: "c-excellent", Name: "Excellent", Color: "#10B981"},
					{ID: "c-good", Name: "Good", Color: "#3B82F6"},
					{ID: "c-average", Name: "Average", Color: "#F59E0B"},
					{ID: "c-poor", Name: "Poor", Color: "#EF4444"},
				},
				Items: []models.Item{
					{ID: "i-response", Text: "Response time", Category: "Good"},
					{ID: "i-friendly", Text: "Friendliness", Category: "Excellent"},
					{ID: "i-resolution", Text: "Problem resolution", Category: "Average"},
					{ID: "i-knowledge", Text: "Knowledge", Category: "Good"},
				},
			},
			{
				ID:       "q-values",
				Type:     models.QuestionCloze,
				Title:    "Complete the sentence about our company values",
				Required: true,
				Order:    2,
				Text:     "Our company values ___ and ___.",
				Blanks: []models.Blank{
					{Answer: "innovation", Hint: "Creating new ideas"},
					{Answer: "customer satisfaction", Hint: "Making customers happy"},
				},
				AnswerOptions: []string{"innovation", "customer satisfaction"},
			},
			{
				ID:       "q-history",
				Type:     models.QuestionComprehension,
				Title:    "Read the passage and answer the questions below",
				Required: true,
				Order:    3,
				Passage: "Our company was founded in 2010 with a mission to provide innovative " +
					"solutions to everyday problems. We believe in sustainable growth and building " +
					"long-term relationships with our customers.",
				SubQuestions: []models.SubQuestion{
					{
						Question:      "When was the company founded?",
						Type:          models.SubQuestionMultipleChoice,
						Options:       []string{"2008", "2010", "2012", "2015"},
						CorrectAnswer: "2010",
						Points:        1,
					},
					{
						Question:      "What is the company's approach to growth?",
						Type:          models.SubQuestionShortAnswer,
						CorrectAnswer: "sustainable",
						Points:        1,
					},
					{
						Question:      "The company focuses on building long-term relationships with customers.",
						Type:          models.SubQuestionTrueFalse,
						CorrectAnswer: "true",
						Points:        1,
					},
				},
			},
		}),
	}
}
