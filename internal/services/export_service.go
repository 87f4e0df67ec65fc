package services

import (
	"context"
	"fmt"

	"github.com/formforge/formbuilder-service/internal/models"
	"github.com/formforge/formbuilder-service/internal/repositories"
	"github.com/formforge/formbuilder-service/internal/utils"
	"github.com/xuri/excelize/v2"
)

type exportService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewExportService(repo repositories.Repository, logger utils.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportResponses renders all responses of a form as an .xlsx workbook, one
// row per response with per-question points in submission order.
func (s *exportService) ExportResponses(ctx context.Context, formID uint) ([]byte, error) {
	form, err := s.repo.Form().GetByID(ctx, formID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	responses, _, err := s.repo.Response().GetByForm(ctx, formID, repositories.ResponseFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Responses"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Response ID", "Name", "Email", "Anonymous", "Submitted At", "Time Spent (s)"}
	for i, q := range form.Questions {
		headers = append(headers, fmt.Sprintf("Q%d: %s", i+1, q.Title))
	}
	headers = append(headers, "Total Score", "Max Score")

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, response := range responses {
		row := s.responseToRow(form, response)
		for colIndex, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build data cell: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported responses", "form_id", formID, "count", len(responses))
	return buf.Bytes(), nil
}

func (s *exportService) responseToRow(form *models.Form, response *models.Response) []interface{} {
	respondent := response.Respondent.Data()

	row := []interface{}{
		response.ID,
		respondent.Name,
		respondent.Email,
		respondent.Anonymous,
		response.SubmittedAt.Format("2006-01-02 15:04:05"),
		response.TimeSpent,
	}

	// Points per question in form order, matched by question id so exports
	// stay correct even when a response predates a question reorder.
	pointsByQuestion := make(map[string]float64, len(response.Answers))
	for _, a := range response.Answers {
		pointsByQuestion[a.QuestionID] = a.Points
	}
	for _, q := range form.Questions {
		if points, ok := pointsByQuestion[q.ID]; ok {
			row = append(row, points)
		} else {
			row = append(row, "")
		}
	}

	row = append(row, response.TotalScore, response.MaxScore)
	return row
}
