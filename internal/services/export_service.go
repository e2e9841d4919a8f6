package services

import (
	"context"
	"fmt"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/preview"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/sanitize"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
	"github.com/xuri/excelize/v2"
)

// ExportService produces spreadsheet exports of authored content for offline
// review.
type ExportService interface {
	ExportSectionToExcel(ctx context.Context, sectionID uint) ([]byte, error)
	ExportQuestionsToExcel(ctx context.Context, questionIDs []uint) ([]byte, error)
}

type exportService struct {
	repo   *repositories.Repository
	logger utils.Logger
}

func NewExportService(repo *repositories.Repository, logger utils.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var sectionSheetHeaders = []string{
	"Numbers", "Group", "Format", "Title", "Content", "Item Count", "Audio",
}

// ExportSectionToExcel writes a row per question, numbered exactly as the
// preview numbers them.
func (s *exportService) ExportSectionToExcel(ctx context.Context, sectionID uint) ([]byte, error) {
	section, err := s.repo.Section.GetByIDWithDetails(ctx, sectionID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to load section: %w", err)
	}

	var questionIDs []uint
	for _, group := range section.QuestionGroups {
		questionIDs = append(questionIDs, group.QuestionIDs...)
	}
	questions, err := s.repo.Question.GetByIDs(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load section questions: %w", err)
	}

	questionsByID := make(map[uint]*models.Question, len(questions))
	for _, q := range questions {
		questionsByID[q.ID] = q
	}
	groupsByID := make(map[uint]*models.QuestionGroup, len(section.QuestionGroups))
	for i := range section.QuestionGroups {
		group := &section.QuestionGroups[i]
		groupsByID[group.ID] = group
	}

	items, _ := preview.BuildItems(section.QuestionGroups, questionsByID)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Section"
	f.SetSheetName("Sheet1", sheet)
	for col, header := range sectionSheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, item := range items {
		q := item.Question

		groupTitle := ""
		if group, ok := groupsByID[item.GroupID]; ok {
			if group.Title != nil && *group.Title != "" {
				groupTitle = *group.Title
			} else {
				groupTitle = preview.AutoTitle(preview.GroupRanges(items, group.ID))
			}
		}
		title := ""
		if q.Title != nil {
			title = *q.Title
		}
		audio := ""
		if q.AudioURL != nil {
			audio = *q.AudioURL
		}

		values := []interface{}{
			preview.NumberRange{Start: item.StartNum, End: item.EndNum}.String(),
			groupTitle,
			string(q.QuestionFormat),
			title,
			sanitize.StripHTML(q.Content),
			item.Width(),
			audio,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}

	s.logger.InfoContext(ctx, "Section exported",
		"section_id", sectionID,
		"questions", len(items))
	return buf.Bytes(), nil
}

// ExportQuestionsToExcel writes a flat question-bank export.
func (s *exportService) ExportQuestionsToExcel(ctx context.Context, questionIDs []uint) ([]byte, error) {
	questions, err := s.repo.Question.GetByIDs(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrQuestionNotFound
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Questions"
	f.SetSheetName("Sheet1", sheet)
	headers := []string{"ID", "Format", "Title", "Content", "Item Count", "Options"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, q := range questions {
		title := ""
		if q.Title != nil {
			title = *q.Title
		}
		values := []interface{}{
			q.ID,
			string(q.QuestionFormat),
			title,
			sanitize.StripHTML(q.Content),
			q.Items(),
			string(q.OptionsData),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	return buf.Bytes(), nil
}
