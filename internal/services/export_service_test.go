package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestExportSectionToExcel(t *testing.T) {
	section := &models.Section{
		ID:          1,
		Title:       "Reading Passage 1",
		SectionType: models.SectionReading,
		QuestionGroups: []models.QuestionGroup{
			{ID: 1, SectionID: 1, QuestionIDs: datatypes.NewJSONSlice([]uint{1, 2})},
		},
	}
	questions := []*models.Question{
		{ID: 1, QuestionFormat: models.TrueFalseNG, ItemCount: 3, Content: "<p>Do the statements agree?</p>"},
		{ID: 2, QuestionFormat: models.MCQSingle, ItemCount: 1, Title: strPtr("Main idea"), Content: "Pick one"},
	}

	sectionRepo := new(MockSectionRepository)
	questionRepo := new(MockQuestionRepository)
	sectionRepo.On("GetByIDWithDetails", mock.Anything, uint(1)).Return(section, nil)
	questionRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(questions, nil)

	service := NewExportService(&repositories.Repository{Section: sectionRepo, Question: questionRepo}, testLogger())

	data, err := service.ExportSectionToExcel(context.Background(), 1)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Section", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Numbers", header)

	// Rows number exactly as the preview numbers them.
	numbers, err := f.GetCellValue("Section", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1–3", numbers)
	numbers, err = f.GetCellValue("Section", "A3")
	require.NoError(t, err)
	assert.Equal(t, "4", numbers)

	group, err := f.GetCellValue("Section", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Questions 1–3 and 4", group)

	content, err := f.GetCellValue("Section", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Do the statements agree?", content)

	title, err := f.GetCellValue("Section", "D3")
	require.NoError(t, err)
	assert.Equal(t, "Main idea", title)
}

func TestExportSectionToExcelNotFound(t *testing.T) {
	sectionRepo := new(MockSectionRepository)
	sectionRepo.On("GetByIDWithDetails", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	service := NewExportService(&repositories.Repository{Section: sectionRepo}, testLogger())

	_, err := service.ExportSectionToExcel(context.Background(), 9)
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestExportQuestionsToExcel(t *testing.T) {
	questions := []*models.Question{
		{ID: 5, QuestionFormat: models.Essay, ItemCount: 1, Content: "<p>Discuss.</p>", OptionsData: datatypes.JSON(`{"min_words":250}`)},
	}
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("GetByIDs", mock.Anything, []uint{5}).Return(questions, nil)

	service := NewExportService(&repositories.Repository{Question: questionRepo}, testLogger())

	data, err := service.ExportQuestionsToExcel(context.Background(), []uint{5})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	id, err := f.GetCellValue("Questions", "A2")
	require.NoError(t, err)
	assert.Equal(t, "5", id)

	format, err := f.GetCellValue("Questions", "B2")
	require.NoError(t, err)
	assert.Equal(t, "essay", format)

	content, err := f.GetCellValue("Questions", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Discuss.", content)
}

func TestExportQuestionsToExcelEmpty(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]*models.Question{}, nil)

	service := NewExportService(&repositories.Repository{Question: questionRepo}, testLogger())

	_, err := service.ExportQuestionsToExcel(context.Background(), []uint{1, 2})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
