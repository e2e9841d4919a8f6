package preview

import (
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func newQuestion(id uint, format models.QuestionFormat, itemCount int, content, options string) *models.Question {
	q := &models.Question{
		ID:             id,
		QuestionFormat: format,
		Content:        content,
		ItemCount:      itemCount,
	}
	if options != "" {
		q.OptionsData = datatypes.JSON(options)
	}
	return q
}

func newGroup(id uint, questionIDs ...uint) models.QuestionGroup {
	return models.QuestionGroup{
		ID:          id,
		SectionID:   1,
		Position:    int(id),
		QuestionIDs: datatypes.NewJSONSlice(questionIDs),
	}
}

func newSectionData(sectionType models.SectionType, groups []models.QuestionGroup, questions ...*models.Question) SectionData {
	byID := make(map[uint]*models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return SectionData{
		Section:   models.Section{ID: 1, Title: "Section One", SectionType: sectionType},
		Groups:    groups,
		Questions: byID,
		Blocks:    make(map[uint]*models.ContentBlock),
	}
}
