package preview

import (
	"testing"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mapTwoItems = `{"image_url":"maps/campus.png","labels":["A","B","C"],"items":[{"text":"Library"},{"text":"Cafe"}]}`

func mapSession() *Session {
	data := newSectionData(models.SectionListening,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.MapLabeling, 2, "", mapTwoItems),
	)
	return NewSession(data)
}

func TestToggleMapCell(t *testing.T) {
	s := mapSession()

	require.NoError(t, s.ToggleMapCell(1, 1, "B"))
	assert.Equal(t, "B", s.Answer(1))

	// Selecting another cell in the same row replaces the choice.
	require.NoError(t, s.ToggleMapCell(1, 1, "C"))
	assert.Equal(t, "C", s.Answer(1))

	// Clicking the selected cell clears it.
	require.NoError(t, s.ToggleMapCell(1, 1, "C"))
	assert.Equal(t, "", s.Answer(1))
}

func TestToggleMapCellRejectsInvalid(t *testing.T) {
	s := mapSession()

	assert.Error(t, s.ToggleMapCell(1, 1, "Z"))
	assert.Error(t, s.ToggleMapCell(1, 3, "A"))
}

func TestBuildMapLabelingView(t *testing.T) {
	s := mapSession()
	require.NoError(t, s.ToggleMapCell(1, 2, "A"))

	cdn := utils.NewCDNResolver("https://cdn.example.com")
	view, placeholder := s.buildMapLabelingView(s.Items()[0], cdn)
	require.NotNil(t, view)
	assert.Empty(t, placeholder)
	assert.Equal(t, "https://cdn.example.com/maps/campus.png", view.ImageURL)
	assert.Equal(t, []string{"A", "B", "C"}, view.Labels)

	require.Len(t, view.Rows, 2)
	assert.Equal(t, "Library", view.Rows[0].TextHTML)
	assert.Empty(t, view.Rows[0].Selected)
	assert.Equal(t, "A", view.Rows[1].Selected)

	require.Len(t, view.Rows[1].Cells, 3)
	assert.True(t, view.Rows[1].Cells[0].Selected)
	assert.False(t, view.Rows[1].Cells[1].Selected)
}

func TestBuildMapLabelingViewWithoutItems(t *testing.T) {
	data := newSectionData(models.SectionListening,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.MapLabeling, 2, "", ""),
	)
	s := NewSession(data)

	view, placeholder := s.buildMapLabelingView(s.Items()[0], nil)
	assert.Nil(t, view)
	assert.Equal(t, "No map data available for this question.", placeholder)
}
