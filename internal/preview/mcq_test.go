package preview

import (
	"testing"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mcqABC = `{"options":[{"label":"A","text":"first"},{"label":"B","text":"second"},{"label":"C","text":"third"}]}`

func singleMCQSession(t *testing.T) *Session {
	t.Helper()
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.MCQSingle, 1, "Pick one", mcqABC),
	)
	return NewSession(data)
}

func TestSelectOptionSingleReplaces(t *testing.T) {
	s := singleMCQSession(t)

	require.NoError(t, s.SelectOption(1, "A"))
	assert.Equal(t, "A", s.Answer(1))

	require.NoError(t, s.SelectOption(1, "C"))
	assert.Equal(t, "C", s.Answer(1))
}

func TestSelectOptionRejectsNonMCQ(t *testing.T) {
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.TrueFalseNG, 1, "", ""),
	)
	s := NewSession(data)

	assert.Error(t, s.SelectOption(1, "A"))
	assert.Error(t, s.SelectOption(9, "A"))
}

func TestSelectOptionSeparateNumbers(t *testing.T) {
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.MCQMultiple, 2, "Pick two", mcqABC),
	)
	s := NewSession(data)

	require.NoError(t, s.SelectOption(1, "A"))
	require.NoError(t, s.SelectOption(1, "B"))
	assert.Equal(t, "A", s.Answer(1))
	assert.Equal(t, "B", s.Answer(2))

	// Both slots full: further selections are no-ops.
	require.NoError(t, s.SelectOption(1, "C"))
	assert.Equal(t, "A", s.Answer(1))
	assert.Equal(t, "B", s.Answer(2))

	// Clicking a selected label clears whichever slot holds it.
	require.NoError(t, s.SelectOption(1, "A"))
	assert.Equal(t, "", s.Answer(1))
	assert.Equal(t, "B", s.Answer(2))

	// The freed slot is the first empty one.
	require.NoError(t, s.SelectOption(1, "C"))
	assert.Equal(t, "C", s.Answer(1))
}

func TestSelectOptionJoined(t *testing.T) {
	options := `{"options":[{"label":"A","text":"first"},{"label":"B","text":"second"},{"label":"C","text":"third"}],"maxSelections":2}`
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.MCQMultiple, 1, "Pick two", options),
	)
	s := NewSession(data)

	// Labels serialize in option order, not click order.
	require.NoError(t, s.SelectOption(1, "B"))
	require.NoError(t, s.SelectOption(1, "A"))
	assert.Equal(t, "A,B", s.Answer(1))

	// At the cap: no-op.
	require.NoError(t, s.SelectOption(1, "C"))
	assert.Equal(t, "A,B", s.Answer(1))

	// Clicking a selected label toggles it off.
	require.NoError(t, s.SelectOption(1, "B"))
	assert.Equal(t, "A", s.Answer(1))

	require.NoError(t, s.SelectOption(1, "C"))
	assert.Equal(t, "A,C", s.Answer(1))
}

func TestMaxSelectable(t *testing.T) {
	tests := []struct {
		name     string
		question *models.Question
		want     int
	}{
		{"single is always 1", newQuestion(1, models.MCQSingle, 1, "", mcqABC), 1},
		{"separate numbers caps at item count", newQuestion(1, models.MCQMultiple, 2, "", mcqABC), 2},
		{
			"explicit max selections wins",
			newQuestion(1, models.MCQMultiple, 1, "", `{"options":[{"label":"A"},{"label":"B"},{"label":"C"}],"maxSelections":2}`),
			2,
		},
		{"falls back to option count", newQuestion(1, models.MCQMultiple, 1, "", mcqABC), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := models.ParseOptions(tt.question.QuestionFormat, tt.question.OptionsData)
			assert.Equal(t, tt.want, maxSelectable(tt.question, opts.MCQ))
		})
	}
}

func TestBuildMCQView(t *testing.T) {
	options := `{"options":[{"label":"A","text":"first"},{"label":"B","text":"second"},{"label":"C","text":"third"}],"maxSelections":2}`
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.MCQMultiple, 1, "Pick two", options),
	)
	s := NewSession(data)
	require.NoError(t, s.SelectOption(1, "A"))
	require.NoError(t, s.SelectOption(1, "C"))

	view, placeholder := s.buildMCQView(s.Items()[0])
	require.NotNil(t, view)
	assert.Empty(t, placeholder)
	assert.True(t, view.MultiSelect)
	assert.Equal(t, 2, view.MaxSelectable)
	assert.Equal(t, 2, view.SelectedCount)
	assert.Equal(t, models.DisplayLettered, view.DisplayMode)

	require.Len(t, view.Options, 3)
	assert.True(t, view.Options[0].Selected)
	assert.False(t, view.Options[0].Disabled)
	// Unselected options are disabled once the cap is reached.
	assert.False(t, view.Options[1].Selected)
	assert.True(t, view.Options[1].Disabled)
	assert.True(t, view.Options[2].Selected)
}

func TestBuildMCQViewWithoutOptions(t *testing.T) {
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.MCQSingle, 1, "Pick one", ""),
	)
	s := NewSession(data)

	view, placeholder := s.buildMCQView(s.Items()[0])
	assert.Nil(t, view)
	assert.Equal(t, "No options available for this question.", placeholder)
}
