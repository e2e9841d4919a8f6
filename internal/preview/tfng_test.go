package preview

import (
	"testing"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tfngThree = `{"items":[{"text":"First claim"},{"text":"Second claim"},{"text":"Third claim"}]}`

func tfngSession(format models.QuestionFormat) *Session {
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, format, 3, "", tfngThree),
	)
	return NewSession(data)
}

func TestSelectStatementChoice(t *testing.T) {
	s := tfngSession(models.TrueFalseNG)

	require.NoError(t, s.SelectStatementChoice(1, 1, "true"))
	require.NoError(t, s.SelectStatementChoice(1, 2, "not_given"))
	assert.Equal(t, "true", s.Answer(1))
	assert.Equal(t, "not_given", s.Answer(2))

	// Radio semantics: the new choice replaces the old one.
	require.NoError(t, s.SelectStatementChoice(1, 1, "false"))
	assert.Equal(t, "false", s.Answer(1))
}

func TestSelectStatementChoiceRejectsInvalid(t *testing.T) {
	s := tfngSession(models.TrueFalseNG)

	assert.Error(t, s.SelectStatementChoice(1, 1, "maybe"))
	assert.Error(t, s.SelectStatementChoice(1, 0, "true"))
	assert.Error(t, s.SelectStatementChoice(1, 4, "true"))
}

func TestSelectStatementChoiceYesNo(t *testing.T) {
	s := tfngSession(models.YesNoNG)

	require.NoError(t, s.SelectStatementChoice(1, 1, "yes"))
	assert.Equal(t, "yes", s.Answer(1))

	// The true/false vocabulary does not apply to yes/no questions.
	assert.Error(t, s.SelectStatementChoice(1, 2, "true"))
}

func TestBuildTFNGView(t *testing.T) {
	s := tfngSession(models.TrueFalseNG)
	require.NoError(t, s.SelectStatementChoice(1, 2, "false"))

	view, placeholder := s.buildTFNGView(s.Items()[0])
	require.NotNil(t, view)
	assert.Empty(t, placeholder)
	assert.Equal(t, []string{"true", "false", "not_given"}, view.Choices)

	require.Len(t, view.Statements, 3)
	assert.Equal(t, 1, view.Statements[0].Num)
	assert.Equal(t, "First claim", view.Statements[0].TextHTML)
	assert.Empty(t, view.Statements[0].Selected)
	assert.Equal(t, "false", view.Statements[1].Selected)
}

func TestBuildTFNGViewFallbackStatements(t *testing.T) {
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.YesNoNG, 2, "", ""),
	)
	s := NewSession(data)

	view, placeholder := s.buildTFNGView(s.Items()[0])
	require.NotNil(t, view)
	assert.Empty(t, placeholder)
	assert.Equal(t, []string{"yes", "no", "not_given"}, view.Choices)

	require.Len(t, view.Statements, 2)
	assert.Equal(t, "Statement 1", view.Statements[0].TextHTML)
	assert.Equal(t, "Statement 2", view.Statements[1].TextHTML)
}

func TestTFNGStatementsLegacyKey(t *testing.T) {
	q := newQuestion(1, models.TrueFalseNG, 2, "", `{"statements":[{"text":"Old shape"},{"text":"Still works"}]}`)

	stmts := tfngStatements(q)
	require.Len(t, stmts, 2)
	assert.Equal(t, "Old shape", stmts[0].Text)
}
