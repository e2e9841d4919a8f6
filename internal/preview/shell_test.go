package preview

import (
	"testing"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInstructionPage(t *testing.T) {
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.MCQSingle, 1, "Pick one", mcqABC),
	)
	data.Section.Instructions = strPtr("<p>Read the passage and answer.</p>")
	s := NewSession(data)

	view := s.Render(nil)
	assert.True(t, view.InstructionOpen)
	assert.Equal(t, "Section One", view.Title)
	assert.Equal(t, "<p>Read the passage and answer.</p>", view.Instructions)
	assert.Equal(t, 1, view.TotalItems)
	// No question renders while the instruction page is up.
	assert.Nil(t, view.Question)
	assert.Nil(t, view.Group)
}

func TestRenderActiveQuestion(t *testing.T) {
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.MCQSingle, 1, "Pick one", mcqABC),
	)
	s := NewSession(data)
	s.Begin()

	view := s.Render(nil)
	assert.False(t, view.InstructionOpen)
	require.NotNil(t, view.Question)
	assert.Equal(t, RendererMCQ, view.Question.Renderer)
	assert.Equal(t, 1, view.Question.StartNum)
	require.NotNil(t, view.Question.MCQ)

	require.NotNil(t, view.Group)
	assert.Equal(t, "Question 1", view.Group.Title)
	assert.True(t, view.Group.AutoTitled)

	assert.Len(t, view.Navigator.Buttons, 1)
}

func TestRenderGroupWithAuthoredTitle(t *testing.T) {
	g := newGroup(1, 1)
	g.Title = strPtr("Questions about the passage")
	g.Instructions = strPtr("<p>Choose the correct letter.</p>")
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{g},
		newQuestion(1, models.MCQSingle, 1, "Pick one", mcqABC),
	)
	s := NewSession(data)
	s.Begin()

	view := s.Render(nil)
	require.NotNil(t, view.Group)
	assert.Equal(t, "Questions about the passage", view.Group.Title)
	assert.False(t, view.Group.AutoTitled)
	assert.Equal(t, "<p>Choose the correct letter.</p>", view.Group.Instructions)
}

func TestRenderPassageContentPanel(t *testing.T) {
	blockID := uint(7)
	g := newGroup(1, 1)
	g.ContentBlockID = &blockID
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{g},
		newQuestion(1, models.MCQSingle, 1, "Pick one", mcqABC),
	)
	data.Blocks[blockID] = &models.ContentBlock{
		ID:             blockID,
		SectionID:      1,
		ContentType:    models.ContentPassage,
		PassageTitle:   strPtr("The History of Tea"),
		PassageContent: strPtr("<p>Tea originated in China.</p>"),
	}
	s := NewSession(data)
	s.Begin()

	view := s.Render(nil)
	require.NotNil(t, view.Content)
	assert.Equal(t, models.ContentPassage, view.Content.ContentType)
	assert.Equal(t, "The History of Tea", view.Content.PassageTitle)
	assert.Equal(t, "<p>Tea originated in China.</p>", view.Content.PassageHTML)
	assert.Empty(t, view.Content.AudioSource)
}

func TestRenderAudioContentPanel(t *testing.T) {
	blockID := uint(7)
	g := newGroup(1, 1)
	g.ContentBlockID = &blockID
	data := newSectionData(models.SectionListening,
		[]models.QuestionGroup{g},
		newQuestion(1, models.MCQSingle, 1, "Pick one", mcqABC),
	)
	data.Blocks[blockID] = &models.ContentBlock{
		ID:          blockID,
		SectionID:   1,
		ContentType: models.ContentAudio,
		AudioURL:    strPtr("audio/part1.mp3"),
	}
	s := NewSession(data)
	s.Begin()
	s.PlayAudio("block:7")

	cdn := utils.NewCDNResolver("https://cdn.example.com")
	view := s.Render(cdn)
	require.NotNil(t, view.Content)
	assert.Equal(t, "https://cdn.example.com/audio/part1.mp3", view.Content.AudioURL)
	assert.Equal(t, "block:7", view.Content.AudioSource)
	assert.True(t, view.Content.Playing)
	assert.Equal(t, "block:7", view.PlayingAudio)
}

func TestRenderQuestionAudio(t *testing.T) {
	q := newQuestion(1, models.MCQSingle, 1, "Pick one", mcqABC)
	q.AudioURL = strPtr("audio/q1.mp3")
	data := newSectionData(models.SectionListening,
		[]models.QuestionGroup{newGroup(1, 1)},
		q,
	)
	s := NewSession(data)
	s.Begin()

	view := s.Render(utils.NewCDNResolver("https://cdn.example.com"))
	require.NotNil(t, view.Question)
	assert.Equal(t, "https://cdn.example.com/audio/q1.mp3", view.Question.AudioURL)
	assert.Equal(t, "question:1", view.Question.AudioSource)
}

func TestRenderHeadingMatchingPanes(t *testing.T) {
	options := `{"options":[{"label":"i","text":"Origins"},{"label":"ii","text":"Methods"}]}`
	data := newSectionData(models.SectionReading,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.HeadingMatching, 2, "<p>Para A</p>[1]<p>Para B</p>[2]", options),
	)
	s := NewSession(data)
	s.Begin()

	view := s.Render(nil)
	require.NotNil(t, view.Question)
	assert.Equal(t, RendererHeadingMatching, view.Question.Renderer)
	require.NotNil(t, view.Question.Headings)
	assert.Len(t, view.Question.Headings.Headings, 2)
	require.NotNil(t, view.HeadingPassage)
	assert.NotEmpty(t, view.HeadingPassage.Segments)
}

func TestRenderEssayWritingPanel(t *testing.T) {
	data := newSectionData(models.SectionWriting,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.EssayTask1, 1, "<p>Summarise the chart.</p>", `{"min_words":150}`),
	)
	s := NewSession(data)
	s.Begin()

	view := s.Render(nil)
	require.NotNil(t, view.Question)
	assert.Equal(t, RendererEssay, view.Question.Renderer)
	require.NotNil(t, view.Question.Essay)
	require.NotNil(t, view.Writing)
	assert.Equal(t, "Writing Task 1", view.Writing.TaskLabel)
}

func TestRenderEmptySection(t *testing.T) {
	data := newSectionData(models.SectionReading, nil)
	s := NewSession(data)
	s.Begin()

	view := s.Render(nil)
	assert.Equal(t, 0, view.TotalItems)
	assert.Nil(t, view.Question)
	assert.Empty(t, view.Navigator.Buttons)
}

func TestRenderIsPure(t *testing.T) {
	s := readingSession()
	s.Begin()
	require.NoError(t, s.SelectStatementChoice(1, 1, "true"))

	first := s.Render(nil)
	second := s.Render(nil)
	assert.Equal(t, first, second)
}
