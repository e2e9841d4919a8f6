package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/events"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/preview"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MockSectionRepository is a mock implementation of SectionRepository
type MockSectionRepository struct {
	mock.Mock
}

func (m *MockSectionRepository) Create(ctx context.Context, section *models.Section) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

func (m *MockSectionRepository) GetByID(ctx context.Context, id uint) (*models.Section, error) {
	args := m.Called(ctx, id)
	if section, ok := args.Get(0).(*models.Section); ok {
		return section, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSectionRepository) GetByIDWithDetails(ctx context.Context, id uint) (*models.Section, error) {
	args := m.Called(ctx, id)
	if section, ok := args.Get(0).(*models.Section); ok {
		return section, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSectionRepository) Update(ctx context.Context, section *models.Section) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

func (m *MockSectionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSectionRepository) List(ctx context.Context, filters repositories.SectionFilters) ([]*models.Section, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Section), args.Get(1).(int64), args.Error(2)
}

func (m *MockSectionRepository) GetByAssignment(ctx context.Context, assignmentID uint) ([]*models.Section, error) {
	args := m.Called(ctx, assignmentID)
	return args.Get(0).([]*models.Section), args.Error(1)
}

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	args := m.Called(ctx, id)
	if question, ok := args.Get(0).(*models.Question); ok {
		return question, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Question), args.Get(1).(int64), args.Error(2)
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// listeningFixture is a one-group section with a three-statement question and
// a single-prompt speaking question, numbered 1-4.
func listeningFixture() (*models.Section, []*models.Question) {
	section := &models.Section{
		ID:          1,
		Title:       "Listening Part 1",
		SectionType: models.SectionListening,
		QuestionGroups: []models.QuestionGroup{
			{ID: 1, SectionID: 1, QuestionIDs: datatypes.NewJSONSlice([]uint{1, 9})},
		},
	}
	questions := []*models.Question{
		{
			ID:             1,
			QuestionFormat: models.TrueFalseNG,
			ItemCount:      3,
			OptionsData:    datatypes.JSON(`{"items":[{"text":"one"},{"text":"two"},{"text":"three"}]}`),
		},
		{
			ID:             9,
			QuestionFormat: models.SpeakingPart1,
			ItemCount:      1,
			OptionsData:    datatypes.JSON(`{"sub_questions":[{"prompt":"Where do you live?"}]}`),
		},
	}
	return section, questions
}

func speakingFixture() (*models.Section, []*models.Question) {
	section := &models.Section{
		ID:          2,
		Title:       "Speaking Test",
		SectionType: models.SectionSpeaking,
		QuestionGroups: []models.QuestionGroup{
			{ID: 1, SectionID: 2, Position: 1, QuestionIDs: datatypes.NewJSONSlice([]uint{9})},
			{ID: 2, SectionID: 2, Position: 2, QuestionIDs: datatypes.NewJSONSlice([]uint{10})},
		},
	}
	questions := []*models.Question{
		{
			ID:             9,
			QuestionFormat: models.SpeakingPart1,
			ItemCount:      1,
			OptionsData:    datatypes.JSON(`{"sub_questions":[{"prompt":"Where do you live?"}]}`),
		},
		{
			ID:             10,
			QuestionFormat: models.SpeakingPart2,
			ItemCount:      1,
			Content:        "Describe a journey.",
		},
	}
	return section, questions
}

func newPreviewServiceForTest(section *models.Section, questions []*models.Question) (PreviewService, *events.MockEventPublisher) {
	sectionRepo := new(MockSectionRepository)
	questionRepo := new(MockQuestionRepository)
	sectionRepo.On("GetByIDWithDetails", mock.Anything, section.ID).Return(section, nil)
	questionRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(questions, nil)

	repo := &repositories.Repository{Section: sectionRepo, Question: questionRepo}
	publisher := events.NewMockEventPublisher()
	store := preview.NewMemorySessionStore(time.Minute)

	service := NewPreviewService(repo, store, publisher, testLogger(), utils.NewCDNResolver("https://cdn.example.com"))
	return service, publisher
}

func TestPreviewServiceOpen(t *testing.T) {
	section, questions := listeningFixture()
	service, publisher := newPreviewServiceForTest(section, questions)

	resp, err := service.Open(context.Background(), 1, "admin@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.PreviewID)
	assert.True(t, resp.View.InstructionOpen)
	assert.Equal(t, 4, resp.View.TotalItems)
	assert.Empty(t, resp.Warning)

	require.Len(t, publisher.Events, 1)
	event := publisher.Events[0]
	assert.Equal(t, events.EventPreviewOpened, event.Type)
	assert.Equal(t, "lexistest-admin", event.Source)
	payload, ok := event.Data.(events.PreviewOpenedEvent)
	require.True(t, ok)
	assert.Equal(t, uint(1), payload.SectionID)
	assert.Equal(t, 4, payload.TotalItems)
	assert.Equal(t, "admin@example.com", payload.OpenedBy)
}

func TestPreviewServiceOpenSectionNotFound(t *testing.T) {
	sectionRepo := new(MockSectionRepository)
	sectionRepo.On("GetByIDWithDetails", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)
	repo := &repositories.Repository{Section: sectionRepo, Question: new(MockQuestionRepository)}

	service := NewPreviewService(repo, preview.NewMemorySessionStore(time.Minute), nil, testLogger(), nil)

	_, err := service.Open(context.Background(), 42, "")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestPreviewServiceApply(t *testing.T) {
	section, questions := listeningFixture()
	service, _ := newPreviewServiceForTest(section, questions)
	ctx := context.Background()

	opened, err := service.Open(ctx, 1, "")
	require.NoError(t, err)

	resp, err := service.Apply(ctx, opened.PreviewID, &PreviewEvent{Type: EventBegin})
	require.NoError(t, err)
	assert.False(t, resp.View.InstructionOpen)

	resp, err = service.Apply(ctx, opened.PreviewID, &PreviewEvent{Type: EventNavigate, Num: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.View.ActiveNum)

	resp, err = service.Apply(ctx, opened.PreviewID, &PreviewEvent{Type: EventSelectChoice, StartNum: 1, ItemIdx: 2, Value: "true"})
	require.NoError(t, err)
	assert.Empty(t, resp.Warning)
	assert.True(t, resp.View.Navigator.Buttons[1].Answered)

	// State persists across loads.
	viewed, err := service.View(ctx, opened.PreviewID)
	require.NoError(t, err)
	assert.Equal(t, 3, viewed.View.ActiveNum)
}

func TestPreviewServiceApplyRejectionBecomesWarning(t *testing.T) {
	section, questions := listeningFixture()
	service, _ := newPreviewServiceForTest(section, questions)
	ctx := context.Background()

	opened, err := service.Open(ctx, 1, "")
	require.NoError(t, err)

	resp, err := service.Apply(ctx, opened.PreviewID, &PreviewEvent{Type: EventSelectChoice, StartNum: 1, ItemIdx: 1, Value: "maybe"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Warning)
	assert.False(t, resp.View.Navigator.Buttons[0].Answered)
}

func TestPreviewServiceGatedNavigationWarning(t *testing.T) {
	section, questions := speakingFixture()
	service, _ := newPreviewServiceForTest(section, questions)
	ctx := context.Background()

	opened, err := service.Open(ctx, 2, "")
	require.NoError(t, err)
	_, err = service.Apply(ctx, opened.PreviewID, &PreviewEvent{Type: EventBegin})
	require.NoError(t, err)

	resp, err := service.Apply(ctx, opened.PreviewID, &PreviewEvent{Type: EventNavigate, Num: 2})
	require.NoError(t, err)
	assert.Equal(t, "Please answer or skip every question in the current part before moving on.", resp.Warning)
	assert.Equal(t, 1, resp.View.ActiveNum)
}

func TestPreviewServiceSubmitRecordingEmitsEvent(t *testing.T) {
	section, questions := listeningFixture()
	service, publisher := newPreviewServiceForTest(section, questions)
	ctx := context.Background()

	opened, err := service.Open(ctx, 1, "")
	require.NoError(t, err)

	_, err = service.Apply(ctx, opened.PreviewID, &PreviewEvent{
		Type: EventCompleteRecording, QuestionID: 9, SubIdx: 0, URL: "recordings/a.webm", Duration: 14,
	})
	require.NoError(t, err)

	resp, err := service.Apply(ctx, opened.PreviewID, &PreviewEvent{Type: EventSubmitRecording, QuestionID: 9, SubIdx: 0})
	require.NoError(t, err)
	assert.Empty(t, resp.Warning)

	var submitted *events.RecordingSubmittedEvent
	for _, event := range publisher.Events {
		if event.Type == events.EventRecordingSubmitted {
			payload := event.Data.(events.RecordingSubmittedEvent)
			submitted = &payload
		}
	}
	require.NotNil(t, submitted)
	assert.Equal(t, opened.PreviewID, submitted.PreviewID)
	assert.Equal(t, uint(9), submitted.QuestionID)
	assert.Equal(t, "recordings/a.webm", submitted.RecordingURL)
}

func TestPreviewServiceSubmitWithoutRecordingWarns(t *testing.T) {
	section, questions := listeningFixture()
	service, publisher := newPreviewServiceForTest(section, questions)
	ctx := context.Background()

	opened, err := service.Open(ctx, 1, "")
	require.NoError(t, err)

	resp, err := service.Apply(ctx, opened.PreviewID, &PreviewEvent{Type: EventSubmitRecording, QuestionID: 9, SubIdx: 0})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Warning)

	for _, event := range publisher.Events {
		assert.NotEqual(t, events.EventRecordingSubmitted, event.Type)
	}
}

func TestPreviewServiceApplyUnknownEvent(t *testing.T) {
	section, questions := listeningFixture()
	service, _ := newPreviewServiceForTest(section, questions)
	ctx := context.Background()

	opened, err := service.Open(ctx, 1, "")
	require.NoError(t, err)

	_, err = service.Apply(ctx, opened.PreviewID, &PreviewEvent{Type: "does_not_exist"})
	assert.ErrorIs(t, err, ErrPreviewUnknownEvent)
}

func TestPreviewServiceUnknownSession(t *testing.T) {
	section, questions := listeningFixture()
	service, _ := newPreviewServiceForTest(section, questions)
	ctx := context.Background()

	_, err := service.View(ctx, "no-such-preview")
	assert.ErrorIs(t, err, ErrPreviewSessionNotFound)

	_, err = service.Apply(ctx, "no-such-preview", &PreviewEvent{Type: EventBegin})
	assert.ErrorIs(t, err, ErrPreviewSessionNotFound)
}

func TestPreviewServiceClose(t *testing.T) {
	section, questions := listeningFixture()
	service, publisher := newPreviewServiceForTest(section, questions)
	ctx := context.Background()

	opened, err := service.Open(ctx, 1, "")
	require.NoError(t, err)

	require.NoError(t, service.Close(ctx, opened.PreviewID))

	_, err = service.View(ctx, opened.PreviewID)
	assert.ErrorIs(t, err, ErrPreviewSessionNotFound)

	require.Len(t, publisher.Events, 2)
	closed := publisher.Events[1]
	assert.Equal(t, events.EventPreviewClosed, closed.Type)
	payload, ok := closed.Data.(events.PreviewClosedEvent)
	require.True(t, ok)
	assert.Equal(t, opened.PreviewID, payload.PreviewID)
	assert.Equal(t, uint(1), payload.SectionID)
}

func TestPreviewServiceReopenStartsFresh(t *testing.T) {
	section, questions := listeningFixture()
	service, _ := newPreviewServiceForTest(section, questions)
	ctx := context.Background()

	first, err := service.Open(ctx, 1, "")
	require.NoError(t, err)
	_, err = service.Apply(ctx, first.PreviewID, &PreviewEvent{Type: EventBegin})
	require.NoError(t, err)
	_, err = service.Apply(ctx, first.PreviewID, &PreviewEvent{Type: EventSelectChoice, StartNum: 1, ItemIdx: 1, Value: "true"})
	require.NoError(t, err)

	second, err := service.Open(ctx, 1, "")
	require.NoError(t, err)
	assert.NotEqual(t, first.PreviewID, second.PreviewID)
	assert.True(t, second.View.InstructionOpen)
	assert.False(t, second.View.Navigator.Buttons[0].Answered)
}
