package services

import (
	"context"
	"testing"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/events"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	if assignment, ok := args.Get(0).(*models.Assignment); ok {
		return assignment, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) GetByIDWithSections(ctx context.Context, id uint) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	if assignment, ok := args.Get(0).(*models.Assignment); ok {
		return assignment, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssignmentRepository) List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Assignment), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssignmentRepository) UpdateStatus(ctx context.Context, id uint, status models.AssignmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func newAssignmentServiceForTest(assignmentRepo *MockAssignmentRepository) (AssignmentService, *events.MockEventPublisher) {
	repo := &repositories.Repository{Assignment: assignmentRepo}
	publisher := events.NewMockEventPublisher()
	return NewAssignmentService(repo, testLogger(), validator.New(), publisher), publisher
}

func TestAssignmentCreate(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	service, _ := newAssignmentServiceForTest(assignmentRepo)

	assignment, err := service.Create(context.Background(), &CreateAssignmentRequest{Title: "Mock Exam 1"}, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Mock Exam 1", assignment.Title)
	assert.Equal(t, "admin@example.com", assignment.CreatedBy)
	assignmentRepo.AssertExpectations(t)
}

func TestAssignmentCreateValidation(t *testing.T) {
	service, _ := newAssignmentServiceForTest(new(MockAssignmentRepository))

	_, err := service.Create(context.Background(), &CreateAssignmentRequest{Title: ""}, "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestAssignmentPublish(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("GetByIDWithSections", mock.Anything, uint(1)).Return(&models.Assignment{
		ID:     1,
		Title:  "Mock Exam 1",
		Status: models.AssignmentDraft,
		Sections: []models.Section{
			{ID: 1, SectionType: models.SectionReading},
			{ID: 2, SectionType: models.SectionListening},
		},
	}, nil)
	assignmentRepo.On("UpdateStatus", mock.Anything, uint(1), models.AssignmentPublished).Return(nil)
	service, publisher := newAssignmentServiceForTest(assignmentRepo)

	assignment, err := service.Publish(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentPublished, assignment.Status)

	require.Len(t, publisher.Events, 1)
	event := publisher.Events[0]
	assert.Equal(t, events.EventAssignmentPublished, event.Type)
	payload, ok := event.Data.(events.AssignmentPublishedEvent)
	require.True(t, ok)
	assert.Equal(t, uint(1), payload.AssignmentID)
	assert.Equal(t, 2, payload.Sections)
	assignmentRepo.AssertExpectations(t)
}

func TestAssignmentPublishRejectsEmpty(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("GetByIDWithSections", mock.Anything, uint(1)).Return(&models.Assignment{
		ID:     1,
		Status: models.AssignmentDraft,
	}, nil)
	service, publisher := newAssignmentServiceForTest(assignmentRepo)

	_, err := service.Publish(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAssignmentEmptyPublish)
	assert.Empty(t, publisher.Events)
}

func TestAssignmentPublishRejectsNonDraft(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("GetByIDWithSections", mock.Anything, uint(1)).Return(&models.Assignment{
		ID:       1,
		Status:   models.AssignmentPublished,
		Sections: []models.Section{{ID: 1}},
	}, nil)
	service, _ := newAssignmentServiceForTest(assignmentRepo)

	_, err := service.Publish(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAssignmentInvalidStatus)
}

func TestAssignmentPublishNotFound(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("GetByIDWithSections", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
	service, _ := newAssignmentServiceForTest(assignmentRepo)

	_, err := service.Publish(context.Background(), 9)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestAssignmentArchive(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Assignment{
		ID:     1,
		Status: models.AssignmentPublished,
	}, nil)
	assignmentRepo.On("UpdateStatus", mock.Anything, uint(1), models.AssignmentArchived).Return(nil)
	service, _ := newAssignmentServiceForTest(assignmentRepo)

	assignment, err := service.Archive(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentArchived, assignment.Status)
}

func TestAssignmentArchiveRejectsDraft(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Assignment{
		ID:     1,
		Status: models.AssignmentDraft,
	}, nil)
	service, _ := newAssignmentServiceForTest(assignmentRepo)

	_, err := service.Archive(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAssignmentInvalidStatus)
}

func TestAssignmentUpdateRejectsArchived(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Assignment{
		ID:     1,
		Status: models.AssignmentArchived,
	}, nil)
	service, _ := newAssignmentServiceForTest(assignmentRepo)

	_, err := service.Update(context.Background(), 1, &UpdateAssignmentRequest{Title: strPtr("New title")})
	assert.ErrorIs(t, err, ErrAssignmentNotEditable)
}
