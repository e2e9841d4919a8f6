package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/events"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/validator"
)

// AssignmentService manages exam assignments and their publish lifecycle.
type AssignmentService interface {
	Create(ctx context.Context, req *CreateAssignmentRequest, createdBy string) (*models.Assignment, error)
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	GetWithSections(ctx context.Context, id uint) (*models.Assignment, error)
	Update(ctx context.Context, id uint, req *UpdateAssignmentRequest) (*models.Assignment, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error)
	Publish(ctx context.Context, id uint) (*models.Assignment, error)
	Archive(ctx context.Context, id uint) (*models.Assignment, error)
}

type CreateAssignmentRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type UpdateAssignmentRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type assignmentService struct {
	repo      *repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewAssignmentService(repo *repositories.Repository, logger utils.Logger, v *validator.Validator, publisher events.EventPublisher) AssignmentService {
	return &assignmentService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *assignmentService) Create(ctx context.Context, req *CreateAssignmentRequest, createdBy string) (*models.Assignment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   createdBy,
	}
	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.InfoContext(ctx, "Assignment created", "assignment_id", assignment.ID)
	return assignment, nil
}

func (s *assignmentService) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return assignment, nil
}

func (s *assignmentService) GetWithSections(ctx context.Context, id uint) (*models.Assignment, error) {
	assignment, err := s.repo.Assignment.GetByIDWithSections(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment with sections: %w", err)
	}
	return assignment, nil
}

func (s *assignmentService) Update(ctx context.Context, id uint, req *UpdateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	assignment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.Status == models.AssignmentArchived {
		return nil, ErrAssignmentNotEditable
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = req.Description
	}

	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}
	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	s.logger.InfoContext(ctx, "Assignment deleted", "assignment_id", id)
	return nil
}

func (s *assignmentService) List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error) {
	return s.repo.Assignment.List(ctx, filters)
}

// Publish transitions Draft -> Published and emits an event for downstream
// consumers. Publishing an empty assignment is rejected.
func (s *assignmentService) Publish(ctx context.Context, id uint) (*models.Assignment, error) {
	assignment, err := s.GetWithSections(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.AssignmentDraft {
		return nil, ErrAssignmentInvalidStatus
	}
	if len(assignment.Sections) == 0 {
		return nil, ErrAssignmentEmptyPublish
	}

	if err := s.repo.Assignment.UpdateStatus(ctx, id, models.AssignmentPublished); err != nil {
		return nil, fmt.Errorf("failed to publish assignment: %w", err)
	}
	assignment.Status = models.AssignmentPublished

	s.publish(ctx, events.EventAssignmentPublished, events.AssignmentPublishedEvent{
		AssignmentID: assignment.ID,
		Title:        assignment.Title,
		Sections:     len(assignment.Sections),
	})

	s.logger.InfoContext(ctx, "Assignment published", "assignment_id", id)
	return assignment, nil
}

func (s *assignmentService) Archive(ctx context.Context, id uint) (*models.Assignment, error) {
	assignment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.AssignmentPublished {
		return nil, ErrAssignmentInvalidStatus
	}

	if err := s.repo.Assignment.UpdateStatus(ctx, id, models.AssignmentArchived); err != nil {
		return nil, fmt.Errorf("failed to archive assignment: %w", err)
	}
	assignment.Status = models.AssignmentArchived
	return assignment, nil
}

// publish sends an event without failing the operation: the state change is
// already committed when the event goes out.
func (s *assignmentService) publish(ctx context.Context, eventType events.EventType, data interface{}) {
	if s.publisher == nil {
		return
	}
	event := &events.AuthoringEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    "lexistest-admin",
		Data:      data,
	}
	if err := s.publisher.PublishAuthoringEvent(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event", "event_type", eventType, "error", err)
	}
}
