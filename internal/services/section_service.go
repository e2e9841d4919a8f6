package services

import (
	"context"
	"fmt"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/validator"
	"gorm.io/datatypes"
)

// SectionService manages sections, their question groups and content blocks.
type SectionService interface {
	Create(ctx context.Context, req *CreateSectionRequest, createdBy string) (*models.Section, error)
	GetByID(ctx context.Context, id uint) (*models.Section, error)
	GetWithDetails(ctx context.Context, id uint) (*models.Section, error)
	Update(ctx context.Context, id uint, req *UpdateSectionRequest) (*models.Section, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.SectionFilters) ([]*models.Section, int64, error)

	CreateGroup(ctx context.Context, sectionID uint, req *GroupRequest) (*models.QuestionGroup, error)
	UpdateGroup(ctx context.Context, groupID uint, req *GroupRequest) (*models.QuestionGroup, error)
	DeleteGroup(ctx context.Context, groupID uint) error
	ReorderGroups(ctx context.Context, sectionID uint, orders []repositories.GroupOrder) error

	CreateContentBlock(ctx context.Context, sectionID uint, req *ContentBlockRequest) (*models.ContentBlock, error)
	UpdateContentBlock(ctx context.Context, blockID uint, req *ContentBlockRequest) (*models.ContentBlock, error)
	DeleteContentBlock(ctx context.Context, blockID uint) error
}

// ===== REQUEST DTOS =====

type CreateSectionRequest struct {
	Title        string             `json:"title" validate:"required,min=1,max=200"`
	SectionType  models.SectionType `json:"section_type" validate:"required,section_type"`
	Instructions *string            `json:"instructions"`
	AssignmentID *uint              `json:"assignment_id"`
	Position     int                `json:"position" validate:"gte=0"`
}

type UpdateSectionRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=200"`
	Instructions *string `json:"instructions"`
	Position     *int    `json:"position" validate:"omitempty,gte=0"`
}

type GroupRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=500"`
	Instructions    *string `json:"instructions"`
	SubInstructions *string `json:"sub_instructions"`
	ContentBlockID  *uint   `json:"content_block_id"`
	Position        int     `json:"position" validate:"gte=0"`
	QuestionIDs     []uint  `json:"question_ids"`
}

type ContentBlockRequest struct {
	ContentType      models.ContentType `json:"content_type" validate:"required,content_type"`
	Position         int                `json:"position" validate:"gte=0"`
	PassageTitle     *string            `json:"passage_title" validate:"omitempty,max=500"`
	PassageContent   *string            `json:"passage_content"`
	PassageFootnotes *string            `json:"passage_footnotes"`
	AudioURL         *string            `json:"audio_url" validate:"omitempty,max=500"`
}

// ===== SERVICE =====

type sectionService struct {
	repo      *repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
}

func NewSectionService(repo *repositories.Repository, logger utils.Logger, v *validator.Validator) SectionService {
	return &sectionService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *sectionService) Create(ctx context.Context, req *CreateSectionRequest, createdBy string) (*models.Section, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	section := &models.Section{
		Title:        req.Title,
		SectionType:  req.SectionType,
		Instructions: req.Instructions,
		AssignmentID: req.AssignmentID,
		Position:     req.Position,
		CreatedBy:    createdBy,
	}
	if err := s.repo.Section.Create(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}

	s.logger.InfoContext(ctx, "Section created", "section_id", section.ID, "section_type", section.SectionType)
	return section, nil
}

func (s *sectionService) GetByID(ctx context.Context, id uint) (*models.Section, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return section, nil
}

func (s *sectionService) GetWithDetails(ctx context.Context, id uint) (*models.Section, error) {
	section, err := s.repo.Section.GetByIDWithDetails(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to get section with details: %w", err)
	}
	return section, nil
}

func (s *sectionService) Update(ctx context.Context, id uint, req *UpdateSectionRequest) (*models.Section, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	section, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.Instructions != nil {
		section.Instructions = req.Instructions
	}
	if req.Position != nil {
		section.Position = *req.Position
	}

	if err := s.repo.Section.Update(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to update section: %w", err)
	}
	return section, nil
}

func (s *sectionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Section.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}
	s.logger.InfoContext(ctx, "Section deleted", "section_id", id)
	return nil
}

func (s *sectionService) List(ctx context.Context, filters repositories.SectionFilters) ([]*models.Section, int64, error) {
	return s.repo.Section.List(ctx, filters)
}

// ===== QUESTION GROUPS =====

func (s *sectionService) CreateGroup(ctx context.Context, sectionID uint, req *GroupRequest) (*models.QuestionGroup, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.GetByID(ctx, sectionID); err != nil {
		return nil, err
	}
	if err := s.checkGroupQuestions(ctx, req.QuestionIDs); err != nil {
		return nil, err
	}

	group := &models.QuestionGroup{
		SectionID:       sectionID,
		Title:           req.Title,
		Instructions:    req.Instructions,
		SubInstructions: req.SubInstructions,
		ContentBlockID:  req.ContentBlockID,
		Position:        req.Position,
		QuestionIDs:     datatypes.NewJSONSlice(req.QuestionIDs),
	}
	if err := s.repo.Group.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create question group: %w", err)
	}
	return group, nil
}

func (s *sectionService) UpdateGroup(ctx context.Context, groupID uint, req *GroupRequest) (*models.QuestionGroup, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	group, err := s.repo.Group.GetByID(ctx, groupID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get question group: %w", err)
	}
	if err := s.checkGroupQuestions(ctx, req.QuestionIDs); err != nil {
		return nil, err
	}

	group.Title = req.Title
	group.Instructions = req.Instructions
	group.SubInstructions = req.SubInstructions
	group.ContentBlockID = req.ContentBlockID
	group.Position = req.Position
	group.QuestionIDs = datatypes.NewJSONSlice(req.QuestionIDs)

	if err := s.repo.Group.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to update question group: %w", err)
	}
	return group, nil
}

func (s *sectionService) DeleteGroup(ctx context.Context, groupID uint) error {
	if _, err := s.repo.Group.GetByID(ctx, groupID); err != nil {
		if IsNotFound(err) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to get question group: %w", err)
	}
	if err := s.repo.Group.Delete(ctx, groupID); err != nil {
		return fmt.Errorf("failed to delete question group: %w", err)
	}
	return nil
}

func (s *sectionService) ReorderGroups(ctx context.Context, sectionID uint, orders []repositories.GroupOrder) error {
	if len(orders) == 0 {
		return NewValidationError("orders", "at least one group order is required", nil)
	}
	if err := s.repo.Group.Reorder(ctx, sectionID, orders); err != nil {
		return fmt.Errorf("failed to reorder question groups: %w", err)
	}
	s.logger.InfoContext(ctx, "Question groups reordered", "section_id", sectionID, "count", len(orders))
	return nil
}

// checkGroupQuestions verifies every referenced question exists. The preview
// engine tolerates dangling ids, but authoring rejects them up front.
func (s *sectionService) checkGroupQuestions(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	questions, err := s.repo.Question.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check group questions: %w", err)
	}
	found := make(map[uint]bool, len(questions))
	for _, q := range questions {
		found[q.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return NewValidationError("question_ids", fmt.Sprintf("question %d does not exist", id), id)
		}
	}
	return nil
}

// ===== CONTENT BLOCKS =====

func (s *sectionService) CreateContentBlock(ctx context.Context, sectionID uint, req *ContentBlockRequest) (*models.ContentBlock, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.GetByID(ctx, sectionID); err != nil {
		return nil, err
	}
	if err := validateBlockContent(req); err != nil {
		return nil, err
	}

	block := &models.ContentBlock{
		SectionID:        sectionID,
		ContentType:      req.ContentType,
		Position:         req.Position,
		PassageTitle:     req.PassageTitle,
		PassageContent:   req.PassageContent,
		PassageFootnotes: req.PassageFootnotes,
		AudioURL:         req.AudioURL,
	}
	if err := s.repo.ContentBlock.Create(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to create content block: %w", err)
	}
	return block, nil
}

func (s *sectionService) UpdateContentBlock(ctx context.Context, blockID uint, req *ContentBlockRequest) (*models.ContentBlock, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := validateBlockContent(req); err != nil {
		return nil, err
	}

	block, err := s.repo.ContentBlock.GetByID(ctx, blockID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrContentBlockNotFound
		}
		return nil, fmt.Errorf("failed to get content block: %w", err)
	}

	block.ContentType = req.ContentType
	block.Position = req.Position
	block.PassageTitle = req.PassageTitle
	block.PassageContent = req.PassageContent
	block.PassageFootnotes = req.PassageFootnotes
	block.AudioURL = req.AudioURL

	if err := s.repo.ContentBlock.Update(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to update content block: %w", err)
	}
	return block, nil
}

func (s *sectionService) DeleteContentBlock(ctx context.Context, blockID uint) error {
	if _, err := s.repo.ContentBlock.GetByID(ctx, blockID); err != nil {
		if IsNotFound(err) {
			return ErrContentBlockNotFound
		}
		return fmt.Errorf("failed to get content block: %w", err)
	}
	if err := s.repo.ContentBlock.Delete(ctx, blockID); err != nil {
		return fmt.Errorf("failed to delete content block: %w", err)
	}
	return nil
}

func validateBlockContent(req *ContentBlockRequest) error {
	switch req.ContentType {
	case models.ContentAudio:
		if req.AudioURL == nil || *req.AudioURL == "" {
			return NewValidationError("audio_url", "audio content blocks require an audio_url", nil)
		}
	case models.ContentPassage:
		if req.PassageContent == nil || *req.PassageContent == "" {
			return NewValidationError("passage_content", "passage content blocks require passage_content", nil)
		}
	}
	return nil
}
