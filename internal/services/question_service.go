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

// QuestionService manages the question bank. Authoring is strict: payloads a
// preview would merely render as placeholders are rejected here.
type QuestionService interface {
	Create(ctx context.Context, req *CreateQuestionRequest, createdBy string) (*models.Question, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	Update(ctx context.Context, id uint, req *UpdateQuestionRequest) (*models.Question, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error)
}

// ===== REQUEST DTOS =====

type CreateQuestionRequest struct {
	QuestionFormat  models.QuestionFormat `json:"question_format" validate:"required,question_format"`
	Title           *string               `json:"title" validate:"omitempty,max=500"`
	Content         string                `json:"content"`
	Instructions    *string               `json:"instructions"`
	SubInstructions *string               `json:"sub_instructions"`
	OptionsData     datatypes.JSON        `json:"options_data"`
	ItemCount       int                   `json:"item_count" validate:"omitempty,min=1,max=40"`
	AudioURL        *string               `json:"audio_url" validate:"omitempty,max=500"`

	SpeakingCategory *models.SpeakingCategory `json:"speaking_category" validate:"omitempty,oneof=part1 part2 part3"`
	RelatedPart2ID   *uint                    `json:"related_part2_id"`
	DepthLevel       *int                     `json:"depth_level" validate:"omitempty,min=1,max=5"`
	TargetBandMin    *float64                 `json:"target_band_min" validate:"omitempty,min=0,max=9"`
	TargetBandMax    *float64                 `json:"target_band_max" validate:"omitempty,min=0,max=9"`
}

type UpdateQuestionRequest struct {
	Title           *string        `json:"title" validate:"omitempty,max=500"`
	Content         *string        `json:"content"`
	Instructions    *string        `json:"instructions"`
	SubInstructions *string        `json:"sub_instructions"`
	OptionsData     datatypes.JSON `json:"options_data"`
	ItemCount       *int           `json:"item_count" validate:"omitempty,min=1,max=40"`
	AudioURL        *string        `json:"audio_url" validate:"omitempty,max=500"`
}

// ===== SERVICE =====

type questionService struct {
	repo      *repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
}

func NewQuestionService(repo *repositories.Repository, logger utils.Logger, v *validator.Validator) QuestionService {
	return &questionService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *questionService) Create(ctx context.Context, req *CreateQuestionRequest, createdBy string) (*models.Question, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if len(req.OptionsData) > 0 {
		if err := s.validator.Question().ValidateOptions(req.QuestionFormat, req.OptionsData); err != nil {
			return nil, err
		}
	}

	itemCount := req.ItemCount
	if itemCount < 1 {
		itemCount = 1
	}

	question := &models.Question{
		QuestionFormat:   req.QuestionFormat,
		Title:            req.Title,
		Content:          req.Content,
		Instructions:     req.Instructions,
		SubInstructions:  req.SubInstructions,
		OptionsData:      req.OptionsData,
		ItemCount:        itemCount,
		AudioURL:         req.AudioURL,
		SpeakingCategory: req.SpeakingCategory,
		RelatedPart2ID:   req.RelatedPart2ID,
		DepthLevel:       req.DepthLevel,
		TargetBandMin:    req.TargetBandMin,
		TargetBandMax:    req.TargetBandMax,
	}
	question.CreatedBy = createdBy

	if err := s.validator.Question().ValidateQuestion(question); err != nil {
		return nil, err
	}

	if err := s.repo.Question.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.InfoContext(ctx, "Question created",
		"question_id", question.ID,
		"format", question.QuestionFormat)
	return question, nil
}

func (s *questionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.repo.Question.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}

func (s *questionService) Update(ctx context.Context, id uint, req *UpdateQuestionRequest) (*models.Question, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	question, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		question.Title = req.Title
	}
	if req.Content != nil {
		question.Content = *req.Content
	}
	if req.Instructions != nil {
		question.Instructions = req.Instructions
	}
	if req.SubInstructions != nil {
		question.SubInstructions = req.SubInstructions
	}
	if len(req.OptionsData) > 0 {
		if err := s.validator.Question().ValidateOptions(question.QuestionFormat, req.OptionsData); err != nil {
			return nil, err
		}
		question.OptionsData = req.OptionsData
	}
	if req.ItemCount != nil {
		question.ItemCount = *req.ItemCount
	}
	if req.AudioURL != nil {
		question.AudioURL = req.AudioURL
	}

	if err := s.validator.Question().ValidateQuestion(question); err != nil {
		return nil, err
	}

	if err := s.repo.Question.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

func (s *questionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Question.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	s.logger.InfoContext(ctx, "Question deleted", "question_id", id)
	return nil
}

func (s *questionService) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	return s.repo.Question.List(ctx, filters)
}
