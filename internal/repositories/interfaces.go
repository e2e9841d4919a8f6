package repositories

import (
	"context"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type SectionFilters struct {
	SectionType  *models.SectionType `json:"section_type"`
	AssignmentID *uint               `json:"assignment_id"`
	CreatedBy    *string             `json:"created_by"`
	Limit        int                 `json:"limit"`
	Offset       int                 `json:"offset"`
	SortBy       string              `json:"sort_by"`    // "created_at", "title", "position"
	SortOrder    string              `json:"sort_order"` // "asc", "desc"
}

type QuestionFilters struct {
	Format    *models.QuestionFormat `json:"format"`
	SectionID *uint                  `json:"section_id"`
	CreatedBy *string                `json:"created_by"`
	Search    string                 `json:"search"`
	Limit     int                    `json:"limit"`
	Offset    int                    `json:"offset"`
	SortBy    string                 `json:"sort_by"`
	SortOrder string                 `json:"sort_order"`
}

type AssignmentFilters struct {
	Status    *models.AssignmentStatus `json:"status"`
	CreatedBy *string                  `json:"created_by"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
	SortBy    string                   `json:"sort_by"`
	SortOrder string                   `json:"sort_order"`
}

// GroupOrder repositions one group inside its section.
type GroupOrder struct {
	GroupID  uint `json:"group_id"`
	Position int  `json:"position"`
}

// ===== REPOSITORY INTERFACES =====

type SectionRepository interface {
	Create(ctx context.Context, section *models.Section) error
	GetByID(ctx context.Context, id uint) (*models.Section, error)
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Section, error)
	Update(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters SectionFilters) ([]*models.Section, int64, error)
	GetByAssignment(ctx context.Context, assignmentID uint) ([]*models.Section, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, int64, error)
}

type QuestionGroupRepository interface {
	Create(ctx context.Context, group *models.QuestionGroup) error
	GetByID(ctx context.Context, id uint) (*models.QuestionGroup, error)
	GetBySection(ctx context.Context, sectionID uint) ([]*models.QuestionGroup, error)
	Update(ctx context.Context, group *models.QuestionGroup) error
	Delete(ctx context.Context, id uint) error
	Reorder(ctx context.Context, sectionID uint, orders []GroupOrder) error
}

type ContentBlockRepository interface {
	Create(ctx context.Context, block *models.ContentBlock) error
	GetByID(ctx context.Context, id uint) (*models.ContentBlock, error)
	GetBySection(ctx context.Context, sectionID uint) ([]*models.ContentBlock, error)
	Update(ctx context.Context, block *models.ContentBlock) error
	Delete(ctx context.Context, id uint) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	GetByIDWithSections(ctx context.Context, id uint) (*models.Assignment, error)
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters AssignmentFilters) ([]*models.Assignment, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.AssignmentStatus) error
}

// Repository bundles all repositories behind one constructor-friendly struct.
type Repository struct {
	Section      SectionRepository
	Question     QuestionRepository
	Group        QuestionGroupRepository
	ContentBlock ContentBlockRepository
	Assignment   AssignmentRepository
}
