package postgres

import (
	"context"
	"fmt"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories"
	"gorm.io/gorm"
)

type SectionPostgreSQL struct {
	db *gorm.DB
}

func NewSectionPostgreSQL(db *gorm.DB) repositories.SectionRepository {
	return &SectionPostgreSQL{db: db}
}

func (s *SectionPostgreSQL) Create(ctx context.Context, section *models.Section) error {
	if err := s.db.WithContext(ctx).Create(section).Error; err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}
	return nil
}

func (s *SectionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Section, error) {
	var section models.Section
	if err := s.db.WithContext(ctx).First(&section, id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// GetByIDWithDetails loads the section with its content blocks and question
// groups in position order. This is the shape the preview engine consumes.
func (s *SectionPostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.Section, error) {
	var section models.Section
	err := s.db.WithContext(ctx).
		Preload("ContentBlocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("QuestionGroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&section, id).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (s *SectionPostgreSQL) Update(ctx context.Context, section *models.Section) error {
	if err := s.db.WithContext(ctx).Save(section).Error; err != nil {
		return fmt.Errorf("failed to update section: %w", err)
	}
	return nil
}

// Delete soft-deletes the section and hard-deletes its groups and blocks in
// one transaction.
func (s *SectionPostgreSQL) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", id).Delete(&models.QuestionGroup{}).Error; err != nil {
			return fmt.Errorf("failed to delete section groups: %w", err)
		}
		if err := tx.Where("section_id = ?", id).Delete(&models.ContentBlock{}).Error; err != nil {
			return fmt.Errorf("failed to delete section content blocks: %w", err)
		}
		if err := tx.Delete(&models.Section{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete section: %w", err)
		}
		return nil
	})
}

func (s *SectionPostgreSQL) List(ctx context.Context, filters repositories.SectionFilters) ([]*models.Section, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Section{})

	if filters.SectionType != nil {
		query = query.Where("section_type = ?", *filters.SectionType)
	}
	if filters.AssignmentID != nil {
		query = query.Where("assignment_id = ?", *filters.AssignmentID)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sections: %w", err)
	}

	var sections []*models.Section
	query = applyPaginationAndSort(query, filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
	if err := query.Find(&sections).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, total, nil
}

func (s *SectionPostgreSQL) GetByAssignment(ctx context.Context, assignmentID uint) ([]*models.Section, error) {
	var sections []*models.Section
	err := s.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("position ASC").
		Find(&sections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sections by assignment: %w", err)
	}
	return sections, nil
}
