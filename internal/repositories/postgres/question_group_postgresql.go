package postgres

import (
	"context"
	"fmt"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories"
	"gorm.io/gorm"
)

type QuestionGroupPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionGroupPostgreSQL(db *gorm.DB) repositories.QuestionGroupRepository {
	return &QuestionGroupPostgreSQL{db: db}
}

func (g *QuestionGroupPostgreSQL) Create(ctx context.Context, group *models.QuestionGroup) error {
	if err := g.db.WithContext(ctx).Create(group).Error; err != nil {
		return fmt.Errorf("failed to create question group: %w", err)
	}
	return nil
}

func (g *QuestionGroupPostgreSQL) GetByID(ctx context.Context, id uint) (*models.QuestionGroup, error) {
	var group models.QuestionGroup
	if err := g.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *QuestionGroupPostgreSQL) GetBySection(ctx context.Context, sectionID uint) ([]*models.QuestionGroup, error) {
	var groups []*models.QuestionGroup
	err := g.db.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("position ASC").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get groups by section: %w", err)
	}
	return groups, nil
}

func (g *QuestionGroupPostgreSQL) Update(ctx context.Context, group *models.QuestionGroup) error {
	if err := g.db.WithContext(ctx).Save(group).Error; err != nil {
		return fmt.Errorf("failed to update question group: %w", err)
	}
	return nil
}

func (g *QuestionGroupPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := g.db.WithContext(ctx).Delete(&models.QuestionGroup{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete question group: %w", err)
	}
	return nil
}

// Reorder rewrites group positions inside one section transactionally so the
// numbering a preview derives never sees a half-applied order.
func (g *QuestionGroupPostgreSQL) Reorder(ctx context.Context, sectionID uint, orders []repositories.GroupOrder) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			result := tx.Model(&models.QuestionGroup{}).
				Where("id = ? AND section_id = ?", order.GroupID, sectionID).
				Update("position", order.Position)
			if result.Error != nil {
				return fmt.Errorf("failed to reorder group %d: %w", order.GroupID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("group %d does not belong to section %d", order.GroupID, sectionID)
			}
		}
		return nil
	})
}
