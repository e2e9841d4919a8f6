package postgres

import (
	"context"
	"fmt"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories"
	"gorm.io/gorm"
)

type ContentBlockPostgreSQL struct {
	db *gorm.DB
}

func NewContentBlockPostgreSQL(db *gorm.DB) repositories.ContentBlockRepository {
	return &ContentBlockPostgreSQL{db: db}
}

func (c *ContentBlockPostgreSQL) Create(ctx context.Context, block *models.ContentBlock) error {
	if err := c.db.WithContext(ctx).Create(block).Error; err != nil {
		return fmt.Errorf("failed to create content block: %w", err)
	}
	return nil
}

func (c *ContentBlockPostgreSQL) GetByID(ctx context.Context, id uint) (*models.ContentBlock, error) {
	var block models.ContentBlock
	if err := c.db.WithContext(ctx).First(&block, id).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (c *ContentBlockPostgreSQL) GetBySection(ctx context.Context, sectionID uint) ([]*models.ContentBlock, error) {
	var blocks []*models.ContentBlock
	err := c.db.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("position ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get content blocks by section: %w", err)
	}
	return blocks, nil
}

func (c *ContentBlockPostgreSQL) Update(ctx context.Context, block *models.ContentBlock) error {
	if err := c.db.WithContext(ctx).Save(block).Error; err != nil {
		return fmt.Errorf("failed to update content block: %w", err)
	}
	return nil
}

func (c *ContentBlockPostgreSQL) Delete(ctx context.Context, id uint) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Groups keep rendering without a block; clear the reference first.
		err := tx.Model(&models.QuestionGroup{}).
			Where("content_block_id = ?", id).
			Update("content_block_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to detach content block from groups: %w", err)
		}
		if err := tx.Delete(&models.ContentBlock{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete content block: %w", err)
		}
		return nil
	})
}
