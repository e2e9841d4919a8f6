package postgres

import (
	"fmt"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories"
	"gorm.io/gorm"
)

// New wires every repository against one gorm handle.
func New(db *gorm.DB) *repositories.Repository {
	return &repositories.Repository{
		Section:      NewSectionPostgreSQL(db),
		Question:     NewQuestionPostgreSQL(db),
		Group:        NewQuestionGroupPostgreSQL(db),
		ContentBlock: NewContentBlockPostgreSQL(db),
		Assignment:   NewAssignmentPostgreSQL(db),
	}
}

var sortableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"position":   true,
}

// applyPaginationAndSort caps page size and whitelists sort columns so filter
// input can never reach the ORDER BY clause raw.
func applyPaginationAndSort(query *gorm.DB, limit, offset int, sortBy, sortOrder string) *gorm.DB {
	if !sortableColumns[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}
