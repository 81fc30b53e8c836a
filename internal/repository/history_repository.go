package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"partner-portal-api/internal/domain"
)

// HistoryRepository is append-only: entries are never updated or deleted.
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.ProjectHistory) error
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectHistory, error)
}

type historyRepositoryImpl struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepositoryImpl{db: db}
}

func (r *historyRepositoryImpl) Create(ctx context.Context, entry *domain.ProjectHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *historyRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectHistory, error) {
	var entries []*domain.ProjectHistory
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
