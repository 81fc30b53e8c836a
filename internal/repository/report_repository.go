package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"partner-portal-api/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.ProjectReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ProjectReport, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectReport, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reportRepositoryImpl struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepositoryImpl{db: db}
}

func (r *reportRepositoryImpl) Create(ctx context.Context, report *domain.ProjectReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ProjectReport, error) {
	var report domain.ProjectReport
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectReport, error) {
	var reports []*domain.ProjectReport
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectReport{}, "id = ?", id).Error
}
