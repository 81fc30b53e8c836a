package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"partner-portal-api/internal/domain"
)

type AgencyRepository interface {
	Create(ctx context.Context, agency *domain.PartnerAgency) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.PartnerAgency, error)
	FindAll(ctx context.Context) ([]*domain.PartnerAgency, error)
	// FindActiveExcept returns non-churned agencies other than the given one,
	// ordered by redistribution preference: fewest active projects first,
	// then highest satisfaction rating, then id.
	FindActiveExcept(ctx context.Context, excludeID uuid.UUID) ([]*domain.PartnerAgency, error)
	Update(ctx context.Context, agency *domain.PartnerAgency) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
	CountActive(ctx context.Context) (int64, error)
}

type agencyRepositoryImpl struct {
	db *gorm.DB
}

func NewAgencyRepository(db *gorm.DB) AgencyRepository {
	return &agencyRepositoryImpl{db: db}
}

func (r *agencyRepositoryImpl) Create(ctx context.Context, agency *domain.PartnerAgency) error {
	return r.db.WithContext(ctx).Create(agency).Error
}

func (r *agencyRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.PartnerAgency, error) {
	var agency domain.PartnerAgency
	if err := r.db.WithContext(ctx).First(&agency, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &agency, nil
}

func (r *agencyRepositoryImpl) FindAll(ctx context.Context) ([]*domain.PartnerAgency, error) {
	var agencies []*domain.PartnerAgency
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&agencies).Error; err != nil {
		return nil, err
	}
	return agencies, nil
}

func (r *agencyRepositoryImpl) FindActiveExcept(ctx context.Context, excludeID uuid.UUID) ([]*domain.PartnerAgency, error) {
	var agencies []*domain.PartnerAgency
	err := r.db.WithContext(ctx).
		Where("churned = ? AND id <> ?", false, excludeID).
		Order("active_projects ASC, satisfaction_rating DESC, id ASC").
		Find(&agencies).Error
	if err != nil {
		return nil, err
	}
	return agencies, nil
}

func (r *agencyRepositoryImpl) Update(ctx context.Context, agency *domain.PartnerAgency) error {
	return r.db.WithContext(ctx).Save(agency).Error
}

func (r *agencyRepositoryImpl) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.PartnerAgency{}).
		Where("id = ?", id).
		Update("satisfaction_rating", rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *agencyRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PartnerAgency{}).
		Where("churned = ?", false).
		Count(&count).Error
	return count, err
}
