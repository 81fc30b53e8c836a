package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"partner-portal-api/internal/domain"
)

// ErrStatusConflict is returned when a guarded status update matches no row,
// meaning the project's status changed between read and write.
var ErrStatusConflict = errors.New("project status changed concurrently")

// ProjectFilters narrows FindAll results. Nil fields are ignored.
type ProjectFilters struct {
	Status   *domain.ProjectStatus
	AgencyID *uuid.UUID
}

// StatusAggregate is one row of the portfolio summary grouped by status.
type StatusAggregate struct {
	Status     domain.ProjectStatus `json:"status"`
	Count      int64                `json:"count"`
	TotalValue float64              `json:"total_value"`
}

type ProjectRepository interface {
	// Create persists the project and, when it is assigned to an agency,
	// increments that agency's active project counter in the same
	// transaction.
	Create(ctx context.Context, project *domain.PremiumProject) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error)
	FindByIDWithHistory(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error)
	FindAll(ctx context.Context, filters ProjectFilters) ([]*domain.PremiumProject, error)
	FindByAgencyID(ctx context.Context, agencyID uuid.UUID) ([]*domain.PremiumProject, error)
	Update(ctx context.Context, project *domain.PremiumProject) error
	// CommitTransition atomically moves the project from its prior status to
	// project.Status and appends the history entry. The update is guarded on
	// the prior status; ErrStatusConflict is returned when the guard misses.
	// Transitions into a terminal status release the owning agency's
	// active project counter.
	CommitTransition(ctx context.Context, project *domain.PremiumProject, from domain.ProjectStatus, entry *domain.ProjectHistory) error
	SummarizeByStatus(ctx context.Context) ([]StatusAggregate, error)
}

type projectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func (r *projectRepositoryImpl) Create(ctx context.Context, project *domain.PremiumProject) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		if project.PartnerAgencyID == nil {
			return nil
		}
		return tx.Model(&domain.PartnerAgency{}).
			Where("id = ?", *project.PartnerAgencyID).
			Update("active_projects", gorm.Expr("active_projects + 1")).Error
	})
}

func (r *projectRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
	var project domain.PremiumProject
	err := r.db.WithContext(ctx).
		Preload("PartnerAgency").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepositoryImpl) FindByIDWithHistory(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
	var project domain.PremiumProject
	err := r.db.WithContext(ctx).
		Preload("PartnerAgency").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepositoryImpl) FindAll(ctx context.Context, filters ProjectFilters) ([]*domain.PremiumProject, error) {
	query := r.db.WithContext(ctx).Preload("PartnerAgency")
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.AgencyID != nil {
		query = query.Where("partner_agency_id = ?", *filters.AgencyID)
	}

	var projects []*domain.PremiumProject
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepositoryImpl) FindByAgencyID(ctx context.Context, agencyID uuid.UUID) ([]*domain.PremiumProject, error) {
	var projects []*domain.PremiumProject
	err := r.db.WithContext(ctx).
		Where("partner_agency_id = ?", agencyID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepositoryImpl) Update(ctx context.Context, project *domain.PremiumProject) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepositoryImpl) CommitTransition(ctx context.Context, project *domain.PremiumProject, from domain.ProjectStatus, entry *domain.ProjectHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.PremiumProject{}).
			Where("id = ? AND status = ?", project.ID, from).
			Updates(map[string]interface{}{
				"status":     project.Status,
				"start_date": project.StartDate,
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStatusConflict
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		// A project entering a terminal status leaves its agency's
		// working load.
		if project.Status.IsTerminal() && project.PartnerAgencyID != nil {
			err := tx.Model(&domain.PartnerAgency{}).
				Where("id = ? AND active_projects > 0", *project.PartnerAgencyID).
				Update("active_projects", gorm.Expr("active_projects - 1")).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *projectRepositoryImpl) SummarizeByStatus(ctx context.Context) ([]StatusAggregate, error) {
	var rows []StatusAggregate
	err := r.db.WithContext(ctx).
		Model(&domain.PremiumProject{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(value), 0) AS total_value").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
