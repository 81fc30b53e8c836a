package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"partner-portal-api/internal/domain"
)

// ProjectReassignment is one planned move inside a churn commit.
type ProjectReassignment struct {
	ProjectID  uuid.UUID
	ToAgencyID uuid.UUID
	History    *domain.ProjectHistory
}

type ChurnRepository interface {
	// CommitChurn persists the churn event with its redistribution rows,
	// reassigns each affected project, appends the per-project history
	// entries, adjusts agency project counters and deactivates the churned
	// agency. All of it happens in a single transaction.
	CommitChurn(ctx context.Context, event *domain.ChurnEvent, reassignments []ProjectReassignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ChurnEvent, error)
	FindAll(ctx context.Context) ([]*domain.ChurnEvent, error)
	MarkClientNotified(ctx context.Context, churnEventID, projectID uuid.UUID) (*domain.ProjectRedistribution, error)
	FindUnnotified(ctx context.Context, limit int) ([]*domain.ProjectRedistribution, error)
}

type churnRepositoryImpl struct {
	db *gorm.DB
}

func NewChurnRepository(db *gorm.DB) ChurnRepository {
	return &churnRepositoryImpl{db: db}
}

func (r *churnRepositoryImpl) CommitChurn(ctx context.Context, event *domain.ChurnEvent, reassignments []ProjectReassignment) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		for _, move := range reassignments {
			result := tx.Model(&domain.PremiumProject{}).
				Where("id = ? AND partner_agency_id = ?", move.ProjectID, event.PartnerAgencyID).
				Updates(map[string]interface{}{
					"partner_agency_id": move.ToAgencyID,
					"updated_at":        now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}

			if err := tx.Create(move.History).Error; err != nil {
				return err
			}

			err := tx.Model(&domain.PartnerAgency{}).
				Where("id = ?", move.ToAgencyID).
				Update("active_projects", gorm.Expr("active_projects + 1")).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&domain.PartnerAgency{}).
			Where("id = ?", event.PartnerAgencyID).
			Updates(map[string]interface{}{
				"churned":         true,
				"churned_at":      now,
				"active_projects": 0,
			}).Error
	})
}

func (r *churnRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChurnEvent, error) {
	var event domain.ChurnEvent
	err := r.db.WithContext(ctx).
		Preload("Redistributions").
		First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *churnRepositoryImpl) FindAll(ctx context.Context) ([]*domain.ChurnEvent, error) {
	var events []*domain.ChurnEvent
	err := r.db.WithContext(ctx).
		Preload("Redistributions").
		Order("date DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *churnRepositoryImpl) MarkClientNotified(ctx context.Context, churnEventID, projectID uuid.UUID) (*domain.ProjectRedistribution, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.ProjectRedistribution{}).
		Where("churn_event_id = ? AND project_id = ?", churnEventID, projectID).
		Update("client_notified", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var entry domain.ProjectRedistribution
	err := r.db.WithContext(ctx).
		First(&entry, "churn_event_id = ? AND project_id = ?", churnEventID, projectID).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *churnRepositoryImpl) FindUnnotified(ctx context.Context, limit int) ([]*domain.ProjectRedistribution, error) {
	var entries []*domain.ProjectRedistribution
	query := r.db.WithContext(ctx).
		Where("client_notified = ?", false).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
