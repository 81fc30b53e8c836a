package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"partner-portal-api/internal/domain"
	"partner-portal-api/internal/dto"
	"partner-portal-api/internal/metrics"
	"partner-portal-api/internal/repository"
	"partner-portal-api/internal/response"
)

// ChurnService defines the interface for partner churn processing
type ChurnService interface {
	ProcessChurn(ctx context.Context, actor domain.Actor, req *dto.ProcessChurnRequest) (*dto.ProcessChurnResponse, error)
	GetChurnEvent(ctx context.Context, id uuid.UUID) (*dto.ChurnEventResponse, error)
	ListChurnEvents(ctx context.Context) ([]*dto.ChurnEventResponse, error)
	MarkClientNotified(ctx context.Context, churnEventID, projectID uuid.UUID) (*dto.RedistributionResponse, error)
}

// churnServiceImpl is the implementation of ChurnService
type churnServiceImpl struct {
	churnRepo   repository.ChurnRepository
	agencyRepo  repository.AgencyRepository
	projectRepo repository.ProjectRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewChurnService creates a new instance of ChurnService
func NewChurnService(
	churnRepo repository.ChurnRepository,
	agencyRepo repository.AgencyRepository,
	projectRepo repository.ProjectRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) ChurnService {
	return &churnServiceImpl{
		churnRepo:   churnRepo,
		agencyRepo:  agencyRepo,
		projectRepo: projectRepo,
		metrics:     m,
		logger:      logger,
	}
}

// ProcessChurn validates the churn request, plans the redistribution of
// the agency's projects and commits everything in one transaction. The
// plan assigns each project to the active agency with the fewest
// projects, breaking ties on higher satisfaction rating, then agency id.
func (s *churnServiceImpl) ProcessChurn(ctx context.Context, actor domain.Actor, req *dto.ProcessChurnRequest) (*dto.ProcessChurnResponse, error) {
	agency, err := s.agencyRepo.FindByID(ctx, req.AgencyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Partner agency not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load agency", err.Error())
	}
	if agency.Churned {
		return nil, response.NewAppError(response.ErrCodeValidation,
			"Agency has already churned", agency.ID.String())
	}

	owned, err := s.projectRepo.FindByAgencyID(ctx, agency.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load agency projects", err.Error())
	}
	ownedByID := make(map[uuid.UUID]*domain.PremiumProject, len(owned))
	for _, project := range owned {
		ownedByID[project.ID] = project
	}

	projects, err := resolveAffectedProjects(req.AffectedProjectIDs, ownedByID)
	if err != nil {
		return nil, err
	}

	var reassignments []repository.ProjectReassignment
	var redistributions []domain.ProjectRedistribution
	eventID := uuid.New()
	now := time.Now().UTC()

	if len(projects) > 0 {
		candidates, err := s.agencyRepo.FindActiveExcept(ctx, agency.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load candidate agencies", err.Error())
		}
		if len(candidates) == 0 {
			return nil, response.NewAppError(response.ErrCodeNoRedistributionTarget,
				"No active partner agency is available to take over the projects", "")
		}

		targets := planRedistribution(projects, candidates)
		candidateByID := make(map[uuid.UUID]*domain.PartnerAgency, len(candidates))
		for _, candidate := range candidates {
			candidateByID[candidate.ID] = candidate
		}

		for i, project := range projects {
			targetID := targets[i]
			target := candidateByID[targetID]

			redistributions = append(redistributions, domain.ProjectRedistribution{
				ID:                 uuid.New(),
				ProjectID:          project.ID,
				FromAgencyID:       agency.ID,
				ToAgencyID:         targetID,
				RedistributionDate: now,
				Reason:             fmt.Sprintf("Reassigned to %s after %s churned", target.Name, agency.Name),
			})

			metadata, err := json.Marshal(map[string]interface{}{
				"churn_event_id": eventID.String(),
				"from_agency_id": agency.ID.String(),
				"to_agency_id":   targetID.String(),
			})
			if err != nil {
				return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode reassignment metadata", err.Error())
			}

			reassignments = append(reassignments, repository.ProjectReassignment{
				ProjectID:  project.ID,
				ToAgencyID: targetID,
				History: &domain.ProjectHistory{
					ID:          uuid.New(),
					ProjectID:   project.ID,
					Action:      domain.ActionAgencyReassigned,
					Description: fmt.Sprintf("Partner agency changed from %s to %s", agency.Name, target.Name),
					ActorID:     actor.ID,
					ActorName:   actor.Name,
					ActorRole:   actor.Role,
					Metadata:    metadata,
					CreatedAt:   now,
				},
			})
		}
	}

	affected, err := json.Marshal(req.AffectedProjectIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode affected projects", err.Error())
	}

	event := &domain.ChurnEvent{
		ID:               eventID,
		PartnerAgencyID:  agency.ID,
		Reason:           req.Reason,
		Date:             now,
		AffectedProjects: affected,
		Redistributions:  redistributions,
	}

	if err := s.churnRepo.CommitChurn(ctx, event, reassignments); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeOwnershipMismatch,
				"A project moved away from the agency while the churn was being processed", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to commit churn", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementChurnEvent()
		s.metrics.AddProjectsRedistributed(len(redistributions))
	}
	s.logger.Info("churn event committed",
		zap.String("churn_event_id", eventID.String()),
		zap.String("agency_id", agency.ID.String()),
		zap.Int("redistributed_projects", len(redistributions)),
		zap.String("actor_id", actor.ID.String()))

	updated := make([]dto.ProjectResponse, 0, len(projects))
	for i, project := range projects {
		project.PartnerAgencyID = &reassignments[i].ToAgencyID
		project.PartnerAgency = nil
		updated = append(updated, toProjectResponse(project))
	}

	return &dto.ProcessChurnResponse{
		ChurnEvent:      toChurnEventResponse(event),
		UpdatedProjects: updated,
	}, nil
}

// GetChurnEvent returns one churn event with its redistribution plan
func (s *churnServiceImpl) GetChurnEvent(ctx context.Context, id uuid.UUID) (*dto.ChurnEventResponse, error) {
	event, err := s.churnRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Churn event not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load churn event", err.Error())
	}
	resp := toChurnEventResponse(event)
	return &resp, nil
}

// ListChurnEvents returns all churn events, most recent first
func (s *churnServiceImpl) ListChurnEvents(ctx context.Context) ([]*dto.ChurnEventResponse, error) {
	events, err := s.churnRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list churn events", err.Error())
	}
	responses := make([]*dto.ChurnEventResponse, 0, len(events))
	for _, event := range events {
		resp := toChurnEventResponse(event)
		responses = append(responses, &resp)
	}
	return responses, nil
}

// MarkClientNotified flags one redistribution entry as communicated to
// the client. The operation is idempotent.
func (s *churnServiceImpl) MarkClientNotified(ctx context.Context, churnEventID, projectID uuid.UUID) (*dto.RedistributionResponse, error) {
	entry, err := s.churnRepo.MarkClientNotified(ctx, churnEventID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound,
				"Redistribution entry not found for churn event and project", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to mark client notified", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementClientNotification()
	}

	resp := toRedistributionResponse(entry)
	return &resp, nil
}

// resolveAffectedProjects checks that the request lists exactly the
// projects the churned agency currently owns, in any order, without
// duplicates, and returns them in request order.
func resolveAffectedProjects(ids []uuid.UUID, ownedByID map[uuid.UUID]*domain.PremiumProject) ([]*domain.PremiumProject, error) {
	seen := make(map[uuid.UUID]bool, len(ids))
	projects := make([]*domain.PremiumProject, 0, len(ids))
	var notOwned []string

	for _, id := range ids {
		if seen[id] {
			return nil, response.NewAppError(response.ErrCodeValidation,
				"Duplicate project id in affected projects", id.String())
		}
		seen[id] = true

		project, ok := ownedByID[id]
		if !ok {
			notOwned = append(notOwned, id.String())
			continue
		}
		projects = append(projects, project)
	}
	if len(notOwned) > 0 {
		return nil, response.NewAppError(response.ErrCodeOwnershipMismatch,
			"Projects are not owned by the churning agency", strings.Join(notOwned, ", "))
	}

	var unlisted []string
	for id := range ownedByID {
		if !seen[id] {
			unlisted = append(unlisted, id.String())
		}
	}
	if len(unlisted) > 0 {
		return nil, response.NewAppError(response.ErrCodeOwnershipMismatch,
			"Agency owns projects missing from the affected list", strings.Join(unlisted, ", "))
	}

	return projects, nil
}
