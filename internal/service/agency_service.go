package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"partner-portal-api/internal/domain"
	"partner-portal-api/internal/dto"
	"partner-portal-api/internal/repository"
	"partner-portal-api/internal/response"
)

// AgencyService defines the interface for partner agency management
type AgencyService interface {
	CreateAgency(ctx context.Context, req *dto.CreateAgencyRequest) (*dto.AgencyResponse, error)
	GetAgency(ctx context.Context, id uuid.UUID) (*dto.AgencyResponse, error)
	ListAgencies(ctx context.Context) ([]*dto.AgencyResponse, error)
	UpdateRating(ctx context.Context, id uuid.UUID, req *dto.UpdateAgencyRatingRequest) (*dto.AgencyResponse, error)
	GetAgencyProjects(ctx context.Context, id uuid.UUID) ([]*dto.ProjectResponse, error)
}

// agencyServiceImpl is the implementation of AgencyService
type agencyServiceImpl struct {
	agencyRepo  repository.AgencyRepository
	projectRepo repository.ProjectRepository
	logger      *zap.Logger
}

// NewAgencyService creates a new instance of AgencyService
func NewAgencyService(agencyRepo repository.AgencyRepository, projectRepo repository.ProjectRepository, logger *zap.Logger) AgencyService {
	return &agencyServiceImpl{
		agencyRepo:  agencyRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// CreateAgency signs on a partner agency
func (s *agencyServiceImpl) CreateAgency(ctx context.Context, req *dto.CreateAgencyRequest) (*dto.AgencyResponse, error) {
	tier := req.Tier
	if tier == "" {
		tier = domain.TierPremium
	}

	agency := &domain.PartnerAgency{
		Name:               req.Name,
		Tier:               tier,
		ContactName:        req.ContactName,
		ContactEmail:       req.ContactEmail,
		ContactPhone:       req.ContactPhone,
		SatisfactionRating: req.SatisfactionRating,
	}
	if err := s.agencyRepo.Create(ctx, agency); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create agency", err.Error())
	}

	resp := toAgencyResponse(agency)
	return &resp, nil
}

// GetAgency returns one partner agency
func (s *agencyServiceImpl) GetAgency(ctx context.Context, id uuid.UUID) (*dto.AgencyResponse, error) {
	agency, err := s.agencyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Partner agency not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load agency", err.Error())
	}
	resp := toAgencyResponse(agency)
	return &resp, nil
}

// ListAgencies returns the full roster, churned agencies included
func (s *agencyServiceImpl) ListAgencies(ctx context.Context) ([]*dto.AgencyResponse, error) {
	agencies, err := s.agencyRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list agencies", err.Error())
	}
	responses := make([]*dto.AgencyResponse, 0, len(agencies))
	for _, agency := range agencies {
		resp := toAgencyResponse(agency)
		responses = append(responses, &resp)
	}
	return responses, nil
}

// UpdateRating sets an agency's satisfaction rating
func (s *agencyServiceImpl) UpdateRating(ctx context.Context, id uuid.UUID, req *dto.UpdateAgencyRatingRequest) (*dto.AgencyResponse, error) {
	if err := s.agencyRepo.UpdateRating(ctx, id, req.SatisfactionRating); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Partner agency not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update rating", err.Error())
	}
	return s.GetAgency(ctx, id)
}

// GetAgencyProjects returns the projects currently assigned to an agency
func (s *agencyServiceImpl) GetAgencyProjects(ctx context.Context, id uuid.UUID) ([]*dto.ProjectResponse, error) {
	if _, err := s.agencyRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Partner agency not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load agency", err.Error())
	}

	projects, err := s.projectRepo.FindByAgencyID(ctx, id)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load agency projects", err.Error())
	}
	responses := make([]*dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		resp := toProjectResponse(project)
		responses = append(responses, &resp)
	}
	return responses, nil
}
