package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"partner-portal-api/internal/domain"
	"partner-portal-api/internal/dto"
	"partner-portal-api/internal/metrics"
	"partner-portal-api/internal/repository"
	"partner-portal-api/internal/response"
)

const (
	portfolioSummaryCacheKey = "portal:portfolio_summary"
	portfolioSummaryCacheTTL = 60 * time.Second
)

// ProjectService defines the interface for premium project management
type ProjectService interface {
	CreateProject(ctx context.Context, actor domain.Actor, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetProject(ctx context.Context, id uuid.UUID) (*dto.ProjectDetailResponse, error)
	ListProjects(ctx context.Context, filters *dto.ProjectFilters) ([]*dto.ProjectResponse, error)
	GetPortfolioSummary(ctx context.Context) (*dto.PortfolioSummaryResponse, error)
}

// projectServiceImpl is the implementation of ProjectService
type projectServiceImpl struct {
	projectRepo repository.ProjectRepository
	agencyRepo  repository.AgencyRepository
	historyRepo repository.HistoryRepository
	redisClient *redis.Client
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewProjectService creates a new instance of ProjectService. The redis
// client may be nil, in which case the portfolio summary is computed on
// every request.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	agencyRepo repository.AgencyRepository,
	historyRepo repository.HistoryRepository,
	redisClient *redis.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		agencyRepo:  agencyRepo,
		historyRepo: historyRepo,
		redisClient: redisClient,
		metrics:     m,
		logger:      logger,
	}
}

// CreateProject registers a premium project in the initial status and
// seeds its audit history with a creation entry.
func (s *projectServiceImpl) CreateProject(ctx context.Context, actor domain.Actor, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if req.PartnerAgencyID != nil {
		agency, err := s.agencyRepo.FindByID(ctx, *req.PartnerAgencyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeNotFound, "Partner agency not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify agency", err.Error())
		}
		if agency.Churned {
			return nil, response.NewAppError(response.ErrCodeValidation,
				"Cannot assign a project to a churned agency", agency.ID.String())
		}
	}

	churnRisk := req.ChurnRisk
	if churnRisk == "" {
		churnRisk = domain.ChurnRiskLow
	}

	project := &domain.PremiumProject{
		Title:                 req.Title,
		Description:           req.Description,
		ClientName:            req.ClientName,
		CommercialAdmin:       req.CommercialAdmin,
		Value:                 req.Value,
		Status:                domain.StatusElaborado,
		PartnerAgencyID:       req.PartnerAgencyID,
		ProposalDate:          req.ProposalDate,
		ConversionProbability: req.ConversionProbability,
		ChurnRisk:             churnRisk,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create project", err.Error())
	}

	entry := &domain.ProjectHistory{
		ID:          uuid.New(),
		ProjectID:   project.ID,
		Action:      domain.ActionProjectCreated,
		Description: "Project registered in status elaborado",
		ActorID:     actor.ID,
		ActorName:   actor.Name,
		ActorRole:   actor.Role,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to seed project history",
			zap.String("project_id", project.ID.String()),
			zap.Error(err))
	}

	if s.metrics != nil {
		s.metrics.IncrementProjectCreated()
	}
	s.invalidatePortfolioSummary(ctx)

	resp := toProjectResponse(project)
	return &resp, nil
}

// GetProject returns one project with its full audit history
func (s *projectServiceImpl) GetProject(ctx context.Context, id uuid.UUID) (*dto.ProjectDetailResponse, error) {
	project, err := s.projectRepo.FindByIDWithHistory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load project", err.Error())
	}

	detail := &dto.ProjectDetailResponse{
		ProjectResponse: toProjectResponse(project),
		History:         make([]dto.HistoryResponse, 0, len(project.History)),
	}
	for i := range project.History {
		detail.History = append(detail.History, toHistoryResponse(&project.History[i]))
	}
	return detail, nil
}

// ListProjects returns projects matching the optional filters
func (s *projectServiceImpl) ListProjects(ctx context.Context, filters *dto.ProjectFilters) ([]*dto.ProjectResponse, error) {
	repoFilters := repository.ProjectFilters{}
	if filters != nil {
		repoFilters.Status = filters.Status
		repoFilters.AgencyID = filters.AgencyID
	}

	projects, err := s.projectRepo.FindAll(ctx, repoFilters)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list projects", err.Error())
	}

	responses := make([]*dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		resp := toProjectResponse(project)
		responses = append(responses, &resp)
	}
	return responses, nil
}

// GetPortfolioSummary aggregates project counts and values per status.
// The result is cached in redis for a short window; a cache failure
// falls through to the database.
func (s *projectServiceImpl) GetPortfolioSummary(ctx context.Context) (*dto.PortfolioSummaryResponse, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, portfolioSummaryCacheKey).Result()
		if err == nil {
			var summary dto.PortfolioSummaryResponse
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("portfolio summary cache read failed", zap.Error(err))
		}
	}

	rows, err := s.projectRepo.SummarizeByStatus(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to summarize portfolio", err.Error())
	}

	byStatus := make(map[domain.ProjectStatus]repository.StatusAggregate, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row
	}

	// Every status shows up in the rollup, zeroed when no project holds it.
	summary := &dto.PortfolioSummaryResponse{
		Statuses:    make([]dto.StatusSummary, 0, len(domain.StatusOrder)),
		GeneratedAt: time.Now().UTC(),
	}
	for _, status := range domain.StatusOrder {
		row := byStatus[status]
		summary.Statuses = append(summary.Statuses, dto.StatusSummary{
			Status:     status,
			Label:      domain.StatusConfigs[status].Label,
			Count:      row.Count,
			TotalValue: row.TotalValue,
		})
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.redisClient.Set(ctx, portfolioSummaryCacheKey, payload, portfolioSummaryCacheTTL).Err(); err != nil {
				s.logger.Warn("portfolio summary cache write failed", zap.Error(err))
			}
		}
	}
	return summary, nil
}

func (s *projectServiceImpl) invalidatePortfolioSummary(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, portfolioSummaryCacheKey).Err(); err != nil {
		s.logger.Warn("portfolio summary cache invalidation failed", zap.Error(err))
	}
}
