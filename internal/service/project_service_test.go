package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"partner-portal-api/internal/domain"
	"partner-portal-api/internal/dto"
	"partner-portal-api/internal/repository"
	"partner-portal-api/internal/response"
)

func TestCreateProject_SeedsHistory(t *testing.T) {
	projectID := uuid.New()
	var seeded *domain.ProjectHistory

	projectRepo := &MockProjectRepository{
		CreateFunc: func(ctx context.Context, project *domain.PremiumProject) error {
			project.ID = projectID
			return nil
		},
	}
	historyRepo := &MockHistoryRepository{
		CreateFunc: func(ctx context.Context, entry *domain.ProjectHistory) error {
			seeded = entry
			return nil
		},
	}
	svc := NewProjectService(projectRepo, &MockAgencyRepository{}, historyRepo, nil, nil, zap.NewNop())

	actor := testActor()
	resp, err := svc.CreateProject(context.Background(), actor, &dto.CreateProjectRequest{
		Title:      "Plataforma B2B Redesign",
		ClientName: "Acme Ltda",
		Value:      185000,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusElaborado, resp.Status)
	assert.Equal(t, domain.ChurnRiskLow, resp.ChurnRisk)

	require.NotNil(t, seeded)
	assert.Equal(t, projectID, seeded.ProjectID)
	assert.Equal(t, domain.ActionProjectCreated, seeded.Action)
	assert.Equal(t, actor.ID, seeded.ActorID)
}

func TestCreateProject_ChurnedAgencyRejected(t *testing.T) {
	agencyID := uuid.New()
	agencyRepo := &MockAgencyRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.PartnerAgency, error) {
			return &domain.PartnerAgency{
				BaseModel: domain.BaseModel{ID: agencyID},
				Name:      "Encerrada",
				Churned:   true,
			}, nil
		},
	}
	svc := NewProjectService(&MockProjectRepository{}, agencyRepo, &MockHistoryRepository{}, nil, nil, zap.NewNop())

	_, err := svc.CreateProject(context.Background(), testActor(), &dto.CreateProjectRequest{
		Title:           "Plataforma B2B Redesign",
		ClientName:      "Acme Ltda",
		PartnerAgencyID: &agencyID,
	})
	assertAppErrorCode(t, err, response.ErrCodeValidation)
}

func TestGetPortfolioSummary_ZeroFillsStatuses(t *testing.T) {
	projectRepo := &MockProjectRepository{
		SummarizeByStatusFunc: func(ctx context.Context) ([]repository.StatusAggregate, error) {
			return []repository.StatusAggregate{
				{Status: domain.StatusAtivo, Count: 2, TotalValue: 75000},
			}, nil
		},
	}
	svc := NewProjectService(projectRepo, &MockAgencyRepository{}, &MockHistoryRepository{}, nil, nil, zap.NewNop())

	summary, err := svc.GetPortfolioSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Statuses, len(domain.StatusOrder))
	byStatus := make(map[domain.ProjectStatus]dto.StatusSummary, len(summary.Statuses))
	for _, row := range summary.Statuses {
		byStatus[row.Status] = row
	}
	assert.Equal(t, int64(2), byStatus[domain.StatusAtivo].Count)
	assert.InDelta(t, 75000, byStatus[domain.StatusAtivo].TotalValue, 0.01)
	assert.Zero(t, byStatus[domain.StatusPerdido].Count)
	assert.Equal(t, "Perdido", byStatus[domain.StatusPerdido].Label)
}

func TestGetProject_IncludesHistory(t *testing.T) {
	projectID := uuid.New()
	projectRepo := &MockProjectRepository{
		FindByIDWithHistoryFunc: func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
			return &domain.PremiumProject{
				BaseModel:  domain.BaseModel{ID: projectID},
				Title:      "Plataforma B2B Redesign",
				ClientName: "Acme Ltda",
				Status:     domain.StatusEmNegociacao,
				History: []domain.ProjectHistory{
					{ID: uuid.New(), ProjectID: projectID, Action: domain.ActionProjectCreated},
					{ID: uuid.New(), ProjectID: projectID, Action: domain.ActionStatusChange},
				},
			}, nil
		},
	}
	svc := NewProjectService(projectRepo, &MockAgencyRepository{}, &MockHistoryRepository{}, nil, nil, zap.NewNop())

	detail, err := svc.GetProject(context.Background(), projectID)
	require.NoError(t, err)
	require.Len(t, detail.History, 2)
	assert.Equal(t, domain.ActionProjectCreated, detail.History[0].Action)
	assert.Equal(t, domain.ActionStatusChange, detail.History[1].Action)
}
