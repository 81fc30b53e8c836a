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

func testActor() domain.Actor {
	return domain.Actor{
		ID:   uuid.New(),
		Name: "Clara Mendes",
		Role: "commercial_admin",
	}
}

func projectInStatus(status domain.ProjectStatus) *domain.PremiumProject {
	return &domain.PremiumProject{
		BaseModel:  domain.BaseModel{ID: uuid.New()},
		Title:      "Plataforma B2B Redesign",
		ClientName: "Acme Ltda",
		Value:      185000,
		Status:     status,
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestRequestTransition_Success(t *testing.T) {
	project := projectInStatus(domain.StatusElaborado)
	var committedFrom domain.ProjectStatus
	var committedEntry *domain.ProjectHistory

	projectRepo := &MockProjectRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
			return project, nil
		},
		CommitTransitionFunc: func(ctx context.Context, p *domain.PremiumProject, from domain.ProjectStatus, entry *domain.ProjectHistory) error {
			committedFrom = from
			committedEntry = entry
			return nil
		},
	}
	svc := NewLifecycleService(projectRepo, nil, zap.NewNop())
	actor := testActor()

	resp, err := svc.RequestTransition(context.Background(), project.ID, actor, &dto.TransitionRequest{
		TargetStatus: domain.StatusEmNegociacao,
		Context:      map[string]string{"negotiation_start": "2024-02-01"},
		Notes:        "Kickoff call scheduled",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusEmNegociacao, resp.Project.Status)
	assert.Equal(t, domain.StatusElaborado, committedFrom)

	require.NotNil(t, committedEntry)
	assert.Equal(t, domain.ActionStatusChange, committedEntry.Action)
	assert.Equal(t, actor.ID, committedEntry.ActorID)
	assert.Equal(t, actor.Name, committedEntry.ActorName)

	assert.Equal(t, "elaborado", resp.HistoryEntry.Metadata["from_status"])
	assert.Equal(t, "em_negociacao", resp.HistoryEntry.Metadata["to_status"])
	assert.Equal(t, "2024-02-01", resp.HistoryEntry.Metadata["negotiation_start"])
	assert.Equal(t, "Kickoff call scheduled", resp.HistoryEntry.Metadata["notes"])
}

func TestRequestTransition_IllegalEdge(t *testing.T) {
	project := projectInStatus(domain.StatusAtivo)
	commits := 0

	projectRepo := &MockProjectRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
			return project, nil
		},
		CommitTransitionFunc: func(ctx context.Context, p *domain.PremiumProject, from domain.ProjectStatus, entry *domain.ProjectHistory) error {
			commits++
			return nil
		},
	}
	svc := NewLifecycleService(projectRepo, nil, zap.NewNop())

	// perdido is only reachable from the negotiation stages
	_, err := svc.RequestTransition(context.Background(), project.ID, testActor(), &dto.TransitionRequest{
		TargetStatus: domain.StatusPerdido,
		Context:      map[string]string{"loss_reason": "price"},
	})
	assertAppErrorCode(t, err, response.ErrCodeInvalidTransition)
	assert.Zero(t, commits)
	assert.Equal(t, domain.StatusAtivo, project.Status)
}

func TestRequestTransition_TerminalStatus(t *testing.T) {
	for _, terminal := range []domain.ProjectStatus{domain.StatusPerdido, domain.StatusCancelado, domain.StatusConcluido} {
		project := projectInStatus(terminal)
		projectRepo := &MockProjectRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
				return project, nil
			},
		}
		svc := NewLifecycleService(projectRepo, nil, zap.NewNop())

		_, err := svc.RequestTransition(context.Background(), project.ID, testActor(), &dto.TransitionRequest{
			TargetStatus: domain.StatusAtivo,
			Context:      map[string]string{"start_date": "2024-03-01"},
		})
		assertAppErrorCode(t, err, response.ErrCodeInvalidTransition)
	}
}

func TestRequestTransition_MissingContextFields(t *testing.T) {
	project := projectInStatus(domain.StatusEmNegociacao)
	projectRepo := &MockProjectRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
			return project, nil
		},
	}
	svc := NewLifecycleService(projectRepo, nil, zap.NewNop())

	_, err := svc.RequestTransition(context.Background(), project.ID, testActor(), &dto.TransitionRequest{
		TargetStatus: domain.StatusPerdido,
	})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeMissingRequiredFields, appErr.Code)
	assert.Contains(t, appErr.Details, "loss_reason")
}

func TestRequestTransition_EmptyContextValueCountsAsMissing(t *testing.T) {
	project := projectInStatus(domain.StatusAguardandoPagamento)
	projectRepo := &MockProjectRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
			return project, nil
		},
	}
	svc := NewLifecycleService(projectRepo, nil, zap.NewNop())

	_, err := svc.RequestTransition(context.Background(), project.ID, testActor(), &dto.TransitionRequest{
		TargetStatus: domain.StatusAtivo,
		Context:      map[string]string{"start_date": ""},
	})
	assertAppErrorCode(t, err, response.ErrCodeMissingRequiredFields)
}

func TestRequestTransition_ContextValueValidation(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.ProjectStatus
		target  domain.ProjectStatus
		context map[string]string
	}{
		{
			name:    "unknown loss reason",
			from:    domain.StatusEmNegociacao,
			target:  domain.StatusPerdido,
			context: map[string]string{"loss_reason": "vibes"},
		},
		{
			name:    "zero overdue days",
			from:    domain.StatusAtivo,
			target:  domain.StatusInadimplente,
			context: map[string]string{"overdue_days": "0"},
		},
		{
			name:    "non numeric overdue days",
			from:    domain.StatusAtivo,
			target:  domain.StatusInadimplente,
			context: map[string]string{"overdue_days": "soon"},
		},
		{
			name:    "malformed payment due date",
			from:    domain.StatusEmNegociacao,
			target:  domain.StatusAguardandoPagamento,
			context: map[string]string{"payment_due_date": "next friday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := projectInStatus(tt.from)
			projectRepo := &MockProjectRepository{
				FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
					return project, nil
				},
			}
			svc := NewLifecycleService(projectRepo, nil, zap.NewNop())

			_, err := svc.RequestTransition(context.Background(), project.ID, testActor(), &dto.TransitionRequest{
				TargetStatus: tt.target,
				Context:      tt.context,
			})
			assertAppErrorCode(t, err, response.ErrCodeValidation)
		})
	}
}

func TestRequestTransition_SetsStartDateOnActivation(t *testing.T) {
	project := projectInStatus(domain.StatusAguardandoPagamento)
	projectRepo := &MockProjectRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
			return project, nil
		},
	}
	svc := NewLifecycleService(projectRepo, nil, zap.NewNop())

	resp, err := svc.RequestTransition(context.Background(), project.ID, testActor(), &dto.TransitionRequest{
		TargetStatus: domain.StatusAtivo,
		Context:      map[string]string{"start_date": "2024-03-01"},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Project.StartDate)
	assert.Equal(t, "2024-03-01", resp.Project.StartDate.Format("2006-01-02"))
}

func TestRequestTransition_ConcurrentStatusChange(t *testing.T) {
	project := projectInStatus(domain.StatusElaborado)
	projectRepo := &MockProjectRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
			return project, nil
		},
		CommitTransitionFunc: func(ctx context.Context, p *domain.PremiumProject, from domain.ProjectStatus, entry *domain.ProjectHistory) error {
			return repository.ErrStatusConflict
		},
	}
	svc := NewLifecycleService(projectRepo, nil, zap.NewNop())

	_, err := svc.RequestTransition(context.Background(), project.ID, testActor(), &dto.TransitionRequest{
		TargetStatus: domain.StatusEmNegociacao,
		Context:      map[string]string{"negotiation_start": "2024-02-01"},
	})
	assertAppErrorCode(t, err, response.ErrCodeInvalidTransition)
}

func TestGetAllowedTransitions(t *testing.T) {
	project := projectInStatus(domain.StatusAtivo)
	projectRepo := &MockProjectRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
			return project, nil
		},
	}
	svc := NewLifecycleService(projectRepo, nil, zap.NewNop())

	resp, err := svc.GetAllowedTransitions(context.Background(), project.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAtivo, resp.CurrentStatus)
	assert.False(t, resp.Terminal)
	require.Len(t, resp.Options, 3)

	byStatus := make(map[domain.ProjectStatus]dto.TransitionOption, len(resp.Options))
	for _, option := range resp.Options {
		byStatus[option.Status] = option
	}
	assert.Equal(t, []string{"overdue_days"}, byStatus[domain.StatusInadimplente].RequiredFields)
	assert.Equal(t, []string{"completion_date"}, byStatus[domain.StatusConcluido].RequiredFields)
	assert.Equal(t, "Concluído", byStatus[domain.StatusConcluido].Label)
}

func TestGetAllowedTransitions_Terminal(t *testing.T) {
	project := projectInStatus(domain.StatusConcluido)
	projectRepo := &MockProjectRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
			return project, nil
		},
	}
	svc := NewLifecycleService(projectRepo, nil, zap.NewNop())

	resp, err := svc.GetAllowedTransitions(context.Background(), project.ID)
	require.NoError(t, err)
	assert.True(t, resp.Terminal)
	assert.Empty(t, resp.Options)
}
