package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"partner-portal-api/internal/domain"
)

func createTestProject(t *testing.T, db *gorm.DB, status domain.ProjectStatus, value float64) *domain.PremiumProject {
	t.Helper()
	project := &domain.PremiumProject{
		BaseModel:  domain.BaseModel{ID: uuid.New()},
		Title:      "Loyalty platform rollout",
		ClientName: "Acme Retail",
		Value:      value,
		Status:     status,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func TestProjectRepository_CommitTransition(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := createTestProject(t, db, domain.StatusElaborado, 120000)
	project.Status = domain.StatusEmNegociacao

	entry := &domain.ProjectHistory{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Action:    domain.ActionStatusChange,
		ActorID:   uuid.New(),
		ActorName: "Clara Mendes",
		ActorRole: "commercial_admin",
		CreatedAt: time.Now().UTC(),
	}

	err := repo.CommitTransition(ctx, project, domain.StatusElaborado, entry)
	require.NoError(t, err)

	stored, err := repo.FindByIDWithHistory(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEmNegociacao, stored.Status)
	require.Len(t, stored.History, 1)
	assert.Equal(t, domain.ActionStatusChange, stored.History[0].Action)
}

func TestProjectRepository_CommitTransition_StatusConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	// The row is already past elaborado, so the guarded update must miss
	// and nothing may be written.
	project := createTestProject(t, db, domain.StatusEmNegociacao, 80000)
	project.Status = domain.StatusPerdido

	entry := &domain.ProjectHistory{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Action:    domain.ActionStatusChange,
		ActorID:   uuid.New(),
		ActorName: "Clara Mendes",
		ActorRole: "commercial_admin",
		CreatedAt: time.Now().UTC(),
	}

	err := repo.CommitTransition(ctx, project, domain.StatusElaborado, entry)
	assert.ErrorIs(t, err, ErrStatusConflict)

	stored, err := repo.FindByIDWithHistory(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEmNegociacao, stored.Status)
	assert.Empty(t, stored.History)
}

func TestProjectRepository_FindAll_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	agencyID := uuid.New()
	active := createTestProject(t, db, domain.StatusAtivo, 50000)
	require.NoError(t, db.Model(active).Update("partner_agency_id", agencyID).Error)
	createTestProject(t, db, domain.StatusElaborado, 30000)
	createTestProject(t, db, domain.StatusAtivo, 70000)

	status := domain.StatusAtivo
	byStatus, err := repo.FindAll(ctx, ProjectFilters{Status: &status})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byAgency, err := repo.FindAll(ctx, ProjectFilters{AgencyID: &agencyID})
	require.NoError(t, err)
	require.Len(t, byAgency, 1)
	assert.Equal(t, active.ID, byAgency[0].ID)

	all, err := repo.FindAll(ctx, ProjectFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProjectRepository_SummarizeByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	createTestProject(t, db, domain.StatusAtivo, 50000)
	createTestProject(t, db, domain.StatusAtivo, 25000)
	createTestProject(t, db, domain.StatusConcluido, 90000)

	rows, err := repo.SummarizeByStatus(ctx)
	require.NoError(t, err)

	byStatus := make(map[domain.ProjectStatus]StatusAggregate, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row
	}
	assert.Equal(t, int64(2), byStatus[domain.StatusAtivo].Count)
	assert.InDelta(t, 75000, byStatus[domain.StatusAtivo].TotalValue, 0.01)
	assert.Equal(t, int64(1), byStatus[domain.StatusConcluido].Count)
}

func TestProjectRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectRepository_Create_IncrementsAgencyLoad(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	agency := createTestAgency(t, db, "Studio Norte", 0, 4.5)

	project := &domain.PremiumProject{
		BaseModel:       domain.BaseModel{ID: uuid.New()},
		Title:           "Loyalty platform rollout",
		ClientName:      "Acme Retail",
		Status:          domain.StatusElaborado,
		PartnerAgencyID: &agency.ID,
	}
	require.NoError(t, repo.Create(ctx, project))

	var reloaded domain.PartnerAgency
	require.NoError(t, db.First(&reloaded, "id = ?", agency.ID).Error)
	assert.Equal(t, 1, reloaded.ActiveProjects)
}

func TestProjectRepository_Create_Unassigned_LeavesLoadAlone(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	agency := createTestAgency(t, db, "Studio Norte", 2, 4.5)

	project := &domain.PremiumProject{
		BaseModel:  domain.BaseModel{ID: uuid.New()},
		Title:      "Loyalty platform rollout",
		ClientName: "Acme Retail",
		Status:     domain.StatusElaborado,
	}
	require.NoError(t, repo.Create(ctx, project))

	var reloaded domain.PartnerAgency
	require.NoError(t, db.First(&reloaded, "id = ?", agency.ID).Error)
	assert.Equal(t, 2, reloaded.ActiveProjects)
}

func TestProjectRepository_CommitTransition_TerminalReleasesAgencyLoad(t *testing.T) {
	tests := []struct {
		name         string
		target       domain.ProjectStatus
		expectedLoad int
	}{
		{name: "concluido releases the slot", target: domain.StatusConcluido, expectedLoad: 2},
		{name: "cancelado releases the slot", target: domain.StatusCancelado, expectedLoad: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewProjectRepository(db)
			ctx := context.Background()

			agency := createTestAgency(t, db, "Studio Norte", 3, 4.5)
			project := createTestProject(t, db, domain.StatusAtivo, 120000)
			project.PartnerAgencyID = &agency.ID
			require.NoError(t, db.Save(project).Error)

			project.Status = tt.target
			entry := &domain.ProjectHistory{
				ID:        uuid.New(),
				ProjectID: project.ID,
				Action:    domain.ActionStatusChange,
				ActorID:   uuid.New(),
				ActorName: "Clara Mendes",
				ActorRole: "commercial_admin",
				CreatedAt: time.Now().UTC(),
			}
			require.NoError(t, repo.CommitTransition(ctx, project, domain.StatusAtivo, entry))

			var reloaded domain.PartnerAgency
			require.NoError(t, db.First(&reloaded, "id = ?", agency.ID).Error)
			assert.Equal(t, tt.expectedLoad, reloaded.ActiveProjects)
		})
	}
}

func TestProjectRepository_CommitTransition_NonTerminalKeepsAgencyLoad(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	agency := createTestAgency(t, db, "Studio Norte", 3, 4.5)
	project := createTestProject(t, db, domain.StatusEmNegociacao, 120000)
	project.PartnerAgencyID = &agency.ID
	require.NoError(t, db.Save(project).Error)

	project.Status = domain.StatusAguardandoPagamento
	entry := &domain.ProjectHistory{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Action:    domain.ActionStatusChange,
		ActorID:   uuid.New(),
		ActorName: "Clara Mendes",
		ActorRole: "commercial_admin",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CommitTransition(ctx, project, domain.StatusEmNegociacao, entry))

	var reloaded domain.PartnerAgency
	require.NoError(t, db.First(&reloaded, "id = ?", agency.ID).Error)
	assert.Equal(t, 3, reloaded.ActiveProjects)
}
