package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAgencyRepository_FindActiveExcept_Ordering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAgencyRepository(db)
	ctx := context.Background()

	churned := createTestAgency(t, db, "Saindo Digital", 3, 4.0)

	// Same load, different ratings: the higher rating must come first.
	busyLow := createTestAgency(t, db, "Carga Alta", 5, 4.9)
	idleLow := createTestAgency(t, db, "Livre Baixa", 0, 3.1)
	idleHigh := createTestAgency(t, db, "Livre Alta", 0, 4.7)

	flaggedOut := createTestAgency(t, db, "Já Saiu", 0, 5.0)
	require.NoError(t, db.Model(flaggedOut).Update("churned", true).Error)

	candidates, err := repo.FindActiveExcept(ctx, churned.ID)
	require.NoError(t, err)

	require.Len(t, candidates, 3)
	assert.Equal(t, idleHigh.ID, candidates[0].ID)
	assert.Equal(t, idleLow.ID, candidates[1].ID)
	assert.Equal(t, busyLow.ID, candidates[2].ID)
}

func TestAgencyRepository_UpdateRating(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAgencyRepository(db)
	ctx := context.Background()

	agency := createTestAgency(t, db, "Vetor Consultoria", 2, 4.0)

	require.NoError(t, repo.UpdateRating(ctx, agency.ID, 4.6))

	stored, err := repo.FindByID(ctx, agency.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.6, stored.SatisfactionRating, 0.001)

	err = repo.UpdateRating(ctx, uuid.New(), 3.0)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAgencyRepository_CountActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAgencyRepository(db)
	ctx := context.Background()

	createTestAgency(t, db, "Ativa Um", 0, 4.0)
	createTestAgency(t, db, "Ativa Dois", 1, 4.5)
	gone := createTestAgency(t, db, "Encerrada", 0, 2.0)
	require.NoError(t, db.Model(gone).Update("churned", true).Error)

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
