package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/thesis-api/internal/models"
)

func TestThesisRepositoryUpdateAggregateTouchesOnlyThePair(t *testing.T) {
	db := setupTestDB(t)
	seed := seedGrading(t, db)
	repo := NewThesisRepository(db)

	require.NoError(t, repo.UpdateAggregate(context.Background(), seed.thesisA.Code, 7.5, true))

	updated, err := repo.GetByCode(context.Background(), seed.thesisA.Code)
	require.NoError(t, err)
	require.InDelta(t, 7.5, updated.TotalScore, 0.0001)
	require.True(t, updated.Result)
	require.Equal(t, seed.thesisA.Name, updated.Name)
	require.NotNil(t, updated.CouncilID)

	untouched, err := repo.GetByCode(context.Background(), seed.thesisB.Code)
	require.NoError(t, err)
	require.Zero(t, untouched.TotalScore)
	require.False(t, untouched.Result)
}

func TestThesisRepositoryListBySupervisor(t *testing.T) {
	db := setupTestDB(t)
	seed := seedGrading(t, db)
	repo := NewThesisRepository(db)

	var thesisA models.Thesis
	require.NoError(t, db.First(&thesisA, "code = ?", seed.thesisA.Code).Error)
	require.NoError(t, db.Model(&thesisA).Association("Lecturers").Append(&seed.lecturer))

	supervised, err := repo.ListBySupervisor(context.Background(), seed.lecturer.UserID)
	require.NoError(t, err)
	require.Len(t, supervised, 1)
	require.Equal(t, seed.thesisA.Code, supervised[0].Code)

	none, err := repo.ListBySupervisor(context.Background(), 9999)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestThesisRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	seed := seedGrading(t, db)
	repo := NewThesisRepository(db)

	byName, err := repo.List(context.Background(), ThesisFilter{Query: "Thesis A"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, seed.thesisA.Code, byName[0].Code)

	byCouncil, err := repo.List(context.Background(), ThesisFilter{CouncilID: &seed.council.ID})
	require.NoError(t, err)
	require.Len(t, byCouncil, 2)

	byMajor, err := repo.List(context.Background(), ThesisFilter{MajorCode: "EE"})
	require.NoError(t, err)
	require.Empty(t, byMajor)
}

func TestThesisRepositoryCountByCouncil(t *testing.T) {
	db := setupTestDB(t)
	seed := seedGrading(t, db)
	repo := NewThesisRepository(db)

	count, err := repo.CountByCouncil(context.Background(), seed.council.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	count, err = repo.CountByCouncil(context.Background(), 9999)
	require.NoError(t, err)
	require.Zero(t, count)
}
