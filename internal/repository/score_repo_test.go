package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/thesis-api/internal/models"
)

func TestScoreRepositoryListByThesisIsScoped(t *testing.T) {
	db := setupTestDB(t)
	seed := seedGrading(t, db)
	repo := NewScoreRepository(db)

	scoreA := models.Score{ThesisCriteriaID: seed.bindingA.ID, CouncilDetailID: seed.seat.ID, ScoreNumber: 8}
	scoreB := models.Score{ThesisCriteriaID: seed.bindingB.ID, CouncilDetailID: seed.seat.ID, ScoreNumber: 6}
	require.NoError(t, repo.Create(context.Background(), &scoreA))
	require.NoError(t, repo.Create(context.Background(), &scoreB))

	scores, err := repo.ListByThesis(context.Background(), seed.thesisA.Code)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.Equal(t, scoreA.ID, scores[0].ID)
	require.Equal(t, seed.lecturer.FullName, scores[0].CouncilDetail.Lecturer.FullName)
	require.Equal(t, "Overall", scores[0].ThesisCriteria.Criteria.Name)
}

func TestScoreRepositoryListByThesisAndLecturer(t *testing.T) {
	db := setupTestDB(t)
	seed := seedGrading(t, db)
	repo := NewScoreRepository(db)

	// A second seat on the same council, scoring the same binding.
	otherUser := models.User{ID: 2, Username: "lect-2", Email: "lect-2@uni.test", Password: "secret", Role: models.RoleLecturer}
	require.NoError(t, db.Create(&otherUser).Error)
	other := models.Lecturer{UserID: 2, Code: "L002", FullName: "Lecturer L002", FacultyCode: "FIT"}
	require.NoError(t, db.Create(&other).Error)
	member := models.Position{Code: models.PositionMember, Name: "Member"}
	require.NoError(t, db.Create(&member).Error)
	otherSeat := models.CouncilDetail{CouncilID: seed.council.ID, LecturerID: other.UserID, PositionID: member.ID}
	require.NoError(t, db.Create(&otherSeat).Error)

	require.NoError(t, repo.Create(context.Background(), &models.Score{
		ThesisCriteriaID: seed.bindingA.ID, CouncilDetailID: seed.seat.ID, ScoreNumber: 8,
	}))
	require.NoError(t, repo.Create(context.Background(), &models.Score{
		ThesisCriteriaID: seed.bindingA.ID, CouncilDetailID: otherSeat.ID, ScoreNumber: 6,
	}))

	own, err := repo.ListByThesisAndLecturer(context.Background(), seed.thesisA.Code, seed.lecturer.UserID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.InDelta(t, 8.0, own[0].ScoreNumber, 0.0001)

	all, err := repo.ListByThesis(context.Background(), seed.thesisA.Code)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestScoreRepositoryExists(t *testing.T) {
	db := setupTestDB(t)
	seed := seedGrading(t, db)
	repo := NewScoreRepository(db)

	exists, err := repo.Exists(context.Background(), seed.bindingA.ID, seed.seat.ID)
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, repo.Create(context.Background(), &models.Score{
		ThesisCriteriaID: seed.bindingA.ID, CouncilDetailID: seed.seat.ID, ScoreNumber: 7,
	}))

	exists, err = repo.Exists(context.Background(), seed.bindingA.ID, seed.seat.ID)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.Exists(context.Background(), seed.bindingB.ID, seed.seat.ID)
	require.NoError(t, err)
	require.False(t, exists)
}
