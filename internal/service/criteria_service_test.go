package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/repository"
)

func newCriteriaService(db *gorm.DB) CriteriaService {
	theses := repository.NewThesisRepository(db)
	criteria := repository.NewCriteriaRepository(db)
	scores := repository.NewScoreRepository(db)
	aggregator := NewScoreAggregator(theses, criteria, scores, testLogger())

	return NewCriteriaService(criteria, theses, aggregator, testValidator(), testLogger())
}

func TestCriteriaServiceAttachRejectsWeightOverflow(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	svc := newCriteriaService(db)

	extra, err := svc.Create(context.Background(), dto.CriteriaCreateRequest{Name: "Presentation"})
	require.NoError(t, err)

	// Fixture weights already sum to 1.0; anything above zero must fail.
	_, err = svc.AttachToThesis(context.Background(), fixture.thesis.Code, dto.AttachCriteriaRequest{
		CriteriaID: extra.ID,
		Weight:     0.1,
	})
	require.True(t, IsInvalidInput(err))
}

func TestCriteriaServiceAttach(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	svc := newCriteriaService(db)

	extra, err := svc.Create(context.Background(), dto.CriteriaCreateRequest{Name: "Presentation"})
	require.NoError(t, err)

	t.Run("weight above one fails validation", func(t *testing.T) {
		_, err := svc.AttachToThesis(context.Background(), fixture.thesis.Code, dto.AttachCriteriaRequest{
			CriteriaID: extra.ID,
			Weight:     1.5,
		})
		var validationErrors validator.ValidationErrors
		require.ErrorAs(t, err, &validationErrors)
	})

	t.Run("unknown thesis", func(t *testing.T) {
		_, err := svc.AttachToThesis(context.Background(), "NOPE", dto.AttachCriteriaRequest{
			CriteriaID: extra.ID,
			Weight:     0.2,
		})
		require.True(t, IsNotFound(err))
	})

	t.Run("duplicate binding", func(t *testing.T) {
		_, err := svc.AttachToThesis(context.Background(), fixture.thesis.Code, dto.AttachCriteriaRequest{
			CriteriaID: fixture.bindingMethod.CriteriaID,
			Weight:     0,
		})
		require.True(t, IsConflict(err))
	})

	t.Run("attach within remaining weight", func(t *testing.T) {
		fresh := newThesisWithoutCriteria(t, db)

		binding, err := svc.AttachToThesis(context.Background(), fresh, dto.AttachCriteriaRequest{
			CriteriaID: extra.ID,
			Weight:     0.6,
		})
		require.NoError(t, err)
		require.Equal(t, "Presentation", binding.CriteriaName)
		require.InDelta(t, 0.6, binding.Weight, 0.0001)

		// 0.6 + 0.5 would overflow.
		second, err := svc.Create(context.Background(), dto.CriteriaCreateRequest{Name: "Defense"})
		require.NoError(t, err)
		_, err = svc.AttachToThesis(context.Background(), fresh, dto.AttachCriteriaRequest{
			CriteriaID: second.ID,
			Weight:     0.5,
		})
		require.True(t, IsInvalidInput(err))

		// 0.6 + 0.4 fits exactly.
		_, err = svc.AttachToThesis(context.Background(), fresh, dto.AttachCriteriaRequest{
			CriteriaID: second.ID,
			Weight:     0.4,
		})
		require.NoError(t, err)
	})
}

func TestCriteriaServiceListForThesis(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	svc := newCriteriaService(db)

	bindings, err := svc.ListForThesis(context.Background(), fixture.thesis.Code)
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	require.Equal(t, "Research Method", bindings[0].CriteriaName)

	_, err = svc.ListForThesis(context.Background(), "NOPE")
	require.True(t, IsNotFound(err))
}
