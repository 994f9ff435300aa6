package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/observability"
	"github.com/noah-isme/thesis-api/internal/repository"
)

// Actor identifies the authenticated caller for authorization decisions.
type Actor struct {
	UserID uint
	Role   string
}

// ScoreService exposes score submission use-cases. Every mutation runs the
// guard ladder first and triggers an aggregate recompute on success.
type ScoreService interface {
	Submit(ctx context.Context, actor Actor, payload dto.ScoreCreateRequest) (dto.ScoreResponse, error)
	Update(ctx context.Context, actor Actor, id uint, payload dto.ScoreUpdateRequest) (dto.ScoreResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error
	ListForThesis(ctx context.Context, thesisCode string) ([]dto.ScoreResponse, error)
	ListOwnForThesis(ctx context.Context, actor Actor, thesisCode string) ([]dto.LecturerScoreResponse, error)
}

type scoreService struct {
	scores     repository.ScoreRepository
	criteria   repository.CriteriaRepository
	councils   repository.CouncilRepository
	theses     repository.ThesisRepository
	lecturers  repository.LecturerRepository
	aggregator ScoreAggregator
	validator  *validator.Validate
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// NewScoreService constructs a score service.
func NewScoreService(scores repository.ScoreRepository, criteria repository.CriteriaRepository, councils repository.CouncilRepository, theses repository.ThesisRepository, lecturers repository.LecturerRepository, aggregator ScoreAggregator, validate *validator.Validate, logger zerolog.Logger) ScoreService {
	return &scoreService{
		scores:     scores,
		criteria:   criteria,
		councils:   councils,
		theses:     theses,
		lecturers:  lecturers,
		aggregator: aggregator,
		validator:  validate,
		logger:     logger.With().Str("component", "score_service").Logger(),
		tracer:     otel.Tracer("github.com/noah-isme/thesis-api/internal/service/score"),
	}
}

func (s *scoreService) Submit(ctx context.Context, actor Actor, payload dto.ScoreCreateRequest) (dto.ScoreResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ScoreResponse{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "score.submit", trace.WithAttributes(
		attribute.Int("score.thesis_criteria_id", int(payload.ThesisCriteriaID)),
		attribute.Int("actor.user_id", int(actor.UserID)),
	))
	defer span.End()

	binding, err := s.criteria.GetBinding(spanCtx, payload.ThesisCriteriaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ScoreResponse{}, NewNotFound("thesis criteria not found")
		}
		span.RecordError(err)
		return dto.ScoreResponse{}, err
	}

	if !binding.Thesis.HasReport() {
		return dto.ScoreResponse{}, NewInvalidInput("cannot grade before the thesis report is submitted")
	}

	if _, err := s.lecturers.GetByUserID(spanCtx, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ScoreResponse{}, NewForbidden("only lecturers can submit scores")
		}
		span.RecordError(err)
		return dto.ScoreResponse{}, err
	}

	if binding.Thesis.CouncilID == nil {
		return dto.ScoreResponse{}, NewForbidden("you are not a member of this thesis's council")
	}

	seat, err := s.councils.GetDetailByLecturer(spanCtx, *binding.Thesis.CouncilID, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ScoreResponse{}, NewForbidden("you are not a member of this thesis's council")
		}
		span.RecordError(err)
		return dto.ScoreResponse{}, err
	}

	if binding.Thesis.Council != nil && binding.Thesis.Council.IsLock {
		return dto.ScoreResponse{}, NewForbidden("council is locked, scores can no longer change")
	}

	exists, err := s.scores.Exists(spanCtx, binding.ID, seat.ID)
	if err != nil {
		span.RecordError(err)
		return dto.ScoreResponse{}, err
	}
	if exists {
		return dto.ScoreResponse{}, NewConflict("you have already scored this criterion")
	}

	score := models.Score{
		ThesisCriteriaID: binding.ID,
		CouncilDetailID:  seat.ID,
		ScoreNumber:      payload.ScoreNumber,
	}
	if err := s.scores.Create(spanCtx, &score); err != nil {
		span.RecordError(err)
		return dto.ScoreResponse{}, err
	}

	observability.ScoreMutations().WithLabelValues("create").Inc()
	s.logger.Info().
		Uint("score_id", score.ID).
		Str("thesis_code", binding.ThesisCode).
		Uint("lecturer_id", actor.UserID).
		Msg("score submitted")

	s.recompute(spanCtx, binding.ThesisCode)

	created, err := s.scores.GetByID(spanCtx, score.ID)
	if err != nil {
		span.RecordError(err)
		return dto.ScoreResponse{}, err
	}

	return dto.NewScoreResponse(created), nil
}

func (s *scoreService) Update(ctx context.Context, actor Actor, id uint, payload dto.ScoreUpdateRequest) (dto.ScoreResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ScoreResponse{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "score.update", trace.WithAttributes(
		attribute.Int("score.id", int(id)),
		attribute.Int("actor.user_id", int(actor.UserID)),
	))
	defer span.End()

	score, err := s.loadOwnedUnlocked(spanCtx, actor, id)
	if err != nil {
		return dto.ScoreResponse{}, err
	}

	score.ScoreNumber = payload.ScoreNumber
	if err := s.scores.Update(spanCtx, &score); err != nil {
		span.RecordError(err)
		return dto.ScoreResponse{}, err
	}

	observability.ScoreMutations().WithLabelValues("update").Inc()
	s.logger.Info().
		Uint("score_id", score.ID).
		Str("thesis_code", score.ThesisCriteria.ThesisCode).
		Float64("score_number", score.ScoreNumber).
		Msg("score updated")

	s.recompute(spanCtx, score.ThesisCriteria.ThesisCode)

	return dto.NewScoreResponse(score), nil
}

func (s *scoreService) Delete(ctx context.Context, actor Actor, id uint) error {
	spanCtx, span := s.tracer.Start(ctx, "score.delete", trace.WithAttributes(
		attribute.Int("score.id", int(id)),
		attribute.Int("actor.user_id", int(actor.UserID)),
	))
	defer span.End()

	score, err := s.loadOwnedUnlocked(spanCtx, actor, id)
	if err != nil {
		return err
	}

	if err := s.scores.Delete(spanCtx, score.ID); err != nil {
		span.RecordError(err)
		return err
	}

	observability.ScoreMutations().WithLabelValues("delete").Inc()
	s.logger.Info().
		Uint("score_id", score.ID).
		Str("thesis_code", score.ThesisCriteria.ThesisCode).
		Msg("score deleted")

	s.recompute(spanCtx, score.ThesisCriteria.ThesisCode)

	return nil
}

// loadOwnedUnlocked fetches a score and runs the shared mutation guards:
// the score must exist, belong to the caller's council seat, and its
// council must not be locked.
func (s *scoreService) loadOwnedUnlocked(ctx context.Context, actor Actor, id uint) (models.Score, error) {
	score, err := s.scores.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Score{}, NewNotFound("score not found")
		}
		return models.Score{}, err
	}

	if score.CouncilDetail.LecturerID != actor.UserID {
		return models.Score{}, NewForbidden("you can only change your own scores")
	}

	if score.ThesisCriteria.Thesis.Council != nil && score.ThesisCriteria.Thesis.Council.IsLock {
		return models.Score{}, NewForbidden("council is locked, scores can no longer change")
	}

	return score, nil
}

func (s *scoreService) ListForThesis(ctx context.Context, thesisCode string) ([]dto.ScoreResponse, error) {
	if _, err := s.theses.GetByCode(ctx, thesisCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("thesis not found")
		}
		return nil, err
	}

	scores, err := s.scores.ListByThesis(ctx, thesisCode)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ScoreResponse, 0, len(scores))
	for _, score := range scores {
		responses = append(responses, dto.NewScoreResponse(score))
	}

	return responses, nil
}

func (s *scoreService) ListOwnForThesis(ctx context.Context, actor Actor, thesisCode string) ([]dto.LecturerScoreResponse, error) {
	if _, err := s.theses.GetByCode(ctx, thesisCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("thesis not found")
		}
		return nil, err
	}

	scores, err := s.scores.ListByThesisAndLecturer(ctx, thesisCode, actor.UserID)
	if err != nil {
		return nil, err
	}

	return dto.NewLecturerScoreResponseSlice(scores), nil
}

// recompute refreshes the thesis aggregate after an accepted mutation.
// The mutation has already committed, so a recompute failure is logged
// rather than surfaced; the next mutation will converge the aggregate.
func (s *scoreService) recompute(ctx context.Context, thesisCode string) {
	if err := s.aggregator.Recompute(ctx, thesisCode); err != nil {
		s.logger.Error().Err(err).Str("thesis_code", thesisCode).Msg("aggregate recompute failed")
	}
}
