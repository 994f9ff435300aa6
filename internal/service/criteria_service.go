package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/repository"
)

// CriteriaService manages the criteria catalogue and per-thesis weight
// bindings.
type CriteriaService interface {
	List(ctx context.Context, query string) ([]dto.CriteriaResponse, error)
	Create(ctx context.Context, payload dto.CriteriaCreateRequest) (dto.CriteriaResponse, error)
	Delete(ctx context.Context, id uint) error
	ListForThesis(ctx context.Context, thesisCode string) ([]dto.ThesisCriteriaResponse, error)
	AttachToThesis(ctx context.Context, thesisCode string, payload dto.AttachCriteriaRequest) (dto.ThesisCriteriaResponse, error)
}

type criteriaService struct {
	criteria   repository.CriteriaRepository
	theses     repository.ThesisRepository
	aggregator ScoreAggregator
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewCriteriaService constructs a criteria service.
func NewCriteriaService(criteria repository.CriteriaRepository, theses repository.ThesisRepository, aggregator ScoreAggregator, validate *validator.Validate, logger zerolog.Logger) CriteriaService {
	return &criteriaService{
		criteria:   criteria,
		theses:     theses,
		aggregator: aggregator,
		validator:  validate,
		logger:     logger.With().Str("component", "criteria_service").Logger(),
	}
}

func (s *criteriaService) List(ctx context.Context, query string) ([]dto.CriteriaResponse, error) {
	criteria, err := s.criteria.List(ctx, query)
	if err != nil {
		return nil, err
	}
	return dto.NewCriteriaResponseSlice(criteria), nil
}

func (s *criteriaService) Create(ctx context.Context, payload dto.CriteriaCreateRequest) (dto.CriteriaResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CriteriaResponse{}, err
	}

	criteria := models.Criteria{
		Name:             payload.Name,
		EvaluationMethod: payload.EvaluationMethod,
	}
	if err := s.criteria.Create(ctx, &criteria); err != nil {
		return dto.CriteriaResponse{}, err
	}

	s.logger.Info().Uint("criteria_id", criteria.ID).Str("name", criteria.Name).Msg("criteria created")

	return dto.NewCriteriaResponse(criteria), nil
}

func (s *criteriaService) Delete(ctx context.Context, id uint) error {
	if _, err := s.criteria.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("criteria not found")
		}
		return err
	}

	return s.criteria.Delete(ctx, id)
}

func (s *criteriaService) ListForThesis(ctx context.Context, thesisCode string) ([]dto.ThesisCriteriaResponse, error) {
	if _, err := s.theses.GetByCode(ctx, thesisCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("thesis not found")
		}
		return nil, err
	}

	bindings, err := s.criteria.ListByThesis(ctx, thesisCode)
	if err != nil {
		return nil, err
	}

	return dto.NewThesisCriteriaResponseSlice(bindings), nil
}

// AttachToThesis binds a criterion to a thesis. The new weight must keep
// the thesis's weight sum at or below 1, and a criterion can be bound to a
// thesis only once.
func (s *criteriaService) AttachToThesis(ctx context.Context, thesisCode string, payload dto.AttachCriteriaRequest) (dto.ThesisCriteriaResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ThesisCriteriaResponse{}, err
	}

	if _, err := s.theses.GetByCode(ctx, thesisCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ThesisCriteriaResponse{}, NewNotFound("thesis not found")
		}
		return dto.ThesisCriteriaResponse{}, err
	}

	criteria, err := s.criteria.GetByID(ctx, payload.CriteriaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ThesisCriteriaResponse{}, NewNotFound("criteria not found")
		}
		return dto.ThesisCriteriaResponse{}, err
	}

	exists, err := s.criteria.BindingExists(ctx, thesisCode, payload.CriteriaID)
	if err != nil {
		return dto.ThesisCriteriaResponse{}, err
	}
	if exists {
		return dto.ThesisCriteriaResponse{}, NewConflict("criteria already attached to this thesis")
	}

	currentSum, err := s.criteria.SumWeights(ctx, thesisCode)
	if err != nil {
		return dto.ThesisCriteriaResponse{}, err
	}
	if currentSum+payload.Weight > 1 {
		return dto.ThesisCriteriaResponse{}, NewInvalidInput(
			fmt.Sprintf("weight %.2f would push the thesis weight sum past 1 (current %.2f)", payload.Weight, currentSum))
	}

	binding := models.ThesisCriteria{
		ThesisCode: thesisCode,
		CriteriaID: payload.CriteriaID,
		Weight:     payload.Weight,
	}
	if err := s.criteria.CreateBinding(ctx, &binding); err != nil {
		return dto.ThesisCriteriaResponse{}, err
	}
	binding.Criteria = criteria

	s.logger.Info().
		Str("thesis_code", thesisCode).
		Uint("criteria_id", payload.CriteriaID).
		Float64("weight", payload.Weight).
		Msg("criteria attached to thesis")

	if err := s.aggregator.Recompute(ctx, thesisCode); err != nil {
		s.logger.Error().Err(err).Str("thesis_code", thesisCode).Msg("aggregate recompute failed")
	}

	return dto.NewThesisCriteriaResponse(binding), nil
}
