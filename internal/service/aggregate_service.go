package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/observability"
	"github.com/noah-isme/thesis-api/internal/repository"
)

// ScoreAggregator recomputes the denormalized aggregate pair on a thesis
// from its current scores. Every score and criteria mutation funnels
// through Recompute, so TotalScore and Result never drift from the rows
// they are derived from.
type ScoreAggregator interface {
	Recompute(ctx context.Context, thesisCode string) error
}

type scoreAggregator struct {
	theses   repository.ThesisRepository
	criteria repository.CriteriaRepository
	scores   repository.ScoreRepository
	logger   zerolog.Logger
	tracer   trace.Tracer

	// locks serializes recomputes per thesis so two concurrent score
	// mutations cannot interleave their read-compute-write cycles.
	locks sync.Map
}

// NewScoreAggregator constructs the aggregator.
func NewScoreAggregator(theses repository.ThesisRepository, criteria repository.CriteriaRepository, scores repository.ScoreRepository, logger zerolog.Logger) ScoreAggregator {
	return &scoreAggregator{
		theses:   theses,
		criteria: criteria,
		scores:   scores,
		logger:   logger.With().Str("component", "score_aggregator").Logger(),
		tracer:   otel.Tracer("github.com/noah-isme/thesis-api/internal/service/aggregate"),
	}
}

func (s *scoreAggregator) lockFor(thesisCode string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(thesisCode, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Recompute rebuilds TotalScore and Result for one thesis. A thesis with no
// criteria bindings aggregates to 0.00 and a failing result. A missing
// thesis is logged and swallowed so cascade-triggered recomputes never fail
// the mutation that queued them.
func (s *scoreAggregator) Recompute(ctx context.Context, thesisCode string) error {
	spanCtx, span := s.tracer.Start(ctx, "aggregate.recompute",
		trace.WithAttributes(attribute.String("thesis.code", thesisCode)))
	defer span.End()

	lock := s.lockFor(thesisCode)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.theses.GetByCode(spanCtx, thesisCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecomputeRuns().WithLabelValues("missing").Inc()
			s.logger.Warn().Str("thesis_code", thesisCode).Msg("recompute requested for unknown thesis")
			return nil
		}
		observability.RecomputeRuns().WithLabelValues("error").Inc()
		span.RecordError(err)
		return err
	}

	bindings, err := s.criteria.ListByThesis(spanCtx, thesisCode)
	if err != nil {
		observability.RecomputeRuns().WithLabelValues("error").Inc()
		span.RecordError(err)
		return err
	}

	total, result := decimal.Zero, false
	if len(bindings) > 0 {
		scores, err := s.scores.ListByThesis(spanCtx, thesisCode)
		if err != nil {
			observability.RecomputeRuns().WithLabelValues("error").Inc()
			span.RecordError(err)
			return err
		}
		total, result = aggregate(bindings, scores)
	}

	totalFloat, _ := total.Float64()
	if err := s.theses.UpdateAggregate(spanCtx, thesisCode, totalFloat, result); err != nil {
		observability.RecomputeRuns().WithLabelValues("error").Inc()
		span.RecordError(err)
		return err
	}

	observability.RecomputeRuns().WithLabelValues("updated").Inc()
	s.logger.Info().
		Str("thesis_code", thesisCode).
		Float64("total_score", totalFloat).
		Bool("result", result).
		Msg("thesis aggregate recomputed")

	return nil
}

// aggregate computes the weighted mean over evaluators. Each evaluator's
// total is the sum of score*weight over the criteria they graded; the
// thesis total is the arithmetic mean of those per-evaluator totals,
// rounded half-up to two decimals. Result is pass when the rounded total
// reaches the passing threshold.
func aggregate(bindings []models.ThesisCriteria, scores []models.Score) (decimal.Decimal, bool) {
	weights := make(map[uint]decimal.Decimal, len(bindings))
	for _, binding := range bindings {
		weights[binding.ID] = decimal.NewFromFloat(binding.Weight)
	}

	perEvaluator := make(map[uint]decimal.Decimal)
	for _, score := range scores {
		weight, ok := weights[score.ThesisCriteriaID]
		if !ok {
			continue
		}
		contribution := decimal.NewFromFloat(score.ScoreNumber).Mul(weight)
		perEvaluator[score.CouncilDetailID] = perEvaluator[score.CouncilDetailID].Add(contribution)
	}

	if len(perEvaluator) == 0 {
		return decimal.Zero, false
	}

	sum := decimal.Zero
	for _, evaluatorTotal := range perEvaluator {
		sum = sum.Add(evaluatorTotal)
	}

	mean := sum.Div(decimal.NewFromInt(int64(len(perEvaluator)))).Round(2)
	passing := decimal.NewFromFloat(models.PassingScore)

	return mean, mean.GreaterThanOrEqual(passing)
}
