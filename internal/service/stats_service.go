package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/repository"
)

const statsCacheKey = "stats:overview"

// StatsService serves ministry statistics with a short-lived Redis cache
// in front of the aggregate queries.
type StatsService interface {
	Overview(ctx context.Context) (dto.StatsResponse, error)
	Invalidate(ctx context.Context) error
}

type statsService struct {
	stats  repository.StatsRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewStatsService constructs a stats service. A nil cache disables caching.
func NewStatsService(stats repository.StatsRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StatsService {
	return &statsService{
		stats:  stats,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "stats_service").Logger(),
	}
}

func (s *statsService) Overview(ctx context.Context) (dto.StatsResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var response dto.StatsResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				return response, nil
			}
			s.logger.Warn().Msg("stats cache entry corrupt, recomputing")
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		}
	}

	averages, err := s.stats.AverageScoreBySchoolYear(ctx)
	if err != nil {
		return dto.StatsResponse{}, err
	}

	counts, err := s.stats.ThesisCountByMajor(ctx)
	if err != nil {
		return dto.StatsResponse{}, err
	}

	response := dto.StatsResponse{
		AverageScoreBySchoolYear: averages,
		ThesisCountByMajor:       counts,
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("stats cache write failed")
			}
		}
	}

	return response, nil
}

// Invalidate drops the cached overview so the next read recomputes.
func (s *statsService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, statsCacheKey).Err()
}
