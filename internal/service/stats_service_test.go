package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/repository"
)

func newStatsService(t *testing.T, db *gorm.DB) (StatsService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	return NewStatsService(repository.NewStatsRepository(db), cache, time.Minute, testLogger()), mr
}

func TestStatsServiceOverview(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	svc, mr := newStatsService(t, db)

	require.NoError(t, db.Model(&models.Thesis{}).
		Where("code = ?", fixture.thesis.Code).
		Update("total_score", 8.0).Error)
	second := models.Thesis{
		Code:         "TH030",
		Name:         "Second Thesis",
		StartDate:    fixture.thesis.StartDate,
		EndDate:      fixture.thesis.EndDate,
		MajorCode:    "SE",
		SchoolYearID: 1,
		TotalScore:   6.0,
	}
	require.NoError(t, db.Create(&second).Error)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview.AverageScoreBySchoolYear, 1)
	require.Equal(t, "2025-2026", overview.AverageScoreBySchoolYear[0].Name)
	require.Equal(t, 2025, overview.AverageScoreBySchoolYear[0].StartYear)
	require.InDelta(t, 7.0, overview.AverageScoreBySchoolYear[0].AverageScore, 0.0001)

	require.Len(t, overview.ThesisCountByMajor, 1)
	require.Equal(t, "SE", overview.ThesisCountByMajor[0].MajorCode)
	require.EqualValues(t, 2, overview.ThesisCountByMajor[0].ThesisCount)

	require.True(t, mr.Exists("stats:overview"))
}

func TestStatsServiceOverviewServesCachedValue(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	svc, _ := newStatsService(t, db)

	first, err := svc.Overview(context.Background())
	require.NoError(t, err)

	// A database change behind the cache is not visible until the TTL or an
	// explicit invalidation.
	require.NoError(t, db.Model(&models.Thesis{}).
		Where("code = ?", fixture.thesis.Code).
		Update("total_score", 9.0).Error)

	cached, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, cached)

	require.NoError(t, svc.Invalidate(context.Background()))

	fresh, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 9.0, fresh.AverageScoreBySchoolYear[0].AverageScore, 0.0001)
}

func TestStatsServiceOverviewSurvivesCorruptCache(t *testing.T) {
	db := setupTestDB(t)
	newScoringFixture(t, db)
	svc, mr := newStatsService(t, db)

	require.NoError(t, mr.Set("stats:overview", "not json"))

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview.ThesisCountByMajor, 1)
}

func TestStatsServiceWithoutCache(t *testing.T) {
	db := setupTestDB(t)
	newScoringFixture(t, db)

	svc := NewStatsService(repository.NewStatsRepository(db), nil, time.Minute, testLogger())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview.AverageScoreBySchoolYear, 1)
	require.NoError(t, svc.Invalidate(context.Background()))
}
