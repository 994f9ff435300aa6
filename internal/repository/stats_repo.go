package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/models"
)

// StatsRepository runs the aggregate queries backing ministry statistics.
type StatsRepository interface {
	AverageScoreBySchoolYear(ctx context.Context) ([]dto.SchoolYearAverage, error)
	ThesisCountByMajor(ctx context.Context) ([]dto.MajorThesisCount, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository instantiates the repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) AverageScoreBySchoolYear(ctx context.Context) ([]dto.SchoolYearAverage, error) {
	type row struct {
		SchoolYearID uint
		Name         string
		AverageScore float64
	}

	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Thesis{}).
		Select("school_years.id AS school_year_id, school_years.name AS name, AVG(theses.total_score) AS average_score").
		Joins("JOIN school_years ON school_years.id = theses.school_year_id").
		Group("school_years.id, school_years.name").
		Order("school_years.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var years []models.SchoolYear
	if err := r.db.WithContext(ctx).Find(&years).Error; err != nil {
		return nil, err
	}
	yearByID := make(map[uint]models.SchoolYear, len(years))
	for _, year := range years {
		yearByID[year.ID] = year
	}

	averages := make([]dto.SchoolYearAverage, 0, len(rows))
	for _, item := range rows {
		average := dto.SchoolYearAverage{
			SchoolYearID: item.SchoolYearID,
			Name:         item.Name,
			AverageScore: item.AverageScore,
		}
		if year, ok := yearByID[item.SchoolYearID]; ok {
			average.StartYear = year.StartYear.Year()
			average.EndYear = year.EndYear.Year()
		}
		averages = append(averages, average)
	}

	return averages, nil
}

func (r *statsRepository) ThesisCountByMajor(ctx context.Context) ([]dto.MajorThesisCount, error) {
	var counts []dto.MajorThesisCount
	err := r.db.WithContext(ctx).Model(&models.Major{}).
		Select("majors.code AS major_code, majors.name AS major_name, COUNT(theses.code) AS thesis_count").
		Joins("LEFT JOIN theses ON theses.major_code = majors.code").
		Group("majors.code, majors.name").
		Order("majors.code").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	return counts, nil
}
