package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/models"
)

// ScoreRepository defines data operations for scores.
type ScoreRepository interface {
	GetByID(ctx context.Context, id uint) (models.Score, error)
	Create(ctx context.Context, score *models.Score) error
	Update(ctx context.Context, score *models.Score) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, thesisCriteriaID, councilDetailID uint) (bool, error)
	ListByThesis(ctx context.Context, thesisCode string) ([]models.Score, error)
	ListByThesisAndLecturer(ctx context.Context, thesisCode string, lecturerID uint) ([]models.Score, error)
}

type scoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository instantiates the repository.
func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Score{}).
		Preload("ThesisCriteria").
		Preload("ThesisCriteria.Criteria").
		Preload("CouncilDetail").
		Preload("CouncilDetail.Lecturer").
		Preload("CouncilDetail.Position")
}

func (r *scoreRepository) GetByID(ctx context.Context, id uint) (models.Score, error) {
	var score models.Score
	err := r.baseQuery(ctx).
		Preload("ThesisCriteria.Thesis").
		Preload("ThesisCriteria.Thesis.Council").
		Preload("CouncilDetail.Lecturer.User").
		First(&score, id).Error
	if err != nil {
		return models.Score{}, err
	}

	return score, nil
}

func (r *scoreRepository) Create(ctx context.Context, score *models.Score) error {
	return r.db.WithContext(ctx).Create(score).Error
}

func (r *scoreRepository) Update(ctx context.Context, score *models.Score) error {
	return r.db.WithContext(ctx).Save(score).Error
}

func (r *scoreRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Score{}, id).Error
}

func (r *scoreRepository) Exists(ctx context.Context, thesisCriteriaID, councilDetailID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Score{}).
		Where("thesis_criteria_id = ? AND council_detail_id = ?", thesisCriteriaID, councilDetailID).
		Count(&count).Error
	return count > 0, err
}

// ListByThesis returns every score belonging to the thesis through its
// criteria bindings, with the evaluating seat preloaded for per-lecturer
// aggregation.
func (r *scoreRepository) ListByThesis(ctx context.Context, thesisCode string) ([]models.Score, error) {
	var scores []models.Score
	err := r.baseQuery(ctx).
		Joins("JOIN thesis_criteria ON thesis_criteria.id = scores.thesis_criteria_id").
		Where("thesis_criteria.thesis_code = ?", thesisCode).
		Find(&scores).Error
	if err != nil {
		return nil, err
	}

	return scores, nil
}

func (r *scoreRepository) ListByThesisAndLecturer(ctx context.Context, thesisCode string, lecturerID uint) ([]models.Score, error) {
	var scores []models.Score
	err := r.baseQuery(ctx).
		Joins("JOIN thesis_criteria ON thesis_criteria.id = scores.thesis_criteria_id").
		Joins("JOIN council_details ON council_details.id = scores.council_detail_id").
		Where("thesis_criteria.thesis_code = ? AND council_details.lecturer_id = ?", thesisCode, lecturerID).
		Find(&scores).Error
	if err != nil {
		return nil, err
	}

	return scores, nil
}
