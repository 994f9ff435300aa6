package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/models"
)

// ThesisFilter allows narrowing thesis queries.
type ThesisFilter struct {
	Query        string
	CouncilID    *uint
	MajorCode    string
	SchoolYearID *uint
}

// ThesisRepository defines data operations for theses.
type ThesisRepository interface {
	List(ctx context.Context, filter ThesisFilter) ([]models.Thesis, error)
	GetByCode(ctx context.Context, code string) (models.Thesis, error)
	Create(ctx context.Context, thesis *models.Thesis) error
	Update(ctx context.Context, thesis *models.Thesis) error
	Delete(ctx context.Context, code string) error
	UpdateAggregate(ctx context.Context, code string, totalScore float64, result bool) error
	AddLecturer(ctx context.Context, thesis *models.Thesis, lecturer models.Lecturer) error
	CountByCouncil(ctx context.Context, councilID uint) (int64, error)
	ListBySupervisor(ctx context.Context, lecturerID uint) ([]models.Thesis, error)
}

type thesisRepository struct {
	db *gorm.DB
}

// NewThesisRepository instantiates the repository.
func NewThesisRepository(db *gorm.DB) ThesisRepository {
	return &thesisRepository{db: db}
}

func (r *thesisRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Thesis{}).
		Preload("Major").
		Preload("SchoolYear").
		Preload("Council").
		Preload("Lecturers").
		Preload("Students")
}

func (r *thesisRepository) List(ctx context.Context, filter ThesisFilter) ([]models.Thesis, error) {
	query := r.baseQuery(ctx)

	if filter.Query != "" {
		query = query.Where("name LIKE ?", "%"+filter.Query+"%")
	}

	if filter.CouncilID != nil {
		query = query.Where("council_id = ?", *filter.CouncilID)
	}

	if filter.MajorCode != "" {
		query = query.Where("major_code = ?", filter.MajorCode)
	}

	if filter.SchoolYearID != nil {
		query = query.Where("school_year_id = ?", *filter.SchoolYearID)
	}

	var theses []models.Thesis
	if err := query.Order("code DESC").Find(&theses).Error; err != nil {
		return nil, err
	}

	return theses, nil
}

func (r *thesisRepository) GetByCode(ctx context.Context, code string) (models.Thesis, error) {
	var thesis models.Thesis
	if err := r.baseQuery(ctx).First(&thesis, "code = ?", code).Error; err != nil {
		return models.Thesis{}, err
	}

	return thesis, nil
}

func (r *thesisRepository) Create(ctx context.Context, thesis *models.Thesis) error {
	return r.db.WithContext(ctx).Create(thesis).Error
}

func (r *thesisRepository) Update(ctx context.Context, thesis *models.Thesis) error {
	return r.db.WithContext(ctx).Save(thesis).Error
}

func (r *thesisRepository) Delete(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Delete(&models.Thesis{}, "code = ?", code).Error
}

// UpdateAggregate writes only the denormalized aggregate pair so concurrent
// edits to other thesis fields are never clobbered by a recompute.
func (r *thesisRepository) UpdateAggregate(ctx context.Context, code string, totalScore float64, result bool) error {
	return r.db.WithContext(ctx).Model(&models.Thesis{}).
		Where("code = ?", code).
		Updates(map[string]interface{}{"total_score": totalScore, "result": result}).Error
}

func (r *thesisRepository) AddLecturer(ctx context.Context, thesis *models.Thesis, lecturer models.Lecturer) error {
	return r.db.WithContext(ctx).Model(thesis).Association("Lecturers").Append(&lecturer)
}

func (r *thesisRepository) CountByCouncil(ctx context.Context, councilID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Thesis{}).
		Where("council_id = ?", councilID).
		Count(&count).Error
	return count, err
}

func (r *thesisRepository) ListBySupervisor(ctx context.Context, lecturerID uint) ([]models.Thesis, error) {
	var theses []models.Thesis
	err := r.baseQuery(ctx).
		Joins("JOIN thesis_lecturers ON thesis_lecturers.thesis_code = theses.code").
		Where("thesis_lecturers.lecturer_id = ?", lecturerID).
		Find(&theses).Error
	if err != nil {
		return nil, err
	}

	return theses, nil
}
