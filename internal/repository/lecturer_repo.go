package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/models"
)

// LecturerFilter allows narrowing lecturer queries.
type LecturerFilter struct {
	Query       string
	FacultyCode string
}

// LecturerRepository defines data operations for lecturers.
type LecturerRepository interface {
	List(ctx context.Context, filter LecturerFilter) ([]models.Lecturer, error)
	GetByUserID(ctx context.Context, userID uint) (models.Lecturer, error)
	GetByCode(ctx context.Context, code string) (models.Lecturer, error)
}

type lecturerRepository struct {
	db *gorm.DB
}

// NewLecturerRepository instantiates the repository.
func NewLecturerRepository(db *gorm.DB) LecturerRepository {
	return &lecturerRepository{db: db}
}

func (r *lecturerRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Lecturer{}).
		Preload("User").
		Preload("Faculty")
}

func (r *lecturerRepository) List(ctx context.Context, filter LecturerFilter) ([]models.Lecturer, error) {
	query := r.baseQuery(ctx)

	if filter.Query != "" {
		query = query.Where("full_name LIKE ?", "%"+filter.Query+"%")
	}

	if filter.FacultyCode != "" {
		query = query.Where("faculty_code = ?", filter.FacultyCode)
	}

	var lecturers []models.Lecturer
	if err := query.Order("code").Find(&lecturers).Error; err != nil {
		return nil, err
	}

	return lecturers, nil
}

func (r *lecturerRepository) GetByUserID(ctx context.Context, userID uint) (models.Lecturer, error) {
	var lecturer models.Lecturer
	if err := r.baseQuery(ctx).First(&lecturer, "user_id = ?", userID).Error; err != nil {
		return models.Lecturer{}, err
	}

	return lecturer, nil
}

func (r *lecturerRepository) GetByCode(ctx context.Context, code string) (models.Lecturer, error) {
	var lecturer models.Lecturer
	if err := r.baseQuery(ctx).First(&lecturer, "code = ?", code).Error; err != nil {
		return models.Lecturer{}, err
	}

	return lecturer, nil
}
