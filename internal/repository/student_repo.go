package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/models"
)

// StudentFilter allows narrowing student queries.
type StudentFilter struct {
	Query     string
	MajorCode string
}

// StudentRepository defines data operations for students.
type StudentRepository interface {
	List(ctx context.Context, filter StudentFilter) ([]models.Student, error)
	GetByUserID(ctx context.Context, userID uint) (models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	ListByThesis(ctx context.Context, thesisCode string) ([]models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository instantiates the repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Student{}).
		Preload("User").
		Preload("Major")
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]models.Student, error) {
	query := r.baseQuery(ctx)

	if filter.Query != "" {
		query = query.Where("full_name LIKE ?", "%"+filter.Query+"%")
	}

	if filter.MajorCode != "" {
		query = query.Where("major_code = ?", filter.MajorCode)
	}

	var students []models.Student
	if err := query.Order("code").Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) GetByUserID(ctx context.Context, userID uint) (models.Student, error) {
	var student models.Student
	if err := r.baseQuery(ctx).First(&student, "user_id = ?", userID).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepository) ListByThesis(ctx context.Context, thesisCode string) ([]models.Student, error) {
	var students []models.Student
	if err := r.baseQuery(ctx).Where("thesis_code = ?", thesisCode).Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}
