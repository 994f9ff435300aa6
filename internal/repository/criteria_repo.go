package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/models"
)

// CriteriaRepository defines data operations for criteria and their
// per-thesis weight bindings.
type CriteriaRepository interface {
	List(ctx context.Context, query string) ([]models.Criteria, error)
	GetByID(ctx context.Context, id uint) (models.Criteria, error)
	Create(ctx context.Context, criteria *models.Criteria) error
	Delete(ctx context.Context, id uint) error

	ListByThesis(ctx context.Context, thesisCode string) ([]models.ThesisCriteria, error)
	SumWeights(ctx context.Context, thesisCode string) (float64, error)
	BindingExists(ctx context.Context, thesisCode string, criteriaID uint) (bool, error)
	CreateBinding(ctx context.Context, binding *models.ThesisCriteria) error
	GetBinding(ctx context.Context, id uint) (models.ThesisCriteria, error)
}

type criteriaRepository struct {
	db *gorm.DB
}

// NewCriteriaRepository instantiates the repository.
func NewCriteriaRepository(db *gorm.DB) CriteriaRepository {
	return &criteriaRepository{db: db}
}

func (r *criteriaRepository) List(ctx context.Context, query string) ([]models.Criteria, error) {
	tx := r.db.WithContext(ctx).Model(&models.Criteria{})
	if query != "" {
		tx = tx.Where("name LIKE ?", "%"+query+"%")
	}

	var criteria []models.Criteria
	if err := tx.Order("id").Find(&criteria).Error; err != nil {
		return nil, err
	}

	return criteria, nil
}

func (r *criteriaRepository) GetByID(ctx context.Context, id uint) (models.Criteria, error) {
	var criteria models.Criteria
	if err := r.db.WithContext(ctx).First(&criteria, id).Error; err != nil {
		return models.Criteria{}, err
	}

	return criteria, nil
}

func (r *criteriaRepository) Create(ctx context.Context, criteria *models.Criteria) error {
	return r.db.WithContext(ctx).Create(criteria).Error
}

func (r *criteriaRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Criteria{}, id).Error
}

func (r *criteriaRepository) ListByThesis(ctx context.Context, thesisCode string) ([]models.ThesisCriteria, error) {
	var bindings []models.ThesisCriteria
	err := r.db.WithContext(ctx).Model(&models.ThesisCriteria{}).
		Preload("Criteria").
		Where("thesis_code = ?", thesisCode).
		Order("id").
		Find(&bindings).Error
	if err != nil {
		return nil, err
	}

	return bindings, nil
}

func (r *criteriaRepository) SumWeights(ctx context.Context, thesisCode string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.ThesisCriteria{}).
		Where("thesis_code = ?", thesisCode).
		Select("COALESCE(SUM(weight), 0)").
		Scan(&total).Error
	return total, err
}

func (r *criteriaRepository) BindingExists(ctx context.Context, thesisCode string, criteriaID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ThesisCriteria{}).
		Where("thesis_code = ? AND criteria_id = ?", thesisCode, criteriaID).
		Count(&count).Error
	return count > 0, err
}

func (r *criteriaRepository) CreateBinding(ctx context.Context, binding *models.ThesisCriteria) error {
	return r.db.WithContext(ctx).Create(binding).Error
}

func (r *criteriaRepository) GetBinding(ctx context.Context, id uint) (models.ThesisCriteria, error) {
	var binding models.ThesisCriteria
	err := r.db.WithContext(ctx).
		Preload("Criteria").
		Preload("Thesis").
		Preload("Thesis.Council").
		First(&binding, id).Error
	if err != nil {
		return models.ThesisCriteria{}, err
	}

	return binding, nil
}
