package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/models"
)

// CouncilFilter allows narrowing council queries.
type CouncilFilter struct {
	Query  string
	IsLock *bool
}

// CouncilRepository defines data operations for councils and their seats.
type CouncilRepository interface {
	List(ctx context.Context, filter CouncilFilter) ([]models.Council, error)
	GetByID(ctx context.Context, id uint) (models.Council, error)
	Create(ctx context.Context, council *models.Council) error
	Update(ctx context.Context, council *models.Council) error
	Delete(ctx context.Context, id uint) error

	ListDetails(ctx context.Context, councilID uint) ([]models.CouncilDetail, error)
	GetDetail(ctx context.Context, id uint) (models.CouncilDetail, error)
	GetDetailByLecturer(ctx context.Context, councilID, lecturerID uint) (models.CouncilDetail, error)
	CreateDetail(ctx context.Context, detail *models.CouncilDetail) error
	UpdateDetail(ctx context.Context, detail *models.CouncilDetail) error
	DeleteDetail(ctx context.Context, id uint) error

	GetPositionByCode(ctx context.Context, code string) (models.Position, error)
}

type councilRepository struct {
	db *gorm.DB
}

// NewCouncilRepository instantiates the repository.
func NewCouncilRepository(db *gorm.DB) CouncilRepository {
	return &councilRepository{db: db}
}

func (r *councilRepository) List(ctx context.Context, filter CouncilFilter) ([]models.Council, error) {
	query := r.db.WithContext(ctx).Model(&models.Council{})

	if filter.Query != "" {
		query = query.Where("name LIKE ?", "%"+filter.Query+"%")
	}

	if filter.IsLock != nil {
		query = query.Where("is_lock = ?", *filter.IsLock)
	}

	var councils []models.Council
	if err := query.Order("id").Find(&councils).Error; err != nil {
		return nil, err
	}

	return councils, nil
}

func (r *councilRepository) GetByID(ctx context.Context, id uint) (models.Council, error) {
	var council models.Council
	if err := r.db.WithContext(ctx).First(&council, id).Error; err != nil {
		return models.Council{}, err
	}

	return council, nil
}

func (r *councilRepository) Create(ctx context.Context, council *models.Council) error {
	return r.db.WithContext(ctx).Create(council).Error
}

func (r *councilRepository) Update(ctx context.Context, council *models.Council) error {
	return r.db.WithContext(ctx).Save(council).Error
}

func (r *councilRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Council{}, id).Error
}

func (r *councilRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.CouncilDetail{}).
		Preload("Lecturer").
		Preload("Lecturer.User").
		Preload("Position").
		Preload("Council")
}

func (r *councilRepository) ListDetails(ctx context.Context, councilID uint) ([]models.CouncilDetail, error) {
	var details []models.CouncilDetail
	if err := r.detailQuery(ctx).Where("council_id = ?", councilID).Order("id").Find(&details).Error; err != nil {
		return nil, err
	}

	return details, nil
}

func (r *councilRepository) GetDetail(ctx context.Context, id uint) (models.CouncilDetail, error) {
	var detail models.CouncilDetail
	if err := r.detailQuery(ctx).First(&detail, id).Error; err != nil {
		return models.CouncilDetail{}, err
	}

	return detail, nil
}

func (r *councilRepository) GetDetailByLecturer(ctx context.Context, councilID, lecturerID uint) (models.CouncilDetail, error) {
	var detail models.CouncilDetail
	err := r.detailQuery(ctx).
		Where("council_id = ? AND lecturer_id = ?", councilID, lecturerID).
		First(&detail).Error
	if err != nil {
		return models.CouncilDetail{}, err
	}

	return detail, nil
}

func (r *councilRepository) CreateDetail(ctx context.Context, detail *models.CouncilDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *councilRepository) UpdateDetail(ctx context.Context, detail *models.CouncilDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

func (r *councilRepository) DeleteDetail(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CouncilDetail{}, id).Error
}

func (r *councilRepository) GetPositionByCode(ctx context.Context, code string) (models.Position, error) {
	var position models.Position
	if err := r.db.WithContext(ctx).First(&position, "code = ?", code).Error; err != nil {
		return models.Position{}, err
	}

	return position, nil
}
