package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/models"
)

// PostRepository defines data operations for the discussion board.
type PostRepository interface {
	List(ctx context.Context, query string) ([]models.Post, error)
	GetByID(ctx context.Context, id uint) (models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error

	ListComments(ctx context.Context, postID uint) ([]models.Comment, error)
	GetComment(ctx context.Context, id uint) (models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error

	ToggleLike(ctx context.Context, postID, userID uint) (bool, error)
	CountLikes(ctx context.Context, postID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository instantiates the repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) List(ctx context.Context, query string) ([]models.Post, error) {
	tx := r.db.WithContext(ctx).Model(&models.Post{}).
		Preload("User").
		Where("active = ?", true)

	if query != "" {
		tx = tx.Where("content LIKE ?", "%"+query+"%")
	}

	var posts []models.Post
	if err := tx.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("active = ?", true).
		First(&post, id).Error
	if err != nil {
		return models.Post{}, err
	}

	return post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

func (r *postRepository) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Preload("User").
		Where("post_id = ? AND active = ?", postID, true).
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *postRepository) GetComment(ctx context.Context, id uint) (models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return models.Comment{}, err
	}

	return comment, nil
}

func (r *postRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *postRepository) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}

// ToggleLike creates the like on first use and flips Active afterwards.
// It returns the resulting Active state.
func (r *postRepository) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&like).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		like = models.Like{PostID: postID, UserID: userID, Active: true}
		if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
			return false, err
		}
		return true, nil
	}

	like.Active = !like.Active
	if err := r.db.WithContext(ctx).Save(&like).Error; err != nil {
		return false, err
	}

	return like.Active, nil
}

func (r *postRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ? AND active = ?", postID, true).
		Count(&count).Error
	return count, err
}
