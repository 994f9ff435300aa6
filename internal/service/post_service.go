package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/repository"
)

// PostService exposes the discussion board use-cases.
type PostService interface {
	List(ctx context.Context, query string) ([]dto.PostResponse, error)
	Get(ctx context.Context, id uint) (dto.PostResponse, error)
	Create(ctx context.Context, actor Actor, payload dto.PostCreateRequest) (dto.PostResponse, error)
	Update(ctx context.Context, actor Actor, id uint, payload dto.PostUpdateRequest) (dto.PostResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error

	ListComments(ctx context.Context, postID uint) ([]dto.CommentResponse, error)
	AddComment(ctx context.Context, actor Actor, postID uint, payload dto.CommentCreateRequest) (dto.CommentResponse, error)
	DeleteComment(ctx context.Context, actor Actor, id uint) error

	ToggleLike(ctx context.Context, actor Actor, postID uint) (dto.PostResponse, error)
}

type postService struct {
	posts     repository.PostRepository
	validator *validator.Validate
	logger    zerolog.Logger
	sanitizer *bluemonday.Policy
}

// NewPostService constructs a post service.
func NewPostService(posts repository.PostRepository, validate *validator.Validate, logger zerolog.Logger) PostService {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("br")

	return &postService{
		posts:     posts,
		validator: validate,
		logger:    logger.With().Str("component", "post_service").Logger(),
		sanitizer: policy,
	}
}

func (s *postService) List(ctx context.Context, query string) ([]dto.PostResponse, error) {
	posts, err := s.posts.List(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		likes, err := s.posts.CountLikes(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.NewPostResponse(post, likes))
	}

	return responses, nil
}

func (s *postService) Get(ctx context.Context, id uint) (dto.PostResponse, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return dto.PostResponse{}, err
	}
	return s.toResponse(ctx, post)
}

func (s *postService) Create(ctx context.Context, actor Actor, payload dto.PostCreateRequest) (dto.PostResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PostResponse{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
	if content == "" {
		return dto.PostResponse{}, NewInvalidInput("post content empty after sanitization")
	}

	post := models.Post{
		UserID:  actor.UserID,
		Content: content,
		Active:  true,
	}
	if err := s.posts.Create(ctx, &post); err != nil {
		return dto.PostResponse{}, err
	}

	s.logger.Info().Uint("post_id", post.ID).Uint("user_id", actor.UserID).Msg("post created")

	created, err := s.loadPost(ctx, post.ID)
	if err != nil {
		return dto.PostResponse{}, err
	}

	return s.toResponse(ctx, created)
}

func (s *postService) Update(ctx context.Context, actor Actor, id uint, payload dto.PostUpdateRequest) (dto.PostResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PostResponse{}, err
	}

	post, err := s.loadPost(ctx, id)
	if err != nil {
		return dto.PostResponse{}, err
	}

	if err := s.requireAuthor(actor, post.UserID); err != nil {
		return dto.PostResponse{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
	if content == "" {
		return dto.PostResponse{}, NewInvalidInput("post content empty after sanitization")
	}

	post.Content = content
	if err := s.posts.Update(ctx, &post); err != nil {
		return dto.PostResponse{}, err
	}

	return s.toResponse(ctx, post)
}

func (s *postService) Delete(ctx context.Context, actor Actor, id uint) error {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requireAuthor(actor, post.UserID); err != nil {
		return err
	}

	// Soft delete so replies keep their anchor row.
	post.Active = false
	return s.posts.Update(ctx, &post)
}

func (s *postService) ListComments(ctx context.Context, postID uint) ([]dto.CommentResponse, error) {
	if _, err := s.loadPost(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.posts.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	return dto.NewCommentResponseSlice(comments), nil
}

func (s *postService) AddComment(ctx context.Context, actor Actor, postID uint, payload dto.CommentCreateRequest) (dto.CommentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CommentResponse{}, err
	}

	if _, err := s.loadPost(ctx, postID); err != nil {
		return dto.CommentResponse{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
	if content == "" {
		return dto.CommentResponse{}, NewInvalidInput("comment content empty after sanitization")
	}

	comment := models.Comment{
		PostID:  postID,
		UserID:  actor.UserID,
		Content: content,
		Active:  true,
	}
	if err := s.posts.CreateComment(ctx, &comment); err != nil {
		return dto.CommentResponse{}, err
	}

	created, err := s.posts.GetComment(ctx, comment.ID)
	if err != nil {
		return dto.CommentResponse{}, err
	}

	return dto.NewCommentResponse(created), nil
}

func (s *postService) DeleteComment(ctx context.Context, actor Actor, id uint) error {
	comment, err := s.posts.GetComment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("comment not found")
		}
		return err
	}

	if err := s.requireAuthor(actor, comment.UserID); err != nil {
		return err
	}

	return s.posts.DeleteComment(ctx, id)
}

func (s *postService) ToggleLike(ctx context.Context, actor Actor, postID uint) (dto.PostResponse, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return dto.PostResponse{}, err
	}

	active, err := s.posts.ToggleLike(ctx, postID, actor.UserID)
	if err != nil {
		return dto.PostResponse{}, err
	}

	s.logger.Info().
		Uint("post_id", postID).
		Uint("user_id", actor.UserID).
		Bool("liked", active).
		Msg("post like toggled")

	return s.toResponse(ctx, post)
}

func (s *postService) loadPost(ctx context.Context, id uint) (models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Post{}, NewNotFound("post not found")
		}
		return models.Post{}, err
	}
	return post, nil
}

// requireAuthor allows the author and admins through.
func (s *postService) requireAuthor(actor Actor, authorID uint) error {
	if actor.UserID == authorID || actor.Role == models.RoleAdmin {
		return nil
	}
	return NewForbidden("only the author can modify this entry")
}

func (s *postService) toResponse(ctx context.Context, post models.Post) (dto.PostResponse, error) {
	likes, err := s.posts.CountLikes(ctx, post.ID)
	if err != nil {
		return dto.PostResponse{}, err
	}
	return dto.NewPostResponse(post, likes), nil
}
