package dto

import (
	"time"

	"github.com/noah-isme/thesis-api/internal/models"
)

// PostCreateRequest publishes a discussion post.
type PostCreateRequest struct {
	Content string `json:"content" validate:"required"`
}

// PostUpdateRequest edits an existing post.
type PostUpdateRequest struct {
	Content string `json:"content" validate:"required"`
}

// CommentCreateRequest replies to a post.
type CommentCreateRequest struct {
	Content string `json:"content" validate:"required,max=255"`
}

// PostResponse is returned to API clients when viewing posts.
type PostResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPostResponse maps a post model to its response shape.
func NewPostResponse(post models.Post, likes int64) PostResponse {
	return PostResponse{
		ID:        post.ID,
		UserID:    post.UserID,
		Author:    post.User.Username,
		Content:   post.Content,
		Likes:     likes,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// CommentResponse is returned to API clients when viewing comments.
type CommentResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponse maps a comment model to its response shape.
func NewCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Author:    comment.User.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

// NewCommentResponseSlice maps comment models to response shapes.
func NewCommentResponseSlice(comments []models.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, NewCommentResponse(comment))
	}
	return responses
}
