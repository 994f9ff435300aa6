package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/repository"
)

func newPostService(db *gorm.DB) PostService {
	return NewPostService(repository.NewPostRepository(db), testValidator(), testLogger())
}

func TestPostServiceCreateSanitizesContent(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	svc := newPostService(db)

	author := Actor{UserID: fixture.student.UserID, Role: models.RoleStudent}

	post, err := svc.Create(context.Background(), author, dto.PostCreateRequest{
		Content: `Looking for a defense slot.<script>alert("x")</script><br>Anyone?`,
	})
	require.NoError(t, err)
	require.NotContains(t, post.Content, "script")
	require.Contains(t, post.Content, "<br>")
	require.Contains(t, post.Content, "Looking for a defense slot.")
	require.Equal(t, fixture.student.User.Username, post.Author)

	t.Run("markup-only content is rejected", func(t *testing.T) {
		_, err := svc.Create(context.Background(), author, dto.PostCreateRequest{
			Content: `<script>alert("x")</script>`,
		})
		require.True(t, IsInvalidInput(err))
	})
}

func TestPostServiceAuthorship(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	svc := newPostService(db)

	author := Actor{UserID: fixture.student.UserID, Role: models.RoleStudent}
	stranger := Actor{UserID: fixture.evaluatorA.UserID, Role: models.RoleLecturer}
	admin := Actor{UserID: 999, Role: models.RoleAdmin}

	post, err := svc.Create(context.Background(), author, dto.PostCreateRequest{Content: "First draft"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), stranger, post.ID, dto.PostUpdateRequest{Content: "Hijacked"})
	require.True(t, IsForbidden(err))

	updated, err := svc.Update(context.Background(), author, post.ID, dto.PostUpdateRequest{Content: "Second draft"})
	require.NoError(t, err)
	require.Equal(t, "Second draft", updated.Content)

	err = svc.Delete(context.Background(), stranger, post.ID)
	require.True(t, IsForbidden(err))

	// Admins can moderate any post.
	require.NoError(t, svc.Delete(context.Background(), admin, post.ID))

	_, err = svc.Get(context.Background(), post.ID)
	require.True(t, IsNotFound(err))
}

func TestPostServiceComments(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	svc := newPostService(db)

	author := Actor{UserID: fixture.student.UserID, Role: models.RoleStudent}
	replier := Actor{UserID: fixture.evaluatorA.UserID, Role: models.RoleLecturer}

	post, err := svc.Create(context.Background(), author, dto.PostCreateRequest{Content: "Question about citations"})
	require.NoError(t, err)

	comment, err := svc.AddComment(context.Background(), replier, post.ID, dto.CommentCreateRequest{
		Content: "Use the faculty template.",
	})
	require.NoError(t, err)
	require.Equal(t, post.ID, comment.PostID)
	require.Equal(t, fixture.evaluatorA.User.Username, comment.Author)

	comments, err := svc.ListComments(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	err = svc.DeleteComment(context.Background(), author, comment.ID)
	require.True(t, IsForbidden(err))

	require.NoError(t, svc.DeleteComment(context.Background(), replier, comment.ID))

	comments, err = svc.ListComments(context.Background(), post.ID)
	require.NoError(t, err)
	require.Empty(t, comments)

	t.Run("comment on unknown post", func(t *testing.T) {
		_, err := svc.AddComment(context.Background(), replier, 9999, dto.CommentCreateRequest{Content: "hello"})
		require.True(t, IsNotFound(err))
	})
}

func TestPostServiceToggleLike(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	svc := newPostService(db)

	author := Actor{UserID: fixture.student.UserID, Role: models.RoleStudent}
	liker := Actor{UserID: fixture.evaluatorA.UserID, Role: models.RoleLecturer}

	post, err := svc.Create(context.Background(), author, dto.PostCreateRequest{Content: "Defense went well!"})
	require.NoError(t, err)
	require.Zero(t, post.Likes)

	liked, err := svc.ToggleLike(context.Background(), liker, post.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, liked.Likes)

	// Toggling again withdraws the like rather than stacking a second one.
	unliked, err := svc.ToggleLike(context.Background(), liker, post.ID)
	require.NoError(t, err)
	require.Zero(t, unliked.Likes)

	relike, err := svc.ToggleLike(context.Background(), liker, post.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, relike.Likes)

	var likeRows int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likeRows).Error)
	require.EqualValues(t, 1, likeRows)
}
