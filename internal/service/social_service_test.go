package service

import (
	"context"
	"testing"

	"ironlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialService_ToggleLike(t *testing.T) {
	liked := false
	likeRepo := noopLikeRepo()
	likeRepo.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return liked, nil }
	likeRepo.likeFn = func(_ context.Context, _, _ uint) error {
		liked = true
		return nil
	}
	likeRepo.unlikeFn = func(_ context.Context, _, _ uint) error {
		liked = false
		return nil
	}
	likeRepo.countFn = func(_ context.Context, _ uint) (int64, error) {
		if liked {
			return 1, nil
		}
		return 0, nil
	}

	svc := NewSocialService(noopLogRepo(), likeRepo, noopCommentRepo())
	ctx := context.Background()

	// First toggle likes.
	summary, err := svc.ToggleLike(ctx, 1, 9)
	require.NoError(t, err)
	assert.True(t, summary.UserLiked)
	assert.Equal(t, 1, summary.TotalLikes)

	// Second toggle unlikes, landing back where we started.
	summary, err = svc.ToggleLike(ctx, 1, 9)
	require.NoError(t, err)
	assert.False(t, summary.UserLiked)
	assert.Equal(t, 0, summary.TotalLikes)
}

func TestSocialService_ToggleLike_LogNotFound(t *testing.T) {
	logRepo := noopLogRepo()
	logRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Log, error) {
		return nil, models.NewNotFoundError("Log", id)
	}

	svc := NewSocialService(logRepo, noopLikeRepo(), noopCommentRepo())

	_, err := svc.ToggleLike(context.Background(), 1, 999)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestSocialService_AddComment(t *testing.T) {
	commentRepo := noopCommentRepo()
	var created *models.Comment
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 5
		created = c
		return nil
	}
	commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) { return created, nil }

	svc := NewSocialService(noopLogRepo(), noopLikeRepo(), commentRepo)

	comment, err := svc.AddComment(context.Background(), AddCommentInput{
		UserID:  1,
		LogID:   9,
		Content: "  Huge pull!  ",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(5), comment.ID)
	assert.Equal(t, "Huge pull!", comment.Content)
}

func TestSocialService_AddComment_EmptyContent(t *testing.T) {
	svc := NewSocialService(noopLogRepo(), noopLikeRepo(), noopCommentRepo())

	_, err := svc.AddComment(context.Background(), AddCommentInput{UserID: 1, LogID: 9, Content: "   "})
	assertValidationError(t, err)
}

func TestSocialService_AddComment_ReplayedTokenReturnsExisting(t *testing.T) {
	token := "5f0c27d4-1111-4222-8333-abcdefabcdef"
	existing := &models.Comment{ID: 5, UserID: 1, LogID: 9, Content: "Huge pull!", ClientToken: &token}

	commentRepo := noopCommentRepo()
	commentRepo.getByClientTokenFn = func(_ context.Context, tok string) (*models.Comment, error) {
		if tok == token {
			return existing, nil
		}
		return nil, nil
	}
	createCalls := 0
	commentRepo.createFn = func(_ context.Context, _ *models.Comment) error {
		createCalls++
		return nil
	}

	svc := NewSocialService(noopLogRepo(), noopLikeRepo(), commentRepo)

	comment, err := svc.AddComment(context.Background(), AddCommentInput{
		UserID: 1, LogID: 9, Content: "Huge pull!", ClientToken: token,
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, comment.ID)
	assert.Zero(t, createCalls)
}

func TestSocialService_DeleteComment_AuthorOnly(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 42, LogID: 9}, nil
	}
	deleted := false
	commentRepo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}

	svc := NewSocialService(noopLogRepo(), noopLikeRepo(), commentRepo)
	ctx := context.Background()

	// Not the author: rejected, nothing deleted.
	err := svc.DeleteComment(ctx, 1, 5)
	assertForbiddenError(t, err)
	assert.False(t, deleted)

	// The author may delete.
	require.NoError(t, svc.DeleteComment(ctx, 42, 5))
	assert.True(t, deleted)
}
