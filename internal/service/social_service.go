package service

import (
	"context"
	"strings"

	"ironlog/internal/models"
	"ironlog/internal/observability"
	"ironlog/internal/repository"
	"ironlog/internal/validation"
)

// SocialService handles likes and comments on logs. Like toggling is
// idempotent at the storage layer, so a double-tap from a laggy client
// converges instead of erroring.
type SocialService struct {
	logRepo     repository.LogRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
}

// AddCommentInput is the payload for commenting on a log.
type AddCommentInput struct {
	UserID      uint
	LogID       uint
	Content     string
	ClientToken string
}

// NewSocialService creates a new SocialService.
func NewSocialService(
	logRepo repository.LogRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
) *SocialService {
	return &SocialService{
		logRepo:     logRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

// ToggleLike flips the current user's like on a log and returns the
// resulting state.
func (s *SocialService) ToggleLike(ctx context.Context, userID, logID uint) (*models.LikeSummary, error) {
	if _, err := s.logRepo.GetByID(ctx, logID, userID); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.IsLiked(ctx, userID, logID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.likeRepo.Unlike(ctx, userID, logID); err != nil {
			observability.LikeToggles.WithLabelValues("error").Inc()
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("unliked").Inc()
	} else {
		if err := s.likeRepo.Like(ctx, userID, logID); err != nil {
			observability.LikeToggles.WithLabelValues("error").Inc()
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("liked").Inc()
	}

	count, err := s.likeRepo.Count(ctx, logID)
	if err != nil {
		return nil, err
	}
	return &models.LikeSummary{TotalLikes: int(count), UserLiked: !liked}, nil
}

// ListComments returns a log's comment thread oldest first.
func (s *SocialService) ListComments(ctx context.Context, logID, currentUserID uint) ([]*models.Comment, error) {
	if _, err := s.logRepo.GetByID(ctx, logID, currentUserID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByLog(ctx, logID)
}

// AddComment posts a comment on a log. A replayed submission carrying the
// same client token returns the existing comment instead of inserting a
// duplicate.
func (s *SocialService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.logRepo.GetByID(ctx, in.LogID, in.UserID); err != nil {
		return nil, err
	}

	token := strings.TrimSpace(in.ClientToken)
	if token != "" {
		existing, err := s.commentRepo.GetByClientToken(ctx, token)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	comment := &models.Comment{
		UserID:  in.UserID,
		LogID:   in.LogID,
		Content: strings.TrimSpace(in.Content),
	}
	if token != "" {
		comment.ClientToken = &token
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		// Lost a race against the same token; surface the winner.
		if token != "" {
			if existing, lookupErr := s.commentRepo.GetByClientToken(ctx, token); lookupErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes a comment. Only the author may delete it.
func (s *SocialService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
