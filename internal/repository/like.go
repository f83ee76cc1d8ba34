package repository

import (
	"context"

	"ironlog/internal/cache"
	"ironlog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines persistence operations for log likes.
type LikeRepository interface {
	Like(ctx context.Context, userID, logID uint) error
	Unlike(ctx context.Context, userID, logID uint) error
	IsLiked(ctx context.Context, userID, logID uint) (bool, error)
	Count(ctx context.Context, logID uint) (int64, error)
	GetLikedLogIDs(ctx context.Context, userID uint, logIDs []uint) ([]uint, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Like inserts the like row if it does not exist yet. ON CONFLICT DO NOTHING
// makes concurrent double-taps converge on a single row.
func (r *likeRepository) Like(ctx context.Context, userID, logID uint) error {
	like := models.Like{UserID: userID, LogID: logID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_id"}},
			DoNothing: true,
		}).
		Create(&like).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateLog(ctx, logID)
	return nil
}

// Unlike hard-deletes the like record. Deleting an absent row is not an error.
func (r *likeRepository) Unlike(ctx context.Context, userID, logID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND log_id = ?", userID, logID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateLog(ctx, logID)
	return nil
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, logID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND log_id = ?", userID, logID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) Count(ctx context.Context, logID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("log_id = ?", logID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *likeRepository) GetLikedLogIDs(ctx context.Context, userID uint, logIDs []uint) ([]uint, error) {
	if len(logIDs) == 0 {
		return nil, nil
	}
	var liked []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND log_id IN ?", userID, logIDs).
		Pluck("log_id", &liked).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return liked, nil
}
