package repository

import (
	"context"
	"errors"
	"time"

	"ironlog/internal/cache"
	"ironlog/internal/models"
	"ironlog/internal/observability"

	"gorm.io/gorm"
)

// LeaderboardLimit caps how many rows any leaderboard query returns.
const LeaderboardLimit = 50

// LogRepository defines the interface for workout log data operations.
type LogRepository interface {
	Create(ctx context.Context, log *models.Log) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Log, error)
	ListByUser(ctx context.Context, userID uint, liftTypeID *uint, limit, offset int, currentUserID uint) ([]*models.Log, error)
	ListForProgress(ctx context.Context, userID, liftTypeID uint) ([]models.Log, error)
	ListSince(ctx context.Context, userID uint, since time.Time) ([]models.Log, error)
	Update(ctx context.Context, log *models.Log) error
	Delete(ctx context.Context, id uint) error
	LeaderboardLatest(ctx context.Context, limit int, currentUserID uint) ([]*models.Log, error)
	LeaderboardByLift(ctx context.Context, liftTypeID uint, limit int, currentUserID uint) ([]*models.Log, error)
}

type logRepository struct {
	db      *gorm.DB
	metrics observability.DatabaseMetrics
}

// NewLogRepository creates a new log repository.
func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) Create(ctx context.Context, log *models.Log) error {
	defer r.metrics.TrackQuery("create", "logs")()
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateLeaderboards(ctx)
	if log.LiftTypeID != nil {
		cache.InvalidateProgress(ctx, log.UserID, *log.LiftTypeID)
	}
	return nil
}

func (r *logRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Log, error) {
	var log models.Log
	err := r.applyLogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Profile").
		Preload("LiftType").
		First(&log, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Log", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &log, nil
}

func (r *logRepository) ListByUser(ctx context.Context, userID uint, liftTypeID *uint, limit, offset int, currentUserID uint) ([]*models.Log, error) {
	defer r.metrics.TrackQuery("list", "logs")()
	var logs []*models.Log
	q := r.applyLogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Profile").
		Preload("LiftType").
		Where("logs.user_id = ?", userID)
	if liftTypeID != nil {
		q = q.Where("logs.lift_type_id = ?", *liftTypeID)
	}
	err := q.Order("logs.date_logged DESC, logs.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

// ListForProgress returns every log a user has for one lift, ordered by log date.
// No social columns; the stats package only needs weight, reps and dates.
func (r *logRepository) ListForProgress(ctx context.Context, userID, liftTypeID uint) ([]models.Log, error) {
	defer r.metrics.TrackQuery("progress", "logs")()
	var logs []models.Log
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND lift_type_id = ?", userID, liftTypeID).
		Order("date_logged ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

func (r *logRepository) ListSince(ctx context.Context, userID uint, since time.Time) ([]models.Log, error) {
	defer r.metrics.TrackQuery("activity", "logs")()
	var logs []models.Log
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date_logged >= ?", userID, since).
		Order("date_logged ASC").
		Find(&logs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

func (r *logRepository) Update(ctx context.Context, log *models.Log) error {
	if err := r.db.WithContext(ctx).Save(log).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateLog(ctx, log.ID)
	cache.InvalidateLeaderboards(ctx)
	if log.LiftTypeID != nil {
		cache.InvalidateProgress(ctx, log.UserID, *log.LiftTypeID)
	}
	return nil
}

func (r *logRepository) Delete(ctx context.Context, id uint) error {
	// Read the owning user and lift first so their cached series can be
	// dropped once the row is gone.
	var stale models.Log
	if err := r.db.WithContext(ctx).Select("user_id", "lift_type_id").First(&stale, id).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.Log{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateLog(ctx, id)
	cache.InvalidateLeaderboards(ctx)
	if stale.LiftTypeID != nil {
		cache.InvalidateProgress(ctx, stale.UserID, *stale.LiftTypeID)
	}
	return nil
}

// LeaderboardLatest returns the most recent logs across all users.
// Ties on date fall back to id so pagination stays stable.
func (r *logRepository) LeaderboardLatest(ctx context.Context, limit int, currentUserID uint) ([]*models.Log, error) {
	defer r.metrics.TrackQuery("leaderboard_latest", "logs")()
	var logs []*models.Log
	err := r.applyLogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Profile").
		Preload("LiftType").
		Order("logs.date_logged DESC, logs.id DESC").
		Limit(clampLimit(limit)).
		Find(&logs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

// LeaderboardByLift returns the heaviest logs for one lift, heaviest first.
// Equal weights rank the earlier log first.
func (r *logRepository) LeaderboardByLift(ctx context.Context, liftTypeID uint, limit int, currentUserID uint) ([]*models.Log, error) {
	defer r.metrics.TrackQuery("leaderboard_by_lift", "logs")()
	var logs []*models.Log
	err := r.applyLogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Profile").
		Preload("LiftType").
		Where("logs.lift_type_id = ?", liftTypeID).
		Order("logs.weight DESC, logs.id ASC").
		Limit(clampLimit(limit)).
		Find(&logs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

// applyLogDetails adds subqueries to fetch counts and liked status in a single query.
func (r *logRepository) applyLogDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "logs.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.log_id = logs.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.log_id = logs.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.log_id = logs.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > LeaderboardLimit {
		return LeaderboardLimit
	}
	return limit
}
