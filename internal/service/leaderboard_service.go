package service

import (
	"context"
	"fmt"

	"ironlog/internal/cache"
	"ironlog/internal/featureflags"
	"ironlog/internal/models"
	"ironlog/internal/observability"
	"ironlog/internal/repository"
)

// LeaderboardCacheFlag gates the Redis cache for anonymous leaderboard reads.
const LeaderboardCacheFlag = "leaderboard_cache"

// LeaderboardService builds the ranked community views of logged lifts.
//
// A failed build is reported as REMOTE_UNAVAILABLE rather than an empty
// list, so callers can render "failed to load" instead of "no entries yet".
type LeaderboardService struct {
	logRepo repository.LogRepository
	flags   *featureflags.Manager
}

// NewLeaderboardService creates a new LeaderboardService. flags may be nil,
// which disables the cache path.
func NewLeaderboardService(logRepo repository.LogRepository, flags *featureflags.Manager) *LeaderboardService {
	return &LeaderboardService{logRepo: logRepo, flags: flags}
}

// Latest returns the most recently logged lifts across all users.
func (s *LeaderboardService) Latest(ctx context.Context, limit int, currentUserID uint) ([]models.LeaderboardRow, error) {
	var rows []models.LeaderboardRow

	build := func() error {
		logs, err := s.logRepo.LeaderboardLatest(ctx, limit, currentUserID)
		if err != nil {
			return models.NewUnavailableError(err)
		}
		rows = buildRows(logs)
		return nil
	}

	// Only the anonymous view is cacheable; liked status is per-user.
	// The key carries the clamped limit so a small cached board is never
	// served to a caller asking for a bigger one.
	if currentUserID == 0 && s.flags.Enabled(LeaderboardCacheFlag, 0) {
		key := cache.LeaderboardKey(fmt.Sprintf("latest:%d", effectiveLimit(limit)))
		err := cache.Aside(ctx, key, &rows, cache.LeaderboardTTL, build)
		if err != nil {
			observability.LeaderboardBuilds.WithLabelValues("latest", "error").Inc()
			return nil, err
		}
		observability.LeaderboardBuilds.WithLabelValues("latest", "ok").Inc()
		return rows, nil
	}

	if err := build(); err != nil {
		observability.LeaderboardBuilds.WithLabelValues("latest", "error").Inc()
		return nil, err
	}
	observability.LeaderboardBuilds.WithLabelValues("latest", "ok").Inc()
	return rows, nil
}

// ByLift returns the heaviest logged lifts for one lift type.
func (s *LeaderboardService) ByLift(ctx context.Context, liftTypeID uint, limit int, currentUserID uint) ([]models.LeaderboardRow, error) {
	if liftTypeID == 0 {
		return nil, models.NewValidationError("lift_type_id is required")
	}

	var rows []models.LeaderboardRow

	build := func() error {
		logs, err := s.logRepo.LeaderboardByLift(ctx, liftTypeID, limit, currentUserID)
		if err != nil {
			return models.NewUnavailableError(err)
		}
		rows = buildRows(logs)
		return nil
	}

	if currentUserID == 0 && s.flags.Enabled(LeaderboardCacheFlag, 0) {
		key := cache.LeaderboardKey(fmt.Sprintf("by-lift:%d:%d", liftTypeID, effectiveLimit(limit)))
		err := cache.Aside(ctx, key, &rows, cache.LeaderboardTTL, build)
		if err != nil {
			observability.LeaderboardBuilds.WithLabelValues("by_lift", "error").Inc()
			return nil, err
		}
		observability.LeaderboardBuilds.WithLabelValues("by_lift", "ok").Inc()
		return rows, nil
	}

	if err := build(); err != nil {
		observability.LeaderboardBuilds.WithLabelValues("by_lift", "error").Inc()
		return nil, err
	}
	observability.LeaderboardBuilds.WithLabelValues("by_lift", "ok").Inc()
	return rows, nil
}

// effectiveLimit mirrors the repository's clamp so equivalent requests
// (limit 0, limit above the cap) share one cache entry.
func effectiveLimit(limit int) int {
	if limit <= 0 || limit > repository.LeaderboardLimit {
		return repository.LeaderboardLimit
	}
	return limit
}

// buildRows converts ordered logs into ranked display rows. Rank is the
// 1-based position in the already-sorted result.
func buildRows(logs []*models.Log) []models.LeaderboardRow {
	rows := make([]models.LeaderboardRow, 0, len(logs))
	for i, l := range logs {
		var avatar string
		if l.Profile != nil {
			avatar = l.Profile.AvatarURL
		}
		rows = append(rows, models.LeaderboardRow{
			Rank:          i + 1,
			LogID:         l.ID,
			UserID:        l.UserID,
			Lifter:        l.Profile.DisplayName(),
			AvatarURL:     avatar,
			Lift:          l.LiftDisplayName(),
			Weight:        l.Weight,
			Unit:          l.Unit,
			Reps:          l.Reps,
			Notes:         l.Notes,
			DateLogged:    l.DateLogged,
			LikesCount:    l.LikesCount,
			Liked:         l.Liked,
			CommentsCount: l.CommentsCount,
		})
	}
	return rows
}
