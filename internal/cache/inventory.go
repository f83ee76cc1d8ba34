package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix     = "profile:%d"
	LogKeyPrefix         = "log:%d"
	LiftTypesKey         = "lift_types"
	LeaderboardKeyPrefix = "leaderboard:%s"
	ProgressKeyPrefix    = "progress:%d:%d:%s"
)

const (
	ProfileTTL     = 5 * time.Minute
	LogTTL         = 10 * time.Minute
	LiftTypesTTL   = 30 * time.Minute
	LeaderboardTTL = 1 * time.Minute
	ProgressTTL    = 5 * time.Minute
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func LogKey(logID uint) string {
	return fmt.Sprintf(LogKeyPrefix, logID)
}

// LeaderboardKey builds a key for a leaderboard variant. mode is either
// "latest:<limit>" or "by-lift:<liftTypeID>:<limit>".
func LeaderboardKey(mode string) string {
	return fmt.Sprintf(LeaderboardKeyPrefix, mode)
}

// ProgressKey builds a key for one user's progress series on one lift.
// The series is bucketed by calendar day, so the viewer's timezone is
// part of the key.
func ProgressKey(userID, liftTypeID uint, locName string) string {
	return fmt.Sprintf(ProgressKeyPrefix, userID, liftTypeID, locName)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}

func InvalidateLog(ctx context.Context, logID uint) {
	Invalidate(ctx, LogKey(logID))
}

// InvalidateLeaderboards drops every cached leaderboard variant. The latest
// view changes on any new log, so a pattern scan keeps the by-exercise
// variants honest without tracking which lift was touched.
func InvalidateLeaderboards(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "leaderboard:*", 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

// InvalidateProgress drops every timezone variant of one user/lift series.
func InvalidateProgress(ctx context.Context, userID, liftTypeID uint) {
	if client == nil {
		return
	}
	pattern := fmt.Sprintf("progress:%d:%d:*", userID, liftTypeID)
	iter := client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

func InvalidateLiftTypes(ctx context.Context) {
	Invalidate(ctx, LiftTypesKey)
}
