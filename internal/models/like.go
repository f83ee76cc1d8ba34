package models

import "time"

// Like is one user's endorsement of one log, unique per (user, log).
// Likes are hard-deleted; a row either exists or it does not.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_log" json:"user_id"`
	LogID     uint      `gorm:"not null;uniqueIndex:idx_likes_user_log;index" json:"log_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName maps Like to the likes table.
func (Like) TableName() string { return "likes" }

// LikeSummary is the per-log like view returned alongside leaderboard rows.
type LikeSummary struct {
	TotalLikes int  `json:"total_likes"`
	UserLiked  bool `json:"user_liked"`
}
