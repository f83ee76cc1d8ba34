package models

import (
	"time"

	"gorm.io/gorm"
)

// LiftType is a named category of lift (e.g. "Back Squat").
// Globally shared, read-mostly reference data.
type LiftType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// TableName maps LiftType to the lift_types table.
func (LiftType) TableName() string { return "lift_types" }

// Log represents one logged lift: weight x reps plus optional effort rating.
type Log struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Profile    *Profile  `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	LiftTypeID *uint     `gorm:"index" json:"lift_type_id,omitempty"`
	LiftType   *LiftType `gorm:"foreignKey:LiftTypeID" json:"lift_type,omitempty"`
	// LiftName is a free-text substitute when no lift type is selected.
	LiftName   string    `json:"lift_name,omitempty"`
	Weight     float64   `gorm:"not null" json:"weight"`
	Unit       string    `gorm:"default:lbs" json:"unit"`
	Reps       int       `gorm:"not null" json:"reps"`
	RPE        *int      `json:"rpe,omitempty"`
	BodyWeight *float64  `json:"body_weight,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	DateLogged time.Time `gorm:"not null;index" json:"date_logged"`
	IsPR       bool      `gorm:"default:false" json:"is_pr"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this log (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName maps Log to the logs table.
func (Log) TableName() string { return "logs" }

// LiftDisplayName returns the lift name to render for this log.
// Fallback chain: joined lift type name, then free-text name, then "-".
func (l *Log) LiftDisplayName() string {
	if l.LiftType != nil && l.LiftType.Name != "" {
		return l.LiftType.Name
	}
	if l.LiftName != "" {
		return l.LiftName
	}
	return "-"
}

// LeaderboardRow is a ranked, display-joined view of one log.
// Rebuilt on every query; never persisted.
type LeaderboardRow struct {
	Rank          int     `json:"rank"`
	LogID         uint    `json:"log_id"`
	UserID        uint    `json:"user_id"`
	Lifter        string  `json:"lifter"`
	AvatarURL     string  `json:"avatar_url,omitempty"`
	Lift          string  `json:"lift"`
	Weight        float64 `json:"weight"`
	Unit          string  `json:"unit"`
	Reps          int     `json:"reps"`
	Notes         string  `json:"notes,omitempty"`
	DateLogged    time.Time `json:"date_logged"`
	LikesCount    int     `json:"likes_count"`
	Liked         bool    `json:"liked"`
	CommentsCount int     `json:"comments_count"`
}
