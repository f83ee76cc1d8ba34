package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a remark on one log. Deleted only by its author.
type Comment struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	UserID  uint     `gorm:"not null;index" json:"user_id"`
	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	LogID   uint     `gorm:"not null;index" json:"log_id"`
	Content string   `gorm:"type:text;not null" json:"content"`
	// ClientToken deduplicates retried submissions: a replayed create with
	// the same token returns the existing comment instead of a duplicate.
	ClientToken *string        `gorm:"uniqueIndex" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName maps Comment to the comments table.
func (Comment) TableName() string { return "comments" }
