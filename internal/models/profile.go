// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile represents a registered lifter's account and public identity.
type Profile struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"-"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `json:"full_name,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName maps Profile to the profiles table.
func (Profile) TableName() string { return "profiles" }

// DisplayName returns the name to render for this profile.
// Fallback chain: full name, then username, then "Anonymous".
func (p *Profile) DisplayName() string {
	if p == nil {
		return "Anonymous"
	}
	if p.FullName != "" {
		return p.FullName
	}
	if p.Username != "" {
		return p.Username
	}
	return "Anonymous"
}
