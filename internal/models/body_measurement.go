package models

import "time"

// BodyMeasurement is one logged body-weight reading.
type BodyMeasurement struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Weight     float64   `gorm:"not null" json:"weight"`
	Unit       string    `gorm:"default:lbs" json:"unit"`
	Notes      string    `json:"notes,omitempty"`
	DateLogged time.Time `gorm:"not null" json:"date_logged"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName maps BodyMeasurement to the body_measurements table.
func (BodyMeasurement) TableName() string { return "body_measurements" }
