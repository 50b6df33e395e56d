package models

import (
	"time"

	"gorm.io/gorm"
)

// Session is one play session. Duration is always derived from the two
// timestamps; an open session (missing EndedAt) has no duration yet.
type Session struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	PlayerID  uint           `json:"player_id" gorm:"not null;index"`
	GameID    uint           `json:"game_id" gorm:"not null;index"`
	StartedAt *time.Time     `json:"started_at"`
	EndedAt   *time.Time     `json:"ended_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Player Player `json:"player,omitempty"`
	Game   Game   `json:"game,omitempty"`
}
