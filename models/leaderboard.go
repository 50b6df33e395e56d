package models

import (
	"time"

	"gorm.io/gorm"
)

// Leaderboard is a per-game ranked list of player scores. Ranking reads are
// served from Redis; these rows are the durable record used for rebuilds.
type Leaderboard struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	GameID    uint           `json:"game_id" gorm:"uniqueIndex;not null"`
	Name      string         `json:"name" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Game    Game                `json:"game,omitempty"`
	Entries []LeaderboardEntity `json:"entries,omitempty" gorm:"foreignKey:LeaderboardID"`
}

type LeaderboardEntity struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	LeaderboardID uint           `json:"leaderboard_id" gorm:"not null;uniqueIndex:idx_leaderboard_player"`
	PlayerID      uint           `json:"player_id" gorm:"not null;uniqueIndex:idx_leaderboard_player"`
	Score         int64          `json:"score" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Player Player `json:"player,omitempty"`
}
