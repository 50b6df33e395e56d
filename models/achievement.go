package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Achievement struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	GameID         uint           `json:"game_id" gorm:"not null;index"`
	Name           string         `json:"name" gorm:"not null"`
	Points         int            `json:"points" gorm:"not null;default:0"`
	UnlockCriteria datatypes.JSON `json:"unlock_criteria" gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Game Game `json:"game,omitempty"`
}

// PlayerAchievement marks an achievement as unlocked by a player.
type PlayerAchievement struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	PlayerID      uint           `json:"player_id" gorm:"not null;uniqueIndex:idx_player_achievement"`
	AchievementID uint           `json:"achievement_id" gorm:"not null;uniqueIndex:idx_player_achievement"`
	UnlockedAt    time.Time      `json:"unlocked_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Player      Player      `json:"player,omitempty"`
	Achievement Achievement `json:"achievement,omitempty"`
}
