package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Player struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Username   string         `json:"username" gorm:"uniqueIndex;not null"`
	Email      string         `json:"email" gorm:"uniqueIndex;not null"`
	Country    Country        `json:"country" gorm:"not null"`
	Level      int            `json:"level" gorm:"not null;default:1"`
	TotalScore int            `json:"total_score" gorm:"not null;default:0"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Profile      *PlayerProfile      `json:"profile,omitempty" gorm:"foreignKey:PlayerID"`
	Sessions     []Session           `json:"sessions,omitempty" gorm:"foreignKey:PlayerID"`
	Purchases    []Purchase          `json:"purchases,omitempty" gorm:"foreignKey:PlayerID"`
	Achievements []PlayerAchievement `json:"achievements,omitempty" gorm:"foreignKey:PlayerID"`
}

type PlayerProfile struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	PlayerID  uint           `json:"player_id" gorm:"uniqueIndex;not null"`
	Bio       string         `json:"bio"`
	AvatarURL string         `json:"avatar_url"`
	Settings  datatypes.JSON `json:"settings" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
