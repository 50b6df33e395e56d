package models

import (
	"time"

	"gorm.io/gorm"
)

type Purchase struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	PlayerID      uint           `json:"player_id" gorm:"not null;index"`
	GameID        uint           `json:"game_id" gorm:"not null;index"`
	Amount        *float64       `json:"amount"`
	PaymentMethod PaymentMethod  `json:"payment_method" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Player Player `json:"player,omitempty"`
	Game   Game   `json:"game,omitempty"`
}
