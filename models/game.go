package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Game struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Title         string         `json:"title" gorm:"not null"`
	Genre         Genre          `json:"genre" gorm:"not null"`
	Price         float64        `json:"price" gorm:"not null;default:0"`
	ReleaseDate   *time.Time     `json:"release_date"`
	CoverImageURL string         `json:"cover_image_url"`
	Metadata      datatypes.JSON `json:"metadata" gorm:"type:jsonb"`
	DeveloperID   *uint          `json:"developer_id" gorm:"index"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Developer    *Developer    `json:"developer,omitempty"`
	Sessions     []Session     `json:"sessions,omitempty" gorm:"foreignKey:GameID"`
	Purchases    []Purchase    `json:"purchases,omitempty" gorm:"foreignKey:GameID"`
	Achievements []Achievement `json:"achievements,omitempty" gorm:"foreignKey:GameID"`
}
