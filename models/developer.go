package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Developer struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	LogoURL   string         `json:"logo_url"`
	Metadata  datatypes.JSON `json:"metadata" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Games []Game `json:"games,omitempty" gorm:"foreignKey:DeveloperID"`
}
