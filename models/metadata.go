package models

import (
	"encoding/json"
	"log/slog"

	"gorm.io/datatypes"
)

// The JSONB columns are schemaless at the database; these are the shapes the
// application expects. Parsing happens once at the read boundary: a document
// that fails to decode or violates a basic shape check degrades to nil with a
// logged warning, and the rest of the row still renders.

type SystemRequirements struct {
	MinRAMGB     int    `json:"min_ram_gb"`
	MinStorageGB int    `json:"min_storage_gb"`
	GPU          string `json:"gpu"`
	OS           string `json:"os"`
}

type GameMetadata struct {
	Rating             *float64            `json:"rating"`
	RatingCount        int                 `json:"rating_count"`
	Tags               []string            `json:"tags"`
	SystemRequirements *SystemRequirements `json:"system_requirements"`
	Screenshots        []string            `json:"screenshots"`
}

type DeveloperMetadata struct {
	CompanySize  string            `json:"company_size"`
	FoundedYear  int               `json:"founded_year"`
	Headquarters string            `json:"headquarters"`
	Specialties  []string          `json:"specialties"`
	Awards       []string          `json:"awards"`
	SocialLinks  map[string]string `json:"social_links"`
}

type NotificationSettings struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
}

type ProfileSettings struct {
	Privacy       string                `json:"privacy"`
	Theme         string                `json:"theme"`
	Notifications *NotificationSettings `json:"notifications"`
}

func ParseGameMetadata(raw datatypes.JSON) *GameMetadata {
	if len(raw) == 0 {
		return nil
	}
	var m GameMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		slog.Warn("invalid game metadata, dropping", "error", err)
		return nil
	}
	if m.Rating != nil && (*m.Rating < 0 || *m.Rating > 10) {
		slog.Warn("game metadata rating out of range, dropping", "rating", *m.Rating)
		return nil
	}
	return &m
}

func ParseDeveloperMetadata(raw datatypes.JSON) *DeveloperMetadata {
	if len(raw) == 0 {
		return nil
	}
	var m DeveloperMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		slog.Warn("invalid developer metadata, dropping", "error", err)
		return nil
	}
	if m.FoundedYear < 0 {
		slog.Warn("developer metadata founded_year negative, dropping", "founded_year", m.FoundedYear)
		return nil
	}
	return &m
}

func ParseProfileSettings(raw datatypes.JSON) *ProfileSettings {
	if len(raw) == 0 {
		return nil
	}
	var s ProfileSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		slog.Warn("invalid profile settings, dropping", "error", err)
		return nil
	}
	return &s
}
