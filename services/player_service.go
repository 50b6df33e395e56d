package services

import (
	"encoding/json"
	"fmt"

	"gamelytics/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PlayerService struct {
	db *gorm.DB
	reportInvalidator
}

func NewPlayerService(db *gorm.DB, cache *ReportCache, hub *Hub) *PlayerService {
	return &PlayerService{db: db, reportInvalidator: reportInvalidator{cache: cache, hub: hub}}
}

type CreatePlayerRequest struct {
	Username string         `json:"username" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Country  models.Country `json:"country" binding:"required"`
	Level    int            `json:"level" binding:"min=0"`
}

type UpdatePlayerRequest struct {
	Username   *string         `json:"username"`
	Email      *string         `json:"email"`
	Country    *models.Country `json:"country"`
	Level      *int            `json:"level"`
	TotalScore *int            `json:"total_score"`
}

type UpsertProfileRequest struct {
	Bio       string          `json:"bio"`
	AvatarURL string          `json:"avatar_url"`
	Settings  json.RawMessage `json:"settings"`
}

type ListPlayersFilter struct {
	Country  *models.Country `form:"country"`
	MinLevel *int            `form:"min_level"`
	MaxLevel *int            `form:"max_level"`
	Page     int             `form:"page"`
	Limit    int             `form:"limit"`
}

func (s *PlayerService) Create(req *CreatePlayerRequest) (*models.Player, error) {
	if !req.Country.Valid() {
		return nil, fmt.Errorf("unknown country %q", req.Country)
	}

	player := models.Player{
		Username: req.Username,
		Email:    req.Email,
		Country:  req.Country,
		Level:    req.Level,
	}
	if player.Level == 0 {
		player.Level = 1
	}
	if err := s.db.Create(&player).Error; err != nil {
		return nil, err
	}

	s.invalidateReports(CacheKeyPlayerEngagement)
	return &player, nil
}

func (s *PlayerService) List(filter ListPlayersFilter) ([]models.Player, error) {
	q := s.db.Preload("Profile").Order("username")
	if filter.Country != nil {
		q = q.Where("country = ?", *filter.Country)
	}
	if filter.MinLevel != nil {
		q = q.Where("level >= ?", *filter.MinLevel)
	}
	if filter.MaxLevel != nil {
		q = q.Where("level <= ?", *filter.MaxLevel)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
		if filter.Page > 1 {
			q = q.Offset((filter.Page - 1) * filter.Limit)
		}
	}

	var players []models.Player
	err := q.Find(&players).Error
	return players, err
}

func (s *PlayerService) GetByID(playerID uint) (*models.Player, error) {
	var player models.Player
	err := s.db.Preload("Profile").First(&player, playerID).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *PlayerService) Update(playerID uint, req *UpdatePlayerRequest) (*models.Player, error) {
	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		return nil, err
	}

	if req.Username != nil {
		player.Username = *req.Username
	}
	if req.Email != nil {
		player.Email = *req.Email
	}
	if req.Country != nil {
		if !req.Country.Valid() {
			return nil, fmt.Errorf("unknown country %q", *req.Country)
		}
		player.Country = *req.Country
	}
	if req.Level != nil {
		player.Level = *req.Level
	}
	if req.TotalScore != nil {
		player.TotalScore = *req.TotalScore
	}

	if err := s.db.Save(&player).Error; err != nil {
		return nil, err
	}

	s.invalidateReports(CacheKeyPlayerEngagement)
	return &player, nil
}

func (s *PlayerService) Delete(playerID uint) error {
	if err := s.db.First(&models.Player{}, playerID).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&models.Player{}, playerID).Error; err != nil {
		return err
	}

	s.invalidateReports(CacheKeyPlayerEngagement)
	return nil
}

// UpsertProfile creates or replaces a player's profile. Settings are stored
// as given; shape validation happens at read time and degrades, not rejects.
func (s *PlayerService) UpsertProfile(playerID uint, req *UpsertProfileRequest) (*models.PlayerProfile, error) {
	if err := s.db.First(&models.Player{}, playerID).Error; err != nil {
		return nil, err
	}

	var profile models.PlayerProfile
	err := s.db.Where("player_id = ?", playerID).First(&profile).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}

	profile.PlayerID = playerID
	profile.Bio = req.Bio
	profile.AvatarURL = req.AvatarURL
	if req.Settings != nil {
		profile.Settings = datatypes.JSON(req.Settings)
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
