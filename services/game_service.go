package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gamelytics/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GameService struct {
	db *gorm.DB
	reportInvalidator
}

func NewGameService(db *gorm.DB, cache *ReportCache, hub *Hub) *GameService {
	return &GameService{db: db, reportInvalidator: reportInvalidator{cache: cache, hub: hub}}
}

type CreateGameRequest struct {
	Title         string          `json:"title" binding:"required"`
	Genre         models.Genre    `json:"genre" binding:"required"`
	Price         float64         `json:"price" binding:"min=0"`
	ReleaseDate   *time.Time      `json:"release_date"`
	CoverImageURL string          `json:"cover_image_url"`
	Metadata      json.RawMessage `json:"metadata"`
	DeveloperID   *uint           `json:"developer_id"`
}

type UpdateGameRequest struct {
	Title         *string         `json:"title"`
	Genre         *models.Genre   `json:"genre"`
	Price         *float64        `json:"price"`
	ReleaseDate   *time.Time      `json:"release_date"`
	CoverImageURL *string         `json:"cover_image_url"`
	Metadata      json.RawMessage `json:"metadata"`
	DeveloperID   *uint           `json:"developer_id"`
}

type ListGamesFilter struct {
	Genre       *models.Genre `form:"genre"`
	DeveloperID *uint         `form:"developer_id"`
	Page        int           `form:"page"`
	Limit       int           `form:"limit"`
}

func (s *GameService) Create(req *CreateGameRequest) (*models.Game, error) {
	if !req.Genre.Valid() {
		return nil, fmt.Errorf("unknown genre %q", req.Genre)
	}
	if req.DeveloperID != nil {
		var dev models.Developer
		if err := s.db.First(&dev, *req.DeveloperID).Error; err != nil {
			return nil, errors.New("developer not found")
		}
	}

	game := models.Game{
		Title:         req.Title,
		Genre:         req.Genre,
		Price:         req.Price,
		ReleaseDate:   req.ReleaseDate,
		CoverImageURL: req.CoverImageURL,
		Metadata:      datatypes.JSON(req.Metadata),
		DeveloperID:   req.DeveloperID,
	}
	if err := s.db.Create(&game).Error; err != nil {
		return nil, err
	}

	s.invalidateReports(CacheKeyGamePerformance, CacheKeyDeveloperSuccess)
	return &game, nil
}

func (s *GameService) List(filter ListGamesFilter) ([]models.Game, error) {
	q := s.db.Preload("Developer").Order("created_at DESC")
	if filter.Genre != nil {
		q = q.Where("genre = ?", *filter.Genre)
	}
	if filter.DeveloperID != nil {
		q = q.Where("developer_id = ?", *filter.DeveloperID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
		if filter.Page > 1 {
			q = q.Offset((filter.Page - 1) * filter.Limit)
		}
	}

	var games []models.Game
	err := q.Find(&games).Error
	return games, err
}

func (s *GameService) GetByID(gameID uint) (*models.Game, error) {
	var game models.Game
	err := s.db.Preload("Developer").Preload("Achievements").First(&game, gameID).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *GameService) Update(gameID uint, req *UpdateGameRequest) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return nil, err
	}

	if req.Title != nil {
		game.Title = *req.Title
	}
	if req.Genre != nil {
		if !req.Genre.Valid() {
			return nil, fmt.Errorf("unknown genre %q", *req.Genre)
		}
		game.Genre = *req.Genre
	}
	if req.Price != nil {
		game.Price = *req.Price
	}
	if req.ReleaseDate != nil {
		game.ReleaseDate = req.ReleaseDate
	}
	if req.CoverImageURL != nil {
		game.CoverImageURL = *req.CoverImageURL
	}
	if req.Metadata != nil {
		game.Metadata = datatypes.JSON(req.Metadata)
	}
	if req.DeveloperID != nil {
		game.DeveloperID = req.DeveloperID
	}

	if err := s.db.Save(&game).Error; err != nil {
		return nil, err
	}

	s.invalidateReports(CacheKeyGamePerformance, CacheKeyDeveloperSuccess)
	return &game, nil
}

func (s *GameService) Delete(gameID uint) error {
	if err := s.db.First(&models.Game{}, gameID).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&models.Game{}, gameID).Error; err != nil {
		return err
	}

	s.invalidateReports(CacheKeyGamePerformance, CacheKeyDeveloperSuccess)
	return nil
}
