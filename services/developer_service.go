package services

import (
	"encoding/json"

	"gamelytics/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DeveloperService struct {
	db *gorm.DB
	reportInvalidator
}

func NewDeveloperService(db *gorm.DB, cache *ReportCache, hub *Hub) *DeveloperService {
	return &DeveloperService{db: db, reportInvalidator: reportInvalidator{cache: cache, hub: hub}}
}

type CreateDeveloperRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	LogoURL  string          `json:"logo_url"`
	Metadata json.RawMessage `json:"metadata"`
}

type UpdateDeveloperRequest struct {
	Name     *string         `json:"name"`
	Email    *string         `json:"email"`
	LogoURL  *string         `json:"logo_url"`
	Metadata json.RawMessage `json:"metadata"`
}

func (s *DeveloperService) Create(req *CreateDeveloperRequest) (*models.Developer, error) {
	dev := models.Developer{
		Name:     req.Name,
		Email:    req.Email,
		LogoURL:  req.LogoURL,
		Metadata: datatypes.JSON(req.Metadata),
	}
	if err := s.db.Create(&dev).Error; err != nil {
		return nil, err
	}

	s.invalidateReports(CacheKeyDeveloperSuccess)
	return &dev, nil
}

func (s *DeveloperService) List() ([]models.Developer, error) {
	var developers []models.Developer
	err := s.db.Order("name").Find(&developers).Error
	return developers, err
}

func (s *DeveloperService) GetByID(developerID uint) (*models.Developer, error) {
	var dev models.Developer
	err := s.db.Preload("Games").First(&dev, developerID).Error
	if err != nil {
		return nil, err
	}
	return &dev, nil
}

func (s *DeveloperService) Update(developerID uint, req *UpdateDeveloperRequest) (*models.Developer, error) {
	var dev models.Developer
	if err := s.db.First(&dev, developerID).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		dev.Name = *req.Name
	}
	if req.Email != nil {
		dev.Email = *req.Email
	}
	if req.LogoURL != nil {
		dev.LogoURL = *req.LogoURL
	}
	if req.Metadata != nil {
		dev.Metadata = datatypes.JSON(req.Metadata)
	}

	if err := s.db.Save(&dev).Error; err != nil {
		return nil, err
	}

	s.invalidateReports(CacheKeyDeveloperSuccess, CacheKeyGamePerformance)
	return &dev, nil
}

func (s *DeveloperService) Delete(developerID uint) error {
	if err := s.db.First(&models.Developer{}, developerID).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&models.Developer{}, developerID).Error; err != nil {
		return err
	}

	s.invalidateReports(CacheKeyDeveloperSuccess, CacheKeyGamePerformance)
	return nil
}
