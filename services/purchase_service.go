package services

import (
	"errors"
	"fmt"

	"gamelytics/models"

	"gorm.io/gorm"
)

type PurchaseService struct {
	db *gorm.DB
	reportInvalidator
}

func NewPurchaseService(db *gorm.DB, cache *ReportCache, hub *Hub) *PurchaseService {
	return &PurchaseService{db: db, reportInvalidator: reportInvalidator{cache: cache, hub: hub}}
}

type CreatePurchaseRequest struct {
	PlayerID      uint                 `json:"player_id" binding:"required"`
	GameID        uint                 `json:"game_id" binding:"required"`
	Amount        *float64             `json:"amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
}

type ListPurchasesFilter struct {
	PlayerID *uint `form:"player_id"`
	GameID   *uint `form:"game_id"`
	Limit    int   `form:"limit"`
}

func (s *PurchaseService) Create(req *CreatePurchaseRequest) (*models.Purchase, error) {
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("unknown payment method %q", req.PaymentMethod)
	}
	if req.Amount != nil && *req.Amount < 0 {
		return nil, errors.New("amount must not be negative")
	}
	if err := s.db.First(&models.Player{}, req.PlayerID).Error; err != nil {
		return nil, errors.New("player not found")
	}
	if err := s.db.First(&models.Game{}, req.GameID).Error; err != nil {
		return nil, errors.New("game not found")
	}

	purchase := models.Purchase{
		PlayerID:      req.PlayerID,
		GameID:        req.GameID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}
	if err := s.db.Create(&purchase).Error; err != nil {
		return nil, err
	}

	s.invalidateReports(CacheKeyGamePerformance, CacheKeyPlayerEngagement, CacheKeyDeveloperSuccess)
	return &purchase, nil
}

func (s *PurchaseService) List(filter ListPurchasesFilter) ([]models.Purchase, error) {
	q := s.db.Order("created_at DESC")
	if filter.PlayerID != nil {
		q = q.Where("player_id = ?", *filter.PlayerID)
	}
	if filter.GameID != nil {
		q = q.Where("game_id = ?", *filter.GameID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var purchases []models.Purchase
	err := q.Find(&purchases).Error
	return purchases, err
}

func (s *PurchaseService) Delete(purchaseID uint) error {
	if err := s.db.First(&models.Purchase{}, purchaseID).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&models.Purchase{}, purchaseID).Error; err != nil {
		return err
	}

	s.invalidateReports(CacheKeyGamePerformance, CacheKeyPlayerEngagement, CacheKeyDeveloperSuccess)
	return nil
}
