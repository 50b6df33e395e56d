package services

import (
	"encoding/json"
	"errors"
	"time"

	"gamelytics/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AchievementService struct {
	db *gorm.DB
	reportInvalidator
}

func NewAchievementService(db *gorm.DB, cache *ReportCache, hub *Hub) *AchievementService {
	return &AchievementService{db: db, reportInvalidator: reportInvalidator{cache: cache, hub: hub}}
}

type CreateAchievementRequest struct {
	GameID         uint            `json:"game_id" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	Points         int             `json:"points" binding:"min=0"`
	UnlockCriteria json.RawMessage `json:"unlock_criteria"`
}

type UpdateAchievementRequest struct {
	Name           *string         `json:"name"`
	Points         *int            `json:"points"`
	UnlockCriteria json.RawMessage `json:"unlock_criteria"`
}

// AchievementProgress is a player's derived progress for one game: the share
// of that game's achievements they have unlocked. Always computed from the
// unlock rows, never estimated.
type AchievementProgress struct {
	PlayerID uint    `json:"player_id"`
	GameID   uint    `json:"game_id"`
	Unlocked int     `json:"unlocked"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

func (s *AchievementService) Create(req *CreateAchievementRequest) (*models.Achievement, error) {
	if err := s.db.First(&models.Game{}, req.GameID).Error; err != nil {
		return nil, errors.New("game not found")
	}

	achievement := models.Achievement{
		GameID:         req.GameID,
		Name:           req.Name,
		Points:         req.Points,
		UnlockCriteria: datatypes.JSON(req.UnlockCriteria),
	}
	if err := s.db.Create(&achievement).Error; err != nil {
		return nil, err
	}

	s.invalidateReports(CacheKeyGamePerformance, CacheKeyPlayerEngagement)
	return &achievement, nil
}

func (s *AchievementService) ListByGame(gameID uint) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := s.db.Where("game_id = ?", gameID).Order("points DESC").Find(&achievements).Error
	return achievements, err
}

func (s *AchievementService) Update(achievementID uint, req *UpdateAchievementRequest) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := s.db.First(&achievement, achievementID).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		achievement.Name = *req.Name
	}
	if req.Points != nil {
		achievement.Points = *req.Points
	}
	if req.UnlockCriteria != nil {
		achievement.UnlockCriteria = datatypes.JSON(req.UnlockCriteria)
	}

	if err := s.db.Save(&achievement).Error; err != nil {
		return nil, err
	}

	s.invalidateReports(CacheKeyGamePerformance, CacheKeyPlayerEngagement)
	return &achievement, nil
}

func (s *AchievementService) Delete(achievementID uint) error {
	if err := s.db.First(&models.Achievement{}, achievementID).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&models.Achievement{}, achievementID).Error; err != nil {
		return err
	}

	s.invalidateReports(CacheKeyGamePerformance, CacheKeyPlayerEngagement)
	return nil
}

// Unlock marks an achievement as unlocked by a player.
func (s *AchievementService) Unlock(playerID, achievementID uint) (*models.PlayerAchievement, error) {
	if err := s.db.First(&models.Player{}, playerID).Error; err != nil {
		return nil, errors.New("player not found")
	}
	if err := s.db.First(&models.Achievement{}, achievementID).Error; err != nil {
		return nil, errors.New("achievement not found")
	}

	var existing models.PlayerAchievement
	err := s.db.Where("player_id = ? AND achievement_id = ?", playerID, achievementID).First(&existing).Error
	if err == nil {
		return nil, errors.New("achievement already unlocked")
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	unlock := models.PlayerAchievement{
		PlayerID:      playerID,
		AchievementID: achievementID,
		UnlockedAt:    time.Now(),
	}
	if err := s.db.Create(&unlock).Error; err != nil {
		return nil, err
	}

	s.invalidateReports(CacheKeyPlayerEngagement)
	return &unlock, nil
}

func (s *AchievementService) PlayerProgress(playerID, gameID uint) (*AchievementProgress, error) {
	var total int64
	err := s.db.Model(&models.Achievement{}).Where("game_id = ?", gameID).Count(&total).Error
	if err != nil {
		return nil, err
	}

	var unlocked int64
	err = s.db.Model(&models.PlayerAchievement{}).
		Joins("JOIN achievements ON achievements.id = player_achievements.achievement_id").
		Where("player_achievements.player_id = ? AND achievements.game_id = ?", playerID, gameID).
		Count(&unlocked).Error
	if err != nil {
		return nil, err
	}

	progress := &AchievementProgress{
		PlayerID: playerID,
		GameID:   gameID,
		Unlocked: int(unlocked),
		Total:    int(total),
		Percent:  completionRate(int(unlocked), int(total)),
	}
	return progress, nil
}
