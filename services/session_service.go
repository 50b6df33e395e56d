package services

import (
	"errors"
	"time"

	"gamelytics/models"

	"gorm.io/gorm"
)

type SessionService struct {
	db *gorm.DB
	reportInvalidator
}

func NewSessionService(db *gorm.DB, cache *ReportCache, hub *Hub) *SessionService {
	return &SessionService{db: db, reportInvalidator: reportInvalidator{cache: cache, hub: hub}}
}

type StartSessionRequest struct {
	PlayerID  uint       `json:"player_id" binding:"required"`
	GameID    uint       `json:"game_id" binding:"required"`
	StartedAt *time.Time `json:"started_at"`
}

type ListSessionsFilter struct {
	PlayerID *uint `form:"player_id"`
	GameID   *uint `form:"game_id"`
	Open     *bool `form:"open"`
	Limit    int   `form:"limit"`
}

// Sessions touch every report, so mutations invalidate all three prefixes.
func (s *SessionService) invalidateAll() {
	s.invalidateReports(CacheKeyGamePerformance, CacheKeyPlayerEngagement, CacheKeyDeveloperSuccess)
}

func (s *SessionService) Start(req *StartSessionRequest) (*models.Session, error) {
	if err := s.db.First(&models.Player{}, req.PlayerID).Error; err != nil {
		return nil, errors.New("player not found")
	}
	if err := s.db.First(&models.Game{}, req.GameID).Error; err != nil {
		return nil, errors.New("game not found")
	}

	startedAt := req.StartedAt
	if startedAt == nil {
		now := time.Now()
		startedAt = &now
	}

	session := models.Session{
		PlayerID:  req.PlayerID,
		GameID:    req.GameID,
		StartedAt: startedAt,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	s.invalidateAll()
	return &session, nil
}

// End closes an open session. Ending an already-closed session is an error;
// the stored duration would silently change otherwise.
func (s *SessionService) End(sessionID uint) (*models.Session, error) {
	var session models.Session
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, err
	}
	if session.EndedAt != nil {
		return nil, errors.New("session already ended")
	}

	now := time.Now()
	session.EndedAt = &now
	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}

	s.invalidateAll()
	return &session, nil
}

func (s *SessionService) List(filter ListSessionsFilter) ([]models.Session, error) {
	q := s.db.Order("created_at DESC")
	if filter.PlayerID != nil {
		q = q.Where("player_id = ?", *filter.PlayerID)
	}
	if filter.GameID != nil {
		q = q.Where("game_id = ?", *filter.GameID)
	}
	if filter.Open != nil {
		if *filter.Open {
			q = q.Where("ended_at IS NULL")
		} else {
			q = q.Where("ended_at IS NOT NULL")
		}
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var sessions []models.Session
	err := q.Find(&sessions).Error
	return sessions, err
}

func (s *SessionService) Delete(sessionID uint) error {
	if err := s.db.First(&models.Session{}, sessionID).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&models.Session{}, sessionID).Error; err != nil {
		return err
	}

	s.invalidateAll()
	return nil
}
