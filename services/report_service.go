package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gamelytics/models"

	"gorm.io/gorm"
)

// Cache key prefixes, one per report type. CRUD services invalidate by prefix.
const (
	CacheKeyGamePerformance  = "report:game-performance"
	CacheKeyPlayerEngagement = "report:player-engagement"
	CacheKeyDeveloperSuccess = "report:developer-success"
)

const defaultReportMaxAge = time.Minute

// ReportService assembles the three cross-entity reports. Each builder issues
// one joined fetch, folds child collections into scalar metrics per parent
// row, then applies the filter predicates that could not be pushed into SQL
// (those over computed metrics or JSONB fields).
type ReportService struct {
	db     *gorm.DB
	cache  *ReportCache
	logger *slog.Logger
	maxAge time.Duration
}

func NewReportService(db *gorm.DB, cache *ReportCache, logger *slog.Logger) *ReportService {
	return &ReportService{db: db, cache: cache, logger: logger, maxAge: defaultReportMaxAge}
}

type GameReportFilter struct {
	Genre        *models.Genre `json:"genre" form:"genre"`
	DeveloperID  *uint         `json:"developer_id" form:"developer_id"`
	ReleasedFrom *time.Time    `json:"released_from" form:"released_from" time_format:"2006-01-02"`
	ReleasedTo   *time.Time    `json:"released_to" form:"released_to" time_format:"2006-01-02"`
	MinRating    *float64      `json:"min_rating" form:"min_rating"`
	MinRevenue   *float64      `json:"min_revenue" form:"min_revenue"`
	Tags         []string      `json:"tags" form:"tags"`
}

type PlayerReportFilter struct {
	Country         *models.Country `json:"country" form:"country"`
	MinLevel        *int            `json:"min_level" form:"min_level"`
	MaxLevel        *int            `json:"max_level" form:"max_level"`
	MinAchievements *int            `json:"min_achievements" form:"min_achievements"`
	ActiveFrom      *time.Time      `json:"active_from" form:"active_from" time_format:"2006-01-02"`
	ActiveTo        *time.Time      `json:"active_to" form:"active_to" time_format:"2006-01-02"`
}

type DeveloperReportFilter struct {
	CompanySize    *string  `json:"company_size" form:"company_size"`
	MinFoundedYear *int     `json:"min_founded_year" form:"min_founded_year"`
	Specialty      *string  `json:"specialty" form:"specialty"`
	MinRevenue     *float64 `json:"min_revenue" form:"min_revenue"`
}

// cacheKey canonicalizes a filter into the cache key for its report type.
func cacheKey(prefix string, filter any) string {
	b, err := json.Marshal(filter)
	if err != nil {
		return prefix
	}
	return prefix + ":" + string(b)
}

func cachedRows[T any](ctx context.Context, cache *ReportCache, key string, maxAge time.Duration, fetch func(context.Context) ([]T, error)) ([]T, error) {
	v, err := cache.Get(ctx, key, maxAge, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	rows, _ := v.([]T)
	return rows, nil
}

func (s *ReportService) GamePerformance(ctx context.Context, filter GameReportFilter) ([]GamePerformanceRow, error) {
	key := cacheKey(CacheKeyGamePerformance, filter)
	return cachedRows(ctx, s.cache, key, s.maxAge, func(ctx context.Context) ([]GamePerformanceRow, error) {
		return s.buildGamePerformance(ctx, filter)
	})
}

func (s *ReportService) buildGamePerformance(ctx context.Context, filter GameReportFilter) ([]GamePerformanceRow, error) {
	q := s.db.WithContext(ctx).
		Preload("Developer").
		Preload("Sessions").
		Preload("Purchases").
		Preload("Achievements")
	if filter.Genre != nil {
		q = q.Where("genre = ?", *filter.Genre)
	}
	if filter.DeveloperID != nil {
		q = q.Where("developer_id = ?", *filter.DeveloperID)
	}
	if filter.ReleasedFrom != nil {
		q = q.Where("release_date >= ?", *filter.ReleasedFrom)
	}
	if filter.ReleasedTo != nil {
		q = q.Where("release_date <= ?", *filter.ReleasedTo)
	}

	var games []models.Game
	if err := q.Find(&games).Error; err != nil {
		return nil, fmt.Errorf("fetching game performance rows: %w", err)
	}

	rows := make([]GamePerformanceRow, 0, len(games))
	for _, g := range games {
		row := foldGamePerformance(g)
		if !matchGamePostFilter(row, filter) {
			continue
		}
		rows = append(rows, row)
	}
	s.logger.Debug("assembled game performance report", "rows", len(rows))
	return rows, nil
}

// foldGamePerformance collapses one game plus its child collections into a
// single flat row. The game appears exactly once no matter how many children
// it carries.
func foldGamePerformance(g models.Game) GamePerformanceRow {
	row := GamePerformanceRow{
		GameID:      g.ID,
		Title:       g.Title,
		Genre:       g.Genre,
		Price:       g.Price,
		ReleaseDate: g.ReleaseDate,
	}
	if g.Developer != nil {
		name := g.Developer.Name
		row.DeveloperName = &name
	}
	if meta := models.ParseGameMetadata(g.Metadata); meta != nil {
		row.Rating = meta.Rating
		row.Tags = meta.Tags
	}
	row.TotalSessions = len(g.Sessions)
	row.UniquePlayers = uniquePlayerCount(g.Sessions)
	row.TotalPlaytimeHours = totalPlaytimeHours(g.Sessions)
	row.AvgSessionHours = perEntity(row.TotalPlaytimeHours, row.TotalSessions)
	row.TotalRevenue = totalRevenue(g.Purchases)
	row.RevenuePerPlayer = perEntity(row.TotalRevenue, row.UniquePlayers)
	row.AchievementCount = len(g.Achievements)
	return row
}

func matchGamePostFilter(row GamePerformanceRow, filter GameReportFilter) bool {
	if filter.MinRating != nil {
		if row.Rating == nil || *row.Rating < *filter.MinRating {
			return false
		}
	}
	if filter.MinRevenue != nil && row.TotalRevenue < *filter.MinRevenue {
		return false
	}
	if len(filter.Tags) > 0 && !containsAll(row.Tags, filter.Tags) {
		return false
	}
	return true
}

func (s *ReportService) PlayerEngagement(ctx context.Context, filter PlayerReportFilter) ([]PlayerEngagementRow, error) {
	key := cacheKey(CacheKeyPlayerEngagement, filter)
	return cachedRows(ctx, s.cache, key, s.maxAge, func(ctx context.Context) ([]PlayerEngagementRow, error) {
		return s.buildPlayerEngagement(ctx, filter)
	})
}

func (s *ReportService) buildPlayerEngagement(ctx context.Context, filter PlayerReportFilter) ([]PlayerEngagementRow, error) {
	q := s.db.WithContext(ctx).
		Preload("Sessions").
		Preload("Purchases").
		Preload("Achievements")
	if filter.Country != nil {
		q = q.Where("country = ?", *filter.Country)
	}
	if filter.MinLevel != nil {
		q = q.Where("level >= ?", *filter.MinLevel)
	}
	if filter.MaxLevel != nil {
		q = q.Where("level <= ?", *filter.MaxLevel)
	}

	var players []models.Player
	if err := q.Find(&players).Error; err != nil {
		return nil, fmt.Errorf("fetching player engagement rows: %w", err)
	}

	available, err := s.achievementCountsByGame(ctx, players)
	if err != nil {
		return nil, fmt.Errorf("fetching achievement availability: %w", err)
	}

	now := time.Now()
	rows := make([]PlayerEngagementRow, 0, len(players))
	for _, p := range players {
		row := foldPlayerEngagement(p, available, now, filter.ActiveFrom, filter.ActiveTo)
		if filter.MinAchievements != nil && row.AchievementsUnlocked < *filter.MinAchievements {
			continue
		}
		rows = append(rows, row)
	}
	s.logger.Debug("assembled player engagement report", "rows", len(rows))
	return rows, nil
}

// achievementCountsByGame returns how many achievements each played game
// offers, for the completion-rate denominator.
func (s *ReportService) achievementCountsByGame(ctx context.Context, players []models.Player) (map[uint]int, error) {
	gameIDs := make(map[uint]struct{})
	for _, p := range players {
		for _, sess := range p.Sessions {
			gameIDs[sess.GameID] = struct{}{}
		}
	}
	counts := make(map[uint]int, len(gameIDs))
	if len(gameIDs) == 0 {
		return counts, nil
	}
	ids := make([]uint, 0, len(gameIDs))
	for id := range gameIDs {
		ids = append(ids, id)
	}

	type gameCount struct {
		GameID uint
		Count  int
	}
	var results []gameCount
	err := s.db.WithContext(ctx).
		Model(&models.Achievement{}).
		Select("game_id, count(*) as count").
		Where("game_id IN ?", ids).
		Group("game_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		counts[r.GameID] = r.Count
	}
	return counts, nil
}

func foldPlayerEngagement(p models.Player, availableByGame map[uint]int, now time.Time, from, to *time.Time) PlayerEngagementRow {
	sessions := sessionsWithin(p.Sessions, from, to)

	row := PlayerEngagementRow{
		PlayerID:   p.ID,
		Username:   p.Username,
		Country:    p.Country,
		Level:      p.Level,
		TotalScore: p.TotalScore,
	}
	row.GamesPlayed = uniqueGameCount(sessions)
	row.TotalSessions = len(sessions)
	row.TotalPlaytimeHours = totalPlaytimeHours(sessions)
	row.TotalSpent = totalRevenue(p.Purchases)
	row.AchievementsUnlocked = len(p.Achievements)

	availableTotal := 0
	seen := make(map[uint]struct{})
	for _, sess := range sessions {
		if _, ok := seen[sess.GameID]; ok {
			continue
		}
		seen[sess.GameID] = struct{}{}
		availableTotal += availableByGame[sess.GameID]
	}
	row.CompletionRate = completionRate(row.AchievementsUnlocked, availableTotal)

	row.DaysSinceLastSession = daysSinceLastSession(sessions, now)
	row.RetentionScore = retentionScore(row.DaysSinceLastSession)
	return row
}

func (s *ReportService) DeveloperSuccess(ctx context.Context, filter DeveloperReportFilter) ([]DeveloperSuccessRow, error) {
	key := cacheKey(CacheKeyDeveloperSuccess, filter)
	return cachedRows(ctx, s.cache, key, s.maxAge, func(ctx context.Context) ([]DeveloperSuccessRow, error) {
		return s.buildDeveloperSuccess(ctx, filter)
	})
}

func (s *ReportService) buildDeveloperSuccess(ctx context.Context, filter DeveloperReportFilter) ([]DeveloperSuccessRow, error) {
	var developers []models.Developer
	err := s.db.WithContext(ctx).
		Preload("Games").
		Preload("Games.Sessions").
		Preload("Games.Purchases").
		Find(&developers).Error
	if err != nil {
		return nil, fmt.Errorf("fetching developer success rows: %w", err)
	}

	rows := make([]DeveloperSuccessRow, 0, len(developers))
	for _, d := range developers {
		row := foldDeveloperSuccess(d)
		if !matchDeveloperPostFilter(row, filter) {
			continue
		}
		rows = append(rows, row)
	}
	s.logger.Debug("assembled developer success report", "rows", len(rows))
	return rows, nil
}

func foldDeveloperSuccess(d models.Developer) DeveloperSuccessRow {
	row := DeveloperSuccessRow{
		DeveloperID: d.ID,
		Name:        d.Name,
		Email:       d.Email,
	}
	if meta := models.ParseDeveloperMetadata(d.Metadata); meta != nil {
		if meta.CompanySize != "" {
			size := meta.CompanySize
			row.CompanySize = &size
		}
		if meta.FoundedYear > 0 {
			year := meta.FoundedYear
			row.FoundedYear = &year
		}
		row.Specialties = meta.Specialties
	}

	row.TotalGames = len(d.Games)
	ratings := make([]*float64, 0, len(d.Games))
	players := make(map[uint]struct{})
	bestRevenue := -1.0
	for _, g := range d.Games {
		revenue := totalRevenue(g.Purchases)
		row.TotalRevenue += revenue
		if revenue > bestRevenue {
			bestRevenue = revenue
			title := g.Title
			row.BestSellingGame = &title
		}
		if meta := models.ParseGameMetadata(g.Metadata); meta != nil {
			ratings = append(ratings, meta.Rating)
		} else {
			ratings = append(ratings, nil)
		}
		for _, sess := range g.Sessions {
			players[sess.PlayerID] = struct{}{}
		}
	}
	row.RevenuePerGame = perEntity(row.TotalRevenue, row.TotalGames)
	row.AvgRating = meanRating(ratings)
	row.TotalPlayers = len(players)
	return row
}

func matchDeveloperPostFilter(row DeveloperSuccessRow, filter DeveloperReportFilter) bool {
	if filter.CompanySize != nil {
		if row.CompanySize == nil || *row.CompanySize != *filter.CompanySize {
			return false
		}
	}
	if filter.MinFoundedYear != nil {
		if row.FoundedYear == nil || *row.FoundedYear < *filter.MinFoundedYear {
			return false
		}
	}
	if filter.Specialty != nil && !containsOne(row.Specialties, *filter.Specialty) {
		return false
	}
	if filter.MinRevenue != nil && row.TotalRevenue < *filter.MinRevenue {
		return false
	}
	return true
}
