package services

import (
	"time"

	"gamelytics/models"
)

// One flat row per top-level entity: structured columns, extracted JSONB
// fields, and computed metrics merged together. Pointer fields mean "no value"
// and sort last; slice fields sort by length.

type GamePerformanceRow struct {
	GameID             uint         `json:"game_id"`
	Title              string       `json:"title"`
	Genre              models.Genre `json:"genre"`
	Price              float64      `json:"price"`
	ReleaseDate        *time.Time   `json:"release_date"`
	DeveloperName      *string      `json:"developer_name"`
	Rating             *float64     `json:"rating"`
	Tags               []string     `json:"tags"`
	TotalSessions      int          `json:"total_sessions"`
	UniquePlayers      int          `json:"unique_players"`
	TotalPlaytimeHours float64      `json:"total_playtime_hours"`
	AvgSessionHours    float64      `json:"avg_session_hours"`
	TotalRevenue       float64      `json:"total_revenue"`
	RevenuePerPlayer   float64      `json:"revenue_per_player"`
	AchievementCount   int          `json:"achievement_count"`
}

type PlayerEngagementRow struct {
	PlayerID             uint           `json:"player_id"`
	Username             string         `json:"username"`
	Country              models.Country `json:"country"`
	Level                int            `json:"level"`
	TotalScore           int            `json:"total_score"`
	GamesPlayed          int            `json:"games_played"`
	TotalSessions        int            `json:"total_sessions"`
	TotalPlaytimeHours   float64        `json:"total_playtime_hours"`
	TotalSpent           float64        `json:"total_spent"`
	AchievementsUnlocked int            `json:"achievements_unlocked"`
	CompletionRate       float64        `json:"completion_rate"`
	DaysSinceLastSession float64        `json:"days_since_last_session"`
	RetentionScore       float64        `json:"retention_score"`
}

type DeveloperSuccessRow struct {
	DeveloperID     uint     `json:"developer_id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	CompanySize     *string  `json:"company_size"`
	FoundedYear     *int     `json:"founded_year"`
	Specialties     []string `json:"specialties"`
	TotalGames      int      `json:"total_games"`
	TotalRevenue    float64  `json:"total_revenue"`
	RevenuePerGame  float64  `json:"revenue_per_game"`
	AvgRating       float64  `json:"avg_rating"`
	TotalPlayers    int      `json:"total_players"`
	BestSellingGame *string  `json:"best_selling_game"`
}

func (r GamePerformanceRow) sortID() uint { return r.GameID }

func (r GamePerformanceRow) sortValue(field string) any {
	switch field {
	case "game_id":
		return r.GameID
	case "title":
		return r.Title
	case "genre":
		return string(r.Genre)
	case "price":
		return r.Price
	case "release_date":
		if r.ReleaseDate == nil {
			return nil
		}
		return *r.ReleaseDate
	case "developer_name":
		if r.DeveloperName == nil {
			return nil
		}
		return *r.DeveloperName
	case "rating":
		if r.Rating == nil {
			return nil
		}
		return *r.Rating
	case "tags":
		return r.Tags
	case "total_sessions":
		return r.TotalSessions
	case "unique_players":
		return r.UniquePlayers
	case "total_playtime_hours":
		return r.TotalPlaytimeHours
	case "avg_session_hours":
		return r.AvgSessionHours
	case "total_revenue":
		return r.TotalRevenue
	case "revenue_per_player":
		return r.RevenuePerPlayer
	case "achievement_count":
		return r.AchievementCount
	}
	return nil
}

func (r PlayerEngagementRow) sortID() uint { return r.PlayerID }

func (r PlayerEngagementRow) sortValue(field string) any {
	switch field {
	case "player_id":
		return r.PlayerID
	case "username":
		return r.Username
	case "country":
		return string(r.Country)
	case "level":
		return r.Level
	case "total_score":
		return r.TotalScore
	case "games_played":
		return r.GamesPlayed
	case "total_sessions":
		return r.TotalSessions
	case "total_playtime_hours":
		return r.TotalPlaytimeHours
	case "total_spent":
		return r.TotalSpent
	case "achievements_unlocked":
		return r.AchievementsUnlocked
	case "completion_rate":
		return r.CompletionRate
	case "days_since_last_session":
		return r.DaysSinceLastSession
	case "retention_score":
		return r.RetentionScore
	}
	return nil
}

func (r DeveloperSuccessRow) sortID() uint { return r.DeveloperID }

func (r DeveloperSuccessRow) sortValue(field string) any {
	switch field {
	case "developer_id":
		return r.DeveloperID
	case "name":
		return r.Name
	case "email":
		return r.Email
	case "company_size":
		if r.CompanySize == nil {
			return nil
		}
		return *r.CompanySize
	case "founded_year":
		if r.FoundedYear == nil {
			return nil
		}
		return *r.FoundedYear
	case "specialties":
		return r.Specialties
	case "total_games":
		return r.TotalGames
	case "total_revenue":
		return r.TotalRevenue
	case "revenue_per_game":
		return r.RevenuePerGame
	case "avg_rating":
		return r.AvgRating
	case "total_players":
		return r.TotalPlayers
	case "best_selling_game":
		if r.BestSellingGame == nil {
			return nil
		}
		return *r.BestSellingGame
	}
	return nil
}
