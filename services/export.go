package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ExportRecord is one display-ready row: ordered key/value pairs shaped by
// the caller before serialization.
type ExportField struct {
	Key   string
	Value any
}

type ExportRecord []ExportField

// flattenValue renders any cell value as a string. Nil becomes empty,
// booleans become Yes/No, arrays join on commas, non-integer numbers render
// with two decimals, and anything nested is stringified as JSON rather than
// failing the export.
func flattenValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case float64:
		if x == math.Trunc(x) {
			return strconv.FormatFloat(x, 'f', -1, 64)
		}
		return strconv.FormatFloat(x, 'f', 2, 64)
	case time.Time:
		return x.Format("2006-01-02")
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case *int:
		if x == nil {
			return ""
		}
		return strconv.Itoa(*x)
	case *float64:
		if x == nil {
			return ""
		}
		return flattenValue(*x)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format("2006-01-02")
	case []string:
		return strings.Join(x, ", ")
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// ExportFilename builds <slug>-<YYYY-MM-DD>[-sorted-<field>-<dir>].<ext>.
func ExportFilename(slug, ext string, now time.Time, sortField string, direction SortDirection) string {
	name := fmt.Sprintf("%s-%s", slug, now.Format("2006-01-02"))
	if sortField != "" {
		name += fmt.Sprintf("-sorted-%s-%s", sortField, direction)
	}
	return name + "." + ext
}

// headerLabel turns a snake_case or camelCase key into a Title Case label.
func headerLabel(key string) string {
	var words []string
	for _, part := range strings.Split(key, "_") {
		words = append(words, splitCamel(part)...)
	}
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(rune(s[i-1])) {
			words = append(words, s[start:i])
			start = i
		}
	}
	if start < len(s) {
		words = append(words, s[start:])
	}
	return words
}

func GamePerformanceRecords(rows []GamePerformanceRow) []ExportRecord {
	records := make([]ExportRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, ExportRecord{
			{"game_id", r.GameID},
			{"title", r.Title},
			{"genre", string(r.Genre)},
			{"price", r.Price},
			{"release_date", r.ReleaseDate},
			{"developer_name", r.DeveloperName},
			{"rating", r.Rating},
			{"tags", r.Tags},
			{"total_sessions", r.TotalSessions},
			{"unique_players", r.UniquePlayers},
			{"total_playtime_hours", r.TotalPlaytimeHours},
			{"avg_session_hours", r.AvgSessionHours},
			{"total_revenue", r.TotalRevenue},
			{"revenue_per_player", r.RevenuePerPlayer},
			{"achievement_count", r.AchievementCount},
		})
	}
	return records
}

func PlayerEngagementRecords(rows []PlayerEngagementRow) []ExportRecord {
	records := make([]ExportRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, ExportRecord{
			{"player_id", r.PlayerID},
			{"username", r.Username},
			{"country", string(r.Country)},
			{"level", r.Level},
			{"total_score", r.TotalScore},
			{"games_played", r.GamesPlayed},
			{"total_sessions", r.TotalSessions},
			{"total_playtime_hours", r.TotalPlaytimeHours},
			{"total_spent", r.TotalSpent},
			{"achievements_unlocked", r.AchievementsUnlocked},
			{"completion_rate", r.CompletionRate},
			{"retention_score", r.RetentionScore},
		})
	}
	return records
}

func DeveloperSuccessRecords(rows []DeveloperSuccessRow) []ExportRecord {
	records := make([]ExportRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, ExportRecord{
			{"developer_id", r.DeveloperID},
			{"name", r.Name},
			{"email", r.Email},
			{"company_size", r.CompanySize},
			{"founded_year", r.FoundedYear},
			{"specialties", r.Specialties},
			{"total_games", r.TotalGames},
			{"total_revenue", r.TotalRevenue},
			{"revenue_per_game", r.RevenuePerGame},
			{"avg_rating", r.AvgRating},
			{"total_players", r.TotalPlayers},
			{"best_selling_game", r.BestSellingGame},
		})
	}
	return records
}
