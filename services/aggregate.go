package services

import (
	"time"

	"gamelytics/models"
)

// Sentinel used when a player has no completed session; large enough that the
// retention score clamps to 0.
const noSessionSentinelDays = 36500.0

// sessionHours returns the duration of one session in hours. A session missing
// either endpoint, or with end before start, contributes exactly 0.
func sessionHours(s models.Session) float64 {
	if s.StartedAt == nil || s.EndedAt == nil {
		return 0
	}
	d := s.EndedAt.Sub(*s.StartedAt)
	if d < 0 {
		return 0
	}
	return d.Hours()
}

func totalPlaytimeHours(sessions []models.Session) float64 {
	var total float64
	for _, s := range sessions {
		total += sessionHours(s)
	}
	return total
}

func uniquePlayerCount(sessions []models.Session) int {
	seen := make(map[uint]struct{}, len(sessions))
	for _, s := range sessions {
		seen[s.PlayerID] = struct{}{}
	}
	return len(seen)
}

func uniqueGameCount(sessions []models.Session) int {
	seen := make(map[uint]struct{}, len(sessions))
	for _, s := range sessions {
		seen[s.GameID] = struct{}{}
	}
	return len(seen)
}

// totalRevenue sums purchase amounts, treating an absent amount as 0.
func totalRevenue(purchases []models.Purchase) float64 {
	var total float64
	for _, p := range purchases {
		if p.Amount != nil {
			total += *p.Amount
		}
	}
	return total
}

// meanRating averages only the entries that actually carry a rating. Entries
// without one are excluded from numerator and denominator both, so absent
// ratings never drag the average toward zero. No contributors means 0.
func meanRating(ratings []*float64) float64 {
	var sum float64
	count := 0
	for _, r := range ratings {
		if r == nil {
			continue
		}
		sum += *r
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// perEntity divides a total by an entity count, returning 0 when the
// denominator is 0 rather than Inf/NaN.
func perEntity(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// daysSinceLastSession measures recency from the most recent session endpoint
// (end preferred, start for open sessions). Returns the sentinel when no
// session carries any timestamp.
func daysSinceLastSession(sessions []models.Session, now time.Time) float64 {
	var last time.Time
	for _, s := range sessions {
		if s.EndedAt != nil && s.EndedAt.After(last) {
			last = *s.EndedAt
		} else if s.EndedAt == nil && s.StartedAt != nil && s.StartedAt.After(last) {
			last = *s.StartedAt
		}
	}
	if last.IsZero() {
		return noSessionSentinelDays
	}
	days := now.Sub(last).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}

// retentionScore maps recency of last activity onto [0,100].
func retentionScore(days float64) float64 {
	score := 100 - days
	if score < 0 {
		return 0
	}
	return score
}

// completionRate is the unlocked share of available achievements as a
// percentage, bounded [0,100]. No available achievements means 0.
func completionRate(unlocked, available int) float64 {
	if available <= 0 {
		return 0
	}
	rate := float64(unlocked) / float64(available) * 100
	if rate > 100 {
		return 100
	}
	return rate
}

// sessionsWithin keeps the sessions that started inside the given window.
// A nil bound is open; a session without a start timestamp only survives a
// fully open window.
func sessionsWithin(sessions []models.Session, from, to *time.Time) []models.Session {
	if from == nil && to == nil {
		return sessions
	}
	out := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.StartedAt == nil {
			continue
		}
		if from != nil && s.StartedAt.Before(*from) {
			continue
		}
		if to != nil && s.StartedAt.After(*to) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func containsAll(haystack, needles []string) bool {
	set := make(map[string]struct{}, len(haystack))
	for _, h := range haystack {
		set[h] = struct{}{}
	}
	for _, n := range needles {
		if _, ok := set[n]; !ok {
			return false
		}
	}
	return true
}

func containsOne(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}
