package services

import (
	"math"
	"testing"
	"time"

	"gamelytics/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(f float64) *float64 { return &f }

func TestSessionHours(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	closed := models.Session{StartedAt: timePtr(start), EndedAt: timePtr(start.Add(90 * time.Minute))}
	if got := sessionHours(closed); got != 1.5 {
		t.Errorf("closed session should contribute 1.5 hours, got %v", got)
	}

	open := models.Session{StartedAt: timePtr(start)}
	if got := sessionHours(open); got != 0 {
		t.Errorf("open session should contribute 0 hours, got %v", got)
	}

	empty := models.Session{}
	if got := sessionHours(empty); got != 0 {
		t.Errorf("session without timestamps should contribute 0 hours, got %v", got)
	}

	inverted := models.Session{StartedAt: timePtr(start), EndedAt: timePtr(start.Add(-time.Hour))}
	if got := sessionHours(inverted); got != 0 {
		t.Errorf("session ending before it starts should contribute 0 hours, got %v", got)
	}
}

func TestTotalPlaytimeCountsAllSessionsButOnlyClosedHours(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		{PlayerID: 1, StartedAt: timePtr(start), EndedAt: timePtr(start.Add(time.Hour))},
		{PlayerID: 2, StartedAt: timePtr(start)},
		{PlayerID: 1},
	}

	if got := totalPlaytimeHours(sessions); got != 1.0 {
		t.Errorf("total playtime should be 1.0, got %v", got)
	}
	// All three sessions count toward the denominator even though two
	// contribute no hours.
	if got := perEntity(totalPlaytimeHours(sessions), len(sessions)); math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("average session hours should be 1/3, got %v", got)
	}
	if got := uniquePlayerCount(sessions); got != 2 {
		t.Errorf("should count 2 unique players, got %d", got)
	}
}

func TestTotalRevenueSkipsMissingAmounts(t *testing.T) {
	purchases := []models.Purchase{
		{Amount: floatPtr(9.99)},
		{Amount: nil},
		{Amount: floatPtr(20.01)},
	}
	if got := totalRevenue(purchases); math.Abs(got-30.0) > 1e-9 {
		t.Errorf("revenue should be 30.0, got %v", got)
	}
}

func TestMeanRatingExcludesAbsentRatings(t *testing.T) {
	ratings := []*float64{floatPtr(8.0), nil, floatPtr(6.0), nil}
	if got := meanRating(ratings); got != 7.0 {
		t.Errorf("mean rating should average only present ratings, got %v", got)
	}

	if got := meanRating([]*float64{nil, nil}); got != 0 {
		t.Errorf("mean rating with no contributors should be 0, got %v", got)
	}
	if got := meanRating(nil); got != 0 {
		t.Errorf("mean rating of nothing should be 0, got %v", got)
	}
}

func TestPerEntityGuardsZeroDenominator(t *testing.T) {
	if got := perEntity(100, 0); got != 0 {
		t.Errorf("division by zero entities should yield 0, got %v", got)
	}
	if got := perEntity(100, 4); got != 25 {
		t.Errorf("expected 25, got %v", got)
	}
}

func TestDaysSinceLastSession(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	if got := daysSinceLastSession(nil, now); got != noSessionSentinelDays {
		t.Errorf("no sessions should return the sentinel, got %v", got)
	}

	sessions := []models.Session{
		{StartedAt: timePtr(now.AddDate(0, 0, -20)), EndedAt: timePtr(now.AddDate(0, 0, -19))},
		{StartedAt: timePtr(now.AddDate(0, 0, -5))}, // open, start counts
	}
	if got := daysSinceLastSession(sessions, now); got != 5 {
		t.Errorf("open session start should set recency to 5 days, got %v", got)
	}

	future := []models.Session{
		{StartedAt: timePtr(now), EndedAt: timePtr(now.Add(time.Hour))},
	}
	if got := daysSinceLastSession(future, now); got != 0 {
		t.Errorf("future activity should clamp to 0 days, got %v", got)
	}
}

func TestRetentionScore(t *testing.T) {
	if got := retentionScore(0); got != 100 {
		t.Errorf("activity today should score 100, got %v", got)
	}
	if got := retentionScore(30); got != 70 {
		t.Errorf("30 days should score 70, got %v", got)
	}
	if got := retentionScore(150); got != 0 {
		t.Errorf("stale players should floor at 0, got %v", got)
	}
	if got := retentionScore(noSessionSentinelDays); got != 0 {
		t.Errorf("sentinel recency should score 0, got %v", got)
	}
}

func TestCompletionRateBounds(t *testing.T) {
	if got := completionRate(3, 4); got != 75 {
		t.Errorf("expected 75, got %v", got)
	}
	if got := completionRate(5, 0); got != 0 {
		t.Errorf("no available achievements should yield 0, got %v", got)
	}
	if got := completionRate(7, 4); got != 100 {
		t.Errorf("rate should cap at 100, got %v", got)
	}
}

func TestSessionsWithin(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		{GameID: 1, StartedAt: timePtr(base)},
		{GameID: 2, StartedAt: timePtr(base.AddDate(0, 0, 10))},
		{GameID: 3}, // no start timestamp
	}

	all := sessionsWithin(sessions, nil, nil)
	if len(all) != 3 {
		t.Errorf("fully open window should keep all sessions, got %d", len(all))
	}

	from := base.AddDate(0, 0, 5)
	windowed := sessionsWithin(sessions, &from, nil)
	if len(windowed) != 1 || windowed[0].GameID != 2 {
		t.Errorf("bounded window should keep only the in-range session, got %v", windowed)
	}
}

func TestContainsAll(t *testing.T) {
	tags := []string{"rpg", "open-world", "co-op"}
	if !containsAll(tags, []string{"rpg", "co-op"}) {
		t.Error("should find all requested tags")
	}
	if containsAll(tags, []string{"rpg", "horror"}) {
		t.Error("should reject when any requested tag is missing")
	}
	if !containsAll(tags, nil) {
		t.Error("empty request should always match")
	}
}
