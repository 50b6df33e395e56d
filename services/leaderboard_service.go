package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"gamelytics/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPlayerNotRanked = errors.New("player not ranked on this leaderboard")

// LeaderboardService serves per-game rankings from Redis sorted sets, with
// Postgres leaderboard rows as the durable record. Redis can be rebuilt from
// the rows at any time.
type LeaderboardService struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *slog.Logger
}

func NewLeaderboardService(db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) *LeaderboardService {
	return &LeaderboardService{db: db, redis: redisClient, logger: logger}
}

type LeaderboardRank struct {
	Rank     int64  `json:"rank"`
	PlayerID uint   `json:"player_id"`
	Username string `json:"username,omitempty"`
	Score    int64  `json:"score"`
}

func (s *LeaderboardService) leaderboardKey(gameID uint) string {
	return fmt.Sprintf("leaderboard:%d", gameID)
}

// SubmitScore records a player's score for a game: upserts the durable entry
// and updates the Redis ranking.
func (s *LeaderboardService) SubmitScore(ctx context.Context, gameID, playerID uint, score int64) error {
	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, gameID).Error; err != nil {
		return fmt.Errorf("looking up game %d: %w", gameID, err)
	}

	board := models.Leaderboard{GameID: gameID, Name: game.Title + " Leaderboard"}
	if err := s.db.WithContext(ctx).Where("game_id = ?", gameID).FirstOrCreate(&board).Error; err != nil {
		return fmt.Errorf("ensuring leaderboard for game %d: %w", gameID, err)
	}

	entry := models.LeaderboardEntity{
		LeaderboardID: board.ID,
		PlayerID:      playerID,
		Score:         score,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "leaderboard_id"}, {Name: "player_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("persisting leaderboard entry: %w", err)
	}

	err = s.redis.ZAdd(ctx, s.leaderboardKey(gameID), redis.Z{
		Score:  float64(score),
		Member: strconv.FormatUint(uint64(playerID), 10),
	}).Err()
	if err != nil {
		// Durable state is written; ranking catches up on the next rebuild.
		s.logger.Warn("failed to update redis ranking", "game_id", gameID, "error", err)
	}
	return nil
}

// GetTop returns the top N entries with ranks and usernames.
func (s *LeaderboardService) GetTop(ctx context.Context, gameID uint, n int) ([]LeaderboardRank, error) {
	if n <= 0 {
		n = 10
	}
	results, err := s.redis.ZRevRangeWithScores(ctx, s.leaderboardKey(gameID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("getting top %d for game %d: %w", n, gameID, err)
	}

	entries := make([]LeaderboardRank, 0, len(results))
	ids := make([]uint, 0, len(results))
	for i, r := range results {
		id, err := strconv.ParseUint(r.Member, 10, 32)
		if err != nil {
			continue
		}
		entries = append(entries, LeaderboardRank{
			Rank:     int64(i + 1),
			PlayerID: uint(id),
			Score:    int64(r.Score),
		})
		ids = append(ids, uint(id))
	}

	if len(ids) > 0 {
		var players []models.Player
		if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&players).Error; err != nil {
			s.logger.Warn("failed to resolve usernames for leaderboard", "error", err)
		} else {
			names := make(map[uint]string, len(players))
			for _, p := range players {
				names[p.ID] = p.Username
			}
			for i := range entries {
				entries[i].Username = names[entries[i].PlayerID]
			}
		}
	}
	return entries, nil
}

// GetPlayerRank returns one player's rank and score on a game's leaderboard.
func (s *LeaderboardService) GetPlayerRank(ctx context.Context, gameID, playerID uint) (*LeaderboardRank, error) {
	key := s.leaderboardKey(gameID)
	member := strconv.FormatUint(uint64(playerID), 10)

	rank, err := s.redis.ZRevRank(ctx, key, member).Result()
	if err == redis.Nil {
		return nil, ErrPlayerNotRanked
	}
	if err != nil {
		return nil, fmt.Errorf("getting rank for player %d: %w", playerID, err)
	}
	score, err := s.redis.ZScore(ctx, key, member).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("getting score for player %d: %w", playerID, err)
	}

	return &LeaderboardRank{
		Rank:     rank + 1,
		PlayerID: playerID,
		Score:    int64(score),
	}, nil
}

// Rebuild reloads a game's Redis ranking from the durable entries.
func (s *LeaderboardService) Rebuild(ctx context.Context, gameID uint) (int, error) {
	var board models.Leaderboard
	err := s.db.WithContext(ctx).
		Preload("Entries").
		Where("game_id = ?", gameID).
		First(&board).Error
	if err != nil {
		return 0, fmt.Errorf("loading leaderboard for game %d: %w", gameID, err)
	}

	key := s.leaderboardKey(gameID)
	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, key)
	for _, e := range board.Entries {
		pipe.ZAdd(ctx, key, redis.Z{
			Score:  float64(e.Score),
			Member: strconv.FormatUint(uint64(e.PlayerID), 10),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rebuilding redis ranking for game %d: %w", gameID, err)
	}

	// Ranking is rebuildable; a TTL keeps abandoned boards from lingering.
	s.redis.Expire(ctx, key, 24*time.Hour)

	s.logger.Info("rebuilt leaderboard", "game_id", gameID, "entries", len(board.Entries))
	return len(board.Entries), nil
}
