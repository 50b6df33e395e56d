package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gamelytics/services"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

type SubmitScoreRequest struct {
	PlayerID uint  `json:"player_id" binding:"required"`
	Score    int64 `json:"score"`
}

func (h *LeaderboardHandler) SubmitScore(c *gin.Context) {
	gameID, ok := parseID(c, "gameID")
	if !ok {
		return
	}

	var req SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.leaderboardService.SubmitScore(c.Request.Context(), gameID, req.PlayerID, req.Score); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Score submitted"})
}

func (h *LeaderboardHandler) GetTop(c *gin.Context) {
	gameID, ok := parseID(c, "gameID")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	entries, err := h.leaderboardService.GetTop(c.Request.Context(), gameID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

func (h *LeaderboardHandler) GetPlayerRank(c *gin.Context) {
	gameID, ok := parseID(c, "gameID")
	if !ok {
		return
	}
	playerID, ok := parseID(c, "playerID")
	if !ok {
		return
	}

	rank, err := h.leaderboardService.GetPlayerRank(c.Request.Context(), gameID, playerID)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotRanked) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rank)
}

func (h *LeaderboardHandler) Rebuild(c *gin.Context) {
	gameID, ok := parseID(c, "gameID")
	if !ok {
		return
	}

	count, err := h.leaderboardService.Rebuild(c.Request.Context(), gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Leaderboard rebuilt", "entries": count})
}
