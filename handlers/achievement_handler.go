package handlers

import (
	"net/http"

	"gamelytics/services"

	"github.com/gin-gonic/gin"
)

type AchievementHandler struct {
	achievementService *services.AchievementService
}

func NewAchievementHandler(achievementService *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

func (h *AchievementHandler) Create(c *gin.Context) {
	var req services.CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	achievement, err := h.achievementService.Create(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, achievement)
}

func (h *AchievementHandler) ListByGame(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	achievements, err := h.achievementService.ListByGame(gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, achievements)
}

func (h *AchievementHandler) Update(c *gin.Context) {
	achievementID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	achievement, err := h.achievementService.Update(achievementID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, achievement)
}

func (h *AchievementHandler) Delete(c *gin.Context) {
	achievementID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.achievementService.Delete(achievementID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Achievement deleted successfully"})
}

func (h *AchievementHandler) Unlock(c *gin.Context) {
	achievementID, ok := parseID(c, "id")
	if !ok {
		return
	}
	playerID, ok := parseID(c, "playerID")
	if !ok {
		return
	}

	unlock, err := h.achievementService.Unlock(playerID, achievementID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, unlock)
}

func (h *AchievementHandler) PlayerProgress(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	playerID, ok := parseID(c, "playerID")
	if !ok {
		return
	}

	progress, err := h.achievementService.PlayerProgress(playerID, gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, progress)
}
