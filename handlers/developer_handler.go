package handlers

import (
	"net/http"

	"gamelytics/services"

	"github.com/gin-gonic/gin"
)

type DeveloperHandler struct {
	developerService *services.DeveloperService
}

func NewDeveloperHandler(developerService *services.DeveloperService) *DeveloperHandler {
	return &DeveloperHandler{developerService: developerService}
}

func (h *DeveloperHandler) Create(c *gin.Context) {
	var req services.CreateDeveloperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := h.developerService.Create(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dev)
}

func (h *DeveloperHandler) List(c *gin.Context) {
	developers, err := h.developerService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, developers)
}

func (h *DeveloperHandler) GetByID(c *gin.Context) {
	developerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	dev, err := h.developerService.GetByID(developerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Developer not found"})
		return
	}

	c.JSON(http.StatusOK, dev)
}

func (h *DeveloperHandler) Update(c *gin.Context) {
	developerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateDeveloperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := h.developerService.Update(developerID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dev)
}

func (h *DeveloperHandler) Delete(c *gin.Context) {
	developerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.developerService.Delete(developerID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Developer deleted successfully"})
}
