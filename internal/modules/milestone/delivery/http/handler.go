package handler

import (
	"net/http"

	milestoneDto "mindhaven-backend/internal/modules/milestone/dto"
	milestone "mindhaven-backend/internal/modules/milestone/service"
	"mindhaven-backend/pkg/response"
	"mindhaven-backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	service milestone.MilestoneService
}

func NewMilestoneHandler(service milestone.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{service: service}
}

func (h *MilestoneHandler) GetMilestones(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	rows, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (h *MilestoneHandler) Claim(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req milestoneDto.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	row, err := h.service.Claim(c.Request.Context(), userID, req.Milestone)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": row})
}

// Refresh re-evaluates the user's achievements on demand, useful for clients
// that want to surface a newly crossed threshold without waiting for the
// background sweep.
func (h *MilestoneHandler) Refresh(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	detected, err := h.service.DetectAchievements(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": detected})
}
