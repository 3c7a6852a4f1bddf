package handler

import (
	"net/http"
	"time"

	"mindhaven-backend/internal/entity"
	rewardDto "mindhaven-backend/internal/modules/reward/dto"
	reward "mindhaven-backend/internal/modules/reward/service"
	"mindhaven-backend/pkg/apperror"
	"mindhaven-backend/pkg/response"
	"mindhaven-backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	service reward.RewardService
}

func NewRewardHandler(service reward.RewardService) *RewardHandler {
	return &RewardHandler{service: service}
}

// CompleteActivity records a wellness activity and returns whatever bonuses
// it triggered. Most clients call this indirectly through the activity's own
// module, but the endpoint allows recording a completion on its own.
func (h *RewardHandler) CompleteActivity(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req rewardDto.CompleteActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	kind := entity.ActivityKind(req.Activity)
	if !kind.Valid() {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	grant, err := h.service.CompleteActivity(c.Request.Context(), userID, kind, time.Now().UTC())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": grant})
}

func (h *RewardHandler) AddPoints(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req rewardDto.AddPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	entry, err := h.service.AddPoints(c.Request.Context(), userID, req.Name, req.Category, req.Points)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entry})
}
