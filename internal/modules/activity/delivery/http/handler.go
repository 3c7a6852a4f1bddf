package handler

import (
	"net/http"
	"time"

	activityDto "mindhaven-backend/internal/modules/activity/dto"
	activity "mindhaven-backend/internal/modules/activity/service"
	"mindhaven-backend/pkg/response"
	"mindhaven-backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	service activity.ActivityService
}

func NewActivityHandler(service activity.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) AddUsage(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req activityDto.UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	row, err := h.service.AccumulateUsage(c.Request.Context(), userID, time.Now().UTC(), req.TimeSpent)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": row})
}

func (h *ActivityHandler) GetHistory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter activityDto.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	rows, err := h.service.History(c.Request.Context(), userID, filter.Limit, filter.Offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}
