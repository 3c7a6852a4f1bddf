package handler

import (
	"net/http"

	mindfulnessDto "mindhaven-backend/internal/modules/mindfulness/dto"
	mindfulness "mindhaven-backend/internal/modules/mindfulness/service"
	"mindhaven-backend/pkg/response"
	"mindhaven-backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

type MindfulnessHandler struct {
	service mindfulness.MindfulnessService
}

func NewMindfulnessHandler(service mindfulness.MindfulnessService) *MindfulnessHandler {
	return &MindfulnessHandler{service: service}
}

func (h *MindfulnessHandler) Record(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input mindfulnessDto.RecordSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	session, grant, err := h.service.Record(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.WithReward(c, http.StatusCreated, session, grant)
}

func (h *MindfulnessHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter mindfulnessDto.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	sessions, err := h.service.List(c.Request.Context(), userID, filter.Limit, filter.Offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sessions})
}

func (h *MindfulnessHandler) TotalDuration(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	total, err := h.service.TotalDuration(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_duration_seconds": total})
}
