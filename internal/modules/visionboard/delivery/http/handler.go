package handler

import (
	"net/http"

	visionboard "mindhaven-backend/internal/modules/visionboard/service"
	"mindhaven-backend/pkg/apperror"
	"mindhaven-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VisionBoardHandler struct {
	service visionboard.VisionBoardService
}

func NewVisionBoardHandler(service visionboard.VisionBoardService) *VisionBoardHandler {
	return &VisionBoardHandler{service: service}
}

// Create accepts multipart form data: title, optional description, optional
// image file.
func (h *VisionBoardHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	input := visionboard.CreateItemInput{Title: title}
	if description := c.PostForm("description"); description != "" {
		input.Description = &description
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.ResponseError(c, apperror.ErrBadRequest)
			return
		}
		defer file.Close()
		input.Image = file
		input.ImageFileName = fileHeader.Filename
	}

	item, grant, err := h.service.Create(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.WithReward(c, http.StatusCreated, item, grant)
}

func (h *VisionBoardHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	items, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *VisionBoardHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vision board item deleted"})
}
