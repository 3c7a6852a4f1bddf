package response

import (
	"log"
	"net/http"

	"mindhaven-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// WithReward writes the envelope used by every write that can mint bounty
// points: the domain row that was stored plus whatever the reward engine
// granted alongside it. reward is nil or empty when the write earned
// nothing new, and clients key off that rather than a separate flag.
func WithReward(c *gin.Context, status int, data, reward interface{}) {
	c.JSON(status, gin.H{"data": data, "reward": reward})
}
