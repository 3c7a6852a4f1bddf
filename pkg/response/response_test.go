package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mindhaven-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestGetUserIDMissing(t *testing.T) {
	c, _ := testContext()

	_, err := GetUserID(c)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestGetUserIDMalformed(t *testing.T) {
	c, _ := testContext()
	c.Set("user_id", "not-a-uuid")

	_, err := GetUserID(c)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestGetUserIDValid(t *testing.T) {
	c, _ := testContext()
	want := uuid.New()
	c.Set("user_id", want.String())

	got, err := GetUserID(c)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWithRewardEnvelope(t *testing.T) {
	c, rec := testContext()

	WithReward(c, http.StatusCreated, gin.H{"id": 1}, gin.H{"points": 20})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":1},"reward":{"points":20}}`, rec.Body.String())
}

func TestWithRewardNilReward(t *testing.T) {
	c, rec := testContext()

	WithReward(c, http.StatusOK, gin.H{"id": 1}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"id":1},"reward":null}`, rec.Body.String())
}

func TestResponseErrorMapsStatus(t *testing.T) {
	c, rec := testContext()

	ResponseError(c, apperror.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}
