package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mindhaven-backend/internal/entity"
	reward "mindhaven-backend/internal/modules/reward/service"
	"mindhaven-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubRewardService struct {
	grant *reward.ActivityGrant
	entry *entity.LedgerEntry
	err   error

	gotKind entity.ActivityKind
}

func (s *stubRewardService) CompleteActivity(ctx context.Context, userID uuid.UUID, kind entity.ActivityKind, at time.Time) (*reward.ActivityGrant, error) {
	s.gotKind = kind
	return s.grant, s.err
}

func (s *stubRewardService) CompleteActivityTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, kind entity.ActivityKind, at time.Time) (*reward.ActivityGrant, error) {
	return s.grant, s.err
}

func (s *stubRewardService) GrantSignupTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.Wallet, *entity.LedgerEntry, error) {
	return nil, nil, s.err
}

func (s *stubRewardService) GrantFeedbackTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.LedgerEntry, error) {
	return s.entry, s.err
}

func (s *stubRewardService) GrantSessionTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.LedgerEntry, error) {
	return s.entry, s.err
}

func (s *stubRewardService) AddPoints(ctx context.Context, userID uuid.UUID, name, category string, points int) (*entity.LedgerEntry, error) {
	return s.entry, s.err
}

func (s *stubRewardService) NotifyGrant(userID uuid.UUID, entries []entity.LedgerEntry) {}

func setupRouter(svc reward.RewardService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != "" {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", userID)
			c.Next()
		})
	}

	h := NewRewardHandler(svc)
	r.POST("/rewards/activities", h.CompleteActivity)
	r.POST("/rewards/points", h.AddPoints)
	return r
}

func TestCompleteActivityOK(t *testing.T) {
	svc := &stubRewardService{grant: &reward.ActivityGrant{
		Activity: &entity.DailyActivity{Date: "2025-06-05", Journaling: true},
	}}
	r := setupRouter(svc, uuid.NewString())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rewards/activities",
		strings.NewReader(`{"activity":"journaling"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.ActivityJournaling, svc.gotKind)
	assert.Contains(t, w.Body.String(), `"journaling":true`)
}

func TestCompleteActivityUnknownKind(t *testing.T) {
	r := setupRouter(&stubRewardService{}, uuid.NewString())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rewards/activities",
		strings.NewReader(`{"activity":"napping"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteActivityMissingBody(t *testing.T) {
	r := setupRouter(&stubRewardService{}, uuid.NewString())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rewards/activities", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteActivityUnauthenticated(t *testing.T) {
	r := setupRouter(&stubRewardService{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rewards/activities",
		strings.NewReader(`{"activity":"journaling"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCompleteActivityServiceError(t *testing.T) {
	r := setupRouter(&stubRewardService{err: apperror.ErrNotFound}, uuid.NewString())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rewards/activities",
		strings.NewReader(`{"activity":"journaling"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddPointsOK(t *testing.T) {
	svc := &stubRewardService{entry: &entity.LedgerEntry{
		Name:     "Promo",
		Category: "Promo",
		Points:   25,
	}}
	r := setupRouter(svc, uuid.NewString())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rewards/points",
		strings.NewReader(`{"name":"Promo","category":"Promo","points":25}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"points":25`)
}

func TestAddPointsRejectsZero(t *testing.T) {
	r := setupRouter(&stubRewardService{}, uuid.NewString())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rewards/points",
		strings.NewReader(`{"name":"Promo","category":"Promo","points":0}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
