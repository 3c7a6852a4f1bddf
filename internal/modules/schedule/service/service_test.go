package service

import (
	"context"
	"testing"
	"time"

	"mindhaven-backend/internal/entity"
	reward "mindhaven-backend/internal/modules/reward/service"
	scheduleRepo "mindhaven-backend/internal/modules/schedule/repository"
	"mindhaven-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubTxManager struct{}

func (stubTxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type memScheduleRepo struct {
	rows map[uuid.UUID]*entity.Schedule
}

func newMemScheduleRepo() *memScheduleRepo {
	return &memScheduleRepo{rows: make(map[uuid.UUID]*entity.Schedule)}
}

func (r *memScheduleRepo) WithTx(tx *gorm.DB) scheduleRepo.ScheduleRepository { return r }

func (r *memScheduleRepo) Create(ctx context.Context, schedule *entity.Schedule) error {
	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}
	copy := *schedule
	r.rows[schedule.ID] = &copy
	return nil
}

func (r *memScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	copy := *row
	return &copy, nil
}

func (r *memScheduleRepo) LockByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	return r.FindByID(ctx, id)
}

func (r *memScheduleRepo) ListByUser(ctx context.Context, userID uuid.UUID, status string) ([]entity.Schedule, error) {
	var rows []entity.Schedule
	for _, row := range r.rows {
		if row.UserID != userID {
			continue
		}
		if status != "" && row.Status != status {
			continue
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

func (r *memScheduleRepo) Update(ctx context.Context, schedule *entity.Schedule) error {
	copy := *schedule
	r.rows[schedule.ID] = &copy
	return nil
}

// grantCountingRewards records session grants; every other method is unused
// by the schedule service.
type grantCountingRewards struct {
	sessionGrants int
}

func (s *grantCountingRewards) CompleteActivity(ctx context.Context, userID uuid.UUID, kind entity.ActivityKind, at time.Time) (*reward.ActivityGrant, error) {
	return nil, nil
}

func (s *grantCountingRewards) CompleteActivityTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, kind entity.ActivityKind, at time.Time) (*reward.ActivityGrant, error) {
	return nil, nil
}

func (s *grantCountingRewards) GrantSignupTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.Wallet, *entity.LedgerEntry, error) {
	return nil, nil, nil
}

func (s *grantCountingRewards) GrantFeedbackTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.LedgerEntry, error) {
	return nil, nil
}

func (s *grantCountingRewards) GrantSessionTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.LedgerEntry, error) {
	s.sessionGrants++
	return &entity.LedgerEntry{
		UserID:   userID,
		Name:     "Counseling Session",
		Category: entity.CategorySession,
		Points:   reward.SessionPoints,
	}, nil
}

func (s *grantCountingRewards) AddPoints(ctx context.Context, userID uuid.UUID, name, category string, points int) (*entity.LedgerEntry, error) {
	return nil, nil
}

func (s *grantCountingRewards) NotifyGrant(userID uuid.UUID, entries []entity.LedgerEntry) {}

func seedSchedule(t *testing.T, repo *memScheduleRepo, userID uuid.UUID, status string) *entity.Schedule {
	t.Helper()
	row := &entity.Schedule{
		UserID:           userID,
		ProfessionalName: "Dr. Ayu",
		StartTime:        time.Now().Add(-time.Hour),
		EndTime:          time.Now(),
		Status:           status,
	}
	require.NoError(t, repo.Create(context.Background(), row))
	return row
}

func TestCompleteGrantsSessionReward(t *testing.T) {
	repo := newMemScheduleRepo()
	rewards := &grantCountingRewards{}
	svc := NewScheduleService(repo, stubTxManager{}, rewards)
	userID := uuid.New()
	row := seedSchedule(t, repo, userID, entity.ScheduleStatusActive)

	schedule, entry, err := svc.Complete(context.Background(), userID, row.ID, true)
	require.NoError(t, err)

	assert.Equal(t, entity.ScheduleStatusCompleted, schedule.Status)
	assert.True(t, schedule.UserAttended)
	require.NotNil(t, entry)
	assert.Equal(t, reward.SessionPoints, entry.Points)
	assert.Equal(t, 1, rewards.sessionGrants)
}

func TestCompleteNoShowSkipsReward(t *testing.T) {
	repo := newMemScheduleRepo()
	rewards := &grantCountingRewards{}
	svc := NewScheduleService(repo, stubTxManager{}, rewards)
	userID := uuid.New()
	row := seedSchedule(t, repo, userID, entity.ScheduleStatusActive)

	schedule, entry, err := svc.Complete(context.Background(), userID, row.ID, false)
	require.NoError(t, err)

	assert.Equal(t, entity.ScheduleStatusCompleted, schedule.Status)
	assert.Nil(t, entry)
	assert.Equal(t, 0, rewards.sessionGrants)
}

func TestCompleteTwiceGrantsOnce(t *testing.T) {
	repo := newMemScheduleRepo()
	rewards := &grantCountingRewards{}
	svc := NewScheduleService(repo, stubTxManager{}, rewards)
	userID := uuid.New()
	row := seedSchedule(t, repo, userID, entity.ScheduleStatusActive)

	_, _, err := svc.Complete(context.Background(), userID, row.ID, true)
	require.NoError(t, err)

	_, _, err = svc.Complete(context.Background(), userID, row.ID, true)
	assert.ErrorIs(t, err, apperror.ErrConflictingUpdate)
	assert.Equal(t, 1, rewards.sessionGrants)
}

func TestCompleteRequiresOwnership(t *testing.T) {
	repo := newMemScheduleRepo()
	svc := NewScheduleService(repo, stubTxManager{}, &grantCountingRewards{})
	row := seedSchedule(t, repo, uuid.New(), entity.ScheduleStatusActive)

	_, _, err := svc.Complete(context.Background(), uuid.New(), row.ID, true)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestCancelActiveSchedule(t *testing.T) {
	repo := newMemScheduleRepo()
	svc := NewScheduleService(repo, stubTxManager{}, &grantCountingRewards{})
	userID := uuid.New()
	row := seedSchedule(t, repo, userID, entity.ScheduleStatusActive)

	schedule, err := svc.Cancel(context.Background(), userID, row.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ScheduleStatusCancelled, schedule.Status)
}

func TestCancelCompletedScheduleRejected(t *testing.T) {
	repo := newMemScheduleRepo()
	svc := NewScheduleService(repo, stubTxManager{}, &grantCountingRewards{})
	userID := uuid.New()
	row := seedSchedule(t, repo, userID, entity.ScheduleStatusCompleted)

	_, err := svc.Cancel(context.Background(), userID, row.ID)
	assert.ErrorIs(t, err, apperror.ErrConflictingUpdate)
}
