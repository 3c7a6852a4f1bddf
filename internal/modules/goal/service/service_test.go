package service

import (
	"context"
	"testing"
	"time"

	"mindhaven-backend/internal/entity"
	goalRepo "mindhaven-backend/internal/modules/goal/repository"
	"mindhaven-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memGoalRepo struct {
	goals map[uuid.UUID]*entity.Goal
}

func newMemGoalRepo() *memGoalRepo {
	return &memGoalRepo{goals: make(map[uuid.UUID]*entity.Goal)}
}

func (r *memGoalRepo) WithTx(tx *gorm.DB) goalRepo.GoalRepository { return r }

func (r *memGoalRepo) Create(ctx context.Context, goal *entity.Goal) error {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	copy := *goal
	r.goals[goal.ID] = &copy
	return nil
}

func (r *memGoalRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	goal, ok := r.goals[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	copy := *goal
	return &copy, nil
}

func (r *memGoalRepo) ListByUser(ctx context.Context, userID uuid.UUID, goalType string) ([]entity.Goal, error) {
	var goals []entity.Goal
	for _, g := range r.goals {
		if g.UserID != userID {
			continue
		}
		if goalType != "" && g.Type != goalType {
			continue
		}
		goals = append(goals, *g)
	}
	return goals, nil
}

func (r *memGoalRepo) ListActive(ctx context.Context) ([]entity.Goal, error) {
	var goals []entity.Goal
	for _, g := range r.goals {
		if g.Status == entity.GoalStatusCompleted || g.Status == entity.GoalStatusCancelled {
			continue
		}
		goals = append(goals, *g)
	}
	return goals, nil
}

func (r *memGoalRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	goal, ok := r.goals[id]
	if !ok {
		return apperror.ErrNotFound
	}
	goal.Status = status
	return nil
}

func (r *memGoalRepo) Update(ctx context.Context, goal *entity.Goal) error {
	copy := *goal
	r.goals[goal.ID] = &copy
	return nil
}

func (r *memGoalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.goals, id)
	return nil
}

func seedGoal(t *testing.T, repo *memGoalRepo, userID uuid.UUID, status string, startTime, endTime *string) *entity.Goal {
	t.Helper()
	goal := &entity.Goal{
		UserID:    userID,
		Title:     "Morning run",
		Type:      entity.GoalTypeDaily,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    status,
	}
	require.NoError(t, repo.Create(context.Background(), goal))
	return goal
}

func clock(s string) *string { return &s }

func TestUpdateStatusCancelledIsFinal(t *testing.T) {
	repo := newMemGoalRepo()
	svc := NewGoalService(repo, nil, nil)
	userID := uuid.New()
	goal := seedGoal(t, repo, userID, entity.GoalStatusCancelled, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), userID, goal.ID, entity.GoalStatusStarted)
	assert.ErrorIs(t, err, apperror.ErrConflictingUpdate)
}

func TestUpdateStatusRequiresOwnership(t *testing.T) {
	repo := newMemGoalRepo()
	svc := NewGoalService(repo, nil, nil)
	goal := seedGoal(t, repo, uuid.New(), entity.GoalStatusAdded, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), goal.ID, entity.GoalStatusCancelled)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestUpdateStatusAdvances(t *testing.T) {
	repo := newMemGoalRepo()
	svc := NewGoalService(repo, nil, nil)
	userID := uuid.New()
	goal := seedGoal(t, repo, userID, entity.GoalStatusAdded, nil, nil)

	updated, err := svc.UpdateStatus(context.Background(), userID, goal.ID, entity.GoalStatusStarted)
	require.NoError(t, err)
	assert.Equal(t, entity.GoalStatusStarted, updated.Status)

	stored, err := repo.FindByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.GoalStatusStarted, stored.Status)
}

func TestAdvanceStatusesMovesPastGoals(t *testing.T) {
	repo := newMemGoalRepo()
	svc := NewGoalService(repo, nil, nil)
	userID := uuid.New()

	// Both windows are already behind us, so one sweep walks the goal all the
	// way to Completed.
	done := seedGoal(t, repo, userID, entity.GoalStatusAdded, clock("00:00"), clock("00:00"))
	// Start has passed but the end is still ahead.
	running := seedGoal(t, repo, userID, entity.GoalStatusAdded, clock("00:00"), clock("23:59"))
	cancelled := seedGoal(t, repo, userID, entity.GoalStatusCancelled, clock("00:00"), clock("00:00"))

	require.NoError(t, svc.AdvanceStatuses(context.Background()))

	stored, err := repo.FindByID(context.Background(), done.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.GoalStatusCompleted, stored.Status)

	stored, err = repo.FindByID(context.Background(), running.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.GoalStatusStarted, stored.Status)

	stored, err = repo.FindByID(context.Background(), cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.GoalStatusCancelled, stored.Status)
}

func TestAdvanceStatusesIgnoresGoalsWithoutClock(t *testing.T) {
	repo := newMemGoalRepo()
	svc := NewGoalService(repo, nil, nil)
	goal := seedGoal(t, repo, uuid.New(), entity.GoalStatusAdded, nil, nil)

	require.NoError(t, svc.AdvanceStatuses(context.Background()))

	stored, err := repo.FindByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.GoalStatusAdded, stored.Status)
}

func TestTimeOfDayPassed(t *testing.T) {
	now := time.Date(2025, 6, 5, 14, 30, 0, 0, time.UTC)

	assert.True(t, timeOfDayPassed(clock("14:30"), now))
	assert.True(t, timeOfDayPassed(clock("09:00"), now))
	assert.False(t, timeOfDayPassed(clock("14:31"), now))
	assert.False(t, timeOfDayPassed(nil, now))
	assert.False(t, timeOfDayPassed(clock("not-a-time"), now))
}
