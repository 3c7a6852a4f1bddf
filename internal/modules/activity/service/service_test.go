package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"mindhaven-backend/internal/entity"
	activityRepo "mindhaven-backend/internal/modules/activity/repository"
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

type memActivityRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   []entity.DailyActivity
}

func (r *memActivityRepo) WithTx(tx *gorm.DB) activityRepo.ActivityRepository { return r }

func (r *memActivityRepo) Create(ctx context.Context, row *entity.DailyActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	row.ID = r.nextID
	r.rows = append(r.rows, *row)
	return nil
}

func (r *memActivityRepo) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date entity.Day) (*entity.DailyActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].UserID == userID && r.rows[i].Date == date {
			copy := r.rows[i]
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *memActivityRepo) FindByUserAndDates(ctx context.Context, userID uuid.UUID, dates []entity.Day) ([]entity.DailyActivity, error) {
	want := make(map[entity.Day]bool, len(dates))
	for _, d := range dates {
		want[d] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []entity.DailyActivity
	for _, row := range r.rows {
		if row.UserID == userID && want[row.Date] {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (r *memActivityRepo) CountBefore(ctx context.Context, userID uuid.UUID, date entity.Day) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, row := range r.rows {
		if row.UserID == userID && row.Date < date {
			count++
		}
	}
	return count, nil
}

func (r *memActivityRepo) SetFlag(ctx context.Context, id uint, column string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID != id {
			continue
		}
		switch column {
		case "affirmation_completed":
			r.rows[i].AffirmationCompleted = true
		case "journaling":
			r.rows[i].Journaling = true
		case "mindfulness":
			r.rows[i].Mindfulness = true
		case "goalsetting":
			r.rows[i].GoalSetting = true
		case "visionboard":
			r.rows[i].VisionBoard = true
		}
		return nil
	}
	return apperror.ErrNotFound
}

// UpsertUsage mirrors the ON CONFLICT accumulate: one atomic insert-or-add
// keyed on (user_id, date), with the final row state copied back out.
func (r *memActivityRepo) UpsertUsage(ctx context.Context, row *entity.DailyActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].UserID == row.UserID && r.rows[i].Date == row.Date {
			r.rows[i].AppUsageTime += row.AppUsageTime
			*row = r.rows[i]
			return nil
		}
	}
	r.nextID++
	row.ID = r.nextID
	r.rows = append(r.rows, *row)
	return nil
}

func (r *memActivityRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.DailyActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []entity.DailyActivity
	for _, row := range r.rows {
		if row.UserID == userID {
			rows = append(rows, row)
		}
	}
	if offset > len(rows) {
		offset = len(rows)
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func at(n int) time.Time {
	return time.Date(2025, 6, n, 9, 0, 0, 0, time.UTC)
}

func TestRecordActivityCreatesDayRow(t *testing.T) {
	repo := &memActivityRepo{}
	svc := NewActivityService(stubTxManager{}, repo)
	userID := uuid.New()

	row, err := svc.RecordActivityTx(context.Background(), nil, userID, entity.ActivityJournaling, at(5))
	require.NoError(t, err)

	assert.Equal(t, entity.Day("2025-06-05"), row.Date)
	assert.True(t, row.Journaling)
	assert.False(t, row.Mindfulness)
}

func TestRecordActivityReusesDayRow(t *testing.T) {
	repo := &memActivityRepo{}
	svc := NewActivityService(stubTxManager{}, repo)
	userID := uuid.New()
	ctx := context.Background()

	first, err := svc.RecordActivityTx(ctx, nil, userID, entity.ActivityJournaling, at(5))
	require.NoError(t, err)
	second, err := svc.RecordActivityTx(ctx, nil, userID, entity.ActivityMindfulness, at(5))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Journaling)
	assert.True(t, second.Mindfulness)
	assert.Len(t, repo.rows, 1)
}

func TestRecordActivityRejectsUnknownKind(t *testing.T) {
	svc := NewActivityService(stubTxManager{}, &memActivityRepo{})

	_, err := svc.RecordActivityTx(context.Background(), nil, uuid.New(), entity.ActivityKind("napping"), at(5))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestAccumulateUsageAddsUp(t *testing.T) {
	svc := NewActivityService(stubTxManager{}, &memActivityRepo{})
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.AccumulateUsage(ctx, userID, at(5), 120)
	require.NoError(t, err)
	row, err := svc.AccumulateUsage(ctx, userID, at(5), 60)
	require.NoError(t, err)

	assert.Equal(t, 180, row.AppUsageTime)
}

func TestAccumulateUsageRejectsNegative(t *testing.T) {
	svc := NewActivityService(stubTxManager{}, &memActivityRepo{})

	_, err := svc.AccumulateUsage(context.Background(), uuid.New(), at(5), -1)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestAccumulateUsageConcurrentDevices(t *testing.T) {
	repo := &memActivityRepo{}
	svc := NewActivityService(stubTxManager{}, repo)
	userID := uuid.New()
	ctx := context.Background()

	// Several clients reporting the same day at once must all land on one
	// row, none lost to a create race.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AccumulateUsage(ctx, userID, at(5), 30)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, repo.rows, 1)
	assert.Equal(t, 600, repo.rows[0].AppUsageTime)
}

func TestHasActivityBefore(t *testing.T) {
	svc := NewActivityService(stubTxManager{}, &memActivityRepo{})
	userID := uuid.New()
	ctx := context.Background()

	had, err := svc.HasActivityBeforeTx(ctx, nil, userID, "2025-06-05")
	require.NoError(t, err)
	assert.False(t, had)

	_, err = svc.RecordActivityTx(ctx, nil, userID, entity.ActivityJournaling, at(4))
	require.NoError(t, err)

	had, err = svc.HasActivityBeforeTx(ctx, nil, userID, "2025-06-05")
	require.NoError(t, err)
	assert.True(t, had)

	// Same-day rows do not count as prior history.
	had, err = svc.HasActivityBeforeTx(ctx, nil, userID, "2025-06-04")
	require.NoError(t, err)
	assert.False(t, had)
}

func TestStreakCompleteConsecutiveDays(t *testing.T) {
	svc := NewActivityService(stubTxManager{}, &memActivityRepo{})
	userID := uuid.New()
	ctx := context.Background()

	for d := 3; d <= 5; d++ {
		_, err := svc.RecordActivityTx(ctx, nil, userID, entity.ActivityMindfulness, at(d))
		require.NoError(t, err)
	}

	ok, err := svc.StreakCompleteTx(ctx, nil, userID, entity.ActivityMindfulness, at(5), 3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStreakCountsRowsScannedFromDateColumns(t *testing.T) {
	// Postgres drivers return date columns as time.Time, so rows arrive with
	// whatever the Day scanner made of them rather than a hand-typed string.
	repo := &memActivityRepo{}
	svc := NewActivityService(stubTxManager{}, repo)
	userID := uuid.New()
	ctx := context.Background()

	for d := 3; d <= 5; d++ {
		var day entity.Day
		require.NoError(t, day.Scan(time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, repo.UpsertUsage(ctx, &entity.DailyActivity{
			UserID: userID,
			Date:   day,
		}))
		_, err := svc.RecordActivityTx(ctx, nil, userID, entity.ActivityMindfulness, at(d))
		require.NoError(t, err)
	}

	require.Len(t, repo.rows, 3)

	ok, err := svc.StreakCompleteTx(ctx, nil, userID, entity.ActivityMindfulness, at(5), 3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStreakBrokenByGap(t *testing.T) {
	svc := NewActivityService(stubTxManager{}, &memActivityRepo{})
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.RecordActivityTx(ctx, nil, userID, entity.ActivityMindfulness, at(3))
	require.NoError(t, err)
	_, err = svc.RecordActivityTx(ctx, nil, userID, entity.ActivityMindfulness, at(5))
	require.NoError(t, err)

	ok, err := svc.StreakCompleteTx(ctx, nil, userID, entity.ActivityMindfulness, at(5), 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStreakChecksTheRightFlag(t *testing.T) {
	svc := NewActivityService(stubTxManager{}, &memActivityRepo{})
	userID := uuid.New()
	ctx := context.Background()

	// Days present but the middle one completed a different activity.
	_, err := svc.RecordActivityTx(ctx, nil, userID, entity.ActivityMindfulness, at(3))
	require.NoError(t, err)
	_, err = svc.RecordActivityTx(ctx, nil, userID, entity.ActivityJournaling, at(4))
	require.NoError(t, err)
	_, err = svc.RecordActivityTx(ctx, nil, userID, entity.ActivityMindfulness, at(5))
	require.NoError(t, err)

	ok, err := svc.StreakCompleteTx(ctx, nil, userID, entity.ActivityMindfulness, at(5), 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistoryDefaultsLimit(t *testing.T) {
	repo := &memActivityRepo{}
	svc := NewActivityService(stubTxManager{}, repo)
	userID := uuid.New()
	ctx := context.Background()

	for d := 1; d <= 10; d++ {
		_, err := svc.RecordActivityTx(ctx, nil, userID, entity.ActivityJournaling, at(d))
		require.NoError(t, err)
	}

	rows, err := svc.History(ctx, userID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 10)

	rows, err = svc.History(ctx, userID, 3, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
