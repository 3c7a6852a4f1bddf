package service

import (
	"context"
	"time"

	"mindhaven-backend/internal/entity"
	activityRepo "mindhaven-backend/internal/modules/activity/repository"
	"mindhaven-backend/pkg/apperror"
	"mindhaven-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityService is the daily activity tracker: one row per user per
// calendar day, monotone completion flags, additive usage time. It also
// answers the queries the reward rules need (prior history, streaks).
type ActivityService interface {
	// RecordActivityTx flips the flag for kind on today's row, creating the
	// row first when absent. Safe to call repeatedly; setting an already-true
	// flag is a no-op. Runs inside the caller's transaction.
	RecordActivityTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, kind entity.ActivityKind, at time.Time) (*entity.DailyActivity, error)
	// AccumulateUsage adds seconds to the day's usage counter, creating the
	// row when absent.
	AccumulateUsage(ctx context.Context, userID uuid.UUID, at time.Time, seconds int) (*entity.DailyActivity, error)
	// HasActivityBeforeTx reports whether any activity row exists for the
	// user on a day earlier than day.
	HasActivityBeforeTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day entity.Day) (bool, error)
	// StreakCompleteTx reports whether the kind flag is set on each of the
	// `days` consecutive calendar days ending at `end` (inclusive).
	StreakCompleteTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, kind entity.ActivityKind, end time.Time, days int) (bool, error)
	History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.DailyActivity, error)
}

type activityService struct {
	txm  database.TxManager
	repo activityRepo.ActivityRepository
}

func NewActivityService(txm database.TxManager, repo activityRepo.ActivityRepository) ActivityService {
	return &activityService{
		txm:  txm,
		repo: repo,
	}
}

func (s *activityService) RecordActivityTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, kind entity.ActivityKind, at time.Time) (*entity.DailyActivity, error) {
	if !kind.Valid() {
		return nil, apperror.ErrInvalidInput
	}

	repo := s.repo.WithTx(tx)
	day := entity.NewDay(at)

	row, err := repo.FindByUserAndDate(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if row == nil {
		row = &entity.DailyActivity{
			UserID: userID,
			Date:   day,
		}
		if err := repo.Create(ctx, row); err != nil {
			return nil, err
		}
	}

	if row.FlagSet(kind) {
		return row, nil
	}

	if err := repo.SetFlag(ctx, row.ID, kind.FlagColumn()); err != nil {
		return nil, err
	}

	setFlag(row, kind)
	return row, nil
}

func (s *activityService) AccumulateUsage(ctx context.Context, userID uuid.UUID, at time.Time, seconds int) (*entity.DailyActivity, error) {
	if seconds < 0 {
		return nil, apperror.ErrInvalidInput
	}

	// Insert-or-add in one statement. Usage reports take no wallet lock, so
	// a find-then-create here would let two devices race on the day row.
	row := &entity.DailyActivity{
		UserID:       userID,
		Date:         entity.NewDay(at),
		AppUsageTime: seconds,
	}
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).UpsertUsage(ctx, row)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *activityService) HasActivityBeforeTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day entity.Day) (bool, error) {
	count, err := s.repo.WithTx(tx).CountBefore(ctx, userID, day)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *activityService) StreakCompleteTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, kind entity.ActivityKind, end time.Time, days int) (bool, error) {
	dates := make([]entity.Day, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, entity.NewDay(end.AddDate(0, 0, -i)))
	}

	rows, err := s.repo.WithTx(tx).FindByUserAndDates(ctx, userID, dates)
	if err != nil {
		return false, err
	}

	completed := make(map[entity.Day]bool, len(rows))
	for i := range rows {
		completed[rows[i].Date] = rows[i].FlagSet(kind)
	}

	for _, date := range dates {
		if !completed[date] {
			return false, nil
		}
	}
	return true, nil
}

func (s *activityService) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.DailyActivity, error) {
	if limit <= 0 || limit > 100 {
		limit = 31
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func setFlag(row *entity.DailyActivity, kind entity.ActivityKind) {
	switch kind {
	case entity.ActivityAffirmation:
		row.AffirmationCompleted = true
	case entity.ActivityJournaling:
		row.Journaling = true
	case entity.ActivityMindfulness:
		row.Mindfulness = true
	case entity.ActivityGoalSetting:
		row.GoalSetting = true
	case entity.ActivityVisionBoard:
		row.VisionBoard = true
	}
}
