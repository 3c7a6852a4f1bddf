package repository

import (
	"context"
	"errors"

	"mindhaven-backend/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository interface {
	WithTx(tx *gorm.DB) ActivityRepository
	Create(ctx context.Context, row *entity.DailyActivity) error
	// FindByUserAndDate returns the row for the calendar day, or nil when the
	// user has no activity recorded for it.
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date entity.Day) (*entity.DailyActivity, error)
	FindByUserAndDates(ctx context.Context, userID uuid.UUID, dates []entity.Day) ([]entity.DailyActivity, error)
	CountBefore(ctx context.Context, userID uuid.UUID, date entity.Day) (int64, error)
	// SetFlag flips a completion flag to true. Flags are monotone; there is
	// no operation to clear one.
	SetFlag(ctx context.Context, id uint, column string) error
	// UpsertUsage inserts the day row or, when it already exists, adds
	// row.AppUsageTime onto the stored counter. The insert-or-add runs as one
	// statement so two devices reporting at once cannot race on creating the
	// row. row is reloaded with the final state.
	UpsertUsage(ctx context.Context, row *entity.DailyActivity) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.DailyActivity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) WithTx(tx *gorm.DB) ActivityRepository {
	if tx == nil {
		return r
	}
	return &activityRepository{db: tx}
}

func (r *activityRepository) Create(ctx context.Context, row *entity.DailyActivity) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *activityRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date entity.Day) (*entity.DailyActivity, error) {
	var row entity.DailyActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *activityRepository) FindByUserAndDates(ctx context.Context, userID uuid.UUID, dates []entity.Day) ([]entity.DailyActivity, error) {
	var rows []entity.DailyActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date IN ?", userID, dates).
		Find(&rows).Error
	return rows, err
}

func (r *activityRepository) CountBefore(ctx context.Context, userID uuid.UUID, date entity.Day) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DailyActivity{}).
		Where("user_id = ? AND date < ?", userID, date).
		Count(&count).Error
	return count, err
}

func (r *activityRepository) SetFlag(ctx context.Context, id uint, column string) error {
	return r.db.WithContext(ctx).Model(&entity.DailyActivity{}).
		Where("id = ?", id).
		Update(column, true).Error
}

func (r *activityRepository) UpsertUsage(ctx context.Context, row *entity.DailyActivity) error {
	seconds := row.AppUsageTime

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"app_usage_time": gorm.Expr("daily_activities.app_usage_time + ?", seconds),
		}),
	}).Create(row).Error
	if err != nil {
		return err
	}

	// Reload so callers see the accumulated counter, not just this increment.
	return r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", row.UserID, row.Date).
		First(row).Error
}

func (r *activityRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.DailyActivity, error) {
	var rows []entity.DailyActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}
