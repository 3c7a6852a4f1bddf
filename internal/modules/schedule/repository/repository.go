package repository

import (
	"context"
	"errors"

	"mindhaven-backend/internal/entity"
	"mindhaven-backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScheduleRepository interface {
	WithTx(tx *gorm.DB) ScheduleRepository
	Create(ctx context.Context, schedule *entity.Schedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)
	// LockByID reads the schedule with SELECT ... FOR UPDATE so the
	// completion reward cannot be granted twice by concurrent requests.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status string) ([]entity.Schedule, error)
	Update(ctx context.Context, schedule *entity.Schedule) error
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) WithTx(tx *gorm.DB) ScheduleRepository {
	if tx == nil {
		return r
	}
	return &scheduleRepository{db: tx}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	var schedule entity.Schedule
	if err := r.db.WithContext(ctx).First(&schedule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	var schedule entity.Schedule
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&schedule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) ListByUser(ctx context.Context, userID uuid.UUID, status string) ([]entity.Schedule, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var schedules []entity.Schedule
	err := q.Order("start_time desc").Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *entity.Schedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}
