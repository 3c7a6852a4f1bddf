package repository

import (
	"context"
	"errors"

	"mindhaven-backend/internal/entity"
	"mindhaven-backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalRepository interface {
	WithTx(tx *gorm.DB) GoalRepository
	Create(ctx context.Context, goal *entity.Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)
	ListByUser(ctx context.Context, userID uuid.UUID, goalType string) ([]entity.Goal, error)
	// ListActive returns every goal still eligible for automatic status
	// transitions.
	ListActive(ctx context.Context) ([]entity.Goal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Update(ctx context.Context, goal *entity.Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) WithTx(tx *gorm.DB) GoalRepository {
	if tx == nil {
		return r
	}
	return &goalRepository{db: tx}
}

func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goal entity.Goal
	if err := r.db.WithContext(ctx).First(&goal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) ListByUser(ctx context.Context, userID uuid.UUID, goalType string) ([]entity.Goal, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if goalType != "" {
		q = q.Where("type = ?", goalType)
	}

	var goals []entity.Goal
	err := q.Order("created_at desc").Find(&goals).Error
	return goals, err
}

func (r *goalRepository) ListActive(ctx context.Context) ([]entity.Goal, error) {
	var goals []entity.Goal
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []string{entity.GoalStatusCompleted, entity.GoalStatusCancelled}).
		Find(&goals).Error
	return goals, err
}

func (r *goalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&entity.Goal{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Goal{}, "id = ?", id).Error
}
