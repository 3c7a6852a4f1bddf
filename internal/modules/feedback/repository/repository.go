package repository

import (
	"context"

	"mindhaven-backend/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	WithTx(tx *gorm.DB) FeedbackRepository
	Create(ctx context.Context, feedback *entity.Feedback) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Feedback, error)
	ListAll(ctx context.Context, limit, offset int) ([]entity.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) WithTx(tx *gorm.DB) FeedbackRepository {
	if tx == nil {
		return r
	}
	return &feedbackRepository{db: tx}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Feedback, error) {
	var rows []entity.Feedback
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

func (r *feedbackRepository) ListAll(ctx context.Context, limit, offset int) ([]entity.Feedback, error) {
	var rows []entity.Feedback
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}
