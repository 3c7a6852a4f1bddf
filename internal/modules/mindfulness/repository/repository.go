package repository

import (
	"context"

	"mindhaven-backend/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MindfulnessRepository interface {
	WithTx(tx *gorm.DB) MindfulnessRepository
	Create(ctx context.Context, session *entity.MindfulnessSession) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.MindfulnessSession, error)
	TotalDuration(ctx context.Context, userID uuid.UUID) (int, error)
}

type mindfulnessRepository struct {
	db *gorm.DB
}

func NewMindfulnessRepository(db *gorm.DB) MindfulnessRepository {
	return &mindfulnessRepository{db: db}
}

func (r *mindfulnessRepository) WithTx(tx *gorm.DB) MindfulnessRepository {
	if tx == nil {
		return r
	}
	return &mindfulnessRepository{db: tx}
}

func (r *mindfulnessRepository) Create(ctx context.Context, session *entity.MindfulnessSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *mindfulnessRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.MindfulnessSession, error) {
	var sessions []entity.MindfulnessSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error
	return sessions, err
}

func (r *mindfulnessRepository) TotalDuration(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&entity.MindfulnessSession{}).
		Select("COALESCE(SUM(duration_seconds), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}
