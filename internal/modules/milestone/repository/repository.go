package repository

import (
	"context"
	"errors"

	"mindhaven-backend/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MilestoneRepository interface {
	WithTx(tx *gorm.DB) MilestoneRepository
	Create(ctx context.Context, milestone *entity.BountyMilestone) error
	// Find returns the user's row for the threshold, or nil when the
	// threshold has not been reached yet.
	Find(ctx context.Context, userID uuid.UUID, milestone int) (*entity.BountyMilestone, error)
	MarkClaimed(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.BountyMilestone, error)
}

type milestoneRepository struct {
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) WithTx(tx *gorm.DB) MilestoneRepository {
	if tx == nil {
		return r
	}
	return &milestoneRepository{db: tx}
}

func (r *milestoneRepository) Create(ctx context.Context, milestone *entity.BountyMilestone) error {
	return r.db.WithContext(ctx).Create(milestone).Error
}

func (r *milestoneRepository) Find(ctx context.Context, userID uuid.UUID, milestone int) (*entity.BountyMilestone, error) {
	var row entity.BountyMilestone
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND milestone = ?", userID, milestone).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *milestoneRepository) MarkClaimed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.BountyMilestone{}).
		Where("id = ?", id).
		Update("claimed", true).Error
}

func (r *milestoneRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.BountyMilestone, error) {
	var rows []entity.BountyMilestone
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("milestone asc").
		Find(&rows).Error
	return rows, err
}
