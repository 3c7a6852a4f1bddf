package repository

import (
	"context"
	"errors"

	"mindhaven-backend/internal/entity"
	"mindhaven-backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VisionBoardRepository interface {
	WithTx(tx *gorm.DB) VisionBoardRepository
	Create(ctx context.Context, item *entity.VisionBoardItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.VisionBoardItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.VisionBoardItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type visionBoardRepository struct {
	db *gorm.DB
}

func NewVisionBoardRepository(db *gorm.DB) VisionBoardRepository {
	return &visionBoardRepository{db: db}
}

func (r *visionBoardRepository) WithTx(tx *gorm.DB) VisionBoardRepository {
	if tx == nil {
		return r
	}
	return &visionBoardRepository{db: tx}
}

func (r *visionBoardRepository) Create(ctx context.Context, item *entity.VisionBoardItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *visionBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VisionBoardItem, error) {
	var item entity.VisionBoardItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *visionBoardRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.VisionBoardItem, error) {
	var items []entity.VisionBoardItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	return items, err
}

func (r *visionBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.VisionBoardItem{}, "id = ?", id).Error
}
