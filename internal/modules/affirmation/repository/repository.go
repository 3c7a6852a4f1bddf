package repository

import (
	"context"
	"errors"

	"mindhaven-backend/internal/entity"
	"mindhaven-backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AffirmationRepository interface {
	WithTx(tx *gorm.DB) AffirmationRepository
	Create(ctx context.Context, affirmation *entity.Affirmation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Affirmation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, kind string) ([]entity.Affirmation, error)
	Update(ctx context.Context, affirmation *entity.Affirmation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type affirmationRepository struct {
	db *gorm.DB
}

func NewAffirmationRepository(db *gorm.DB) AffirmationRepository {
	return &affirmationRepository{db: db}
}

func (r *affirmationRepository) WithTx(tx *gorm.DB) AffirmationRepository {
	if tx == nil {
		return r
	}
	return &affirmationRepository{db: tx}
}

func (r *affirmationRepository) Create(ctx context.Context, affirmation *entity.Affirmation) error {
	return r.db.WithContext(ctx).Create(affirmation).Error
}

func (r *affirmationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Affirmation, error) {
	var row entity.Affirmation
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *affirmationRepository) ListByUser(ctx context.Context, userID uuid.UUID, kind string) ([]entity.Affirmation, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var rows []entity.Affirmation
	err := q.Order("created_at desc").Find(&rows).Error
	return rows, err
}

func (r *affirmationRepository) Update(ctx context.Context, affirmation *entity.Affirmation) error {
	return r.db.WithContext(ctx).Save(affirmation).Error
}

func (r *affirmationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Affirmation{}, "id = ?", id).Error
}
