package repository

import (
	"context"
	"errors"

	"mindhaven-backend/internal/entity"
	"mindhaven-backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JournalRepository interface {
	WithTx(tx *gorm.DB) JournalRepository
	Create(ctx context.Context, entry *entity.JournalEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.JournalEntry, error)
	Update(ctx context.Context, entry *entity.JournalEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type journalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) WithTx(tx *gorm.DB) JournalRepository {
	if tx == nil {
		return r
	}
	return &journalRepository{db: tx}
}

func (r *journalRepository) Create(ctx context.Context, entry *entity.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *journalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error) {
	var entry entity.JournalEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *journalRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.JournalEntry, error) {
	var entries []entity.JournalEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

func (r *journalRepository) Update(ctx context.Context, entry *entity.JournalEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *journalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.JournalEntry{}, "id = ?", id).Error
}
