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

type WalletRepository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) WalletRepository
	Create(ctx context.Context, wallet *entity.Wallet) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error)
	// LockByUserID reads the wallet row with SELECT ... FOR UPDATE so that
	// concurrent grants for the same user serialize instead of losing updates.
	LockByUserID(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error)
	// AddPoints applies a delta to the running totals with an in-database
	// increment.
	AddPoints(ctx context.Context, walletID uuid.UUID, points, recommended int) error
	// ListUserIDs returns every user that owns a wallet. Used by the
	// milestone sweep.
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) WithTx(tx *gorm.DB) WalletRepository {
	if tx == nil {
		return r
	}
	return &walletRepository{db: tx}
}

func (r *walletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	return r.db.WithContext(ctx).Create(wallet).Error
}

func (r *walletRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	var wallet entity.Wallet
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) LockByUserID(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	var wallet entity.Wallet
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) AddPoints(ctx context.Context, walletID uuid.UUID, points, recommended int) error {
	res := r.db.WithContext(ctx).Model(&entity.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"total_points":       gorm.Expr("total_points + ?", points),
			"recommended_points": gorm.Expr("recommended_points + ?", recommended),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *walletRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entity.Wallet{}).
		Pluck("user_id", &ids).Error
	return ids, err
}
