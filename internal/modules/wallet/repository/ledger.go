package repository

import (
	"context"
	"errors"

	"mindhaven-backend/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MonthlyCategorySum is one row of the grouped ledger aggregation.
type MonthlyCategorySum struct {
	Month             string `json:"month"`
	Category          string `json:"category"`
	Points            int    `json:"points"`
	RecommendedPoints int    `json:"recommended_points"`
}

type LedgerRepository interface {
	WithTx(tx *gorm.DB) LedgerRepository
	// Find returns the single entry for the (wallet, user, category, month)
	// window, or nil when no grant has been recorded there yet.
	Find(ctx context.Context, walletID, userID uuid.UUID, category, month string) (*entity.LedgerEntry, error)
	// FindByCategory returns the user's entry for category in any month, or
	// nil. Used as the once-ever guard for the first-time bonus.
	FindByCategory(ctx context.Context, userID uuid.UUID, category string) (*entity.LedgerEntry, error)
	// UpsertAccumulate inserts the entry or, when the window row already
	// exists, adds the amounts in place. The insert-or-add runs as one
	// statement so concurrent grants cannot lose an increment. entry is
	// reloaded with the final row state.
	UpsertAccumulate(ctx context.Context, entry *entity.LedgerEntry) error
	SumPointsByUser(ctx context.Context, userID uuid.UUID) (int, error)
	SumPointsByUserAndMonth(ctx context.Context, userID uuid.UUID, month string) (int, error)
	MonthlyBreakdown(ctx context.Context, userID uuid.UUID) ([]MonthlyCategorySum, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.LedgerEntry, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) WithTx(tx *gorm.DB) LedgerRepository {
	if tx == nil {
		return r
	}
	return &ledgerRepository{db: tx}
}

func (r *ledgerRepository) Find(ctx context.Context, walletID, userID uuid.UUID, category, month string) (*entity.LedgerEntry, error) {
	var entry entity.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("wallet_id = ? AND user_id = ? AND category = ? AND month = ?", walletID, userID, category, month).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *ledgerRepository) FindByCategory(ctx context.Context, userID uuid.UUID, category string) (*entity.LedgerEntry, error) {
	var entry entity.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *ledgerRepository) UpsertAccumulate(ctx context.Context, entry *entity.LedgerEntry) error {
	amount := entry.LastAddedPoints
	recommended := entry.RecommendedPoints

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "wallet_id"}, {Name: "user_id"}, {Name: "category"}, {Name: "month"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points":             gorm.Expr("ledger_entries.points + ?", amount),
			"recommended_points": gorm.Expr("ledger_entries.recommended_points + ?", recommended),
			"last_added_points":  amount,
			"name":               entry.Name,
			"date":               entry.Date,
		}),
	}).Create(entry).Error
	if err != nil {
		return err
	}

	// Reload so callers see the accumulated totals, not just this increment.
	return r.db.WithContext(ctx).
		Where("wallet_id = ? AND user_id = ? AND category = ? AND month = ?",
			entry.WalletID, entry.UserID, entry.Category, entry.Month).
		First(entry).Error
}

func (r *ledgerRepository) SumPointsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&entity.LedgerEntry{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

func (r *ledgerRepository) SumPointsByUserAndMonth(ctx context.Context, userID uuid.UUID, month string) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&entity.LedgerEntry{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id = ? AND month = ?", userID, month).
		Scan(&total).Error
	return total, err
}

func (r *ledgerRepository) MonthlyBreakdown(ctx context.Context, userID uuid.UUID) ([]MonthlyCategorySum, error) {
	var rows []MonthlyCategorySum
	err := r.db.WithContext(ctx).Model(&entity.LedgerEntry{}).
		Select("month, category, SUM(points) as points, SUM(recommended_points) as recommended_points").
		Where("user_id = ?", userID).
		Group("month, category").
		Order("month DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.LedgerEntry, error) {
	var entries []entity.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&entries).Error
	return entries, err
}
