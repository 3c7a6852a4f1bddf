package service

import (
	"context"
	"errors"
	"time"

	"mindhaven-backend/internal/entity"
	walletDto "mindhaven-backend/internal/modules/wallet/dto"
	walletRepo "mindhaven-backend/internal/modules/wallet/repository"
	"mindhaven-backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WalletService interface {
	GetWallet(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error)
	// GetOrCreateTx returns the user's wallet, creating an empty one inside
	// the given transaction when none exists yet.
	GetOrCreateTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.Wallet, error)
	GetLedger(ctx context.Context, userID uuid.UUID) ([]entity.LedgerEntry, error)
	// GetMonthlySummary aggregates the ledger by month and category. It is a
	// per-month view derived from ledger rows, not the wallet running total.
	GetMonthlySummary(ctx context.Context, userID uuid.UUID) (*walletDto.MonthlySummaryResponse, error)
}

type walletService struct {
	wallets walletRepo.WalletRepository
	ledger  walletRepo.LedgerRepository
}

func NewWalletService(wallets walletRepo.WalletRepository, ledger walletRepo.LedgerRepository) WalletService {
	return &walletService{
		wallets: wallets,
		ledger:  ledger,
	}
}

func (s *walletService) GetWallet(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	return s.wallets.FindByUserID(ctx, userID)
}

func (s *walletService) GetOrCreateTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.Wallet, error) {
	wallets := s.wallets.WithTx(tx)

	wallet, err := wallets.LockByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	wallet = &entity.Wallet{
		UserID: userID,
		Month:  time.Now().UTC().Format(entity.MonthLayout),
	}
	if createErr := wallets.Create(ctx, wallet); createErr != nil {
		return nil, createErr
	}
	return wallet, nil
}

func (s *walletService) GetLedger(ctx context.Context, userID uuid.UUID) ([]entity.LedgerEntry, error) {
	return s.ledger.ListByUser(ctx, userID)
}

func (s *walletService) GetMonthlySummary(ctx context.Context, userID uuid.UUID) (*walletDto.MonthlySummaryResponse, error) {
	rows, err := s.ledger.MonthlyBreakdown(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &walletDto.MonthlySummaryResponse{
		Months: make(map[string]walletDto.MonthSummary),
	}

	for _, row := range rows {
		month := resp.Months[row.Month]
		if month.Categories == nil {
			month.Categories = make(map[string]walletDto.CategorySummary)
		}
		month.TotalPoints += row.Points
		month.Categories[row.Category] = walletDto.CategorySummary{
			Points:            row.Points,
			RecommendedPoints: row.RecommendedPoints,
		}
		resp.Months[row.Month] = month
	}

	return resp, nil
}
