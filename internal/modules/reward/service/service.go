package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"mindhaven-backend/internal/entity"
	activity "mindhaven-backend/internal/modules/activity/service"
	notifService "mindhaven-backend/internal/modules/notification/service"
	walletRepo "mindhaven-backend/internal/modules/wallet/repository"
	"mindhaven-backend/pkg/apperror"
	"mindhaven-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SignupPoints   = 50
	FeedbackPoints = 10
	SessionPoints  = 50
	StreakPoints   = 20

	// StreakDays is the number of consecutive days of the same activity that
	// earn the streak bonus.
	StreakDays = 3
)

// FirstTimePoints returns the one-off bonus for a user's very first recorded
// activity. Vision board pays more than the other kinds.
func FirstTimePoints(kind entity.ActivityKind) int {
	if kind == entity.ActivityVisionBoard {
		return 50
	}
	return 30
}

// DisplayName is the human label written to ledger rows for a kind.
func DisplayName(kind entity.ActivityKind) string {
	switch kind {
	case entity.ActivityAffirmation:
		return "Affirmations"
	case entity.ActivityJournaling:
		return "Journaling"
	case entity.ActivityMindfulness:
		return "Mindfulness"
	case entity.ActivityGoalSetting:
		return "Goal Setting"
	case entity.ActivityVisionBoard:
		return "Vision Board"
	}
	return string(kind)
}

// ActivityGrant is the outcome of recording one activity: the day row, any
// ledger entries minted by the rules, and the wallet after applying them.
type ActivityGrant struct {
	Activity *entity.DailyActivity `json:"activity"`
	Entries  []entity.LedgerEntry  `json:"entries"`
	Wallet   *entity.Wallet        `json:"wallet"`
}

// RewardService decides, for a given user action, whether to mint ledger
// entries and how to apply them to the wallet. Every evaluation locks the
// user's wallet row first, so concurrent grants for one user serialize.
//
// The *Tx variants run inside a caller-owned transaction so the triggering
// domain write (affirmation, feedback row, ...) commits or rolls back
// together with the grant.
type RewardService interface {
	CompleteActivity(ctx context.Context, userID uuid.UUID, kind entity.ActivityKind, at time.Time) (*ActivityGrant, error)
	CompleteActivityTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, kind entity.ActivityKind, at time.Time) (*ActivityGrant, error)
	// GrantSignupTx creates the user's wallet with the welcome grant. The
	// wallet is new, so no upsert guard is needed.
	GrantSignupTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.Wallet, *entity.LedgerEntry, error)
	GrantFeedbackTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.LedgerEntry, error)
	GrantSessionTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.LedgerEntry, error)
	// AddPoints is the generic grant primitive used by external callers:
	// upserts the (category, month) ledger window and applies the amount to
	// the wallet.
	AddPoints(ctx context.Context, userID uuid.UUID, name, category string, points int) (*entity.LedgerEntry, error)
	// NotifyGrant fans out reward notifications asynchronously. Callers of
	// the *Tx variants invoke it after their transaction commits.
	NotifyGrant(userID uuid.UUID, entries []entity.LedgerEntry)
}

type rewardService struct {
	txm        database.TxManager
	wallets    walletRepo.WalletRepository
	ledger     walletRepo.LedgerRepository
	activities activity.ActivityService
	notifier   notifService.NotificationService
}

func NewRewardService(
	txm database.TxManager,
	wallets walletRepo.WalletRepository,
	ledger walletRepo.LedgerRepository,
	activities activity.ActivityService,
	notifier notifService.NotificationService,
) RewardService {
	return &rewardService{
		txm:        txm,
		wallets:    wallets,
		ledger:     ledger,
		activities: activities,
		notifier:   notifier,
	}
}

func (s *rewardService) CompleteActivity(ctx context.Context, userID uuid.UUID, kind entity.ActivityKind, at time.Time) (*ActivityGrant, error) {
	var grant *ActivityGrant
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		var txErr error
		grant, txErr = s.CompleteActivityTx(ctx, tx, userID, kind, at)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.NotifyGrant(userID, grant.Entries)
	return grant, nil
}

func (s *rewardService) CompleteActivityTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, kind entity.ActivityKind, at time.Time) (*ActivityGrant, error) {
	if !kind.Valid() {
		return nil, apperror.ErrInvalidInput
	}

	// Lock the wallet row up front: it is the contended resource, and taking
	// the lock first gives all grant paths one consistent lock order.
	wallet, err := s.wallets.WithTx(tx).LockByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := entity.NewDay(at)

	hadPrior, err := s.activities.HasActivityBeforeTx(ctx, tx, userID, today)
	if err != nil {
		return nil, err
	}

	row, err := s.activities.RecordActivityTx(ctx, tx, userID, kind, at)
	if err != nil {
		return nil, err
	}

	grant := &ActivityGrant{Activity: row, Wallet: wallet}

	// Rule 1: first-ever recorded activity of any kind. Guarded once-ever by
	// the presence of a First Time Update ledger entry, so a second activity
	// later the same day cannot re-fire it.
	if !hadPrior {
		existing, err := s.ledger.WithTx(tx).FindByCategory(ctx, userID, entity.CategoryFirstTime)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			entry, err := s.grantTx(ctx, tx, wallet, DisplayName(kind), entity.CategoryFirstTime, FirstTimePoints(kind), at)
			if err != nil {
				return nil, err
			}
			grant.Entries = append(grant.Entries, *entry)
		}
	}

	// Rule 2: the kind was completed on each of the last StreakDays
	// consecutive days ending today. Guarded once per calendar day: a repeat
	// trigger the same day finds the entry's date already on today and skips.
	streak, err := s.activities.StreakCompleteTx(ctx, tx, userID, kind, at, StreakDays)
	if err != nil {
		return nil, err
	}
	if streak {
		granted, err := s.grantedToday(ctx, tx, wallet, entity.CategoryStreak, at)
		if err != nil {
			return nil, err
		}
		if !granted {
			entry, err := s.grantTx(ctx, tx, wallet, DisplayName(kind), entity.CategoryStreak, StreakPoints, at)
			if err != nil {
				return nil, err
			}
			grant.Entries = append(grant.Entries, *entry)
		}
	}

	return grant, nil
}

func (s *rewardService) GrantSignupTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.Wallet, *entity.LedgerEntry, error) {
	now := time.Now().UTC()

	wallet := &entity.Wallet{
		UserID: userID,
		Month:  now.Format(entity.MonthLayout),
	}
	if err := s.wallets.WithTx(tx).Create(ctx, wallet); err != nil {
		return nil, nil, err
	}

	entry, err := s.grantTx(ctx, tx, wallet, "Welcome Bonus", entity.CategorySignup, SignupPoints, now)
	if err != nil {
		return nil, nil, err
	}

	return wallet, entry, nil
}

func (s *rewardService) GrantFeedbackTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.LedgerEntry, error) {
	return s.lockAndGrantTx(ctx, tx, userID, "Feedback", entity.CategoryFeedback, FeedbackPoints)
}

func (s *rewardService) GrantSessionTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entity.LedgerEntry, error) {
	return s.lockAndGrantTx(ctx, tx, userID, "Counseling Session", entity.CategorySession, SessionPoints)
}

func (s *rewardService) AddPoints(ctx context.Context, userID uuid.UUID, name, category string, points int) (*entity.LedgerEntry, error) {
	if points <= 0 || name == "" || category == "" {
		return nil, apperror.ErrInvalidInput
	}

	var entry *entity.LedgerEntry
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		var txErr error
		entry, txErr = s.lockAndGrantTx(ctx, tx, userID, name, category, points)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.NotifyGrant(userID, []entity.LedgerEntry{*entry})
	return entry, nil
}

func (s *rewardService) lockAndGrantTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name, category string, points int) (*entity.LedgerEntry, error) {
	wallet, err := s.wallets.WithTx(tx).LockByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.grantTx(ctx, tx, wallet, name, category, points, time.Now().UTC())
}

// grantTx mints or accumulates the ledger entry for (wallet, category, month)
// and applies the same amount to both wallet balances. Caller must hold the
// wallet row lock.
func (s *rewardService) grantTx(ctx context.Context, tx *gorm.DB, wallet *entity.Wallet, name, category string, points int, at time.Time) (*entity.LedgerEntry, error) {
	entry := &entity.LedgerEntry{
		WalletID:          wallet.ID,
		UserID:            wallet.UserID,
		Name:              name,
		Category:          category,
		Points:            points,
		RecommendedPoints: points,
		LastAddedPoints:   points,
		Month:             at.Format(entity.MonthLayout),
		Date:              at,
	}

	if err := s.ledger.WithTx(tx).UpsertAccumulate(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.wallets.WithTx(tx).AddPoints(ctx, wallet.ID, points, points); err != nil {
		return nil, err
	}
	wallet.TotalPoints += points
	wallet.RecommendedPoints += points

	return entry, nil
}

// grantedToday reports whether the category already carries a grant dated on
// the same calendar day as at.
func (s *rewardService) grantedToday(ctx context.Context, tx *gorm.DB, wallet *entity.Wallet, category string, at time.Time) (bool, error) {
	existing, err := s.ledger.WithTx(tx).Find(ctx, wallet.ID, wallet.UserID, category, at.Format(entity.MonthLayout))
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	return existing.Date.UTC().Format(entity.DateLayout) == at.UTC().Format(entity.DateLayout), nil
}

func (s *rewardService) NotifyGrant(userID uuid.UUID, entries []entity.LedgerEntry) {
	if s.notifier == nil || len(entries) == 0 {
		return
	}

	go func() {
		ctx := context.Background()
		for i := range entries {
			entry := entries[i]
			notification := &entity.Notification{
				UserID:  userID,
				Type:    entity.NotificationRewardGranted,
				Message: fmt.Sprintf("You earned %d bounty points: %s", entry.LastAddedPoints, entry.Category),
			}
			if err := s.notifier.CreateNotification(ctx, notification); err != nil {
				log.Printf("Failed to send reward notification to user %s: %v", userID, err)
			}
		}
	}()
}
