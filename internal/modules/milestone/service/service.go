package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"mindhaven-backend/internal/entity"
	milestoneRepo "mindhaven-backend/internal/modules/milestone/repository"
	notifService "mindhaven-backend/internal/modules/notification/service"
	walletRepo "mindhaven-backend/internal/modules/wallet/repository"
	"mindhaven-backend/pkg/apperror"
	"mindhaven-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MilestoneService tracks users crossing the fixed bounty-point thresholds
// and lets them claim each one exactly once. The achieved/claimed decision is
// always made against the wallet's lifetime total, under the wallet row lock.
type MilestoneService interface {
	List(ctx context.Context, userID uuid.UUID) ([]entity.BountyMilestone, error)
	Claim(ctx context.Context, userID uuid.UUID, milestone int) (*entity.BountyMilestone, error)
	// DetectAchievements records unclaimed milestone rows for every threshold
	// the user's lifetime total has crossed, and returns the newly detected
	// ones.
	DetectAchievements(ctx context.Context, userID uuid.UUID) ([]entity.BountyMilestone, error)
	// Sweep runs DetectAchievements for every wallet-holding user.
	Sweep(ctx context.Context) error
}

type milestoneService struct {
	txm        database.TxManager
	milestones milestoneRepo.MilestoneRepository
	wallets    walletRepo.WalletRepository
	notifier   notifService.NotificationService
}

func NewMilestoneService(
	txm database.TxManager,
	milestones milestoneRepo.MilestoneRepository,
	wallets walletRepo.WalletRepository,
	notifier notifService.NotificationService,
) MilestoneService {
	return &milestoneService{
		txm:        txm,
		milestones: milestones,
		wallets:    wallets,
		notifier:   notifier,
	}
}

func (s *milestoneService) List(ctx context.Context, userID uuid.UUID) ([]entity.BountyMilestone, error) {
	return s.milestones.ListByUser(ctx, userID)
}

func (s *milestoneService) Claim(ctx context.Context, userID uuid.UUID, milestone int) (*entity.BountyMilestone, error) {
	if !entity.ValidMilestone(milestone) {
		return nil, apperror.ErrInvalidMilestone
	}

	var claimed *entity.BountyMilestone
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		wallet, err := s.wallets.WithTx(tx).LockByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if wallet.TotalPoints < milestone {
			return apperror.ErrNotYetAchieved
		}

		repo := s.milestones.WithTx(tx)
		row, err := repo.Find(ctx, userID, milestone)
		if err != nil {
			return err
		}

		switch {
		case row == nil:
			now := time.Now().UTC()
			row = &entity.BountyMilestone{
				UserID:       userID,
				Milestone:    milestone,
				Claimed:      true,
				DateAchieved: &now,
			}
			if err := repo.Create(ctx, row); err != nil {
				return err
			}
		case row.Claimed:
			return apperror.ErrAlreadyClaimed
		default:
			if err := repo.MarkClaimed(ctx, row.ID); err != nil {
				return err
			}
			row.Claimed = true
		}

		claimed = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(userID, entity.NotificationMilestoneClaimed,
		fmt.Sprintf("You claimed the %d bounty point milestone!", milestone))
	return claimed, nil
}

func (s *milestoneService) DetectAchievements(ctx context.Context, userID uuid.UUID) ([]entity.BountyMilestone, error) {
	var detected []entity.BountyMilestone
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		wallet, err := s.wallets.WithTx(tx).LockByUserID(ctx, userID)
		if err != nil {
			return err
		}

		repo := s.milestones.WithTx(tx)
		for _, threshold := range entity.MilestoneThresholds {
			if wallet.TotalPoints < threshold {
				break
			}
			existing, err := repo.Find(ctx, userID, threshold)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}

			now := time.Now().UTC()
			row := entity.BountyMilestone{
				UserID:       userID,
				Milestone:    threshold,
				DateAchieved: &now,
			}
			if err := repo.Create(ctx, &row); err != nil {
				return err
			}
			detected = append(detected, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, row := range detected {
		s.notify(userID, entity.NotificationMilestoneAchieved,
			fmt.Sprintf("You reached %d bounty points. Claim your milestone!", row.Milestone))
	}
	return detected, nil
}

func (s *milestoneService) Sweep(ctx context.Context) error {
	userIDs, err := s.wallets.ListUserIDs(ctx)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		if _, err := s.DetectAchievements(ctx, userID); err != nil {
			log.Printf("Milestone sweep failed for user %s: %v", userID, err)
		}
	}
	return nil
}

func (s *milestoneService) notify(userID uuid.UUID, notifType, message string) {
	if s.notifier == nil {
		return
	}
	go func() {
		notification := &entity.Notification{
			UserID:  userID,
			Type:    notifType,
			Message: message,
		}
		if err := s.notifier.CreateNotification(context.Background(), notification); err != nil {
			log.Printf("Failed to send milestone notification to user %s: %v", userID, err)
		}
	}()
}
