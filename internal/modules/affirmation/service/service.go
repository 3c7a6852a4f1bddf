package service

import (
	"context"
	"time"

	"mindhaven-backend/internal/entity"
	"mindhaven-backend/internal/modules/affirmation/dto"
	affirmationRepo "mindhaven-backend/internal/modules/affirmation/repository"
	reward "mindhaven-backend/internal/modules/reward/service"
	"mindhaven-backend/pkg/apperror"
	"mindhaven-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AffirmationService interface {
	// Create stores the affirmation. Writing a daily affirmation counts as a
	// wellness activity; permanent affirmations are reference material and
	// earn nothing.
	Create(ctx context.Context, userID uuid.UUID, input dto.CreateAffirmationInput) (*entity.Affirmation, *reward.ActivityGrant, error)
	List(ctx context.Context, userID uuid.UUID, kind string) ([]entity.Affirmation, error)
	UpdateReminder(ctx context.Context, userID, id uuid.UUID, input dto.UpdateReminderInput) (*entity.Affirmation, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type affirmationService struct {
	repo    affirmationRepo.AffirmationRepository
	txm     database.TxManager
	rewards reward.RewardService
}

func NewAffirmationService(repo affirmationRepo.AffirmationRepository, txm database.TxManager, rewards reward.RewardService) AffirmationService {
	return &affirmationService{repo: repo, txm: txm, rewards: rewards}
}

func (s *affirmationService) Create(ctx context.Context, userID uuid.UUID, input dto.CreateAffirmationInput) (*entity.Affirmation, *reward.ActivityGrant, error) {
	affirmation := &entity.Affirmation{
		UserID:         userID,
		Text:           input.Text,
		Kind:           input.Kind,
		ReminderActive: input.ReminderActive,
		ReminderTime:   input.ReminderTime,
	}

	if input.Kind == entity.AffirmationPermanent {
		if err := s.repo.Create(ctx, affirmation); err != nil {
			return nil, nil, err
		}
		return affirmation, nil, nil
	}

	var grant *reward.ActivityGrant
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, affirmation); err != nil {
			return err
		}
		var txErr error
		grant, txErr = s.rewards.CompleteActivityTx(ctx, tx, userID, entity.ActivityAffirmation, time.Now().UTC())
		return txErr
	})
	if err != nil {
		return nil, nil, err
	}

	s.rewards.NotifyGrant(userID, grant.Entries)
	return affirmation, grant, nil
}

func (s *affirmationService) List(ctx context.Context, userID uuid.UUID, kind string) ([]entity.Affirmation, error) {
	return s.repo.ListByUser(ctx, userID, kind)
}

func (s *affirmationService) UpdateReminder(ctx context.Context, userID, id uuid.UUID, input dto.UpdateReminderInput) (*entity.Affirmation, error) {
	affirmation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if affirmation.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	affirmation.ReminderActive = input.ReminderActive
	affirmation.ReminderTime = input.ReminderTime

	if err := s.repo.Update(ctx, affirmation); err != nil {
		return nil, err
	}
	return affirmation, nil
}

func (s *affirmationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	affirmation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if affirmation.UserID != userID {
		return apperror.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
