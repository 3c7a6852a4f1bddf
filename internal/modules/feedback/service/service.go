package service

import (
	"context"

	"mindhaven-backend/internal/entity"
	"mindhaven-backend/internal/modules/feedback/dto"
	feedbackRepo "mindhaven-backend/internal/modules/feedback/repository"
	reward "mindhaven-backend/internal/modules/reward/service"
	"mindhaven-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackService interface {
	// Submit stores the feedback and grants the feedback reward in one
	// transaction. Repeat submissions in the same month accumulate on the
	// same ledger entry.
	Submit(ctx context.Context, userID uuid.UUID, input dto.SubmitFeedbackInput) (*entity.Feedback, *entity.LedgerEntry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Feedback, error)
	ListAll(ctx context.Context, limit, offset int) ([]entity.Feedback, error)
}

type feedbackService struct {
	repo    feedbackRepo.FeedbackRepository
	txm     database.TxManager
	rewards reward.RewardService
}

func NewFeedbackService(repo feedbackRepo.FeedbackRepository, txm database.TxManager, rewards reward.RewardService) FeedbackService {
	return &feedbackService{repo: repo, txm: txm, rewards: rewards}
}

func (s *feedbackService) Submit(ctx context.Context, userID uuid.UUID, input dto.SubmitFeedbackInput) (*entity.Feedback, *entity.LedgerEntry, error) {
	feedback := &entity.Feedback{
		UserID:   userID,
		Username: input.Username,
		Email:    input.Email,
		Phone:    input.Phone,
		Message:  input.Message,
		Rating:   input.Rating,
	}

	var entry *entity.LedgerEntry
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, feedback); err != nil {
			return err
		}
		var txErr error
		entry, txErr = s.rewards.GrantFeedbackTx(ctx, tx, userID)
		return txErr
	})
	if err != nil {
		return nil, nil, err
	}

	s.rewards.NotifyGrant(userID, []entity.LedgerEntry{*entry})
	return feedback, entry, nil
}

func (s *feedbackService) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Feedback, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *feedbackService) ListAll(ctx context.Context, limit, offset int) ([]entity.Feedback, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListAll(ctx, limit, offset)
}
