package service

import (
	"context"
	"time"

	"mindhaven-backend/internal/entity"
	"mindhaven-backend/internal/modules/mindfulness/dto"
	mindfulnessRepo "mindhaven-backend/internal/modules/mindfulness/repository"
	reward "mindhaven-backend/internal/modules/reward/service"
	"mindhaven-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MindfulnessService interface {
	Record(ctx context.Context, userID uuid.UUID, input dto.RecordSessionInput) (*entity.MindfulnessSession, *reward.ActivityGrant, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.MindfulnessSession, error)
	TotalDuration(ctx context.Context, userID uuid.UUID) (int, error)
}

type mindfulnessService struct {
	repo    mindfulnessRepo.MindfulnessRepository
	txm     database.TxManager
	rewards reward.RewardService
}

func NewMindfulnessService(repo mindfulnessRepo.MindfulnessRepository, txm database.TxManager, rewards reward.RewardService) MindfulnessService {
	return &mindfulnessService{repo: repo, txm: txm, rewards: rewards}
}

func (s *mindfulnessService) Record(ctx context.Context, userID uuid.UUID, input dto.RecordSessionInput) (*entity.MindfulnessSession, *reward.ActivityGrant, error) {
	session := &entity.MindfulnessSession{
		UserID:          userID,
		Exercise:        input.Exercise,
		DurationSeconds: input.DurationSeconds,
	}

	var grant *reward.ActivityGrant
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, session); err != nil {
			return err
		}
		var txErr error
		grant, txErr = s.rewards.CompleteActivityTx(ctx, tx, userID, entity.ActivityMindfulness, time.Now().UTC())
		return txErr
	})
	if err != nil {
		return nil, nil, err
	}

	s.rewards.NotifyGrant(userID, grant.Entries)
	return session, grant, nil
}

func (s *mindfulnessService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.MindfulnessSession, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *mindfulnessService) TotalDuration(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.TotalDuration(ctx, userID)
}
