package service

import (
	"context"

	"mindhaven-backend/internal/entity"
	reward "mindhaven-backend/internal/modules/reward/service"
	"mindhaven-backend/internal/modules/schedule/dto"
	scheduleRepo "mindhaven-backend/internal/modules/schedule/repository"
	"mindhaven-backend/pkg/apperror"
	"mindhaven-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleService interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.CreateScheduleInput) (*entity.Schedule, error)
	List(ctx context.Context, userID uuid.UUID, status string) ([]entity.Schedule, error)
	Cancel(ctx context.Context, userID, id uuid.UUID) (*entity.Schedule, error)
	// Complete marks the session done. The session reward fires only on the
	// active -> completed transition and only when the user attended.
	Complete(ctx context.Context, userID, id uuid.UUID, attended bool) (*entity.Schedule, *entity.LedgerEntry, error)
}

type scheduleService struct {
	repo    scheduleRepo.ScheduleRepository
	txm     database.TxManager
	rewards reward.RewardService
}

func NewScheduleService(repo scheduleRepo.ScheduleRepository, txm database.TxManager, rewards reward.RewardService) ScheduleService {
	return &scheduleService{repo: repo, txm: txm, rewards: rewards}
}

func (s *scheduleService) Create(ctx context.Context, userID uuid.UUID, input dto.CreateScheduleInput) (*entity.Schedule, error) {
	schedule := &entity.Schedule{
		UserID:           userID,
		ProfessionalName: input.ProfessionalName,
		StartTime:        input.StartTime,
		EndTime:          input.EndTime,
		Status:           entity.ScheduleStatusActive,
		MessageByUser:    input.MessageByUser,
		Anonymous:        input.Anonymous,
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) List(ctx context.Context, userID uuid.UUID, status string) ([]entity.Schedule, error) {
	return s.repo.ListByUser(ctx, userID, status)
}

func (s *scheduleService) Cancel(ctx context.Context, userID, id uuid.UUID) (*entity.Schedule, error) {
	var schedule *entity.Schedule
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		row, err := repo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if row.UserID != userID {
			return apperror.ErrForbidden
		}
		if row.Status != entity.ScheduleStatusActive {
			return apperror.ErrConflictingUpdate
		}

		row.Status = entity.ScheduleStatusCancelled
		if err := repo.Update(ctx, row); err != nil {
			return err
		}
		schedule = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) Complete(ctx context.Context, userID, id uuid.UUID, attended bool) (*entity.Schedule, *entity.LedgerEntry, error) {
	var (
		schedule *entity.Schedule
		entry    *entity.LedgerEntry
	)
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		row, err := repo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if row.UserID != userID {
			return apperror.ErrForbidden
		}
		if row.Status != entity.ScheduleStatusActive {
			return apperror.ErrConflictingUpdate
		}

		row.Status = entity.ScheduleStatusCompleted
		row.UserAttended = attended
		if err := repo.Update(ctx, row); err != nil {
			return err
		}
		schedule = row

		if attended {
			entry, err = s.rewards.GrantSessionTx(ctx, tx, userID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if entry != nil {
		s.rewards.NotifyGrant(userID, []entity.LedgerEntry{*entry})
	}
	return schedule, entry, nil
}
