package service

import (
	"context"
	"log"
	"time"

	"mindhaven-backend/internal/entity"
	"mindhaven-backend/internal/modules/goal/dto"
	goalRepo "mindhaven-backend/internal/modules/goal/repository"
	reward "mindhaven-backend/internal/modules/reward/service"
	"mindhaven-backend/pkg/apperror"
	"mindhaven-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalService interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.CreateGoalInput) (*entity.Goal, *reward.ActivityGrant, error)
	List(ctx context.Context, userID uuid.UUID, goalType string) ([]entity.Goal, error)
	Update(ctx context.Context, userID, id uuid.UUID, input dto.UpdateGoalInput) (*entity.Goal, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) (*entity.Goal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// AdvanceStatuses moves daily goals along Added -> Started -> Completed
	// as their start and end times pass. Cancelled goals never move.
	AdvanceStatuses(ctx context.Context) error
}

type goalService struct {
	repo    goalRepo.GoalRepository
	txm     database.TxManager
	rewards reward.RewardService
}

func NewGoalService(repo goalRepo.GoalRepository, txm database.TxManager, rewards reward.RewardService) GoalService {
	return &goalService{repo: repo, txm: txm, rewards: rewards}
}

func (s *goalService) Create(ctx context.Context, userID uuid.UUID, input dto.CreateGoalInput) (*entity.Goal, *reward.ActivityGrant, error) {
	goal := &entity.Goal{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Type:        input.Type,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      entity.GoalStatusAdded,
	}

	var grant *reward.ActivityGrant
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, goal); err != nil {
			return err
		}
		var txErr error
		grant, txErr = s.rewards.CompleteActivityTx(ctx, tx, userID, entity.ActivityGoalSetting, time.Now().UTC())
		return txErr
	})
	if err != nil {
		return nil, nil, err
	}

	s.rewards.NotifyGrant(userID, grant.Entries)
	return goal, grant, nil
}

func (s *goalService) List(ctx context.Context, userID uuid.UUID, goalType string) ([]entity.Goal, error) {
	return s.repo.ListByUser(ctx, userID, goalType)
}

func (s *goalService) Update(ctx context.Context, userID, id uuid.UUID, input dto.UpdateGoalInput) (*entity.Goal, error) {
	goal, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = input.Description
	}
	if input.ImageURL != nil {
		goal.ImageURL = input.ImageURL
	}
	if input.StartTime != nil {
		goal.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		goal.EndTime = input.EndTime
	}
	if input.StartDate != nil {
		goal.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		goal.EndDate = input.EndDate
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) (*entity.Goal, error) {
	goal, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if goal.Status == entity.GoalStatusCancelled {
		return nil, apperror.ErrConflictingUpdate
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	goal.Status = status
	return goal, nil
}

func (s *goalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *goalService) AdvanceStatuses(ctx context.Context) error {
	goals, err := s.repo.ListActive(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for i := range goals {
		goal := &goals[i]

		if goal.Status == entity.GoalStatusAdded && timeOfDayPassed(goal.StartTime, now) {
			if err := s.repo.UpdateStatus(ctx, goal.ID, entity.GoalStatusStarted); err != nil {
				log.Printf("Failed to start goal %s: %v", goal.ID, err)
				continue
			}
			goal.Status = entity.GoalStatusStarted
		}

		if goal.Status == entity.GoalStatusStarted && timeOfDayPassed(goal.EndTime, now) {
			if err := s.repo.UpdateStatus(ctx, goal.ID, entity.GoalStatusCompleted); err != nil {
				log.Printf("Failed to complete goal %s: %v", goal.ID, err)
			}
		}
	}
	return nil
}

func (s *goalService) owned(ctx context.Context, userID, id uuid.UUID) (*entity.Goal, error) {
	goal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return goal, nil
}

// timeOfDayPassed reports whether the "HH:MM" clock time is at or before now,
// taken on today's date.
func timeOfDayPassed(clock *string, now time.Time) bool {
	if clock == nil {
		return false
	}
	t, err := time.ParseInLocation("15:04", *clock, now.Location())
	if err != nil {
		return false
	}
	at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	return !at.After(now)
}
