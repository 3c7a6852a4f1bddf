package service

import (
	"context"
	"log"
	"time"

	"mindhaven-backend/internal/entity"
	"mindhaven-backend/internal/modules/journal/dto"
	journalRepo "mindhaven-backend/internal/modules/journal/repository"
	reward "mindhaven-backend/internal/modules/reward/service"
	search "mindhaven-backend/internal/modules/search/service"
	"mindhaven-backend/pkg/apperror"
	"mindhaven-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JournalService interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.CreateJournalInput) (*entity.JournalEntry, *reward.ActivityGrant, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*entity.JournalEntry, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.JournalEntry, error)
	Update(ctx context.Context, userID, id uuid.UUID, input dto.UpdateJournalInput) (*entity.JournalEntry, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Search(ctx context.Context, userID uuid.UUID, query string, limit int64) ([]search.JournalHit, error)
}

type journalService struct {
	repo    journalRepo.JournalRepository
	txm     database.TxManager
	rewards reward.RewardService
	meili   search.SearchService
}

func NewJournalService(repo journalRepo.JournalRepository, txm database.TxManager, rewards reward.RewardService, meili search.SearchService) JournalService {
	return &journalService{repo: repo, txm: txm, rewards: rewards, meili: meili}
}

func (s *journalService) Create(ctx context.Context, userID uuid.UUID, input dto.CreateJournalInput) (*entity.JournalEntry, *reward.ActivityGrant, error) {
	entry := &entity.JournalEntry{
		UserID:  userID,
		Title:   input.Title,
		Content: input.Content,
	}

	var grant *reward.ActivityGrant
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, entry); err != nil {
			return err
		}
		var txErr error
		grant, txErr = s.rewards.CompleteActivityTx(ctx, tx, userID, entity.ActivityJournaling, time.Now().UTC())
		return txErr
	})
	if err != nil {
		return nil, nil, err
	}

	s.rewards.NotifyGrant(userID, grant.Entries)
	s.indexAsync(entry)

	return entry, grant, nil
}

func (s *journalService) Get(ctx context.Context, userID, id uuid.UUID) (*entity.JournalEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return entry, nil
}

func (s *journalService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *journalService) Update(ctx context.Context, userID, id uuid.UUID, input dto.UpdateJournalInput) (*entity.JournalEntry, error) {
	entry, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		entry.Title = *input.Title
	}
	if input.Content != nil {
		entry.Content = *input.Content
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.indexAsync(entry)
	return entry, nil
}

func (s *journalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	entry, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.meili != nil {
		go func() {
			if err := s.meili.DeleteJournal(entry.ID.String()); err != nil {
				log.Printf("Failed to delete journal %s from index: %v", entry.ID, err)
			}
		}()
	}
	return nil
}

func (s *journalService) Search(ctx context.Context, userID uuid.UUID, query string, limit int64) ([]search.JournalHit, error) {
	if s.meili == nil {
		return nil, apperror.ErrInternal
	}
	return s.meili.Search(userID.String(), query, limit)
}

func (s *journalService) indexAsync(entry *entity.JournalEntry) {
	if s.meili == nil {
		return
	}
	snapshot := *entry
	go func() {
		if err := s.meili.IndexJournal(&snapshot); err != nil {
			log.Printf("Failed to index journal %s: %v", snapshot.ID, err)
		}
	}()
}
