package service

import (
	"context"
	"io"
	"log"
	"time"

	"mindhaven-backend/internal/entity"
	reward "mindhaven-backend/internal/modules/reward/service"
	visionboardRepo "mindhaven-backend/internal/modules/visionboard/repository"
	"mindhaven-backend/pkg/apperror"
	"mindhaven-backend/pkg/database"
	"mindhaven-backend/pkg/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateItemInput struct {
	Title       string
	Description *string
	// Image is optional. When set it is uploaded to the image storage before
	// the item is saved.
	Image         io.Reader
	ImageFileName string
}

type VisionBoardService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateItemInput) (*entity.VisionBoardItem, *reward.ActivityGrant, error)
	List(ctx context.Context, userID uuid.UUID) ([]entity.VisionBoardItem, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type visionBoardService struct {
	repo    visionboardRepo.VisionBoardRepository
	txm     database.TxManager
	rewards reward.RewardService
	images  storage.ImageStorage
	folder  string
}

func NewVisionBoardService(
	repo visionboardRepo.VisionBoardRepository,
	txm database.TxManager,
	rewards reward.RewardService,
	images storage.ImageStorage,
	folder string,
) VisionBoardService {
	if folder == "" {
		folder = "visionboards"
	}
	return &visionBoardService{repo: repo, txm: txm, rewards: rewards, images: images, folder: folder}
}

func (s *visionBoardService) Create(ctx context.Context, userID uuid.UUID, input CreateItemInput) (*entity.VisionBoardItem, *reward.ActivityGrant, error) {
	item := &entity.VisionBoardItem{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
	}

	// Upload outside the transaction; a failed DB write leaves at worst an
	// orphaned image, which the delete path also tolerates.
	if input.Image != nil {
		if s.images == nil {
			return nil, nil, apperror.ErrInternal
		}
		url, err := s.images.UploadImage(ctx, input.Image, s.folder, input.ImageFileName)
		if err != nil {
			return nil, nil, err
		}
		item.ImageURL = &url
	}

	var grant *reward.ActivityGrant
	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, item); err != nil {
			return err
		}
		var txErr error
		grant, txErr = s.rewards.CompleteActivityTx(ctx, tx, userID, entity.ActivityVisionBoard, time.Now().UTC())
		return txErr
	})
	if err != nil {
		if item.ImageURL != nil && s.images != nil {
			if delErr := s.images.DeleteImage(context.Background(), *item.ImageURL); delErr != nil {
				log.Printf("Failed to clean up vision board image: %v", delErr)
			}
		}
		return nil, nil, err
	}

	s.rewards.NotifyGrant(userID, grant.Entries)
	return item, grant, nil
}

func (s *visionBoardService) List(ctx context.Context, userID uuid.UUID) ([]entity.VisionBoardItem, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *visionBoardService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return apperror.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if item.ImageURL != nil && s.images != nil {
		go func() {
			if err := s.images.DeleteImage(context.Background(), *item.ImageURL); err != nil {
				log.Printf("Failed to delete vision board image: %v", err)
			}
		}()
	}
	return nil
}
