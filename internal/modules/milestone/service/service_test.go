package service

import (
	"context"
	"sync"
	"testing"

	"mindhaven-backend/internal/entity"
	milestoneRepo "mindhaven-backend/internal/modules/milestone/repository"
	walletRepo "mindhaven-backend/internal/modules/wallet/repository"
	"mindhaven-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubTxManager struct{}

func (stubTxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type memWalletRepo struct {
	mu      sync.Mutex
	wallets map[uuid.UUID]*entity.Wallet
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{wallets: make(map[uuid.UUID]*entity.Wallet)}
}

func (r *memWalletRepo) WithTx(tx *gorm.DB) walletRepo.WalletRepository { return r }

func (r *memWalletRepo) Create(ctx context.Context, w *entity.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	r.wallets[w.UserID] = w
	return nil
}

func (r *memWalletRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[userID]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	copy := *w
	return &copy, nil
}

func (r *memWalletRepo) LockByUserID(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	return r.FindByUserID(ctx, userID)
}

func (r *memWalletRepo) AddPoints(ctx context.Context, walletID uuid.UUID, points, recommended int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wallets {
		if w.ID == walletID {
			w.TotalPoints += points
			w.RecommendedPoints += recommended
			return nil
		}
	}
	return apperror.ErrNotFound
}

func (r *memWalletRepo) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for id := range r.wallets {
		ids = append(ids, id)
	}
	return ids, nil
}

type memMilestoneRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   []entity.BountyMilestone
}

func (r *memMilestoneRepo) WithTx(tx *gorm.DB) milestoneRepo.MilestoneRepository { return r }

func (r *memMilestoneRepo) Create(ctx context.Context, row *entity.BountyMilestone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	row.ID = r.nextID
	r.rows = append(r.rows, *row)
	return nil
}

func (r *memMilestoneRepo) Find(ctx context.Context, userID uuid.UUID, milestone int) (*entity.BountyMilestone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].UserID == userID && r.rows[i].Milestone == milestone {
			copy := r.rows[i]
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *memMilestoneRepo) MarkClaimed(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Claimed = true
			return nil
		}
	}
	return apperror.ErrNotFound
}

func (r *memMilestoneRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.BountyMilestone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []entity.BountyMilestone
	for _, row := range r.rows {
		if row.UserID == userID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func newTestService(t *testing.T, totalPoints int) (MilestoneService, uuid.UUID, *memMilestoneRepo) {
	t.Helper()

	wallets := newMemWalletRepo()
	milestones := &memMilestoneRepo{}
	userID := uuid.New()
	require.NoError(t, wallets.Create(context.Background(), &entity.Wallet{
		UserID:      userID,
		TotalPoints: totalPoints,
	}))

	svc := NewMilestoneService(stubTxManager{}, milestones, wallets, nil)
	return svc, userID, milestones
}

func TestClaimInvalidMilestone(t *testing.T) {
	svc, userID, _ := newTestService(t, 5000)

	_, err := svc.Claim(context.Background(), userID, 1234)
	assert.ErrorIs(t, err, apperror.ErrInvalidMilestone)
}

func TestClaimNotYetAchieved(t *testing.T) {
	svc, userID, _ := newTestService(t, 900)

	_, err := svc.Claim(context.Background(), userID, 1000)
	assert.ErrorIs(t, err, apperror.ErrNotYetAchieved)
}

func TestClaimCreatesClaimedRowWhenUndetected(t *testing.T) {
	svc, userID, repo := newTestService(t, 1200)

	row, err := svc.Claim(context.Background(), userID, 1000)
	require.NoError(t, err)

	assert.True(t, row.Claimed)
	assert.Equal(t, 1000, row.Milestone)
	require.NotNil(t, row.DateAchieved)

	stored, err := repo.Find(context.Background(), userID, 1000)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Claimed)
}

func TestClaimMarksDetectedRow(t *testing.T) {
	svc, userID, _ := newTestService(t, 2600)

	detected, err := svc.DetectAchievements(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, detected, 2)
	assert.False(t, detected[0].Claimed)

	row, err := svc.Claim(context.Background(), userID, 2500)
	require.NoError(t, err)
	assert.True(t, row.Claimed)
}

func TestClaimTwiceRejected(t *testing.T) {
	svc, userID, _ := newTestService(t, 1200)

	_, err := svc.Claim(context.Background(), userID, 1000)
	require.NoError(t, err)

	_, err = svc.Claim(context.Background(), userID, 1000)
	assert.ErrorIs(t, err, apperror.ErrAlreadyClaimed)
}

func TestDetectAchievementsStopsAtTotal(t *testing.T) {
	svc, userID, _ := newTestService(t, 2600)

	detected, err := svc.DetectAchievements(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, detected, 2)
	assert.Equal(t, 1000, detected[0].Milestone)
	assert.Equal(t, 2500, detected[1].Milestone)

	rows, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestDetectAchievementsIdempotent(t *testing.T) {
	svc, userID, _ := newTestService(t, 1500)

	first, err := svc.DetectAchievements(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := svc.DetectAchievements(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestDetectAchievementsBelowFirstThreshold(t *testing.T) {
	svc, userID, _ := newTestService(t, 999)

	detected, err := svc.DetectAchievements(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, detected)
}

func TestSweepCoversEveryWallet(t *testing.T) {
	wallets := newMemWalletRepo()
	milestones := &memMilestoneRepo{}
	svc := NewMilestoneService(stubTxManager{}, milestones, wallets, nil)

	rich := uuid.New()
	poor := uuid.New()
	require.NoError(t, wallets.Create(context.Background(), &entity.Wallet{UserID: rich, TotalPoints: 10000}))
	require.NoError(t, wallets.Create(context.Background(), &entity.Wallet{UserID: poor, TotalPoints: 100}))

	require.NoError(t, svc.Sweep(context.Background()))

	richRows, err := svc.List(context.Background(), rich)
	require.NoError(t, err)
	assert.Len(t, richRows, len(entity.MilestoneThresholds))

	poorRows, err := svc.List(context.Background(), poor)
	require.NoError(t, err)
	assert.Empty(t, poorRows)
}
