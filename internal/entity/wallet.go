package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MonthLayout is the ledger month tag format ("04-2025").
const MonthLayout = "01-2006"

// Reward categories. A ledger row is unique per (wallet, user, category, month);
// repeat grants accumulate into the existing row.
const (
	CategorySignup    = "Signup Reward"
	CategoryFirstTime = "First Time Update"
	CategoryStreak    = "3 Day Update"
	CategoryFeedback  = "Feedback"
	CategorySession   = "Session Reward"
)

// Wallet is the per-user running balance of bounty points. At most one row
// per user; every grant updates it together with a ledger entry in the same
// transaction.
type Wallet struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	TotalPoints       int       `gorm:"not null;default:0" json:"total_points"`
	RecommendedPoints int       `gorm:"not null;default:0" json:"recommended_points"`
	Month             string    `gorm:"size:7" json:"month"` // creation month tag, informational
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// LedgerEntry records cumulative points granted to a user for one reward
// category within one month. Points accumulate in place; rows are never
// deleted.
type LedgerEntry struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	WalletID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_window,priority:1" json:"wallet_id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_ledger_window,priority:2" json:"user_id"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Category          string    `gorm:"size:255;not null;uniqueIndex:idx_ledger_window,priority:3" json:"category"`
	Points            int       `gorm:"not null" json:"points"`
	RecommendedPoints int       `gorm:"not null" json:"recommended_points"`
	LastAddedPoints   int       `gorm:"not null" json:"last_added_points"`
	Month             string    `gorm:"size:7;not null;uniqueIndex:idx_ledger_window,priority:4" json:"month"`
	Date              time.Time `json:"date"`
}
