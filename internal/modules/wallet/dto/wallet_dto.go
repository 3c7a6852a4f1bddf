package dto

import (
	"time"

	"github.com/google/uuid"
)

type WalletResponse struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	TotalPoints       int       `json:"total_points"`
	RecommendedPoints int       `json:"recommended_points"`
	Month             string    `json:"month"`
}

type LedgerEntryResponse struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Points            int       `json:"points"`
	RecommendedPoints int       `json:"recommended_points"`
	LastAddedPoints   int       `json:"last_added_points"`
	Month             string    `json:"month"`
	Date              time.Time `json:"date"`
}

type CategorySummary struct {
	Points            int `json:"points"`
	RecommendedPoints int `json:"recommended_points"`
}

type MonthSummary struct {
	TotalPoints int                        `json:"total_points"`
	Categories  map[string]CategorySummary `json:"categories"`
}

// MonthlySummaryResponse groups the ledger by month tag ("04-2025") and
// category. This is a per-month view and is not the wallet's lifetime total.
type MonthlySummaryResponse struct {
	Months map[string]MonthSummary `json:"months"`
}

type AddPointsRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Points   int    `json:"points" binding:"required,min=1"`
}
