package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GoalTypeDaily   = "daily"
	GoalTypeMonthly = "monthly"
	GoalTypeYearly  = "yearly"

	GoalStatusAdded     = "Added"
	GoalStatusStarted   = "Started"
	GoalStatusCompleted = "Completed"
	GoalStatusCancelled = "Cancelled"
)

// Goal is a user-defined wellness goal. Daily goals carry start/end times of
// day; monthly and yearly goals carry start/end dates. Status moves
// Added -> Started -> Completed, or to Cancelled by the user.
type Goal struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	ImageURL    *string   `gorm:"size:500" json:"image_url,omitempty"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	StartTime   *string   `gorm:"size:5" json:"start_time,omitempty"` // "HH:MM", daily goals
	EndTime     *string   `gorm:"size:5" json:"end_time,omitempty"`
	StartDate   *string   `gorm:"size:10" json:"start_date,omitempty"` // "YYYY-MM-DD", monthly/yearly goals
	EndDate     *string   `gorm:"size:10" json:"end_date,omitempty"`
	Status      string    `gorm:"size:20;not null;default:Added" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
