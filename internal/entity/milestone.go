package entity

import (
	"time"

	"github.com/google/uuid"
)

// MilestoneThresholds are the fixed point totals a user can claim once
// reached. A milestone row moves Unseen -> Unclaimed -> Claimed, never back.
var MilestoneThresholds = []int{1000, 2500, 5000, 10000}

// ValidMilestone reports whether value is one of the claimable thresholds.
func ValidMilestone(value int) bool {
	for _, m := range MilestoneThresholds {
		if m == value {
			return true
		}
	}
	return false
}

// BountyMilestone records one user's progress against one threshold.
// At most one row per (user, milestone); claimed flips false -> true once.
type BountyMilestone struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_milestone_user_value,priority:1" json:"user_id"`
	Milestone    int        `gorm:"not null;uniqueIndex:idx_milestone_user_value,priority:2" json:"milestone"`
	Claimed      bool       `gorm:"default:false" json:"claimed"`
	DateAchieved *time.Time `json:"date_achieved,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
