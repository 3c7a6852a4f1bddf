package bootstrap

import (
	"mindhaven-backend/internal/entity"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the application owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Wallet{},
		&entity.LedgerEntry{},
		&entity.DailyActivity{},
		&entity.BountyMilestone{},
		&entity.Notification{},
		&entity.Affirmation{},
		&entity.JournalEntry{},
		&entity.MindfulnessSession{},
		&entity.VisionBoardItem{},
		&entity.Feedback{},
		&entity.Goal{},
		&entity.Schedule{},
	)
}
