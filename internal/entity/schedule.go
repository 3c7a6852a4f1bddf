package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ScheduleStatusActive    = "active"
	ScheduleStatusCompleted = "completed"
	ScheduleStatusCancelled = "cancelled"
)

// Schedule is a booked counseling session. Completing it is a reward source;
// the status guard makes the session reward fire at most once per schedule.
type Schedule struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ProfessionalName string    `gorm:"size:255" json:"professional_name"`
	StartTime        time.Time `gorm:"not null" json:"start_time"`
	EndTime          time.Time `gorm:"not null" json:"end_time"`
	Status           string    `gorm:"size:50;not null;default:active" json:"status"`
	MessageByUser    *string   `gorm:"type:text" json:"message_by_user,omitempty"`
	Anonymous        bool      `gorm:"default:false" json:"anonymous"`
	UserAttended     bool      `gorm:"default:false" json:"user_attended"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
