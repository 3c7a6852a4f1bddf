package dto

import "time"

type CreateScheduleInput struct {
	ProfessionalName string    `json:"professional_name" binding:"required"`
	StartTime        time.Time `json:"start_time" binding:"required"`
	EndTime          time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
	MessageByUser    *string   `json:"message_by_user,omitempty"`
	Anonymous        bool      `json:"anonymous"`
}

type CompleteScheduleInput struct {
	UserAttended bool `json:"user_attended"`
}
