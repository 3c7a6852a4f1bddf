package dto

type CreateAffirmationInput struct {
	Text           string  `json:"text" binding:"required"`
	Kind           string  `json:"kind" binding:"required,oneof=daily permanent"`
	ReminderActive bool    `json:"reminder_active"`
	ReminderTime   *string `json:"reminder_time,omitempty"`
}

type UpdateReminderInput struct {
	ReminderActive bool    `json:"reminder_active"`
	ReminderTime   *string `json:"reminder_time,omitempty"`
}
