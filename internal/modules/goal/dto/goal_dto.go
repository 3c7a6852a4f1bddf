package dto

type CreateGoalInput struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Type        string  `json:"type" binding:"required,oneof=daily monthly yearly"`
	StartTime   *string `json:"start_time,omitempty"` // "HH:MM"
	EndTime     *string `json:"end_time,omitempty"`
	StartDate   *string `json:"start_date,omitempty"` // "YYYY-MM-DD"
	EndDate     *string `json:"end_date,omitempty"`
}

type UpdateGoalInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required,oneof=Added Started Completed Cancelled"`
}
