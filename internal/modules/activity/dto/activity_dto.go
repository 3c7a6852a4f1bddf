package dto

type UsageRequest struct {
	TimeSpent int `json:"time_spent" binding:"required,min=1"` // seconds
}

type HistoryFilter struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
