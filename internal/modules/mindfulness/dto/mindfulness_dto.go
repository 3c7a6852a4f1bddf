package dto

type RecordSessionInput struct {
	Exercise        string `json:"exercise" binding:"required"`
	DurationSeconds int    `json:"duration_seconds" binding:"required,min=1"`
}

type ListFilter struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
