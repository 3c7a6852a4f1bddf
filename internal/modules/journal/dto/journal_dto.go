package dto

type CreateJournalInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateJournalInput struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type ListFilter struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
