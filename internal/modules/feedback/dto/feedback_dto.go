package dto

type SubmitFeedbackInput struct {
	Username string  `json:"username" binding:"required"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Message  string  `json:"message" binding:"required"`
	Rating   int     `json:"rating" binding:"required,min=1,max=5"`
}
