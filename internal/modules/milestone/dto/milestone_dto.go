package dto

// ClaimRequest identifies the threshold being claimed. It must be one of the
// fixed milestone values.
type ClaimRequest struct {
	Milestone int `json:"milestone" binding:"required,min=1"`
}
