package dto

// CompleteActivityRequest marks one wellness activity done for today.
type CompleteActivityRequest struct {
	Activity string `json:"activity" binding:"required"`
}

// AddPointsRequest is the generic grant used by trusted internal callers.
type AddPointsRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Points   int    `json:"points" binding:"required,min=1"`
}
