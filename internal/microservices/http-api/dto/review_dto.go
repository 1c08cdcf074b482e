package dto

// CreateReviewRequest is the review submission body. Rating is validated by the service
// so that a missing value and an out of range value produce the same message.
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type PaginatedReviewResponse struct {
	TotalReviews int64            `json:"totalReviews"`
	Page         int              `json:"page"`
	TotalPages   int              `json:"totalPages"`
	Reviews      []ReviewResponse `json:"reviews"`
}
