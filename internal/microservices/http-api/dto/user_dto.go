package dto

import (
	"time"

	"bookhub/internal/microservices/http-api/models"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromModelToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

type ReviewedBook struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// UserReviewResponse is a review shown on the author's profile.
type UserReviewResponse struct {
	ID        string        `json:"id"`
	Rating    int           `json:"rating"`
	Comment   string        `json:"comment"`
	Book      *ReviewedBook `json:"book"`
	CreatedAt time.Time     `json:"createdAt"`
}

type UserProfileResponse struct {
	UserResponse
	Reviews []UserReviewResponse `json:"reviews"`
}

func FromModelToUserProfile(u *models.User, reviews []models.Review) UserProfileResponse {
	out := UserProfileResponse{UserResponse: FromModelToUserResponse(u), Reviews: make([]UserReviewResponse, 0, len(reviews))}
	for _, r := range reviews {
		item := UserReviewResponse{ID: r.ID, Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt}
		if r.Book != nil {
			item.Book = &ReviewedBook{ID: r.Book.ID, Title: r.Book.Title}
		} else {
			item.Book = &ReviewedBook{ID: r.BookID}
		}
		out.Reviews = append(out.Reviews, item)
	}
	return out
}

type PaginatedUserResponse struct {
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	Users      []UserResponse `json:"users"`
}

// UpdateUserRequest holds the optional profile fields.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
