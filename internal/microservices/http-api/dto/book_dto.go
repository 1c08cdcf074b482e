package dto

import (
	"io"
	"time"

	"bookhub/internal/microservices/http-api/models"
)

// ReviewUser is the public part of a reviewer.
type ReviewUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ReviewResponse is a review with its author populated.
type ReviewResponse struct {
	ID        string      `json:"id"`
	BookID    string      `json:"bookId"`
	Rating    int         `json:"rating"`
	Comment   string      `json:"comment"`
	User      *ReviewUser `json:"user,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if r.User != nil {
		resp.User = &ReviewUser{ID: r.User.ID, Username: r.User.Username}
	} else if r.UserID != "" {
		resp.User = &ReviewUser{ID: r.UserID}
	}
	return resp
}

func FromModelsToReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, FromModelToReviewResponse(&reviews[i]))
	}
	return out
}

// BookResponse is a book with populated reviews and its rating aggregate.
type BookResponse struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Author        string           `json:"author"`
	Description   string           `json:"description"`
	Category      []string         `json:"category"`
	PublishedYear int              `json:"publishedYear,omitempty"`
	ImageURL      string           `json:"imageUrl"`
	PDFURL        string           `json:"pdfUrl"`
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"averageRating"`
	ReviewCount   int              `json:"reviewCount"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// FromModelToBookResponse maps a book; reviews may be nil when they were not loaded.
func FromModelToBookResponse(b *models.Book, reviews []models.Review, average float64, count int) BookResponse {
	category := []string(b.Category)
	if category == nil {
		category = []string{}
	}
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		Category:      category,
		PublishedYear: b.PublishedYear,
		ImageURL:      b.ImageURL,
		PDFURL:        b.PDFURL,
		Reviews:       FromModelsToReviewResponses(reviews),
		AverageRating: average,
		ReviewCount:   count,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type PaginatedBookResponse struct {
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	Books      []BookResponse `json:"books"`
}

type FeaturedBooksResponse struct {
	Message       string         `json:"message"`
	FeaturedBooks []BookResponse `json:"featuredBooks"`
}

// CreateBookInput is the parsed multipart book form.
type CreateBookInput struct {
	Title         string
	Author        string
	Description   string
	Category      []string
	PublishedYear int
	PDF           *FileUpload
	Image         *FileUpload
}

// FileUpload is one uploaded file; Open is called once by the service.
type FileUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Open        func() (io.ReadSeekCloser, error)
}
