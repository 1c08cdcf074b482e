package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"bookhub/internal/apperror"
	"bookhub/internal/metrics"
	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrReviewInput     = apperror.Invalid("Rating must be an integer between 1 and 5 and comment is required.")
	ErrBookNotFound    = apperror.NotFound("Book not found.")
	ErrAlreadyReviewed = apperror.Conflict("You have already reviewed this book.")
	ErrBookIDRequired  = apperror.Invalid("Book ID is required.")
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID, bookID string, rating int, comment string) (*dto.ReviewResponse, error)
	ListByBook(ctx context.Context, bookID string, page PageRequest) (*dto.PaginatedReviewResponse, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
	logger     *slog.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookRepo repository.BookRepository, logger *slog.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		logger:     logger,
	}
}

// CreateReview stores a review and appends it to the book's review list.
// The two writes are not atomic; a failed append leaves the review orphaned.
func (s *reviewService) CreateReview(ctx context.Context, userID, bookID string, rating int, comment string) (*dto.ReviewResponse, error) {
	comment = strings.TrimSpace(comment)
	if rating < models.MinRating || rating > models.MaxRating || comment == "" {
		return nil, ErrReviewInput
	}

	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, apperror.Internal(err)
	}

	existing, err := s.reviewRepo.FindByBookAndUser(ctx, bookID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{
		BookID:  bookID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := s.bookRepo.AppendReview(ctx, bookID, review.ID); err != nil {
		s.logger.Error("review_append_failed", "review_id", review.ID, "book_id", bookID, "error", err)
		return nil, apperror.Internal(err)
	}

	metrics.RecordReviewCreated()
	s.logger.Info("review_created", "review_id", review.ID, "book_id", bookID, "user_id", userID)

	resp := dto.FromModelToReviewResponse(review)
	return &resp, nil
}

// ListByBook returns one page of a book's reviews, newest first.
func (s *reviewService) ListByBook(ctx context.Context, bookID string, page PageRequest) (*dto.PaginatedReviewResponse, error) {
	if strings.TrimSpace(bookID) == "" {
		return nil, ErrBookIDRequired
	}

	reviews, total, err := s.reviewRepo.ListByBook(ctx, bookID, page.Offset(), page.Limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &dto.PaginatedReviewResponse{
		TotalReviews: total,
		Page:         page.Page,
		TotalPages:   page.TotalPages(total),
		Reviews:      dto.FromModelsToReviewResponses(reviews),
	}, nil
}
