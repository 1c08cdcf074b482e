package repository

import (
	"context"
	"fmt"

	"bookhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByBookAndUser(ctx context.Context, bookID, userID string) (*models.Review, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Review, error)
	ListByBook(ctx context.Context, bookID string, offset, limit int) ([]models.Review, int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
	RatingsByBook(ctx context.Context) (map[string][]int, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	DeleteByBook(ctx context.Context, bookID string) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// FindByBookAndUser retrieves a user's review for a specific book
func (r *reviewRepository) FindByBookAndUser(ctx context.Context, bookID, userID string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// FindByIDs loads the given reviews with their authors, in the order of ids.
// Ids without a row are skipped.
func (r *reviewRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Review, error) {
	if len(ids) == 0 {
		return []models.Review{}, nil
	}

	var rows []models.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	byID := make(map[string]models.Review, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	ordered := make([]models.Review, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

// ListByBook retrieves reviews for a specific book with pagination, newest first
func (r *reviewRepository) ListByBook(ctx context.Context, bookID string, offset, limit int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Review{}).Where("book_id = ?", bookID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, total, nil
}

// ListByUser returns every review written by the user with the reviewed book loaded.
func (r *reviewRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Book").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	return reviews, nil
}

// RatingsByBook groups every stored rating by book id.
func (r *reviewRepository) RatingsByBook(ctx context.Context) (map[string][]int, error) {
	var rows []struct {
		BookID string
		Rating int
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("book_id, rating").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}

	ratings := make(map[string][]int)
	for _, row := range rows {
		ratings[row.BookID] = append(ratings[row.BookID], row.Rating)
	}
	return ratings, nil
}

func (r *reviewRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Review{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete reviews: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteByBook removes reviews that point at the book but never made it onto its list.
func (r *reviewRepository) DeleteByBook(ctx context.Context, bookID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("book_id = ?", bookID).Delete(&models.Review{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete book reviews: %w", result.Error)
	}
	return result.RowsAffected, nil
}
