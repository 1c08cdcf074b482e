package repository

import (
	"context"
	"fmt"

	"bookhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	FindByID(ctx context.Context, id string) (*models.Book, error)
	List(ctx context.Context, offset, limit int) ([]models.Book, int64, error)
	ListAll(ctx context.Context) ([]models.Book, error)
	AppendReview(ctx context.Context, bookID, reviewID string) error
	Delete(ctx context.Context, id string) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	// GORM will populate CreatedAt/UpdatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns one page of books, newest first. id breaks created_at ties so pages never overlap.
func (r *bookRepository) List(ctx context.Context, offset, limit int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}

	return list, total, nil
}

func (r *bookRepository) ListAll(ctx context.Context) ([]models.Book, error) {
	var list []models.Book
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list all books: %w", err)
	}
	return list, nil
}

// AppendReview pushes reviewID onto the book's review list. The row is locked for the
// read-modify-write so concurrent reviews on the same book do not drop each other.
func (r *bookRepository) AppendReview(ctx context.Context, bookID, reviewID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&book, "id = ?", bookID).Error; err != nil {
			return err
		}
		book.ReviewIDs = append(book.ReviewIDs, reviewID)
		if err := tx.Model(&book).Update("review_ids", book.ReviewIDs).Error; err != nil {
			return fmt.Errorf("append review to book: %w", err)
		}
		return nil
	})
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Book{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
