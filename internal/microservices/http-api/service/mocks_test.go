package service

import (
	"context"
	"io"
	"log/slog"

	"bookhub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	if book.ID == "" {
		book.ID = "new-book"
	}
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id string) (*models.Book, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*models.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context, offset, limit int) ([]models.Book, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) ListAll(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) AppendReview(ctx context.Context, bookID, reviewID string) error {
	return m.Called(ctx, bookID, reviewID).Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	if review.ID == "" {
		review.ID = "new-review"
	}
	return args.Error(0)
}

func (m *MockReviewRepository) FindByBookAndUser(ctx context.Context, bookID, userID string) (*models.Review, error) {
	args := m.Called(ctx, bookID, userID)
	if r := args.Get(0); r != nil {
		return r.(*models.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Review, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByBook(ctx context.Context, bookID string, offset, limit int) ([]models.Review, int64, error) {
	args := m.Called(ctx, bookID, offset, limit)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) RatingsByBook(ctx context.Context) (map[string][]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string][]int), args.Error(1)
}

func (m *MockReviewRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) DeleteByBook(ctx context.Context, bookID string) (int64, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if user.ID == "" {
		user.ID = "new-user"
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}
