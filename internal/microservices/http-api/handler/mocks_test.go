package handler_test

import (
	"context"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/service"

	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.UserMessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserMessageResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *service.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*service.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) ListBooks(ctx context.Context, page service.PageRequest) (*dto.PaginatedBookResponse, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedBookResponse), args.Error(1)
}

func (m *MockBookService) GetBook(ctx context.Context, id string) (*dto.BookResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BookResponse), args.Error(1)
}

func (m *MockBookService) FeaturedBooks(ctx context.Context) (*dto.FeaturedBooksResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FeaturedBooksResponse), args.Error(1)
}

func (m *MockBookService) CreateBook(ctx context.Context, in dto.CreateBookInput) (*dto.BookResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BookResponse), args.Error(1)
}

func (m *MockBookService) DeleteBook(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, userID, bookID string, rating int, comment string) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, userID, bookID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) ListByBook(ctx context.Context, bookID string, page service.PageRequest) (*dto.PaginatedReviewResponse, error) {
	args := m.Called(ctx, bookID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedReviewResponse), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context, page service.PageRequest) (*dto.PaginatedUserResponse, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedUserResponse), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*dto.UserProfileResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserProfileResponse), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, requesterID, requesterRole, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, requesterID, requesterRole, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}
