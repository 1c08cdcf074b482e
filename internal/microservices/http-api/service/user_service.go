package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"bookhub/internal/apperror"
	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/middleware/auth"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = apperror.NotFound("User not found.")
	ErrEmailInUse      = apperror.Conflict("Email is already registered.")
	ErrNotProfileOwner = apperror.Forbidden("You can only update your own profile.")
	ErrEmptyUsername   = apperror.Invalid("Username cannot be empty.")
	ErrEmptyEmail      = apperror.Invalid("Email cannot be empty.")
)

type UserService interface {
	ListUsers(ctx context.Context, page PageRequest) (*dto.PaginatedUserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserProfileResponse, error)
	UpdateUser(ctx context.Context, requesterID, requesterRole, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
}

type userService struct {
	userRepo   repository.UserRepository
	reviewRepo repository.ReviewRepository
	logger     *slog.Logger
}

func NewUserService(userRepo repository.UserRepository, reviewRepo repository.ReviewRepository, logger *slog.Logger) UserService {
	return &userService{userRepo: userRepo, reviewRepo: reviewRepo, logger: logger}
}

func (s *userService) ListUsers(ctx context.Context, page PageRequest) (*dto.PaginatedUserResponse, error) {
	users, total, err := s.userRepo.List(ctx, page.Offset(), page.Limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.FromModelToUserResponse(&users[i]))
	}
	return &dto.PaginatedUserResponse{
		Total:      total,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
		Users:      items,
	}, nil
}

// GetUser returns the profile with the reviews the user wrote.
func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserProfileResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	profile := dto.FromModelToUserProfile(user, reviews)
	return &profile, nil
}

// UpdateUser applies the provided fields. Only the user or an admin may update a profile.
func (s *userService) UpdateUser(ctx context.Context, requesterID, requesterRole, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if requesterID != id && requesterRole != models.RoleAdmin {
		return nil, ErrNotProfileOwner
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, ErrEmptyUsername
		}
		user.Username = username
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return nil, ErrEmptyEmail
		}
		if email != user.Email {
			other, err := s.userRepo.FindByEmail(ctx, email)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.Internal(err)
			}
			if other != nil && other.ID != user.ID {
				return nil, ErrEmailInUse
			}
			user.Email = email
		}
	}

	if req.Password != nil {
		if err := auth.ValidateUpdatePassword(*req.Password); err != nil {
			return nil, apperror.Invalid(err.Error())
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.Password = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("user_updated", "user_id", user.ID, "by", requesterID)
	resp := dto.FromModelToUserResponse(user)
	return &resp, nil
}

func (s *userService) findUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
