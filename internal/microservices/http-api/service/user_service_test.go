package service

import (
	"context"
	"testing"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func TestListUsers(t *testing.T) {
	users := new(MockUserRepository)
	users.On("List", mock.Anything, 0, 10).Return([]models.User{{ID: "u1", Username: "ana", Password: "hash"}}, int64(1), nil)

	resp, err := NewUserService(users, new(MockReviewRepository), discardLogger()).ListUsers(context.Background(), NewPageRequest(1, 10))

	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "ana", resp.Users[0].Username)
}

func TestGetUser_WithReviews(t *testing.T) {
	users := new(MockUserRepository)
	reviews := new(MockReviewRepository)
	users.On("FindByID", mock.Anything, "u1").Return(&models.User{ID: "u1", Username: "ana"}, nil)
	users.On("FindByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)
	reviews.On("ListByUser", mock.Anything, "u1").Return([]models.Review{
		{ID: "r1", BookID: "b1", Rating: 5, Book: &models.Book{ID: "b1", Title: "Dune"}},
	}, nil)

	svc := NewUserService(users, reviews, discardLogger())
	profile, err := svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, profile.Reviews, 1)
	assert.Equal(t, "Dune", profile.Reviews[0].Book.Title)

	_, err = svc.GetUser(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser_Forbidden(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, new(MockReviewRepository), discardLogger())

	_, err := svc.UpdateUser(context.Background(), "u2", models.RoleUser, "u1", dto.UpdateUserRequest{Username: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotProfileOwner)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUpdateUser_EmailConflict(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, "u1").Return(&models.User{ID: "u1", Email: "ana@example.com"}, nil)
	users.On("FindByEmail", mock.Anything, "ben@example.com").Return(&models.User{ID: "u2"}, nil)

	svc := NewUserService(users, new(MockReviewRepository), discardLogger())
	_, err := svc.UpdateUser(context.Background(), "u1", models.RoleUser, "u1", dto.UpdateUserRequest{Email: strPtr(" Ben@Example.com ")})

	assert.ErrorIs(t, err, ErrEmailInUse)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateUser_WeakPassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, "u1").Return(&models.User{ID: "u1"}, nil)

	svc := NewUserService(users, new(MockReviewRepository), discardLogger())
	_, err := svc.UpdateUser(context.Background(), "u1", models.RoleUser, "u1", dto.UpdateUserRequest{Password: strPtr("weak")})

	assert.EqualError(t, err, auth.ErrUpdatePassword.Error())
}

func TestUpdateUser_AdminUpdatesOtherUser(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, "u1").Return(&models.User{ID: "u1", Username: "ana", Email: "ana@example.com", Password: "old"}, nil)
	users.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	svc := NewUserService(users, new(MockReviewRepository), discardLogger())
	resp, err := svc.UpdateUser(context.Background(), "admin-1", models.RoleAdmin, "u1", dto.UpdateUserRequest{
		Username: strPtr("ana.k"),
		Password: strPtr("New#Pass"),
	})

	require.NoError(t, err)
	assert.Equal(t, "ana.k", resp.Username)
	updated := users.Calls[1].Arguments.Get(1).(*models.User)
	assert.NotEqual(t, "old", updated.Password)
	assert.NoError(t, auth.VerifyPassword(updated.Password, "New#Pass"))
}
