package service

import (
	"context"
	"testing"
	"time"

	"bookhub/internal/apperror"
	"bookhub/internal/config"
	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/middleware/auth"
	"bookhub/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "0123456789abcdef0123456789abcdef",
		JWTExpiry:      time.Hour,
		AdminSecretKey: "let-me-in",
	}
}

func TestSignup(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	svc := NewAuthService(users, session.NewMemoryRevoker(), testConfig(), discardLogger())
	resp, err := svc.Signup(context.Background(), dto.SignupRequest{Username: "ana", Email: "Ana@Example.com", Password: "Secret1!"})

	require.NoError(t, err)
	assert.Equal(t, "User registered successfully.", resp.Message)
	assert.Equal(t, models.RoleUser, resp.User.Role)
	assert.Equal(t, "ana@example.com", resp.User.Email)

	created := users.Calls[1].Arguments.Get(1).(*models.User)
	assert.NoError(t, auth.VerifyPassword(created.Password, "Secret1!"))
}

func TestSignup_AdminKey(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	svc := NewAuthService(users, session.NewMemoryRevoker(), testConfig(), discardLogger())

	resp, err := svc.Signup(context.Background(), dto.SignupRequest{Username: "root", Email: "root@example.com", Password: "Secret1!", AdminKey: "let-me-in"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)

	resp, err = svc.Signup(context.Background(), dto.SignupRequest{Username: "eve", Email: "eve@example.com", Password: "Secret1!", AdminKey: "guess"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, resp.User.Role)
}

func TestSignup_Rejections(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(&models.User{ID: "u1"}, nil)
	svc := NewAuthService(users, session.NewMemoryRevoker(), testConfig(), discardLogger())
	ctx := context.Background()

	_, err := svc.Signup(ctx, dto.SignupRequest{Email: "ana@example.com", Password: "Secret1!"})
	assert.ErrorIs(t, err, ErrSignupFieldsRequired)

	_, err = svc.Signup(ctx, dto.SignupRequest{Username: "ana", Email: "ana@example.com", Password: "secret"})
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))

	_, err = svc.Signup(ctx, dto.SignupRequest{Username: "ana", Email: "ana@example.com", Password: "Secret1!"})
	assert.ErrorIs(t, err, ErrEmailInUse)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func registeredUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{ID: "u1", Username: "ana", Email: "ana@example.com", Password: hash, Role: models.RoleUser}
}

func TestLoginAndValidate(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(registeredUser(t, "Secret1!"), nil)
	svc := NewAuthService(users, session.NewMemoryRevoker(), testConfig(), discardLogger())
	ctx := context.Background()

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "Secret1!"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(registeredUser(t, "Secret1!"), nil)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
	svc := NewAuthService(users, session.NewMemoryRevoker(), testConfig(), discardLogger())
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "Secret1!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrLoginFieldsRequired)
}

func TestLogoutRevokesToken(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(registeredUser(t, "Secret1!"), nil)
	svc := NewAuthService(users, session.NewMemoryRevoker(), testConfig(), discardLogger())
	ctx := context.Background()

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "Secret1!"})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))
	_, err = svc.ValidateToken(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Rejects(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(new(MockUserRepository), session.NewMemoryRevoker(), cfg, discardLogger())
	ctx := context.Background()

	sign := func(secret string, method jwt.SigningMethod, exp time.Time) string {
		claims := Claims{UserID: "u1", Role: models.RoleUser, RegisteredClaims: jwt.RegisteredClaims{
			ID: "jti-1", ExpiresAt: jwt.NewNumericDate(exp),
		}}
		s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	_, err := svc.ValidateToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, sign("another-secret", jwt.SigningMethodHS256, time.Now().Add(time.Hour)))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, sign(cfg.JWTSecret, jwt.SigningMethodHS256, time.Now().Add(-time.Minute)))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, sign(cfg.JWTSecret, jwt.SigningMethodHS512, time.Now().Add(time.Hour)))
	assert.ErrorIs(t, err, ErrInvalidToken, "only HS256 is accepted")

	claims, err := svc.ValidateToken(ctx, sign(cfg.JWTSecret, jwt.SigningMethodHS256, time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}
