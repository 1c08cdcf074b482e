package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookhub/internal/apperror"
	"bookhub/internal/config"
	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/middleware/auth"
	"bookhub/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSignupFieldsRequired = apperror.Invalid("All fields are required.")
	ErrLoginFieldsRequired  = apperror.Invalid("Email and password are required.")
	ErrInvalidCredentials   = apperror.Unauthorized("Invalid email or password.")
	ErrMissingToken         = apperror.Unauthorized("Unauthorized. No token provided.")
	ErrInvalidToken         = apperror.Unauthorized("Invalid or expired token.")
)

const (
	signupMessage = "User registered successfully."
	loginMessage  = "Login successful"
)

// Claims are the JWT claims issued at login.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.UserMessageResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *Claims) error
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	revoker   session.Revoker
	jwtSecret []byte
	tokenTTL  time.Duration
	adminKey  string
	logger    *slog.Logger
	now       func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, revoker session.Revoker, cfg *config.Config, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		revoker:   revoker,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.JWTExpiry,
		adminKey:  cfg.AdminSecretKey,
		logger:    logger,
		now:       time.Now,
	}
}

// Signup registers a user; the admin role needs the configured admin key.
func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.UserMessageResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, ErrSignupFieldsRequired
	}
	if err := auth.ValidateSignupPassword(req.Password); err != nil {
		return nil, apperror.Invalid(err.Error())
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if s.isAdminKey(req.AdminKey) {
		user.Role = models.RoleAdmin
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("user_registered", "user_id", user.ID, "role", user.Role)
	return &dto.UserMessageResponse{Message: signupMessage, User: dto.FromModelToUserResponse(user)}, nil
}

func (s *authService) isAdminKey(key string) bool {
	if s.adminKey == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) == 1
}

// Login: authenticates a user and returns a signed token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrLoginFieldsRequired
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same bcrypt cost as a wrong password
			auth.CompareDummy(req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, apperror.Internal(err)
	}

	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("user_logged_in", "user_id", user.ID)
	return &dto.LoginResponse{Message: loginMessage, Token: token, User: dto.FromModelToUserResponse(user)}, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Logout revokes the token until it expires.
func (s *authService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return ErrInvalidToken
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperror.Internal(err)
	}
	s.logger.Info("user_logged_out", "user_id", claims.UserID)
	return nil
}

// ValidateToken parses an HS256 token and rejects revoked ones.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	if claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}
