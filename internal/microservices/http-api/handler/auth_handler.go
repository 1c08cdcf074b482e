package handler

import (
	"net/http"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers signup, login and logout; logout needs requireAuth.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)
	router.POST("/logout", requireAuth, h.Logout)
}

// Signup registers a new account
// POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(ErrInvalidBody)
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login exchanges credentials for a token
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(ErrInvalidBody)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented token
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.ClaimsFrom(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully."})
}
