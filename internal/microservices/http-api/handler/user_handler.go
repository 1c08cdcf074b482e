package handler

import (
	"net/http"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user routes on an authenticated group
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", middleware.RequireAdmin(), h.List)
	router.GET("/:id", h.Get)
	router.PUT("/:id", h.Update)
}

// GET /users?page=1&limit=10
func (h *UserHandler) List(c *gin.Context) {
	resp, err := h.userService.ListUsers(c.Request.Context(), pageRequest(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	profile, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update changes profile fields; users may only update themselves unless admin
// PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(ErrInvalidBody)
		return
	}

	userID, role := currentUser(c)
	user, err := h.userService.UpdateUser(c.Request.Context(), userID, role, c.Param("id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.UserMessageResponse{Message: "User updated successfully.", User: *user})
}
