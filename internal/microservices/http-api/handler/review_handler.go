package handler

import (
	"net/http"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers review routes on an authenticated group
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/:bookId", h.List)
	router.POST("/:bookId", h.Create)
}

// Create adds the current user's review to a book
// POST /reviews/:bookId
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// a non-integer rating fails binding
		_ = c.Error(service.ErrReviewInput)
		return
	}

	userID, _ := currentUser(c)
	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, c.Param("bookId"), req.Rating, req.Comment)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review added successfully.", "review": review})
}

// List returns a page of a book's reviews
// GET /reviews/:bookId?page=1&limit=10
func (h *ReviewHandler) List(c *gin.Context) {
	resp, err := h.reviewService.ListByBook(c.Request.Context(), c.Param("bookId"), pageRequest(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
