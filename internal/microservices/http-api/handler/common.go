package handler

import (
	"strconv"

	"bookhub/internal/apperror"
	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

var ErrInvalidBody = apperror.Invalid("Invalid request body.")

// pageRequest reads page and limit query params; unparsable values fall back to defaults.
func pageRequest(c *gin.Context) service.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return service.NewPageRequest(page, limit)
}

func currentUser(c *gin.Context) (userID, role string) {
	return c.GetString(middleware.ContextUserID), c.GetString(middleware.ContextRole)
}
