package middleware

import (
	"log/slog"

	"bookhub/internal/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorResponder writes the last error attached with c.Error as {"message": ...}.
func ErrorResponder(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		kind := apperror.KindOf(err)
		if kind == apperror.KindInternal {
			logger.Error("request_failed",
				"request_id", RequestIDFrom(c),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
		}
		c.JSON(apperror.HTTPStatus(kind), gin.H{"message": apperror.PublicMessage(err)})
	}
}
