package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"placement-cell-backend/internal/delivery/http/response"
	"placement-cell-backend/pkg/apperror"
	"placement-cell-backend/pkg/logger"
)

// ErrorHandler turns errors handlers push into the gin context into the
// standard envelope. Unrecognized errors are logged server-side and
// surfaced as an opaque 500 so internals never leak to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					"path", c.FullPath(),
					"request_id", c.GetString("RequestID"),
					"error", err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		logger.Log.Error("unhandled error",
			"path", c.FullPath(),
			"request_id", c.GetString("RequestID"),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
