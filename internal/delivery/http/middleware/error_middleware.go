package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rezaariel/insight-report-hub/internal/delivery/http/response"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
	"github.com/rezaariel/insight-report-hub/pkg/logger"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				// Never expose internal error details to clients. Log the
				// actual error server-side, send a generic message out.
				logger.Log.Error("Internal server error", "error", err, "path", c.Request.URL.Path)
				response.Error(c, http.StatusInternalServerError, "Terjadi kesalahan. Silakan coba lagi.", nil)
			}
		}
	}
}
