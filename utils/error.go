package utils

import (
	"errors"
	"net/http"

	"localserve/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondWithError maps a domain error onto the HTTP taxonomy: validation 400,
// not found 404, rate limit 429 with retryAfter, spent OTP attempts 400 with a
// distinct code, transaction failures a generic 500.
func RespondWithError(c *gin.Context, err error) {
	var (
		validationErr  *models.ValidationError
		notFoundErr    *models.NotFoundError
		rateLimitErr   *models.RateLimitError
		maxAttemptsErr *models.MaxAttemptsExceededError
		txErr          *models.TransactionError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: validationErr.Error(), Code: "VALIDATION_ERROR"})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: notFoundErr.Error(), Code: "NOT_FOUND"})
	case errors.As(err, &rateLimitErr):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"message":    "Too many requests. Please try again later.",
			"code":       "RATE_LIMITED",
			"retryAfter": int(rateLimitErr.RetryAfter.Seconds()),
		})
	case errors.As(err, &maxAttemptsErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Maximum attempts exceeded. Please request a new OTP.",
			Code:    "MAX_ATTEMPTS_EXCEEDED",
		})
	case errors.As(err, &txErr):
		GetLogger().Error("transaction failed", zap.String("op", txErr.Op), zap.Error(txErr.Err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
	default:
		GetLogger().Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
	}
}
