package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/utils"
)

// ErrorHandler is the centralized error middleware. Controllers raise a
// single *utils.ApiError via c.Error; anything else (raw gorm errors,
// parse failures) is translated to a consistent error envelope here, known
// data-store shapes to 4xx and the rest to 500.
func ErrorHandler(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		apiErr := translate(err)
		if apiErr.StatusCode >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("request failed")
		}

		c.JSON(apiErr.StatusCode, gin.H{
			"status_code": apiErr.StatusCode,
			"message":     apiErr.Message,
			"success":     false,
		})
	}
}

func translate(err error) *utils.ApiError {
	var apiErr *utils.ApiError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var numErr *strconv.NumError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.NewApiError(http.StatusNotFound, "Resource not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return utils.NewApiError(http.StatusConflict, "Duplicate value entered")
	case errors.Is(err, gorm.ErrInvalidData), errors.As(err, &numErr):
		return utils.NewApiError(http.StatusBadRequest, "Invalid identifier")
	default:
		return utils.NewApiError(http.StatusInternalServerError, "Internal Server Error")
	}
}

// AbortWithError records err on the context and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
