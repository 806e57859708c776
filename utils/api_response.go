package utils

import "github.com/gin-gonic/gin"

// ApiResponse is the success envelope every endpoint returns.
type ApiResponse struct {
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func Respond(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	})
}
