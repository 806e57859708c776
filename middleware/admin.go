package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheManUnderTheHood/Loomly/utils"
)

// RequireAdmin must run after ValidateToken.
func RequireAdmin(c *gin.Context) {
	if !IsAdmin(c) {
		AbortWithError(c, utils.NewApiError(http.StatusForbidden, "Admin access required"))
		return
	}
	c.Next()
}
