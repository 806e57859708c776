package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TheManUnderTheHood/Loomly/auth"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// ValidateToken authenticates the request from the accessToken cookie, with
// an Authorization: Bearer fallback for non-browser clients. On success the
// user identity is attached to the gin context; handlers pass it explicitly
// into the service calls.
func ValidateToken(c *gin.Context) {
	tokenString, err := c.Cookie(auth.AccessTokenCookie)
	if err != nil || tokenString == "" {
		header := c.GetHeader("Authorization")
		tokenString = strings.TrimPrefix(header, "Bearer ")
	}
	if tokenString == "" {
		AbortWithError(c, utils.NewApiError(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	claims, err := auth.ParseAccessToken(tokenString)
	if err != nil {
		AbortWithError(c, utils.NewApiError(http.StatusUnauthorized, "Invalid or expired token"))
		return
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, claims.Role)
	c.Next()
}

// CurrentUserID returns the authenticated user id attached by ValidateToken.
func CurrentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// IsAdmin reports whether the authenticated user carries the ADMIN role.
func IsAdmin(c *gin.Context) bool {
	v, ok := c.Get(ContextRole)
	if !ok {
		return false
	}
	role, ok := v.(models.Role)
	return ok && role == models.RoleAdmin
}
