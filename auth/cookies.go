package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetAuthCookies attaches the access/refresh pair as httpOnly cookies.
// SameSite=None so the SPA can sit on a different domain.
func SetAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(AccessTokenCookie, accessToken, 0, "/", "", true, true)
	c.SetCookie(RefreshTokenCookie, refreshToken, 0, "/", "", true, true)
}

func ClearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", true, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", true, true)
}
