package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheManUnderTheHood/Loomly/auth"
	"github.com/TheManUnderTheHood/Loomly/models"
)

func TestMain(m *testing.M) {
	os.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	os.Setenv("REFRESH_TOKEN_SECRET", "test-refresh-secret")
	os.Exit(m.Run())
}

func newProtectedRouter(adminOnly bool) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(zerolog.Nop()))
	handlers := []gin.HandlerFunc{ValidateToken}
	if adminOnly {
		handlers = append(handlers, RequireAdmin)
	}
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "is_admin": IsAdmin(c)})
	})
	r.GET("/secure", handlers...)
	return r
}

func TestValidateToken_NoCredentials(t *testing.T) {
	r := newProtectedRouter(false)
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// Middleware failures render the same error envelope as controllers.
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), `"status_code":401`)
}

func TestValidateToken_CookieAndBearer(t *testing.T) {
	token, err := auth.IssueAccessToken(&models.User{ID: "u-1", Role: models.RoleUser})
	require.NoError(t, err)
	r := newProtectedRouter(false)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-1")

	// Same token through the Authorization header.
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidateToken_RejectsRefreshToken(t *testing.T) {
	refresh, err := auth.IssueRefreshToken(&models.User{ID: "u-1", Role: models.RoleUser})
	require.NoError(t, err)
	r := newProtectedRouter(false)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r := newProtectedRouter(true)

	userToken, err := auth.IssueAccessToken(&models.User{ID: "u-1", Role: models.RoleUser})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), "Admin access required")

	adminToken, err := auth.IssueAccessToken(&models.User{ID: "a-1", Role: models.RoleAdmin})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_admin":true`)
}
