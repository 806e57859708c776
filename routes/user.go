package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/TheManUnderTheHood/Loomly/controllers/user"
	"github.com/TheManUnderTheHood/Loomly/middleware"
)

// SetupUserRoutes registers all "/users/*" endpoints.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	users := api.Group("/users")
	{
		users.POST("/register", userControllers.RegisterUser(db))
		users.POST("/login", userControllers.LoginUser(db))
		users.POST("/refresh-token", userControllers.RefreshAccessToken(db))

		users.POST("/logout", middleware.ValidateToken, userControllers.LogoutUser(db))
		users.GET("/current-user", middleware.ValidateToken, userControllers.GetCurrentUser(db))
		users.POST("/change-password", middleware.ValidateToken, userControllers.ChangeCurrentPassword(db))
		users.PATCH("/update-account", middleware.ValidateToken, userControllers.UpdateAccountDetails(db))
		users.PATCH("/avatar", middleware.ValidateToken, userControllers.UpdateUserAvatar(db))

		users.GET("/all-users", middleware.ValidateToken, middleware.RequireAdmin, userControllers.GetAllUsers(db))
	}
}
