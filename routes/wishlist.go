package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	wishlistControllers "github.com/TheManUnderTheHood/Loomly/controllers/wishlist"
	"github.com/TheManUnderTheHood/Loomly/middleware"
)

func SetupWishlistRoutes(api *gin.RouterGroup, db *gorm.DB) {
	wishlist := api.Group("/wishlist", middleware.ValidateToken)
	{
		wishlist.GET("/", wishlistControllers.GetUserWishlist(db))
		wishlist.POST("/toggle", wishlistControllers.ToggleWishlistItem(db))
	}
}
