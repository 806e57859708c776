package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/TheManUnderTheHood/Loomly/controllers/cart"
	"github.com/TheManUnderTheHood/Loomly/middleware"
)

// SetupCartRoutes registers all "/cart/*" endpoints. Every cart operation
// requires an authenticated shopper.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart", middleware.ValidateToken)
	{
		cart.GET("/", cartControllers.GetUserCart(db))
		cart.POST("/", cartControllers.AddItemToCart(db))
		cart.PATCH("/item", cartControllers.UpdateCartItemQuantity(db))
		cart.DELETE("/item/:productId", cartControllers.RemoveItemFromCart(db))
	}
}
