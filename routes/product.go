package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/TheManUnderTheHood/Loomly/controllers/product"
	"github.com/TheManUnderTheHood/Loomly/middleware"
)

// SetupProductRoutes registers all "/products/*" endpoints. Browsing is
// public; create/update/delete and export are admin-only.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	products := api.Group("/products")
	{
		products.GET("/", productcontroller.GetAllProducts(db))
		products.GET("/id/:productId", productcontroller.GetProductByID(db))
		products.GET("/style/:styleSlug", productcontroller.GetProductsByCategory(db))
		products.GET("/related/:productId", productcontroller.GetRelatedProducts(db))

		admin := products.Group("", middleware.ValidateToken, middleware.RequireAdmin)
		{
			admin.POST("/create", productcontroller.CreateProduct(db))
			admin.PATCH("/:productId", productcontroller.UpdateProduct(db))
			admin.DELETE("/:productId", productcontroller.DeleteProduct(db))
		}
	}
}
