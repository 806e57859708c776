package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	categoryControllers "github.com/TheManUnderTheHood/Loomly/controllers/category"
	"github.com/TheManUnderTheHood/Loomly/middleware"
)

func SetupCategoryRoutes(api *gin.RouterGroup, db *gorm.DB) {
	categories := api.Group("/categories")
	{
		categories.GET("/", categoryControllers.GetAllCategories(db))
		categories.POST("/create", middleware.ValidateToken, middleware.RequireAdmin, categoryControllers.CreateCategory(db))
	}
}
