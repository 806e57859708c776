package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	reviewControllers "github.com/TheManUnderTheHood/Loomly/controllers/review"
	"github.com/TheManUnderTheHood/Loomly/middleware"
)

func SetupReviewRoutes(api *gin.RouterGroup, db *gorm.DB) {
	reviews := api.Group("/reviews")
	{
		reviews.GET("/product/:productId", reviewControllers.GetProductReviewsHandler(db))

		reviews.POST("/", middleware.ValidateToken, reviewControllers.SubmitReviewHandler(db))
		reviews.DELETE("/:reviewId", middleware.ValidateToken, reviewControllers.DeleteReviewHandler(db))
	}
}
