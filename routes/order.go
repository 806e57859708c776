package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/TheManUnderTheHood/Loomly/controllers/order"
	"github.com/TheManUnderTheHood/Loomly/events"
	"github.com/TheManUnderTheHood/Loomly/middleware"
)

// SetupOrderRoutes registers all "/orders/*" endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, pub *events.Publisher) {
	orders := api.Group("/orders", middleware.ValidateToken)
	{
		orders.POST("/create", orderControllers.PlaceOrderHandler(db, pub))
		orders.GET("/my-orders", orderControllers.GetMyOrdersHandler(db))

		admin := orders.Group("/admin", middleware.RequireAdmin)
		{
			admin.GET("/all", orderControllers.GetAllOrdersHandler(db))
			admin.GET("/export", orderControllers.ExportOrdersToExcel(db))
			admin.GET("/ws", orderControllers.OrderWebSocketHandler)
			admin.PATCH("/status/:orderId", orderControllers.UpdateOrderStatusHandler(db, pub))
		}

		orders.GET("/:orderId", orderControllers.GetOrderByIDHandler(db))
	}
}
