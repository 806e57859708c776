package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/events"
)

// SetupRoutes is the single entry-point that wires up every route group
// under /api/v1.
func SetupRoutes(r *gin.Engine, db *gorm.DB, pub *events.Publisher) {
	api := r.Group("/api/v1")

	SetupUserRoutes(api, db)
	SetupProductRoutes(api, db)
	SetupCategoryRoutes(api, db)
	SetupCartRoutes(api, db)
	SetupWishlistRoutes(api, db)
	SetupOrderRoutes(api, db, pub)
	SetupReviewRoutes(api, db)
}
