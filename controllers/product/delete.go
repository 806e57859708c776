package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

// DELETE /products/:productId — admin only. Soft delete so order items keep
// a resolvable product reference.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := parseProductID(c)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "Product not found"))
				return
			}
			middleware.AbortWithError(c, err)
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, gin.H{}, "Product deleted successfully")
	}
}
