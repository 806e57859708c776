package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	CategoryID  *uint            `json:"category_id"`
	Trending    *bool            `json:"trending"`
}

// PATCH /products/:productId — admin only, partial update.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
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

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Invalid input"))
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Invalid price"))
				return
			}
			updates["price"] = *input.Price
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Invalid stock"))
				return
			}
			updates["stock"] = *input.Stock
		}
		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "Category not found"))
				return
			}
			updates["category_id"] = *input.CategoryID
		}
		if input.Trending != nil {
			updates["trending"] = *input.Trending
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				middleware.AbortWithError(c, err)
				return
			}
		}

		utils.Respond(c, http.StatusOK, product, "Product updated successfully")
	}
}
