package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

// GET /products/id/:productId
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := parseProductID(c)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		var product models.Product
		if err := db.Preload("Category").First(&product, productID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "Product not found"))
				return
			}
			middleware.AbortWithError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, product, "Product fetched successfully")
	}
}

// GET /products/style/:styleSlug
func GetProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("styleSlug")

		var category models.Category
		if err := db.Where("slug = ?", slug).First(&category).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "Category not found"))
				return
			}
			middleware.AbortWithError(c, err)
			return
		}

		var products []models.Product
		if err := db.Where("category_id = ?", category.ID).Find(&products).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, gin.H{
			"category": category,
			"products": products,
		}, "Products for category fetched successfully")
	}
}

// GET /products/related/:productId — other products from the same category.
func GetRelatedProducts(db *gorm.DB) gin.HandlerFunc {
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

		var related []models.Product
		if err := db.
			Where("category_id = ? AND id <> ?", product.CategoryID, product.ID).
			Limit(8).
			Find(&related).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, related, "Related products fetched successfully")
	}
}

func parseProductID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		return 0, utils.NewApiError(http.StatusBadRequest, "Invalid Product ID")
	}
	return uint(id), nil
}
