package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

// POST /products/create — admin only, multipart form with the product image.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		description := c.PostForm("description")
		priceStr := c.PostForm("price")
		stockStr := c.PostForm("stock")
		categoryStr := c.PostForm("category")
		if name == "" || description == "" || priceStr == "" || stockStr == "" || categoryStr == "" {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "All required fields must be provided"))
			return
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Invalid price"))
			return
		}
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Invalid stock"))
			return
		}
		categoryID, err := strconv.ParseUint(categoryStr, 10, 64)
		if err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Invalid category"))
			return
		}

		var category models.Category
		if err := db.First(&category, categoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "Category not found"))
				return
			}
			middleware.AbortWithError(c, err)
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Product image is required"))
			return
		}
		imageURL, err := utils.SaveUploadedImage(c, file, "products")
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		product := models.Product{
			Name:        name,
			Description: description,
			Price:       price,
			Stock:       stock,
			CategoryID:  uint(categoryID),
			Image:       imageURL,
			Trending:    c.PostForm("trending") == "true",
		}
		if err := db.Create(&product).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		utils.Respond(c, http.StatusCreated, product, "Product created successfully")
	}
}
