package categoryControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// POST /categories/create — admin only.
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Category name and slug are required"))
			return
		}

		var existing models.Category
		err := db.Where("name = ? OR slug = ?", input.Name, input.Slug).First(&existing).Error
		if err == nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusConflict, "Category with this name or slug already exists"))
			return
		}
		if err != gorm.ErrRecordNotFound {
			middleware.AbortWithError(c, err)
			return
		}

		category := models.Category{Name: input.Name, Slug: input.Slug}
		if err := db.Create(&category).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		utils.Respond(c, http.StatusCreated, category, "Category created successfully")
	}
}

// GET /categories
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Find(&categories).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, categories, "Categories fetched successfully")
	}
}
