package wishlistControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

type ToggleWishlistInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GET /wishlist
func GetUserWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var wishlist models.Wishlist
		err := db.Preload("Items.Product").Where("owner_id = ?", userID).First(&wishlist).Error
		if err == gorm.ErrRecordNotFound {
			utils.Respond(c, http.StatusOK, models.Wishlist{Items: []models.WishlistItem{}}, "Wishlist is empty")
			return
		}
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, wishlist, "Wishlist fetched successfully")
	}
}

// POST /wishlist/toggle — add the product if absent, remove it if present.
func ToggleWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var input ToggleWishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Valid product_id is required"))
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "Product not found"))
				return
			}
			middleware.AbortWithError(c, err)
			return
		}

		var wishlist models.Wishlist
		err := db.Where("owner_id = ?", userID).First(&wishlist).Error
		if err == gorm.ErrRecordNotFound {
			wishlist = models.Wishlist{OwnerID: userID}
			if err := db.Create(&wishlist).Error; err != nil {
				middleware.AbortWithError(c, err)
				return
			}
		} else if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		message := "Product added to wishlist"
		res := db.Where("wishlist_id = ? AND product_id = ?", wishlist.ID, input.ProductID).
			Delete(&models.WishlistItem{})
		if res.Error != nil {
			middleware.AbortWithError(c, res.Error)
			return
		}
		if res.RowsAffected > 0 {
			message = "Product removed from wishlist"
		} else {
			item := models.WishlistItem{WishlistID: wishlist.ID, ProductID: input.ProductID}
			if err := db.Create(&item).Error; err != nil {
				middleware.AbortWithError(c, err)
				return
			}
		}

		if err := db.Preload("Items.Product").First(&wishlist, wishlist.ID).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, wishlist, message)
	}
}
