package reviewControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

type SubmitReviewInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// -------- Core Logic --------

// UpsertReview creates or updates the caller's review for a product and
// recomputes the product's aggregate rating. A user may only review products
// from an order that reached Delivered.
func UpsertReview(db *gorm.DB, userID string, input SubmitReviewInput) (*models.Review, error) {
	var review models.Review

	err := db.Transaction(func(tx *gorm.DB) error {
		var purchased int64
		err := tx.Model(&models.Order{}).
			Joins("JOIN order_items ON order_items.order_id = orders.id").
			Where("orders.owner_id = ? AND order_items.product_id = ? AND orders.status = ?",
				userID, input.ProductID, models.OrderStatusDelivered).
			Count(&purchased).Error
		if err != nil {
			return err
		}
		if purchased == 0 {
			return utils.NewApiError(http.StatusForbidden,
				"You can only review products you have purchased and received")
		}

		var product models.Product
		if err := tx.First(&product, input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NewApiError(http.StatusNotFound, "Product not found")
			}
			return err
		}

		err = tx.Where("product_id = ? AND user_id = ?", input.ProductID, userID).First(&review).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			review = models.Review{
				ProductID: input.ProductID,
				UserID:    userID,
				Rating:    input.Rating,
				Comment:   input.Comment,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			review.Rating = input.Rating
			review.Comment = input.Comment
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
		}

		return recomputeProductRating(tx, input.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a review (owner or admin) and recomputes the
// product's aggregates.
func DeleteReview(db *gorm.DB, userID string, isAdmin bool, reviewID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NewApiError(http.StatusNotFound, "Review not found")
			}
			return err
		}

		if review.UserID != userID && !isAdmin {
			return utils.NewApiError(http.StatusForbidden, "You are not authorized to delete this review")
		}

		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return recomputeProductRating(tx, review.ProductID)
	})
}

// recomputeProductRating re-reads every review for the product and reduces
// over them. No incremental maintenance; the full set is the source of truth.
func recomputeProductRating(tx *gorm.DB, productID uint) error {
	var reviews []models.Review
	if err := tx.Where("product_id = ?", productID).Find(&reviews).Error; err != nil {
		return err
	}

	ratings := 0.0
	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		ratings = float64(total) / float64(len(reviews))
	}

	return tx.Model(&models.Product{}).Where("id = ?", productID).
		Updates(map[string]interface{}{
			"ratings":     ratings,
			"num_reviews": len(reviews),
		}).Error
}

// -------- Handlers --------

// POST /reviews
func SubmitReviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var input SubmitReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Valid product_id and rating (1-5) are required"))
			return
		}

		review, err := UpsertReview(db, userID, input)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, review, "Review submitted successfully")
	}
}

// GET /reviews/product/:productId
func GetProductReviewsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Invalid Product ID"))
			return
		}

		var reviews []models.Review
		if err := db.Preload("User").Where("product_id = ?", productID).
			Order("created_at DESC").Find(&reviews).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, reviews, "Reviews fetched successfully")
	}
}

// DELETE /reviews/:reviewId
func DeleteReviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		reviewID, err := strconv.ParseUint(c.Param("reviewId"), 10, 64)
		if err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Invalid Review ID"))
			return
		}

		if err := DeleteReview(db, userID, middleware.IsAdmin(c), uint(reviewID)); err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, gin.H{}, "Review deleted successfully")
	}
}
