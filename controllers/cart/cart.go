package cartControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CartView struct {
	Cart       *models.Cart    `json:"cart"`
	TotalPrice decimal.Decimal `json:"cart_total_price"`
}

// GET /cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var cart models.Cart
		err := db.Preload("Items.Product").Where("owner_id = ?", userID).First(&cart).Error
		if err == gorm.ErrRecordNotFound {
			utils.Respond(c, http.StatusOK, CartView{Cart: &models.Cart{Items: []models.CartItem{}}, TotalPrice: decimal.Zero}, "Cart is empty")
			return
		}
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		total := decimal.Zero
		for _, item := range cart.Items {
			if item.Product != nil {
				total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			}
		}

		utils.Respond(c, http.StatusOK, CartView{Cart: &cart, TotalPrice: total}, "Cart fetched successfully")
	}
}

// POST /cart — add an item; the cart is created lazily on first add and an
// existing line accumulates quantity.
func AddItemToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Valid product_id is required"))
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
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
		if product.Stock < input.Quantity {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Not enough stock available"))
			return
		}

		var cart models.Cart
		err := db.Where("owner_id = ?", userID).First(&cart).Error
		if err == gorm.ErrRecordNotFound {
			cart = models.Cart{OwnerID: userID}
			if err := db.Create(&cart).Error; err != nil {
				middleware.AbortWithError(c, err)
				return
			}
		} else if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).First(&item).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			item = models.CartItem{
				CartID:    cart.ID,
				ProductID: input.ProductID,
				Quantity:  input.Quantity,
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				middleware.AbortWithError(c, err)
				return
			}
		case err != nil:
			middleware.AbortWithError(c, err)
			return
		default:
			item.Quantity += input.Quantity
			item.AddedAt = time.Now()
			if err := db.Save(&item).Error; err != nil {
				middleware.AbortWithError(c, err)
				return
			}
		}

		if err := db.Preload("Items.Product").First(&cart, cart.ID).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, cart, "Item added to cart")
	}
}

// PATCH /cart/item — set a line's quantity.
func UpdateCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Valid product_id and quantity are required"))
			return
		}

		var cart models.Cart
		if err := db.Where("owner_id = ?", userID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "Cart not found"))
				return
			}
			middleware.AbortWithError(c, err)
			return
		}

		res := db.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).
			Update("quantity", input.Quantity)
		if res.Error != nil {
			middleware.AbortWithError(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "Product not in cart"))
			return
		}

		if err := db.Preload("Items.Product").First(&cart, cart.ID).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, cart, "Cart item quantity updated")
	}
}

// DELETE /cart/item/:productId
func RemoveItemFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Invalid Product ID"))
			return
		}

		var cart models.Cart
		if err := db.Where("owner_id = ?", userID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "Cart not found"))
				return
			}
			middleware.AbortWithError(c, err)
			return
		}

		res := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{})
		if res.Error != nil {
			middleware.AbortWithError(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "Product not in cart"))
			return
		}

		if err := db.Preload("Items.Product").First(&cart, cart.ID).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, cart, "Item removed from cart")
	}
}
