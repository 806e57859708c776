package orderControllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/events"
	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	Shipping models.ShippingInfo `json:"shipping_info" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Fixed tracking note per target state.
var statusNotes = map[models.OrderStatus]string{
	models.OrderStatusProcessing: "Order placed and is being processed",
	models.OrderStatusShipped:    "Order has been shipped",
	models.OrderStatusDelivered:  "Order has been delivered",
	models.OrderStatusCancelled:  "Order has been cancelled",
}

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch models.OrderStatus(status) {
	case models.OrderStatusProcessing, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
		return models.OrderStatus(status), nil
	default:
		return "", utils.NewApiError(http.StatusBadRequest, "Invalid order status")
	}
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// PlaceOrder turns the user's cart into an order. Everything runs inside one
// transaction: per line the stock check and decrement are a single
// conditional UPDATE (stock can never go below zero, even under concurrent
// checkouts), and any failing line rolls the whole order back, decrements
// included. Product name, price and image are snapshotted into the order
// items; the cart is deleted on success.
func PlaceOrder(db *gorm.DB, userID string, shipping models.ShippingInfo) (*models.Order, error) {
	var order *models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items.Product").Where("owner_id = ?", userID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NewApiError(http.StatusBadRequest, "Your cart is empty")
			}
			return err
		}
		if len(cart.Items) == 0 {
			return utils.NewApiError(http.StatusBadRequest, "Your cart is empty")
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(cart.Items))

		for _, item := range cart.Items {
			if item.Product == nil {
				return utils.NewApiError(http.StatusBadRequest,
					fmt.Sprintf("A product in your cart no longer exists (id %d)", item.ProductID))
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var p models.Product
				_ = tx.Select("stock").First(&p, item.ProductID).Error
				return utils.NewApiError(http.StatusBadRequest,
					fmt.Sprintf("Not enough stock for %s. Available: %d, Requested: %d",
						item.Product.Name, p.Stock, item.Quantity))
			}

			total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Name:      item.Product.Name,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
				Image:     item.Product.Image,
			})
		}

		now := time.Now()
		order = &models.Order{
			OrderRef:   generateOrderRef(),
			OwnerID:    userID,
			Items:      orderItems,
			Shipping:   shipping,
			TotalPrice: total,
			Status:     models.OrderStatusProcessing,
			Payment:    models.PaymentInfo{Status: models.PaymentStatusSucceeded}, // Simulated payment
			Tracking: []models.TrackingEvent{{
				Status:    models.OrderStatusProcessing,
				Timestamp: now,
				Note:      statusNotes[models.OrderStatusProcessing],
			}},
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus moves the order to the given status and appends a
// tracking entry. Any of the four statuses is accepted from any other; there
// is no guarded transition table. Delivered additionally stamps the delivery
// time.
func UpdateOrderStatus(db *gorm.DB, orderID uint, status string) (*models.Order, error) {
	newStatus, err := mapOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").Preload("Tracking").First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NewApiError(http.StatusNotFound, "Order not found")
			}
			return err
		}

		now := time.Now()
		order.Status = newStatus
		if newStatus == models.OrderStatusDelivered {
			order.DeliveredAt = &now
		}

		event := models.TrackingEvent{
			OrderID:   order.ID,
			Status:    newStatus,
			Timestamp: now,
			Note:      statusNotes[newStatus],
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		order.Tracking = append(order.Tracking, event)

		return tx.Model(&order).Updates(map[string]interface{}{
			"status":       order.Status,
			"delivered_at": order.DeliveredAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /orders/create
func PlaceOrderHandler(db *gorm.DB, pub *events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusUnauthorized, "Unauthorized request"))
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Shipping information is required"))
			return
		}

		order, err := PlaceOrder(db, userID, req.Shipping)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		pub.OrderCreated(order)
		broadcastOrderEvent(events.TypeOrderCreated, order)

		utils.Respond(c, http.StatusCreated, order, "Order placed successfully")
	}
}

// GET /orders/my-orders
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var orders []models.Order
		if err := db.
			Preload("Items").
			Preload("Tracking").
			Where("owner_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, orders, "Your orders fetched successfully")
	}
}

// GET /orders/:orderId
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := parseOrderID(c)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		var order models.Order
		if err := db.
			Preload("Items").
			Preload("Tracking").
			First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "Order not found"))
				return
			}
			middleware.AbortWithError(c, err)
			return
		}

		userID, _ := middleware.CurrentUserID(c)
		if order.OwnerID != userID && !middleware.IsAdmin(c) {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusForbidden, "You are not authorized to view this order"))
			return
		}

		utils.Respond(c, http.StatusOK, order, "Order fetched successfully")
	}
}

// GET /orders/admin/all
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Owner").
			Preload("Items").
			Preload("Tracking").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, orders, "All orders fetched successfully")
	}
}

// PATCH /orders/admin/status/:orderId
func UpdateOrderStatusHandler(db *gorm.DB, pub *events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := parseOrderID(c)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Status is required"))
			return
		}

		order, err := UpdateOrderStatus(db, orderID, req.Status)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		pub.OrderStatusChanged(order)
		broadcastOrderEvent(events.TypeOrderStatusChanged, order)

		utils.Respond(c, http.StatusOK, order, "Order status updated")
	}
}

func parseOrderID(c *gin.Context) (uint, error) {
	raw := c.Param("orderId")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, utils.NewApiError(http.StatusBadRequest, "Invalid Order ID")
	}
	return uint(id), nil
}
