package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/models"
)

func SeedUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	id := uuid.NewString()
	user := &models.User{
		ID:       id,
		FullName: "Test User " + id[:8],
		Email:    id[:8] + "@example.com",
		Username: "user_" + id[:8],
		Password: "hashed-password",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func SeedCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func SeedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	category := SeedCategory(t, db, "cat-"+uuid.NewString()[:8], "slug-"+uuid.NewString()[:8])
	product := &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.NewFromFloat(price),
		Stock:       stock,
		CategoryID:  category.ID,
		Image:       "/uploads/products/" + name + ".jpg",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func SeedCart(t *testing.T, db *gorm.DB, ownerID string, lines map[uint]int) *models.Cart {
	t.Helper()
	cart := &models.Cart{OwnerID: ownerID}
	require.NoError(t, db.Create(cart).Error)
	for productID, qty := range lines {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  qty,
			AddedAt:   time.Now(),
		}
		require.NoError(t, db.Create(item).Error)
	}
	return cart
}

// SeedDeliveredOrder records a delivered purchase of the product so the user
// passes the review eligibility check.
func SeedDeliveredOrder(t *testing.T, db *gorm.DB, ownerID string, product *models.Product) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderRef: "test-" + uuid.NewString(),
		OwnerID:  ownerID,
		Status:   models.OrderStatusDelivered,
		Payment:  models.PaymentInfo{Status: models.PaymentStatusSucceeded},
		Shipping: models.ShippingInfo{
			Address: "1 Test St", City: "Testville", State: "TS", Country: "Testland", PinCode: 12345,
		},
		TotalPrice: product.Price,
		Items: []models.OrderItem{{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  1,
			Price:     product.Price,
			Image:     product.Image,
		}},
	}
	require.NoError(t, db.Create(order).Error)
	return order
}
