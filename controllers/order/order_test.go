package orderControllers

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/testutil"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

var testShipping = models.ShippingInfo{
	Address: "42 Main St",
	City:    "Springfield",
	State:   "IL",
	Country: "USA",
	PinCode: 62704,
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, models.RoleUser)

	_, err := PlaceOrder(db, user.ID, testShipping)
	require.Error(t, err)

	var apiErr *utils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "cart is empty")
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, models.RoleUser)
	inStock := testutil.SeedProduct(t, db, "plenty", 10.00, 50)
	scarce := testutil.SeedProduct(t, db, "scarce", 5.00, 2)
	testutil.SeedCart(t, db, user.ID, map[uint]int{
		inStock.ID: 1,
		scarce.ID:  3, // more than available
	})

	_, err := PlaceOrder(db, user.ID, testShipping)
	require.Error(t, err)

	var apiErr *utils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Not enough stock")

	// Whole placement rejected: no order, no stock mutation, cart intact.
	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	for _, p := range []*models.Product{inStock, scarce} {
		var got models.Product
		require.NoError(t, db.First(&got, p.ID).Error)
		assert.Equal(t, p.Stock, got.Stock)
	}

	var cart models.Cart
	require.NoError(t, db.Preload("Items").Where("owner_id = ?", user.ID).First(&cart).Error)
	assert.Len(t, cart.Items, 2)
}

func TestPlaceOrder_Success(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, models.RoleUser)
	productA := testutil.SeedProduct(t, db, "alpha", 10.00, 5)
	productB := testutil.SeedProduct(t, db, "beta", 5.00, 5)
	testutil.SeedCart(t, db, user.ID, map[uint]int{
		productA.ID: 2,
		productB.ID: 1,
	})

	order, err := PlaceOrder(db, user.ID, testShipping)
	require.NoError(t, err)
	require.NotNil(t, order)

	// Total = 10*2 + 5*1 = 25.
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(25)),
		"expected total 25, got %s", order.TotalPrice)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, models.PaymentStatusSucceeded, order.Payment.Status)
	assert.NotEmpty(t, order.OrderRef)
	assert.Len(t, order.Items, 2)

	// Initial tracking entry.
	require.Len(t, order.Tracking, 1)
	assert.Equal(t, models.OrderStatusProcessing, order.Tracking[0].Status)
	assert.Equal(t, statusNotes[models.OrderStatusProcessing], order.Tracking[0].Note)

	// Stock decremented per line.
	var gotA, gotB models.Product
	require.NoError(t, db.First(&gotA, productA.ID).Error)
	require.NoError(t, db.First(&gotB, productB.ID).Error)
	assert.Equal(t, 3, gotA.Stock)
	assert.Equal(t, 4, gotB.Stock)

	// Cart is gone.
	err = db.Where("owner_id = ?", user.ID).First(&models.Cart{}).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var itemCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestPlaceOrder_SnapshotFrozen(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, models.RoleUser)
	product := testutil.SeedProduct(t, db, "gadget", 19.99, 5)
	testutil.SeedCart(t, db, user.ID, map[uint]int{product.ID: 1})

	order, err := PlaceOrder(db, user.ID, testShipping)
	require.NoError(t, err)

	// Later product edits must not rewrite the order's line items.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":  "renamed gadget",
			"price": decimal.NewFromFloat(99.99),
			"image": "/uploads/products/new.jpg",
		}).Error)

	var got models.Order
	require.NoError(t, db.Preload("Items").First(&got, order.ID).Error)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "gadget", got.Items[0].Name)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromFloat(19.99)))
	assert.Equal(t, product.Image, got.Items[0].Image)
}

func TestPlaceOrder_DeletedProduct(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, models.RoleUser)
	product := testutil.SeedProduct(t, db, "vanishing", 10.00, 5)
	testutil.SeedCart(t, db, user.ID, map[uint]int{product.ID: 1})

	require.NoError(t, db.Delete(&models.Product{}, product.ID).Error)

	_, err := PlaceOrder(db, user.ID, testShipping)
	require.Error(t, err)

	var apiErr *utils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "no longer exists")
}

func TestPlaceOrder_LastUnitTwoBuyers(t *testing.T) {
	db := testutil.NewDB(t)
	product := testutil.SeedProduct(t, db, "last-unit", 30.00, 1)

	first := testutil.SeedUser(t, db, models.RoleUser)
	second := testutil.SeedUser(t, db, models.RoleUser)
	testutil.SeedCart(t, db, first.ID, map[uint]int{product.ID: 1})
	testutil.SeedCart(t, db, second.ID, map[uint]int{product.ID: 1})

	_, err := PlaceOrder(db, first.ID, testShipping)
	require.NoError(t, err)

	_, err = PlaceOrder(db, second.ID, testShipping)
	require.Error(t, err)
	var apiErr *utils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "Not enough stock")

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 0, got.Stock)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.EqualValues(t, 1, orderCount)
}

func TestPlaceOrder_ConcurrentLastUnit(t *testing.T) {
	db := testutil.NewDB(t)
	product := testutil.SeedProduct(t, db, "contested", 30.00, 1)

	buyers := []*models.User{
		testutil.SeedUser(t, db, models.RoleUser),
		testutil.SeedUser(t, db, models.RoleUser),
	}
	for _, buyer := range buyers {
		testutil.SeedCart(t, db, buyer.ID, map[uint]int{product.ID: 1})
	}

	var wg sync.WaitGroup
	errs := make([]error, len(buyers))
	for i, buyer := range buyers {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			_, errs[i] = PlaceOrder(db, userID, testShipping)
		}(i, buyer.ID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one checkout may win the last unit")

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 0, got.Stock)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.EqualValues(t, 1, orderCount)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, models.RoleUser)
	product := testutil.SeedProduct(t, db, "tracked", 10.00, 5)
	testutil.SeedCart(t, db, user.ID, map[uint]int{product.ID: 1})

	order, err := PlaceOrder(db, user.ID, testShipping)
	require.NoError(t, err)

	updated, err := UpdateOrderStatus(db, order.ID, "Shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	assert.Nil(t, updated.DeliveredAt)
	require.Len(t, updated.Tracking, 2)
	assert.Equal(t, models.OrderStatusShipped, updated.Tracking[1].Status)
	assert.Equal(t, statusNotes[models.OrderStatusShipped], updated.Tracking[1].Note)

	updated, err = UpdateOrderStatus(db, order.ID, "Delivered")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	require.NotNil(t, updated.DeliveredAt)
	require.Len(t, updated.Tracking, 3)

	// History is append-only and survives reloads.
	var got models.Order
	require.NoError(t, db.Preload("Tracking").First(&got, order.ID).Error)
	assert.Len(t, got.Tracking, 3)
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, models.RoleUser)
	product := testutil.SeedProduct(t, db, "thing", 10.00, 5)
	testutil.SeedCart(t, db, user.ID, map[uint]int{product.ID: 1})

	order, err := PlaceOrder(db, user.ID, testShipping)
	require.NoError(t, err)

	_, err = UpdateOrderStatus(db, order.ID, "Teleported")
	require.Error(t, err)
	var apiErr *utils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)

	_, err = UpdateOrderStatus(db, order.ID+999, "Shipped")
	require.Error(t, err)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestUpdateOrderStatus_CancelledFromAnyState(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, models.RoleUser)
	product := testutil.SeedProduct(t, db, "cancellable", 10.00, 5)
	testutil.SeedCart(t, db, user.ID, map[uint]int{product.ID: 1})

	order, err := PlaceOrder(db, user.ID, testShipping)
	require.NoError(t, err)

	_, err = UpdateOrderStatus(db, order.ID, "Delivered")
	require.NoError(t, err)

	// No guarded edges: Cancelled is reachable even after Delivered.
	updated, err := UpdateOrderStatus(db, order.ID, "Cancelled")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
}
