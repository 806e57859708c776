package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing" // Order placed, being prepared
	OrderStatusShipped    OrderStatus = "Shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "Delivered"  // Customer received the items
	OrderStatusCancelled  OrderStatus = "Cancelled"  // Order cancelled

	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// ShippingInfo is embedded into the order at checkout.
type ShippingInfo struct {
	Address string `gorm:"not null" json:"address" binding:"required"`
	City    string `gorm:"not null" json:"city" binding:"required"`
	State   string `gorm:"not null" json:"state" binding:"required"`
	Country string `gorm:"not null" json:"country" binding:"required"`
	PinCode int    `gorm:"not null" json:"pin_code" binding:"required"`
}

// PaymentInfo is the payment sub-record. ID comes from the gateway when one
// is wired in; the checkout flow currently simulates a successful charge.
type PaymentInfo struct {
	ID     string        `json:"id"`
	Status PaymentStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
}

type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderRef     string          `gorm:"uniqueIndex;not null" json:"order_ref"`
	OwnerID      string          `gorm:"index;not null" json:"owner_id"`
	Owner        *User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Shipping     ShippingInfo    `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_info"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric;not null" json:"total_price"`
	Status       OrderStatus     `gorm:"type:VARCHAR(20);default:'Processing'" json:"status"`
	Payment      PaymentInfo     `gorm:"embedded;embeddedPrefix:payment_" json:"payment_info"`
	DeliveredAt  *time.Time      `json:"delivered_at,omitempty"`
	Tracking     []TrackingEvent `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"tracking_history"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// OrderItem is a frozen copy of the purchased product line. Name, price and
// image are snapshotted at checkout so later product edits never rewrite
// order history.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Name      string          `gorm:"not null" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Image     string          `gorm:"not null" json:"image"`
}

// TrackingEvent is one entry of the append-only tracking history.
type TrackingEvent struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"index" json:"order_id"`
	Status    OrderStatus `gorm:"type:VARCHAR(20);not null" json:"status"`
	Timestamp time.Time   `gorm:"not null" json:"timestamp"`
	Note      string      `json:"note"`
}
