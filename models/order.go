package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order status constants
const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

// OrderStatuses lists every status accepted on the wire
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidOrderStatus reports whether s is one of OrderStatuses
func IsValidOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// CustomerSnapshot is copied into an order when it is placed so later
// profile edits do not rewrite order history.
type CustomerSnapshot struct {
	CustomerName  string `json:"customerName" gorm:"not null"`
	CustomerEmail string `json:"customerEmail,omitempty"`
}

// Order is a single purchased line item. Financial fields are fixed at
// creation; only status, status timestamps, PaymentVerified and
// CouponCounted change afterwards.
type Order struct {
	ID         string   `json:"_id" gorm:"type:uuid;primaryKey"`
	ProductID  string   `json:"-" gorm:"type:uuid;index;not null"`
	Product    *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	ArtisanID  string   `json:"artisan" gorm:"type:uuid;index;not null"`
	CustomerID *string  `json:"customer,omitempty" gorm:"type:uuid;index"`
	CustomerSnapshot

	Quantity  int     `json:"quantity" gorm:"not null;default:1"`
	UnitPrice float64 `json:"unitPrice"`
	Gross     float64 `json:"gross"`
	Amount    float64 `json:"amount" gorm:"not null"`

	CouponID      *string `json:"couponId" gorm:"type:uuid;index"`
	CouponCode    *string `json:"couponCode"`
	Discount      float64 `json:"discount" gorm:"default:0"`
	CouponCounted bool    `json:"couponCounted" gorm:"default:false"`

	Status          string `json:"status" gorm:"index;default:'Pending'"`
	PaymentID       string `json:"paymentId,omitempty" gorm:"index"`
	PaymentVerified bool   `json:"paymentVerified" gorm:"default:false"`

	CreatedAt   time.Time  `json:"createdAt"`
	ShippedAt   *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderInput carries everything needed to place one order line
type OrderInput struct {
	ProductID  string
	ArtisanID  string
	CustomerID string
	Customer   CustomerSnapshot
	Quantity   int
	UnitPrice  float64
	Discount   float64
	CouponID   string
	CouponCode string
	PaymentID  string
}

// NewOrder builds a Pending order. Quantity is clamped to at least one and
// the applied discount to [0, gross].
func NewOrder(in OrderInput) *Order {
	quantity := in.Quantity
	if quantity < 1 {
		quantity = 1
	}
	gross := decimal.NewFromFloat(in.UnitPrice).Mul(decimal.NewFromInt(int64(quantity)))
	applied := decimal.NewFromFloat(in.Discount)
	if applied.IsNegative() {
		applied = decimal.Zero
	}
	if applied.GreaterThan(gross) {
		applied = gross
	}
	amount := gross.Sub(applied)
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	order := &Order{
		ProductID:        in.ProductID,
		ArtisanID:        in.ArtisanID,
		CustomerSnapshot: in.Customer,
		Quantity:         quantity,
		UnitPrice:        in.UnitPrice,
		Gross:            gross.InexactFloat64(),
		Amount:           amount.InexactFloat64(),
		Discount:         applied.InexactFloat64(),
		Status:           OrderStatusPending,
		PaymentID:        in.PaymentID,
	}
	if in.CustomerID != "" {
		id := in.CustomerID
		order.CustomerID = &id
	}
	if in.CouponID != "" {
		id := in.CouponID
		order.CouponID = &id
	}
	if in.CouponCode != "" {
		code := in.CouponCode
		order.CouponCode = &code
	}
	return order
}

// IsArtisan reports whether userID owns the ordered product
func (o Order) IsArtisan(userID string) bool {
	return userID != "" && o.ArtisanID == userID
}

// IsCustomer reports whether userID placed the order
func (o Order) IsCustomer(userID string) bool {
	return userID != "" && o.CustomerID != nil && *o.CustomerID == userID
}

// SetStatus moves the order to status and stamps the matching timestamp.
// Legality of the move is checked by the caller.
func (o *Order) SetStatus(status string, now time.Time) {
	o.Status = status
	switch status {
	case OrderStatusShipped:
		o.ShippedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}
}
