package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	tests := []struct {
		name     string
		in       OrderInput
		quantity int
		gross    float64
		discount float64
		amount   float64
	}{
		{"no discount", OrderInput{Quantity: 2, UnitPrice: 250}, 2, 500, 0, 500},
		{"quantity clamped", OrderInput{Quantity: 0, UnitPrice: 300}, 1, 300, 0, 300},
		{"discount applied", OrderInput{Quantity: 1, UnitPrice: 1000, Discount: 500}, 1, 1000, 500, 500},
		{"discount capped at gross", OrderInput{Quantity: 1, UnitPrice: 300, Discount: 500}, 1, 300, 300, 0},
		{"negative discount ignored", OrderInput{Quantity: 1, UnitPrice: 300, Discount: -20}, 1, 300, 0, 300},
		{"fractional price", OrderInput{Quantity: 3, UnitPrice: 0.1}, 3, 0.3, 0, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := NewOrder(tt.in)
			assert.Equal(t, OrderStatusPending, order.Status)
			assert.Equal(t, tt.quantity, order.Quantity)
			assert.Equal(t, tt.gross, order.Gross)
			assert.Equal(t, tt.discount, order.Discount)
			assert.Equal(t, tt.amount, order.Amount)
		})
	}
}

func TestNewOrderReferences(t *testing.T) {
	order := NewOrder(OrderInput{UnitPrice: 10, Quantity: 1})
	assert.Nil(t, order.CustomerID)
	assert.Nil(t, order.CouponID)
	assert.Nil(t, order.CouponCode)
	assert.False(t, order.IsCustomer(""))

	order = NewOrder(OrderInput{
		ArtisanID:  "artisan",
		CustomerID: "customer",
		CouponID:   "coupon",
		CouponCode: "SAVE10",
		UnitPrice:  10,
	})
	require.NotNil(t, order.CouponCode)
	assert.Equal(t, "SAVE10", *order.CouponCode)
	assert.True(t, order.IsArtisan("artisan"))
	assert.True(t, order.IsCustomer("customer"))
	assert.False(t, order.IsArtisan("customer"))
}

func TestSetStatus(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	order := NewOrder(OrderInput{UnitPrice: 10})

	order.SetStatus(OrderStatusShipped, now)
	require.NotNil(t, order.ShippedAt)
	assert.Equal(t, now, *order.ShippedAt)
	assert.Nil(t, order.DeliveredAt)

	order.SetStatus(OrderStatusDelivered, now.Add(time.Hour))
	require.NotNil(t, order.DeliveredAt)
	assert.Equal(t, OrderStatusDelivered, order.Status)
	assert.Nil(t, order.CancelledAt)
}

func TestCouponPredicates(t *testing.T) {
	now := time.Now()
	past, future := now.Add(-time.Hour), now.Add(time.Hour)

	assert.False(t, Coupon{}.IsExpired(now))
	assert.True(t, Coupon{ExpiresAt: &past}.IsExpired(now))
	assert.False(t, Coupon{ExpiresAt: &future}.IsExpired(now))

	assert.False(t, Coupon{UsageLimit: 0, UsedCount: 100}.LimitReached())
	assert.True(t, Coupon{UsageLimit: 1, UsedCount: 1}.LimitReached())
	assert.False(t, Coupon{UsageLimit: 2, UsedCount: 1}.LimitReached())

	assert.Equal(t, "FEST10", NormalizeCouponCode("  fest10 "))
	assert.True(t, IsValidOrderStatus(OrderStatusShipped))
	assert.False(t, IsValidOrderStatus("shipped"))
}
