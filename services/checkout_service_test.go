package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/services"
)

func TestCheckout_SingleLineFlatCoupon(t *testing.T) {
	f := newFixture(t)
	vase := f.product("Clay Vase", 1000)
	coupon := f.coupon(models.Coupon{Code: "FLAT500", Amount: 500})

	order := f.placeOrder(t, vase, "pay_1", quoteOf(coupon))

	assert.Equal(t, 1000.0, order.Gross)
	assert.Equal(t, 500.0, order.Amount)
	assert.Equal(t, 500.0, order.Discount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.False(t, order.PaymentVerified)
	assert.False(t, order.CouponCounted)
	require.NotNil(t, order.CouponID)
	assert.Equal(t, coupon.ID, *order.CouponID)
	require.NotNil(t, order.CouponCode)
	assert.Equal(t, "FLAT500", *order.CouponCode)
	assert.Equal(t, f.artisan.ID, order.ArtisanID)
	assert.True(t, order.IsCustomer(f.customer.ID))
	assert.Equal(t, "Ravi Customer", order.CustomerName)
	assert.Equal(t, "ravi@example.com", order.CustomerEmail)

	require.NotNil(t, order.Product)
	assert.Equal(t, "Clay Vase", order.Product.Name)
	require.NotNil(t, order.Product.Artisan)
	assert.Equal(t, "Meera Artisan", order.Product.Artisan.Name)
}

func TestCheckout_DiscountGoesToFirstLineOnly(t *testing.T) {
	f := newFixture(t)
	first := f.product("Bowl", 300)
	second := f.product("Rug", 700)
	coupon := f.coupon(models.Coupon{Code: "FLAT500", Amount: 500})

	orders, err := f.checkoutService(nil).Checkout(context.Background(), services.CheckoutRequest{
		Customer: f.customerRef(),
		Items: []services.CheckoutItem{
			{ProductID: first.ID, Quantity: 1},
			{ProductID: second.ID, Quantity: 1},
		},
		PaymentID: "pay_2",
		Coupon:    quoteOf(coupon),
	})
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, first.ID, orders[0].ProductID)
	assert.Equal(t, 0.0, orders[0].Amount)
	assert.Equal(t, 300.0, orders[0].Discount)

	assert.Equal(t, second.ID, orders[1].ProductID)
	assert.Equal(t, 700.0, orders[1].Amount)
	assert.Equal(t, 0.0, orders[1].Discount)

	// Both lines carry the coupon reference so the webhook can find it
	for _, o := range orders {
		require.NotNil(t, o.CouponID)
		assert.Equal(t, coupon.ID, *o.CouponID)
		assert.Equal(t, "pay_2", o.PaymentID)
	}
}

func TestCheckout_PercentCouponOnWholeCart(t *testing.T) {
	f := newFixture(t)
	first := f.product("Shawl", 1200)
	second := f.product("Bangles", 450)
	coupon := f.coupon(models.Coupon{Code: "TEN", Type: models.CouponTypePercent, Amount: 10})

	orders, err := f.checkoutService(nil).Checkout(context.Background(), services.CheckoutRequest{
		Customer: f.customerRef(),
		Items: []services.CheckoutItem{
			{ProductID: first.ID, Quantity: 1},
			{ProductID: second.ID, Quantity: 3},
		},
		Coupon: quoteOf(coupon),
	})
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// 10% of 2550
	assert.Equal(t, 255.0, orders[0].Discount)
	assert.Equal(t, 945.0, orders[0].Amount)
	assert.Equal(t, 1350.0, orders[1].Gross)
	assert.Equal(t, 1350.0, orders[1].Amount)
	assert.Equal(t, 3, orders[1].Quantity)
}

func TestCheckout_EmptyItems(t *testing.T) {
	f := newFixture(t)
	_, err := f.checkoutService(nil).Checkout(context.Background(), services.CheckoutRequest{Customer: f.customerRef()})
	appErr := requireAppError(t, err, http.StatusBadRequest, services.ErrInvalidRequest)
	assert.Equal(t, "No items to place order", appErr.Message)
}

func TestCheckout_SkipsMissingProducts(t *testing.T) {
	f := newFixture(t)
	kept := f.product("Lamp", 250)
	gone := f.product("Basket", 400)
	f.store.DeleteProduct(gone.ID)

	orders, err := f.checkoutService(nil).Checkout(context.Background(), services.CheckoutRequest{
		Customer: f.customerRef(),
		Items: []services.CheckoutItem{
			{ProductID: gone.ID, Quantity: 1},
			{ProductID: kept.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, kept.ID, orders[0].ProductID)
	assert.Equal(t, 500.0, orders[0].Amount)

	t.Run("nothing resolves", func(t *testing.T) {
		orders, err := f.checkoutService(nil).Checkout(context.Background(), services.CheckoutRequest{
			Customer: f.customerRef(),
			Items:    []services.CheckoutItem{{ProductID: gone.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestCheckout_ClampsQuantityAndDefaultsName(t *testing.T) {
	f := newFixture(t)
	mug := f.product("Mug", 120)

	orders, err := f.checkoutService(nil).Checkout(context.Background(), services.CheckoutRequest{
		Customer: services.Customer{ID: f.customer.ID},
		Items:    []services.CheckoutItem{{ProductID: mug.ID, Quantity: -4}},
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 1, orders[0].Quantity)
	assert.Equal(t, 120.0, orders[0].Amount)
	assert.Equal(t, "Customer", orders[0].CustomerName)
	assert.Nil(t, orders[0].CouponID)
	assert.Zero(t, orders[0].Discount)
}

func TestCheckout_ClientDiscountOnlyLowers(t *testing.T) {
	f := newFixture(t)
	vase := f.product("Vase", 1000)
	coupon := f.coupon(models.Coupon{Code: "FLAT500", Amount: 500})

	tests := []struct {
		name   string
		client float64
		want   float64
	}{
		{"lower client value wins", 200, 200},
		{"higher client value ignored", 900, 500},
		{"zero means not supplied", 0, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := f.checkoutService(nil).Checkout(context.Background(), services.CheckoutRequest{
				Customer:       f.customerRef(),
				Items:          []services.CheckoutItem{{ProductID: vase.ID, Quantity: 1}},
				Coupon:         quoteOf(coupon),
				ClientDiscount: tt.client,
			})
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.Equal(t, tt.want, orders[0].Discount)
			assert.Equal(t, 1000-tt.want, orders[0].Amount)
		})
	}
}

func TestCheckout_NotifiesInBackground(t *testing.T) {
	f := newFixture(t)
	notifier := newRecordingNotifier()
	vase := f.product("Vase", 800)

	orders, err := f.checkoutService(notifier).Checkout(context.Background(), services.CheckoutRequest{
		Customer: f.customerRef(),
		Items:    []services.CheckoutItem{{ProductID: vase.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	select {
	case notified := <-notifier.placed:
		require.Len(t, notified, 1)
		assert.Equal(t, orders[0].ID, notified[0].ID)
	case <-time.After(time.Second):
		t.Fatal("order placement was not notified")
	}
}

func TestCheckout_DoesNotCountCouponUsage(t *testing.T) {
	f := newFixture(t)
	vase := f.product("Vase", 800)
	coupon := f.coupon(models.Coupon{Code: "ONE", Amount: 100, UsageLimit: 1})

	f.placeOrder(t, vase, "pay_3", quoteOf(coupon))

	stored, err := f.store.Coupons().FindByID(context.Background(), coupon.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.UsedCount)
}

func TestCheckout_CouponRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	coupons := f.couponService()
	rug := f.product("Rug", 700)

	expired := f.coupon(models.Coupon{Code: "OLD", Amount: 100, ExpiresAt: ptr(time.Now().Add(-time.Hour))})
	exhausted := f.coupon(models.Coupon{Code: "USEDUP", Amount: 100, UsageLimit: 1, UsedCount: 1})
	minimum := f.coupon(models.Coupon{Code: "BIG", Amount: 100, MinSubtotal: 5000})
	inactive := f.coupon(models.Coupon{Code: "OFF", Amount: 100})
	_, err := f.store.Coupons().Update(ctx, inactive.ID, map[string]interface{}{"active": false})
	require.NoError(t, err)

	tests := []struct {
		name      string
		coupon    models.Coupon
		paymentID string
		target    error
		discount  float64
	}{
		{"expired without payment", expired, "", services.ErrCouponExpired, 0},
		{"exhausted without payment", exhausted, "", services.ErrCouponLimitReached, 0},
		{"below minimum without payment", minimum, "", services.ErrCouponMinimumNotMet, 0},
		{"below minimum with payment", minimum, "pay_min", services.ErrCouponMinimumNotMet, 0},
		{"expired with payment", expired, "pay_old", nil, 100},
		{"exhausted with payment", exhausted, "pay_used", nil, 100},
		{"inactive is dropped", inactive, "", nil, 0},
		{"inactive with payment is dropped", inactive, "pay_off", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := coupons.Lookup(ctx, tt.coupon.ID, "")
			require.NoError(t, err)

			orders, err := f.checkoutService(nil).Checkout(ctx, services.CheckoutRequest{
				Customer:  f.customerRef(),
				Items:     []services.CheckoutItem{{ProductID: rug.ID, Quantity: 1}},
				PaymentID: tt.paymentID,
				Coupon:    quote,
			})
			if tt.target != nil {
				requireAppError(t, err, http.StatusBadRequest, tt.target)
				assert.Empty(t, orders)
				return
			}
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.Equal(t, tt.discount, orders[0].Discount)
			assert.Equal(t, 700-tt.discount, orders[0].Amount)
			if tt.discount == 0 {
				assert.Nil(t, orders[0].CouponID)
			}
		})
	}

	// Only the four successful checkouts were persisted
	_, total, err := f.store.Orders().List(ctx, services.OrderFilter{CustomerID: f.customer.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
}

func TestCheckout_SubtotalSumsExactly(t *testing.T) {
	f := newFixture(t)
	coupon := f.coupon(models.Coupon{Code: "MIN", Amount: 10, MinSubtotal: 0.8})
	first := f.product("Thread", 0.7)
	second := f.product("Needle", 0.1)

	orders, err := f.checkoutService(nil).Checkout(context.Background(), services.CheckoutRequest{
		Customer: f.customerRef(),
		Items: []services.CheckoutItem{
			{ProductID: first.ID, Quantity: 1},
			{ProductID: second.ID, Quantity: 1},
		},
		Coupon: quoteOf(coupon),
	})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 0.7, orders[0].Discount)
	assert.Zero(t, orders[0].Amount)
	assert.Zero(t, orders[1].Discount)
}
