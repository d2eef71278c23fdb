package services_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/repository/memory"
	"github.com/Badalsingh25/CraftConnect/services"
	"github.com/Badalsingh25/CraftConnect/utils"
)

type fixture struct {
	store    *memory.Store
	artisan  models.User
	customer models.User
	stranger models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	return &fixture{
		store:    store,
		artisan:  store.SeedUser(models.User{Name: "Meera Artisan", Email: "meera@example.com"}),
		customer: store.SeedUser(models.User{Name: "Ravi Customer", Email: "ravi@example.com"}),
		stranger: store.SeedUser(models.User{Name: "Someone Else", Email: "else@example.com"}),
	}
}

func (f *fixture) product(name string, price float64) models.Product {
	return f.store.SeedProduct(models.Product{Name: name, Price: price, ArtisanID: f.artisan.ID})
}

func (f *fixture) coupon(c models.Coupon) models.Coupon {
	if c.Type == "" {
		c.Type = models.CouponTypeFlat
	}
	c.Active = true
	return f.store.SeedCoupon(c)
}

func (f *fixture) customerRef() services.Customer {
	return services.Customer{ID: f.customer.ID, Name: f.customer.Name, Email: f.customer.Email}
}

func (f *fixture) couponService() *services.CouponService {
	return services.NewCouponService(f.store.Coupons())
}

func (f *fixture) checkoutService(notifier services.OrderNotifier) *services.CheckoutService {
	return services.NewCheckoutService(f.store, f.store.Products(), f.store.Orders(), notifier)
}

func (f *fixture) orderService(notifier services.OrderNotifier) *services.OrderService {
	return services.NewOrderService(f.store.Orders(), notifier)
}

// placeOrder checks out a single line and returns the created order
func (f *fixture) placeOrder(t *testing.T, product models.Product, paymentID string, quote *services.CouponQuote) models.Order {
	t.Helper()
	orders, err := f.checkoutService(nil).Checkout(context.Background(), services.CheckoutRequest{
		Customer:  f.customerRef(),
		Items:     []services.CheckoutItem{{ProductID: product.ID, Quantity: 1}},
		PaymentID: paymentID,
		Coupon:    quote,
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	return orders[0]
}

func quoteOf(c models.Coupon) *services.CouponQuote {
	return &services.CouponQuote{ID: c.ID, Code: c.Code, Type: c.Type, Amount: c.Amount, MinSubtotal: c.MinSubtotal}
}

func hmacHex(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func requireAppError(t *testing.T, err error, code int, target error) *utils.AppError {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, target)
	appErr := utils.GetAppError(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
	return appErr
}

// recordingNotifier captures notifications sent from background goroutines
type recordingNotifier struct {
	placed  chan []models.Order
	changed chan models.Order
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		placed:  make(chan []models.Order, 4),
		changed: make(chan models.Order, 4),
	}
}

func (n *recordingNotifier) OrderPlaced(_ services.Customer, orders []models.Order, _ string) {
	n.placed <- orders
}

func (n *recordingNotifier) StatusChanged(order models.Order) {
	n.changed <- order
}

// recordingMailer stores every message it is asked to send
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	to, subject, body string
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return m.err
}

// fakeGateway stands in for the razorpay order resource
type fakeGateway struct {
	calls []map[string]interface{}
	err   error
}

func (g *fakeGateway) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	g.calls = append(g.calls, data)
	if g.err != nil {
		return nil, g.err
	}
	return map[string]interface{}{
		"id":       "order_test123",
		"entity":   "order",
		"amount":   data["amount"],
		"currency": data["currency"],
		"receipt":  data["receipt"],
	}, nil
}
