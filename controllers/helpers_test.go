package controllers_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Badalsingh25/CraftConnect/config"
	"github.com/Badalsingh25/CraftConnect/controllers"
	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/repository/memory"
	"github.com/Badalsingh25/CraftConnect/routes"
	"github.com/Badalsingh25/CraftConnect/services"
	"github.com/Badalsingh25/CraftConnect/utils"
)

const (
	jwtSecret     = "test-jwt-secret"
	keySecret     = "key-secret"
	webhookSecret = "webhook-secret"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGateway struct{}

func (stubGateway) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	return map[string]interface{}{"id": "order_stub", "amount": data["amount"], "currency": data["currency"]}, nil
}

// outbox records mail instead of sending it
type outbox struct {
	sent []string
	err  error
}

func (o *outbox) Send(to, subject, _ string) error {
	o.sent = append(o.sent, to+": "+subject)
	return o.err
}

// testAPI is a router wired to an in-memory store with three users
type testAPI struct {
	t        *testing.T
	store    *memory.Store
	router   http.Handler
	mail     *outbox
	admin    models.User
	artisan  models.User
	customer models.User
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.New()
	cfg := config.RazorpayConfig{KeyID: "rzp_test", KeySecret: keySecret, WebhookSecret: webhookSecret}

	coupons := services.NewCouponService(store.Coupons())
	checkout := services.NewCheckoutService(store, store.Products(), store.Orders(), nil)
	orders := services.NewOrderService(store.Orders(), nil)
	payments := services.NewPaymentService(cfg, stubGateway{}, coupons, store.Orders(), store)
	reviews := services.NewReviewService(store, store.Reviews(), store.Products())
	mail := &outbox{}

	router := routes.SetupRouter(routes.Dependencies{
		JWTSecret:          jwtSecret,
		AllowedOrigin:      "http://localhost:3000",
		PaymentsConfigured: cfg.Enabled(),
		Users:              store.Users(),
		Coupons:            controllers.NewCouponController(coupons),
		Orders:             controllers.NewOrderController(checkout, orders, coupons, services.NewDocumentService()),
		Payments:           controllers.NewPaymentController(payments),
		Reviews:            controllers.NewReviewController(reviews),
		Contact:            controllers.NewContactController(services.NewContactService(mail, "admin@craftconnect.in")),
	})

	return &testAPI{
		t:        t,
		store:    store,
		router:   router,
		mail:     mail,
		admin:    store.SeedUser(models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}),
		artisan:  store.SeedUser(models.User{Name: "Meera", Email: "meera@example.com"}),
		customer: store.SeedUser(models.User{Name: "Ravi", Email: "ravi@example.com"}),
	}
}

func (a *testAPI) do(method, path string, as *models.User, body interface{}) utils.TestResponse {
	a.t.Helper()
	req := utils.TestRequest{Method: method, Path: path, Body: body}
	if as != nil {
		req.Headers = utils.BearerHeader(a.t, jwtSecret, as.ID)
	}
	return utils.MakeTestRequest(a.t, a.router, req)
}

func (a *testAPI) product(name string, price float64) models.Product {
	return a.store.SeedProduct(models.Product{Name: name, Price: price, ArtisanID: a.artisan.ID})
}

func (a *testAPI) coupon(c models.Coupon) models.Coupon {
	c.Active = true
	return a.store.SeedCoupon(c)
}

// checkout places one order for product and returns its id
func (a *testAPI) checkout(product models.Product, paymentID string, coupon map[string]interface{}) string {
	a.t.Helper()
	body := map[string]interface{}{
		"items":     []map[string]interface{}{{"_id": product.ID, "quantity": 1}},
		"paymentId": paymentID,
	}
	if coupon != nil {
		body["coupon"] = coupon
	}
	resp := a.do(http.MethodPost, "/api/orders/checkout", &a.customer, body)
	if resp.StatusCode != http.StatusCreated {
		a.t.Fatalf("checkout failed: %d %s", resp.StatusCode, resp.Raw)
	}
	orders := resp.Body["orders"].([]interface{})
	return orders[0].(map[string]interface{})["_id"].(string)
}

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
