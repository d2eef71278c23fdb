package services

import (
	razorpay "github.com/razorpay/razorpay-go"

	"github.com/Badalsingh25/CraftConnect/config"
)

// OrderCreator creates payment intents on the gateway. It matches the
// razorpay-go Order resource.
type OrderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// NewRazorpayGateway returns the Razorpay order resource for cfg, or nil when
// the key pair is not configured.
func NewRazorpayGateway(cfg config.RazorpayConfig) OrderCreator {
	if !cfg.Enabled() {
		return nil
	}
	client := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	return client.Order
}
