package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/config"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// PaymentConfig is the public part of the gateway configuration
type PaymentConfig struct {
	KeyID   string `json:"keyId"`
	Enabled bool   `json:"enabled"`
}

// IntentCoupon describes the coupon priced into a payment intent
type IntentCoupon struct {
	ID     string  `json:"id"`
	Code   string  `json:"code"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// PaymentIntent is a created gateway order together with the server side
// pricing it was created for.
type PaymentIntent struct {
	Order    map[string]interface{} `json:"order"`
	KeyID    string                 `json:"keyId"`
	Subtotal float64                `json:"subtotal"`
	Discount float64                `json:"discount"`
	Payable  float64                `json:"payable"`
	Coupon   *IntentCoupon          `json:"coupon"`
}

// webhookEvent holds the fields read from a gateway webhook. Razorpay names
// the event in "event"; "type" is accepted as well. A body whose entity is
// anything but "event" is not an event notification.
type webhookEvent struct {
	Entity  string `json:"entity"`
	Event   string `json:"event"`
	Type    string `json:"type"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (e webhookEvent) name() string {
	if e.Event != "" {
		return e.Event
	}
	return e.Type
}

// PaymentService creates payment intents, verifies checkout signatures and
// applies webhook confirmations.
type PaymentService struct {
	cfg     config.RazorpayConfig
	gateway OrderCreator
	coupons *CouponService
	orders  OrderStore
	tx      Transactor
	now     func() time.Time
}

func NewPaymentService(cfg config.RazorpayConfig, gateway OrderCreator, coupons *CouponService, orders OrderStore, tx Transactor) *PaymentService {
	return &PaymentService{
		cfg:     cfg,
		gateway: gateway,
		coupons: coupons,
		orders:  orders,
		tx:      tx,
		now:     time.Now,
	}
}

func (s *PaymentService) Config() PaymentConfig {
	return PaymentConfig{KeyID: s.cfg.KeyID, Enabled: s.cfg.Enabled()}
}

// CanVerify reports whether checkout signatures can be checked
func (s *PaymentService) CanVerify() bool {
	return s.cfg.KeySecret != ""
}

// CreateIntent prices subtotal with the coupon re-validated on the server and
// creates a gateway order for the payable amount. A coupon that does not
// validate is ignored.
func (s *PaymentService) CreateIntent(ctx context.Context, subtotal float64, couponCode string) (*PaymentIntent, error) {
	if subtotal <= 0 {
		return nil, utils.BadRequestError("Amount is required", ErrInvalidAmount)
	}

	intent := &PaymentIntent{KeyID: s.cfg.KeyID, Subtotal: subtotal}
	if strings.TrimSpace(couponCode) != "" {
		quote, err := s.coupons.Validate(ctx, couponCode, subtotal)
		switch {
		case err == nil:
			intent.Discount = ComputeDiscount(quote, subtotal)
			intent.Coupon = &IntentCoupon{ID: quote.ID, Code: quote.Code, Type: quote.Type, Amount: quote.Amount}
		case utils.IsAppError(err):
			utils.LogDebug("Ignoring coupon %q for payment intent: %v", couponCode, err)
		default:
			return nil, err
		}
	}
	intent.Payable = subtotal - intent.Discount
	if intent.Payable < 0 {
		intent.Payable = 0
	}

	if !s.cfg.Enabled() || s.gateway == nil {
		return nil, utils.BadRequestError(utils.ErrNotConfigured, ErrPaymentNotConfigured)
	}

	order, err := s.gateway.Create(map[string]interface{}{
		"amount":   toPaise(intent.Payable),
		"currency": utils.Currency,
		"receipt":  fmt.Sprintf("rcpt_%d", s.now().UnixMilli()),
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create gateway order")
	}
	intent.Order = order

	utils.LogInfo("Created payment intent %v: subtotal %.2f, discount %.2f, payable %.2f",
		order["id"], intent.Subtotal, intent.Discount, intent.Payable)
	return intent, nil
}

// VerifySignature reports whether signature is the checkout signature the
// gateway issues for intentID and paymentID. It never fails: any mismatch,
// including a missing secret, is false.
func (s *PaymentService) VerifySignature(intentID, paymentID, signature string) bool {
	if s.cfg.KeySecret == "" {
		return false
	}
	expected := sign(s.cfg.KeySecret, []byte(intentID+"|"+paymentID))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleWebhook authenticates rawBody against the webhook secret before
// reading it. For payment events it marks the payment's orders verified and
// counts the coupon they used exactly once, however often the event is
// delivered.
func (s *PaymentService) HandleWebhook(ctx context.Context, rawBody []byte, signature string) error {
	if s.cfg.WebhookSecret == "" {
		return utils.BadRequestError("Webhook not configured", ErrWebhookNotConfigured)
	}
	expected := sign(s.cfg.WebhookSecret, rawBody)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return utils.BadRequestError(utils.ErrInvalidSignature, ErrInvalidSignature)
	}

	var event webhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return errors.Wrap(err, "decode webhook")
	}
	name := event.name()
	if event.Entity != "" && event.Entity != "event" {
		utils.LogDebug("Ignoring webhook entity %q", event.Entity)
		return nil
	}
	if !strings.HasPrefix(name, "payment.") {
		utils.LogDebug("Ignoring webhook event %q", name)
		return nil
	}
	paymentID := event.Payload.Payment.Entity.ID
	if paymentID == "" {
		utils.LogDebug("Webhook event %q carries no payment id", name)
		return nil
	}

	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		verified, err := s.orders.MarkPaymentVerified(ctx, paymentID)
		if err != nil {
			return errors.Wrapf(err, "mark payment %s verified", paymentID)
		}
		utils.LogInfo("Webhook %s: %d orders verified for payment %s", name, verified, paymentID)

		order, err := s.orders.FindUncountedCouponOrder(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return errors.Wrapf(err, "find uncounted coupon order for payment %s", paymentID)
		}
		if order.CouponID == nil {
			return nil
		}
		couponID := *order.CouponID

		claimed, err := s.orders.ClaimCouponUsage(ctx, paymentID, couponID)
		if err != nil {
			return errors.Wrapf(err, "claim coupon usage for payment %s", paymentID)
		}
		if claimed == 0 {
			return nil
		}
		if err := s.coupons.RecordUsage(ctx, couponID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.LogError("Coupon %s used by payment %s no longer exists", couponID, paymentID)
				return nil
			}
			return err
		}
		utils.LogInfo("Counted coupon %s once for payment %s", couponID, paymentID)
		return nil
	})
}

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
