package services

import "github.com/go-faster/errors"

// Sentinel errors. Services return them wrapped in a *utils.AppError that
// carries the HTTP status and client message, so errors.Is still matches.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrForbidden      = errors.New("forbidden")

	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponExpired       = errors.New("coupon expired")
	ErrCouponLimitReached  = errors.New("coupon usage limit reached")
	ErrCouponMinimumNotMet = errors.New("coupon minimum subtotal not met")
	ErrCouponExists        = errors.New("coupon code already exists")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrPaymentNotConfigured = errors.New("payment not configured")
	ErrWebhookNotConfigured = errors.New("webhook not configured")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidSignature     = errors.New("invalid signature")

	ErrProductNotFound = errors.New("product not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrReviewExists    = errors.New("review already exists")
	ErrInvalidRating   = errors.New("invalid rating")

	ErrContactNotDelivered = errors.New("contact message not delivered")
)
