package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Badalsingh25/CraftConnect/services"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// CreatePaymentOrderRequest represents the request body for a payment
// intent. Amount is the older name of Subtotal and wins when both are set.
type CreatePaymentOrderRequest struct {
	Subtotal   float64 `json:"subtotal"`
	Amount     float64 `json:"amount"`
	CouponCode string  `json:"couponCode"`
}

// VerifyPaymentRequest represents the checkout callback from the gateway
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// SignatureHeader carries the webhook HMAC
const SignatureHeader = "X-Razorpay-Signature"

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// GetPaymentConfig exposes the public key and whether payments work
func (pc *PaymentController) GetPaymentConfig(c *gin.Context) {
	utils.LogInfo("GetPaymentConfig called")
	c.JSON(http.StatusOK, pc.payments.Config())
}

// CreatePaymentOrder creates a gateway order for the discounted cart total
func (pc *PaymentController) CreatePaymentOrder(c *gin.Context) {
	utils.LogInfo("CreatePaymentOrder called")

	var req CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid payment order request: %v", err)
		utils.BadRequest(c, "Amount is required")
		return
	}
	subtotal := req.Amount
	if subtotal == 0 {
		subtotal = req.Subtotal
	}

	intent, err := pc.payments.CreateIntent(c.Request.Context(), subtotal, req.CouponCode)
	if err != nil {
		if utils.IsAppError(err) {
			utils.RespondError(c, err)
			return
		}
		utils.LogError("Failed to create payment order: %v", err)
		utils.Message(c, http.StatusInternalServerError, "Failed to create payment order")
		return
	}
	c.JSON(http.StatusOK, intent)
}

// VerifyPayment checks the signature returned by the checkout widget
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")

	if !pc.payments.CanVerify() {
		utils.BadRequest(c, utils.ErrNotConfigured)
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		utils.BadRequest(c, "Missing payment params")
		return
	}

	if !pc.payments.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		utils.LogError("Invalid payment signature for payment %s", req.RazorpayPaymentID)
		utils.BadRequest(c, utils.ErrInvalidSignature)
		return
	}

	utils.LogInfo("Payment %s verified", req.RazorpayPaymentID)
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// Webhook applies a gateway payment notification. Replies are bare text.
func (pc *PaymentController) Webhook(c *gin.Context) {
	utils.LogInfo("Webhook called")

	body, err := c.GetRawData()
	if err != nil {
		utils.LogError("Failed to read webhook body: %v", err)
		c.String(http.StatusInternalServerError, "error")
		return
	}

	err = pc.payments.HandleWebhook(c.Request.Context(), body, c.GetHeader(SignatureHeader))
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil && appErr.Code < http.StatusInternalServerError {
			utils.LogError("Webhook rejected: %v", err)
			c.String(appErr.Code, appErr.Message)
			return
		}
		utils.LogError("Webhook error: %v", err)
		c.String(http.StatusInternalServerError, "error")
		return
	}
	c.String(http.StatusOK, "ok")
}
