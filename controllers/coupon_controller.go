package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Badalsingh25/CraftConnect/services"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// ValidateCouponRequest represents the request body for validating a coupon
type ValidateCouponRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

type CouponController struct {
	coupons *services.CouponService
}

func NewCouponController(coupons *services.CouponService) *CouponController {
	return &CouponController{coupons: coupons}
}

// ValidateCoupon checks a code against the cart subtotal
func (cc *CouponController) ValidateCoupon(c *gin.Context) {
	utils.LogInfo("ValidateCoupon called")

	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid coupon validation request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidRequest)
		return
	}

	quote, err := cc.coupons.Validate(c.Request.Context(), req.Code, req.Subtotal)
	if err != nil {
		utils.LogDebug("Coupon %q rejected: %v", req.Code, err)
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Coupon %s validated for subtotal %.2f", quote.Code, req.Subtotal)
	c.JSON(http.StatusOK, quote)
}

// ListCoupons returns every coupon, newest first
func (cc *CouponController) ListCoupons(c *gin.Context) {
	utils.LogInfo("ListCoupons called")

	coupons, err := cc.coupons.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupons)
}

// CreateCoupon creates a new coupon
func (cc *CouponController) CreateCoupon(c *gin.Context) {
	utils.LogInfo("CreateCoupon called")

	var req services.CouponInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid coupon create request: %v", err)
		utils.BadRequest(c, "Missing fields")
		return
	}

	coupon, err := cc.coupons.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Coupon %s created", coupon.Code)
	c.JSON(http.StatusCreated, coupon)
}

// UpdateCoupon applies a partial update to a coupon
func (cc *CouponController) UpdateCoupon(c *gin.Context) {
	utils.LogInfo("UpdateCoupon called")

	var req services.CouponPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid coupon update request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidRequest)
		return
	}

	coupon, err := cc.coupons.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Coupon %s updated", coupon.ID)
	c.JSON(http.StatusOK, coupon)
}

// DeleteCoupon removes a coupon
func (cc *CouponController) DeleteCoupon(c *gin.Context) {
	utils.LogInfo("DeleteCoupon called")

	id := c.Param("id")
	if err := cc.coupons.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Coupon %s deleted", id)
	utils.Message(c, http.StatusOK, "Deleted")
}
