package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Badalsingh25/CraftConnect/middleware"
	"github.com/Badalsingh25/CraftConnect/services"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// CheckoutCoupon is the coupon a client applied to its cart
type CheckoutCoupon struct {
	ID       string  `json:"id"`
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

// CheckoutRequest represents the request body for placing orders
type CheckoutRequest struct {
	Items        []services.CheckoutItem `json:"items"`
	CustomerName string                  `json:"customerName"`
	PaymentID    string                  `json:"paymentId"`
	Coupon       *CheckoutCoupon         `json:"coupon"`
}

// UpdateStatusRequest represents the request body for a status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderController struct {
	checkout  *services.CheckoutService
	orders    *services.OrderService
	coupons   *services.CouponService
	documents *services.DocumentService
}

func NewOrderController(checkout *services.CheckoutService, orders *services.OrderService, coupons *services.CouponService, documents *services.DocumentService) *OrderController {
	return &OrderController{
		checkout:  checkout,
		orders:    orders,
		coupons:   coupons,
		documents: documents,
	}
}

// Checkout creates one order per cart line for the current customer
func (oc *OrderController) Checkout(c *gin.Context) {
	utils.LogInfo("Checkout called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrLoginRequired)
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid checkout request for user %s: %v", user.ID, err)
		utils.BadRequest(c, utils.ErrInvalidRequest)
		return
	}

	checkout := services.CheckoutRequest{
		Customer: services.Customer{
			ID:    user.ID,
			Name:  req.CustomerName,
			Email: user.Email,
		},
		Items:     req.Items,
		PaymentID: req.PaymentID,
	}
	if checkout.Customer.Name == "" {
		checkout.Customer.Name = user.Name
	}

	if req.Coupon != nil && (req.Coupon.ID != "" || req.Coupon.Code != "") {
		quote, err := oc.coupons.Lookup(c.Request.Context(), req.Coupon.ID, req.Coupon.Code)
		switch {
		case err == nil:
			checkout.Coupon = quote
			checkout.ClientDiscount = req.Coupon.Discount
		case utils.IsNotFoundError(err):
			utils.LogError("Checkout for user %s references unknown coupon %q", user.ID, req.Coupon.Code)
		default:
			utils.RespondError(c, err)
			return
		}
	}

	orders, err := oc.checkout.Checkout(c.Request.Context(), checkout)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("User %s placed %d of %d cart lines", user.ID, len(orders), len(req.Items))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed",
		"orders":  orders,
	})
}

// UpdateOrderStatus moves an order through its lifecycle
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrLoginRequired)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid status request: %v", err)
		utils.BadRequest(c, "Invalid status")
		return
	}

	order, err := oc.orders.UpdateStatus(c.Request.Context(), c.Param("id"), user.ID, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

// GetMyOrders lists the orders received by the current artisan
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	utils.LogInfo("GetMyOrders called")
	oc.listOrders(c, oc.orders.ListForArtisan)
}

// GetCustomerOrders lists the orders placed by the current customer
func (oc *OrderController) GetCustomerOrders(c *gin.Context) {
	utils.LogInfo("GetCustomerOrders called")
	oc.listOrders(c, oc.orders.ListForCustomer)
}

type orderLister func(ctx context.Context, userID string, q services.OrderQuery) (*services.OrderPage, error)

func (oc *OrderController) listOrders(c *gin.Context, list orderLister) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrLoginRequired)
		return
	}

	pagination := utils.NewPagination(c)
	query := services.OrderQuery{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		Status:   c.Query("status"),
		Sort:     c.DefaultQuery("sort", services.SortPlacedDesc),
	}

	page, err := list(c.Request.Context(), user.ID, query)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.LogDebug("Listed %d of %d orders for user %s", len(page.Items), page.Total, user.ID)
	c.JSON(http.StatusOK, page)
}

// DownloadInvoice returns a PDF invoice for an order the user took part in
func (oc *OrderController) DownloadInvoice(c *gin.Context) {
	utils.LogInfo("DownloadInvoice called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrLoginRequired)
		return
	}

	order, err := oc.orders.FindForParticipant(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	pdf, err := oc.documents.Invoice(*order)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Invoice generated for order %s", order.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", order.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExportMyOrders returns the current artisan's orders as an xlsx workbook
func (oc *OrderController) ExportMyOrders(c *gin.Context) {
	utils.LogInfo("ExportMyOrders called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrLoginRequired)
		return
	}

	orders, err := oc.orders.AllForArtisan(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	workbook, err := oc.documents.ExportOrders(orders)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Exported %d orders for artisan %s", len(orders), user.ID)
	c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
