package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// Customer identifies the buyer placing a checkout
type Customer struct {
	ID    string
	Name  string
	Email string
}

// CheckoutItem is one cart line
type CheckoutItem struct {
	ProductID string `json:"_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	Customer  Customer
	Items     []CheckoutItem
	PaymentID string
	// Coupon was resolved by the caller and is checked against the priced
	// subtotal; nil means no coupon
	Coupon *CouponQuote
	// ClientDiscount can only lower the computed discount
	ClientDiscount float64
}

// CheckoutService turns cart lines into Pending orders
type CheckoutService struct {
	tx       Transactor
	products ProductStore
	orders   OrderStore
	notifier OrderNotifier
}

func NewCheckoutService(tx Transactor, products ProductStore, orders OrderStore, notifier OrderNotifier) *CheckoutService {
	return &CheckoutService{
		tx:       tx,
		products: products,
		orders:   orders,
		notifier: notifier,
	}
}

type resolvedLine struct {
	product  *models.Product
	quantity int
}

// Checkout prices every line from the product store, applies the coupon
// discount to the first resolved line only and persists one order per line.
// Lines whose product no longer exists are skipped. An inactive coupon is
// dropped; any other coupon the ledger rejects fails the checkout.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) ([]models.Order, error) {
	if len(req.Items) == 0 {
		return nil, utils.BadRequestError("No items to place order", ErrInvalidRequest)
	}

	lines := make([]resolvedLine, 0, len(req.Items))
	subtotal := decimal.Zero
	for _, item := range req.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.LogDebug("Checkout skipped missing product %s", item.ProductID)
				continue
			}
			return nil, errors.Wrapf(err, "find product %s", item.ProductID)
		}
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		lines = append(lines, resolvedLine{product: product, quantity: quantity})
		subtotal = subtotal.Add(decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(quantity))))
	}
	if len(lines) == 0 {
		return []models.Order{}, nil
	}

	gross := subtotal.InexactFloat64()
	coupon := req.Coupon
	if coupon != nil {
		if err := coupon.Check(gross, req.PaymentID != ""); err != nil {
			if !utils.IsNotFoundError(err) {
				return nil, err
			}
			utils.LogInfo("Checkout for customer %s dropped inactive coupon %s", req.Customer.ID, coupon.Code)
			coupon = nil
		}
	}

	discount := ComputeDiscount(coupon, gross)
	if req.ClientDiscount > 0 && req.ClientDiscount < discount {
		discount = req.ClientDiscount
	}

	orders := make([]*models.Order, 0, len(lines))
	for i, line := range lines {
		in := models.OrderInput{
			ProductID:  line.product.ID,
			ArtisanID:  line.product.ArtisanID,
			CustomerID: req.Customer.ID,
			Customer: models.CustomerSnapshot{
				CustomerName:  customerName(req.Customer),
				CustomerEmail: req.Customer.Email,
			},
			Quantity:  line.quantity,
			UnitPrice: line.product.Price,
			PaymentID: req.PaymentID,
		}
		if coupon != nil {
			in.CouponID = coupon.ID
			in.CouponCode = coupon.Code
		}
		// The whole discount goes to the first line; NewOrder caps it at
		// that line's gross and the rest is dropped.
		if i == 0 {
			in.Discount = discount
		}
		orders = append(orders, models.NewOrder(in))
	}

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		return s.orders.CreateMany(ctx, orders)
	})
	if err != nil {
		return nil, errors.Wrap(err, "create orders")
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	reloaded, err := s.orders.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "reload orders")
	}
	byID := make(map[string]models.Order, len(reloaded))
	for _, o := range reloaded {
		byID[o.ID] = o
	}
	created := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		if o, ok := byID[id]; ok {
			created = append(created, o)
		}
	}

	utils.LogInfo("Placed %d orders for customer %s (payment %q, discount %.2f)",
		len(created), req.Customer.ID, req.PaymentID, discount)

	if s.notifier != nil {
		go s.notifier.OrderPlaced(req.Customer, created, req.PaymentID)
	}
	return created, nil
}

func customerName(c Customer) string {
	if c.Name != "" {
		return c.Name
	}
	return "Customer"
}
