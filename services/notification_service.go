package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/go-faster/errors"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// OrderNotifier is told about order events after they are persisted.
// Implementations must not panic and report nothing back: delivery is best
// effort.
type OrderNotifier interface {
	OrderPlaced(customer Customer, orders []models.Order, paymentID string)
	StatusChanged(order models.Order)
}

// NotificationService mails customers and artisans about their orders
type NotificationService struct {
	mailer utils.Mailer
}

func NewNotificationService(mailer utils.Mailer) *NotificationService {
	return &NotificationService{mailer: mailer}
}

// OrderPlaced sends the customer a summary and each artisan one mail per
// order they received.
func (s *NotificationService) OrderPlaced(customer Customer, orders []models.Order, paymentID string) {
	if len(orders) == 0 {
		return
	}

	if customer.Email != "" {
		var total float64
		lines := make([]string, 0, len(orders))
		for _, o := range orders {
			total += o.Amount
			lines = append(lines, fmt.Sprintf("• %s — ₹%s", html.EscapeString(productName(o, "Item")), formatAmount(o.Amount)))
		}
		body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Thank you for your purchase! Here is your order summary:</p>
<p>%s</p>
<p><b>Total:</b> ₹%s</p>
%s<p>We will notify you when your items are shipped.</p>`,
			html.EscapeString(customerName(customer)),
			strings.Join(lines, "<br/>"),
			formatAmount(total),
			paymentLine(paymentID),
		)
		subject := fmt.Sprintf("Your %s Order (%s)", utils.AppName, shortID(orders[0].ID))
		s.send(customer.Email, subject, body)
	}

	for _, o := range orders {
		if o.Product == nil || o.Product.Artisan == nil || o.Product.Artisan.Email == "" {
			continue
		}
		artisan := o.Product.Artisan
		body := fmt.Sprintf(`<p>Hi %s,</p>
<p>You received a new order for <b>%s</b>.</p>
<p><b>Customer:</b> %s (%s)</p>
<p><b>Amount:</b> ₹%s</p>
%s<p>Please prepare for shipment.</p>`,
			html.EscapeString(orDefault(artisan.Name, "Artisan")),
			html.EscapeString(productName(o, "your product")),
			html.EscapeString(customerName(customer)),
			html.EscapeString(customer.Email),
			formatAmount(o.Amount),
			paymentLine(paymentID),
		)
		s.send(artisan.Email, "New Order Received: "+productName(o, "Item"), body)
	}
}

// StatusChanged tells the customer their order moved to a new status
func (s *NotificationService) StatusChanged(order models.Order) {
	if order.CustomerEmail == "" {
		return
	}
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Your order status has been updated to <b>%s</b>.</p>
<p>Product: %s</p>
<p>Amount: ₹%s</p>
<p>Thanks for shopping with %s.</p>`,
		html.EscapeString(orDefault(order.CustomerName, "there")),
		order.Status,
		html.EscapeString(productName(order, "Item")),
		formatAmount(order.Amount),
		utils.AppName,
	)
	subject := fmt.Sprintf("Your order %s is %s", shortID(order.ID), order.Status)
	s.send(order.CustomerEmail, subject, body)
}

func (s *NotificationService) send(to, subject, body string) {
	if err := s.mailer.Send(to, subject, body); err != nil {
		if errors.Is(err, utils.ErrMailNotConfigured) {
			utils.LogDebug("Skipping mail %q: %v", subject, err)
			return
		}
		utils.LogError("Order email to %s failed: %v", to, err)
	}
}

func productName(o models.Order, fallback string) string {
	if o.Product != nil && o.Product.Name != "" {
		return o.Product.Name
	}
	return fallback
}

func paymentLine(paymentID string) string {
	if paymentID == "" {
		return ""
	}
	return fmt.Sprintf("<p><b>Payment ID:</b> %s</p>\n", html.EscapeString(paymentID))
}

// shortID is the last six characters of an id, uppercased, as shown to
// customers
func shortID(id string) string {
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
