package memory

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/services"
)

var _ services.OrderStore = (*Orders)(nil)

type Orders struct {
	s *Store
}

// populate attaches the product and its artisan the way the gorm store
// preloads them. Callers hold mu.
func (o *Orders) populate(order models.Order) models.Order {
	product, ok := o.s.data.products[order.ProductID]
	if !ok {
		order.Product = nil
		return order
	}
	if artisan, ok := o.s.data.users[product.ArtisanID]; ok {
		product.Artisan = &models.User{
			ID:     artisan.ID,
			Name:   artisan.Name,
			Email:  artisan.Email,
			Avatar: artisan.Avatar,
		}
	}
	order.Product = &product
	return order
}

func (o *Orders) CreateMany(ctx context.Context, orders []*models.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	for _, order := range orders {
		o.s.stamp(&order.ID, &order.CreatedAt)
		stored := *order
		stored.Product = nil
		o.s.data.orders[order.ID] = stored
	}
	return nil
}

func (o *Orders) FindByID(ctx context.Context, id string) (*models.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	order, ok := o.s.data.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	order = o.populate(order)
	return &order, nil
}

func (o *Orders) FindByIDs(ctx context.Context, ids []string) ([]models.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		if order, ok := o.s.data.orders[id]; ok {
			orders = append(orders, o.populate(order))
		}
	}
	o.sort(orders, services.SortPlacedDesc)
	return orders, nil
}

func (o *Orders) List(ctx context.Context, filter services.OrderFilter) ([]models.Order, int64, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()

	var matched []models.Order
	for _, order := range o.s.data.orders {
		if filter.ArtisanID != "" && order.ArtisanID != filter.ArtisanID {
			continue
		}
		if filter.CustomerID != "" && !order.IsCustomer(filter.CustomerID) {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		matched = append(matched, order)
	}
	total := int64(len(matched))
	o.sort(matched, filter.Sort)

	if filter.Offset >= len(matched) {
		return []models.Order{}, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	page := make([]models.Order, 0, len(matched))
	for _, order := range matched {
		page = append(page, o.populate(order))
	}
	return page, total, nil
}

// sort orders by key, newest first among equals. Callers hold mu.
func (o *Orders) sort(orders []models.Order, key string) {
	seq := o.s.data.seq
	newer := func(a, b models.Order) bool { return seq[a.ID] > seq[b.ID] }
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		switch key {
		case services.SortPlacedAsc:
			return seq[a.ID] < seq[b.ID]
		case services.SortAmountDesc:
			if a.Amount != b.Amount {
				return a.Amount > b.Amount
			}
		case services.SortAmountAsc:
			if a.Amount != b.Amount {
				return a.Amount < b.Amount
			}
		case services.SortStatusAsc:
			if a.Status != b.Status {
				return a.Status < b.Status
			}
		case services.SortStatusDesc:
			if a.Status != b.Status {
				return a.Status > b.Status
			}
		}
		return newer(a, b)
	})
}

func (o *Orders) UpdateStatus(ctx context.Context, order *models.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	stored, ok := o.s.data.orders[order.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = order.Status
	stored.ShippedAt = order.ShippedAt
	stored.DeliveredAt = order.DeliveredAt
	stored.CancelledAt = order.CancelledAt
	o.s.data.orders[order.ID] = stored
	return nil
}

func (o *Orders) MarkPaymentVerified(ctx context.Context, paymentID string) (int64, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	var n int64
	for id, order := range o.s.data.orders {
		if order.PaymentID == paymentID {
			order.PaymentVerified = true
			o.s.data.orders[id] = order
			n++
		}
	}
	return n, nil
}

func (o *Orders) FindUncountedCouponOrder(ctx context.Context, paymentID string) (*models.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	for _, order := range o.s.data.orders {
		if order.PaymentID == paymentID && order.CouponID != nil && !order.CouponCounted {
			return &order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (o *Orders) ClaimCouponUsage(ctx context.Context, paymentID, couponID string) (int64, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	var n int64
	for id, order := range o.s.data.orders {
		if order.PaymentID == paymentID && order.CouponID != nil && *order.CouponID == couponID && !order.CouponCounted {
			order.CouponCounted = true
			o.s.data.orders[id] = order
			n++
		}
	}
	return n, nil
}
