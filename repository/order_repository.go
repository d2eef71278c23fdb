package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/services"
)

var orderSorts = map[string]string{
	services.SortPlacedDesc: "created_at DESC",
	services.SortPlacedAsc:  "created_at ASC",
	services.SortAmountDesc: "amount DESC",
	services.SortAmountAsc:  "amount ASC",
	services.SortStatusAsc:  "status ASC, created_at DESC",
	services.SortStatusDesc: "status DESC, created_at DESC",
}

type OrderRepository struct {
	base
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{base{db: db}}
}

// withProduct preloads the product and its artisan, exposing only the
// artisan fields shown on an order.
func withProduct(db *gorm.DB) *gorm.DB {
	return db.Preload("Product").Preload("Product.Artisan", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email", "avatar")
	})
}

func (r *OrderRepository) CreateMany(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.conn(ctx).Omit("Product").Create(&orders).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := withProduct(r.conn(ctx)).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Order, error) {
	var orders []models.Order
	if len(ids) == 0 {
		return orders, nil
	}
	err := withProduct(r.conn(ctx)).
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) List(ctx context.Context, filter services.OrderFilter) ([]models.Order, int64, error) {
	query := r.conn(ctx).Model(&models.Order{})
	if filter.ArtisanID != "" {
		query = query.Where("artisan_id = ?", filter.ArtisanID)
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := orderSorts[filter.Sort]
	if !ok {
		order = orderSorts[services.SortPlacedDesc]
	}
	query = withProduct(query).Order(order).Offset(filter.Offset)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus writes the status and the three status timestamps only
func (r *OrderRepository) UpdateStatus(ctx context.Context, order *models.Order) error {
	result := r.conn(ctx).Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":       order.Status,
			"shipped_at":   order.ShippedAt,
			"delivered_at": order.DeliveredAt,
			"cancelled_at": order.CancelledAt,
		})
	return notFoundIfNone(result)
}

func (r *OrderRepository) MarkPaymentVerified(ctx context.Context, paymentID string) (int64, error) {
	result := r.conn(ctx).Model(&models.Order{}).
		Where("payment_id = ?", paymentID).
		Update("payment_verified", true)
	return result.RowsAffected, result.Error
}

func (r *OrderRepository) FindUncountedCouponOrder(ctx context.Context, paymentID string) (*models.Order, error) {
	var order models.Order
	err := r.conn(ctx).
		Where("payment_id = ? AND coupon_id IS NOT NULL AND coupon_counted = ?", paymentID, false).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ClaimCouponUsage is a conditional update: a concurrent claim for the same
// payment waits on the row locks and then matches no rows.
func (r *OrderRepository) ClaimCouponUsage(ctx context.Context, paymentID, couponID string) (int64, error) {
	result := r.conn(ctx).Model(&models.Order{}).
		Where("payment_id = ? AND coupon_id = ? AND coupon_counted = ?", paymentID, couponID, false).
		Update("coupon_counted", true)
	return result.RowsAffected, result.Error
}
