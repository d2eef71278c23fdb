package memory

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/services"
)

var _ services.CouponStore = (*Coupons)(nil)

type Coupons struct {
	s *Store
}

func (c *Coupons) FindByID(ctx context.Context, id string) (*models.Coupon, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	coupon, ok := c.s.data.coupons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &coupon, nil
}

func (c *Coupons) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	code = models.NormalizeCouponCode(code)
	for _, coupon := range c.s.data.coupons {
		if coupon.Code == code {
			return &coupon, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (c *Coupons) List(ctx context.Context) ([]models.Coupon, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	coupons := make([]models.Coupon, 0, len(c.s.data.coupons))
	for _, coupon := range c.s.data.coupons {
		coupons = append(coupons, coupon)
	}
	sort.Slice(coupons, func(i, j int) bool {
		return c.s.data.seq[coupons[i].ID] > c.s.data.seq[coupons[j].ID]
	})
	return coupons, nil
}

func (c *Coupons) codeTaken(code, exceptID string) bool {
	for id, coupon := range c.s.data.coupons {
		if id != exceptID && coupon.Code == code {
			return true
		}
	}
	return false
}

func (c *Coupons) Create(ctx context.Context, coupon *models.Coupon) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	coupon.Code = models.NormalizeCouponCode(coupon.Code)
	if c.codeTaken(coupon.Code, "") {
		return gorm.ErrDuplicatedKey
	}
	c.s.stamp(&coupon.ID, &coupon.CreatedAt)
	coupon.UpdatedAt = coupon.CreatedAt
	c.s.data.coupons[coupon.ID] = *coupon
	return nil
}

func (c *Coupons) Update(ctx context.Context, id string, patch map[string]interface{}) (*models.Coupon, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	coupon, ok := c.s.data.coupons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for column, value := range patch {
		switch column {
		case "code":
			coupon.Code = value.(string)
		case "type":
			coupon.Type = value.(string)
		case "amount":
			coupon.Amount = value.(float64)
		case "min_subtotal":
			coupon.MinSubtotal = value.(float64)
		case "expires_at":
			if t, ok := value.(time.Time); ok {
				coupon.ExpiresAt = &t
			} else {
				coupon.ExpiresAt = nil
			}
		case "active":
			coupon.Active = value.(bool)
		case "usage_limit":
			coupon.UsageLimit = value.(int)
		}
	}
	if c.codeTaken(coupon.Code, id) {
		return nil, gorm.ErrDuplicatedKey
	}
	coupon.UpdatedAt = c.s.now()
	c.s.data.coupons[id] = coupon
	return &coupon, nil
}

func (c *Coupons) Delete(ctx context.Context, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.data.coupons[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(c.s.data.coupons, id)
	return nil
}

func (c *Coupons) IncrementUsage(ctx context.Context, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	coupon, ok := c.s.data.coupons[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	coupon.UsedCount++
	c.s.data.coupons[id] = coupon
	return nil
}
