package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
)

type CouponRepository struct {
	base
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{base{db: db}}
}

func (r *CouponRepository) FindByID(ctx context.Context, id string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.conn(ctx).Where("id = ?", id).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.conn(ctx).Where("code = ?", models.NormalizeCouponCode(code)).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponRepository) List(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.conn(ctx).Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	// Select all fields so an explicit inactive coupon is stored as such
	return r.conn(ctx).Select("*").Create(coupon).Error
}

func (r *CouponRepository) Update(ctx context.Context, id string, patch map[string]interface{}) (*models.Coupon, error) {
	result := r.conn(ctx).Model(&models.Coupon{}).Where("id = ?", id).Updates(patch)
	if err := notFoundIfNone(result); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	return notFoundIfNone(r.conn(ctx).Where("id = ?", id).Delete(&models.Coupon{}))
}

// IncrementUsage adds one to used_count in a single statement
func (r *CouponRepository) IncrementUsage(ctx context.Context, id string) error {
	result := r.conn(ctx).Model(&models.Coupon{}).
		Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	return notFoundIfNone(result)
}
