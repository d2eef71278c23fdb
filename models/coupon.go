package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Coupon discount types
const (
	CouponTypePercent = "percent"
	CouponTypeFlat    = "flat"
)

type Coupon struct {
	ID          string     `json:"_id" gorm:"type:uuid;primaryKey"`
	Code        string     `json:"code" gorm:"uniqueIndex;not null"`
	Type        string     `json:"type" gorm:"not null"` // "percent" or "flat"
	Amount      float64    `json:"amount" gorm:"not null;check:amount >= 0"`
	MinSubtotal float64    `json:"minSubtotal" gorm:"default:0"`
	Active      bool       `json:"active"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	UsageLimit  int        `json:"usageLimit" gorm:"default:0"` // 0 means unlimited
	UsedCount   int        `json:"usedCount" gorm:"default:0"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NormalizeCouponCode trims and uppercases a user supplied code
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidCouponType reports whether t is a known discount type
func IsValidCouponType(t string) bool {
	return t == CouponTypePercent || t == CouponTypeFlat
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave keeps the stored code in canonical form
func (c *Coupon) BeforeSave(tx *gorm.DB) error {
	c.Code = NormalizeCouponCode(c.Code)
	return nil
}

// IsExpired reports whether the coupon has an expiry in the past
func (c Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// LimitReached reports whether a bounded coupon has no usages left
func (c Coupon) LimitReached() bool {
	return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit
}
