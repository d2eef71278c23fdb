package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review represents a product review. One review per user per product.
type Review struct {
	ID         string    `json:"_id" gorm:"type:uuid;primaryKey"`
	ProductID  string    `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	Product    *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	UserID     string    `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	User       *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Rating     int       `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	Text       string    `json:"text"`
	IsApproved bool      `json:"isApproved" gorm:"default:true"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
