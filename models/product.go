package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is an artisan listing. Only the fields the order and review flows
// need are modelled here.
type Product struct {
	ID          string    `json:"_id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category,omitempty"`
	Region      string    `json:"region,omitempty"`
	ArtisanID   string    `json:"-" gorm:"type:uuid;index;not null"`
	Artisan     *User     `json:"artisan,omitempty" gorm:"foreignKey:ArtisanID"`
	Rating      float64   `json:"rating" gorm:"default:0"`
	RatingCount int       `json:"ratingCount" gorm:"default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
