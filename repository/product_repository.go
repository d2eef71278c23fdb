package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
)

type ProductRepository struct {
	base
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{base{db: db}}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.conn(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) UpdateRating(ctx context.Context, id string, rating float64, count int) error {
	result := r.conn(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"rating": rating, "rating_count": count})
	return notFoundIfNone(result)
}
