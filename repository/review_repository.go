package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/services"
)

type ReviewRepository struct {
	base
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{base{db: db}}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.conn(ctx).Omit("Product", "User").Create(review).Error
}

func (r *ReviewRepository) List(ctx context.Context, filter services.ReviewFilter) ([]models.Review, error) {
	query := r.conn(ctx).
		Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") }).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "email") })
	if filter.ProductID != "" {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Approved != nil {
		query = query.Where("is_approved = ?", *filter.Approved)
	}

	var reviews []models.Review
	if err := query.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) SetApproval(ctx context.Context, id string, approved bool) (*models.Review, error) {
	result := r.conn(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if err := notFoundIfNone(result); err != nil {
		return nil, err
	}

	var review models.Review
	if err := r.conn(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ApprovedStats(ctx context.Context, productID string) (float64, int, error) {
	var stats struct {
		Average float64
		Count   int
	}
	err := r.conn(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ? AND is_approved = ?", productID, true).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, err
	}
	return stats.Average, stats.Count, nil
}
