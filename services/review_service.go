package services

import (
	"context"
	"math"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// Review moderation filters
const (
	ReviewStatusAll      = "all"
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
)

// ReviewService handles product reviews and keeps product rating
// aggregates in line with the approved reviews.
type ReviewService struct {
	tx       Transactor
	reviews  ReviewStore
	products ProductStore
}

func NewReviewService(tx Transactor, reviews ReviewStore, products ProductStore) *ReviewService {
	return &ReviewService{tx: tx, reviews: reviews, products: products}
}

func (s *ReviewService) AddReview(ctx context.Context, productID, userID string, rating int, text string) error {
	if err := utils.ValidateRating(rating); err != nil {
		return utils.BadRequestError(err.Error(), ErrInvalidRating)
	}
	text = utils.SanitizeString(text)
	if err := utils.ValidateStringLength(text, 0, utils.MaxReviewLength); err != nil {
		return utils.BadRequestError("Review "+err.Error(), ErrInvalidRequest)
	}

	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.products.FindByID(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Product not found", ErrProductNotFound)
			}
			return errors.Wrapf(err, "find product %s", productID)
		}

		review := &models.Review{
			ProductID:  productID,
			UserID:     userID,
			Rating:     rating,
			Text:       text,
			IsApproved: true,
		}
		if err := s.reviews.Create(ctx, review); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.ConflictError("You have already reviewed this product", ErrReviewExists)
			}
			return errors.Wrap(err, "create review")
		}
		return s.refreshRating(ctx, productID)
	})
}

// ProductReviews returns the approved reviews of a product, newest first
func (s *ReviewService) ProductReviews(ctx context.Context, productID string) ([]models.Review, error) {
	approved := true
	reviews, err := s.reviews.List(ctx, ReviewFilter{ProductID: productID, Approved: &approved})
	if err != nil {
		return nil, errors.Wrap(err, "list product reviews")
	}
	// Public listings show the reviewer's name only
	for i := range reviews {
		if u := reviews[i].User; u != nil {
			reviews[i].User = &models.User{ID: u.ID, Name: u.Name}
		}
		reviews[i].Product = nil
	}
	return reviews, nil
}

// List returns reviews in a moderation state: pending, approved or all
func (s *ReviewService) List(ctx context.Context, status string) ([]models.Review, error) {
	var filter ReviewFilter
	switch status {
	case "", ReviewStatusAll:
	case ReviewStatusPending:
		approved := false
		filter.Approved = &approved
	case ReviewStatusApproved:
		approved := true
		filter.Approved = &approved
	default:
		return nil, utils.BadRequestError("Invalid status", ErrInvalidRequest)
	}
	reviews, err := s.reviews.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list reviews")
	}
	return reviews, nil
}

func (s *ReviewService) SetApproval(ctx context.Context, id string, approved bool) (*models.Review, error) {
	var review *models.Review
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		review, err = s.reviews.SetApproval(ctx, id, approved)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Not found", ErrReviewNotFound)
			}
			return errors.Wrapf(err, "set approval of review %s", id)
		}
		return s.refreshRating(ctx, review.ProductID)
	})
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Review %s approval set to %t", id, approved)
	return review, nil
}

func (s *ReviewService) refreshRating(ctx context.Context, productID string) error {
	average, count, err := s.reviews.ApprovedStats(ctx, productID)
	if err != nil {
		return errors.Wrapf(err, "aggregate reviews of product %s", productID)
	}
	rating := math.Round(average*10) / 10
	if err := s.products.UpdateRating(ctx, productID, rating, count); err != nil {
		return errors.Wrapf(err, "update rating of product %s", productID)
	}
	return nil
}
