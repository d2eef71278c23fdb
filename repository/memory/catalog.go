package memory

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/services"
)

var (
	_ services.UserStore    = (*Users)(nil)
	_ services.ProductStore = (*Products)(nil)
	_ services.ReviewStore  = (*Reviews)(nil)
)

type Users struct {
	s *Store
}

func (u *Users) FindByID(ctx context.Context, id string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.data.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

type Products struct {
	s *Store
}

func (p *Products) FindByID(ctx context.Context, id string) (*models.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	product, ok := p.s.data.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &product, nil
}

func (p *Products) UpdateRating(ctx context.Context, id string, rating float64, count int) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	product, ok := p.s.data.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	product.Rating = rating
	product.RatingCount = count
	p.s.data.products[id] = product
	return nil
}

type Reviews struct {
	s *Store
}

func (r *Reviews) Create(ctx context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.reviews {
		if existing.ProductID == review.ProductID && existing.UserID == review.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.s.stamp(&review.ID, &review.CreatedAt)
	review.UpdatedAt = review.CreatedAt
	stored := *review
	stored.Product, stored.User = nil, nil
	r.s.data.reviews[review.ID] = stored
	return nil
}

func (r *Reviews) List(ctx context.Context, filter services.ReviewFilter) ([]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	reviews := []models.Review{}
	for _, review := range r.s.data.reviews {
		if filter.ProductID != "" && review.ProductID != filter.ProductID {
			continue
		}
		if filter.Approved != nil && review.IsApproved != *filter.Approved {
			continue
		}
		if user, ok := r.s.data.users[review.UserID]; ok {
			review.User = &models.User{ID: user.ID, Name: user.Name, Email: user.Email}
		}
		if product, ok := r.s.data.products[review.ProductID]; ok {
			review.Product = &models.Product{ID: product.ID, Name: product.Name}
		}
		reviews = append(reviews, review)
	}
	seq := r.s.data.seq
	sort.Slice(reviews, func(i, j int) bool { return seq[reviews[i].ID] > seq[reviews[j].ID] })
	return reviews, nil
}

func (r *Reviews) SetApproval(ctx context.Context, id string, approved bool) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	review, ok := r.s.data.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	review.IsApproved = approved
	review.UpdatedAt = r.s.now()
	r.s.data.reviews[id] = review
	return &review, nil
}

func (r *Reviews) ApprovedStats(ctx context.Context, productID string) (float64, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var sum, count int
	for _, review := range r.s.data.reviews {
		if review.ProductID == productID && review.IsApproved {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}
