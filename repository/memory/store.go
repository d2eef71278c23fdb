// Package memory is an in-process implementation of the service stores. It
// backs the service and handler tests and follows the gorm stores' error
// contract.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/services"
)

var _ services.Transactor = (*Store)(nil)

type tables struct {
	users    map[string]models.User
	products map[string]models.Product
	coupons  map[string]models.Coupon
	orders   map[string]models.Order
	reviews  map[string]models.Review
	seq      map[string]int64
}

func (t tables) clone() tables {
	c := tables{
		users:    make(map[string]models.User, len(t.users)),
		products: make(map[string]models.Product, len(t.products)),
		coupons:  make(map[string]models.Coupon, len(t.coupons)),
		orders:   make(map[string]models.Order, len(t.orders)),
		reviews:  make(map[string]models.Review, len(t.reviews)),
		seq:      make(map[string]int64, len(t.seq)),
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.products {
		c.products[k] = v
	}
	for k, v := range t.coupons {
		c.coupons[k] = v
	}
	for k, v := range t.orders {
		c.orders[k] = v
	}
	for k, v := range t.reviews {
		c.reviews[k] = v
	}
	for k, v := range t.seq {
		c.seq[k] = v
	}
	return c
}

// Store keeps every table in memory. Transactions are serialized and roll
// back to a snapshot on error.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data tables
	next int64
	now  func() time.Time
}

func New() *Store {
	return &Store{
		data: tables{
			users:    map[string]models.User{},
			products: map[string]models.Product{},
			coupons:  map[string]models.Coupon{},
			orders:   map[string]models.Order{},
			reviews:  map[string]models.Review{},
			seq:      map[string]int64{},
		},
		now: time.Now,
	}
}

type txKey struct{}

func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// stamp assigns an id and insertion sequence. Callers hold mu.
func (s *Store) stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = s.now()
	}
	s.next++
	s.data.seq[*id] = s.next
}

func (s *Store) Users() *Users       { return &Users{s} }
func (s *Store) Products() *Products { return &Products{s} }
func (s *Store) Coupons() *Coupons   { return &Coupons{s} }
func (s *Store) Orders() *Orders     { return &Orders{s} }
func (s *Store) Reviews() *Reviews   { return &Reviews{s} }

// SeedUser stores u as is, assigning an id when it has none
func (s *Store) SeedUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	s.stamp(&u.ID, &u.CreatedAt)
	s.data.users[u.ID] = u
	return u
}

// SeedProduct stores p as is, assigning an id when it has none
func (s *Store) SeedProduct(p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&p.ID, &p.CreatedAt)
	s.data.products[p.ID] = p
	return p
}

// SeedCoupon stores c as is, assigning an id when it has none
func (s *Store) SeedCoupon(c models.Coupon) models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Code = models.NormalizeCouponCode(c.Code)
	s.stamp(&c.ID, &c.CreatedAt)
	s.data.coupons[c.ID] = c
	return c
}

// DeleteProduct removes a product, as when a listing is withdrawn
func (s *Store) DeleteProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.products, id)
}
