package services

import (
	"context"

	"github.com/Badalsingh25/CraftConnect/models"
)

// Stores report a missing record with gorm.ErrRecordNotFound and a unique
// constraint violation with gorm.ErrDuplicatedKey, whatever their backend.

// Transactor runs fn in a single store transaction. Store calls made with
// the context passed to fn join that transaction.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type ProductStore interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	UpdateRating(ctx context.Context, id string, rating float64, count int) error
}

type CouponStore interface {
	FindByID(ctx context.Context, id string) (*models.Coupon, error)
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	List(ctx context.Context) ([]models.Coupon, error)
	Create(ctx context.Context, coupon *models.Coupon) error
	Update(ctx context.Context, id string, patch map[string]interface{}) (*models.Coupon, error)
	Delete(ctx context.Context, id string) error
	IncrementUsage(ctx context.Context, id string) error
}

// Order listing sort keys
const (
	SortPlacedDesc = "placed_desc"
	SortPlacedAsc  = "placed_asc"
	SortAmountDesc = "amount_desc"
	SortAmountAsc  = "amount_asc"
	SortStatusAsc  = "status_asc"
	SortStatusDesc = "status_desc"
)

// IsValidOrderSort reports whether s is a known sort key
func IsValidOrderSort(s string) bool {
	switch s {
	case SortPlacedDesc, SortPlacedAsc, SortAmountDesc, SortAmountAsc, SortStatusAsc, SortStatusDesc:
		return true
	}
	return false
}

// OrderFilter selects orders for a listing. Exactly one of ArtisanID and
// CustomerID is set. A zero Limit returns every match.
type OrderFilter struct {
	ArtisanID  string
	CustomerID string
	Status     string
	Sort       string
	Offset     int
	Limit      int
}

type OrderStore interface {
	CreateMany(ctx context.Context, orders []*models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	// UpdateStatus persists only the status and status timestamp columns
	UpdateStatus(ctx context.Context, order *models.Order) error

	MarkPaymentVerified(ctx context.Context, paymentID string) (int64, error)
	FindUncountedCouponOrder(ctx context.Context, paymentID string) (*models.Order, error)
	// ClaimCouponUsage flips couponCounted to true on every uncounted order
	// of the payment that references couponID and returns the rows changed.
	ClaimCouponUsage(ctx context.Context, paymentID, couponID string) (int64, error)
}

// ReviewFilter selects reviews. A nil Approved means any moderation state.
type ReviewFilter struct {
	ProductID string
	Approved  *bool
}

type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	List(ctx context.Context, filter ReviewFilter) ([]models.Review, error)
	SetApproval(ctx context.Context, id string, approved bool) (*models.Review, error)
	ApprovedStats(ctx context.Context, productID string) (average float64, count int, err error)
}
