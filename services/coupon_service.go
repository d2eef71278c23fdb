package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// CouponQuote is the read-only result of resolving a coupon. The lifecycle
// flags record its state when it was resolved; zero values mean usable.
type CouponQuote struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	MinSubtotal float64 `json:"minSubtotal"`

	Inactive  bool `json:"-"`
	Expired   bool `json:"-"`
	Exhausted bool `json:"-"`
}

func quoteFor(c *models.Coupon, now time.Time) *CouponQuote {
	return &CouponQuote{
		ID:          c.ID,
		Code:        c.Code,
		Type:        c.Type,
		Amount:      c.Amount,
		MinSubtotal: c.MinSubtotal,
		Inactive:    !c.Active,
		Expired:     c.IsExpired(now),
		Exhausted:   c.LimitReached(),
	}
}

// Check applies the ledger rules to q for subtotal. With paid set, expiry and
// the usage limit are waived: the payment was priced while the coupon was
// still usable and the coupon may have run out since.
func (q *CouponQuote) Check(subtotal float64, paid bool) error {
	if q.Inactive {
		return utils.NotFoundError("Coupon not found", ErrCouponNotFound)
	}
	if !paid {
		if q.Expired {
			return utils.BadRequestError("Coupon expired", ErrCouponExpired)
		}
		if q.Exhausted {
			return utils.BadRequestError("Coupon usage limit reached", ErrCouponLimitReached)
		}
	}
	if subtotal < q.MinSubtotal {
		return utils.BadRequestError(
			fmt.Sprintf("Minimum subtotal ₹%s required", decimal.NewFromFloat(q.MinSubtotal).String()),
			ErrCouponMinimumNotMet,
		)
	}
	return nil
}

// ComputeDiscount returns the discount quote grants on subtotal. Percent
// coupons floor to a whole unit; flat coupons never exceed the subtotal. The
// result is always within [0, subtotal].
func ComputeDiscount(quote *CouponQuote, subtotal float64) float64 {
	if quote == nil || subtotal <= 0 || quote.Amount <= 0 {
		return 0
	}
	sub := decimal.NewFromFloat(subtotal)
	amount := decimal.NewFromFloat(quote.Amount)

	var discount decimal.Decimal
	switch quote.Type {
	case models.CouponTypePercent:
		discount = sub.Mul(amount).Div(decimal.NewFromInt(100)).Floor()
	case models.CouponTypeFlat:
		discount = decimal.Min(sub, amount)
	default:
		return 0
	}

	if discount.IsNegative() {
		return 0
	}
	if discount.GreaterThan(sub) {
		discount = sub
	}
	return discount.InexactFloat64()
}

// CouponService validates discount codes, tracks their usage and backs the
// admin coupon endpoints.
type CouponService struct {
	coupons CouponStore
	now     func() time.Time
}

func NewCouponService(coupons CouponStore) *CouponService {
	return &CouponService{coupons: coupons, now: time.Now}
}

// Validate checks code against subtotal without mutating the coupon. Usage
// is only counted once a payment is confirmed.
func (s *CouponService) Validate(ctx context.Context, code string, subtotal float64) (*CouponQuote, error) {
	normalized := models.NormalizeCouponCode(code)
	if normalized == "" {
		return nil, utils.BadRequestError("Coupon code is required", ErrInvalidRequest)
	}

	coupon, err := s.coupons.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Coupon not found", ErrCouponNotFound)
		}
		return nil, errors.Wrap(err, "find coupon")
	}
	quote := quoteFor(coupon, s.now())
	if err := quote.Check(subtotal, false); err != nil {
		return nil, err
	}
	return quote, nil
}

// Lookup resolves the coupon a checkout refers to, by id and then by code.
// The rules are not applied here; the checkout runs Check once it knows the
// subtotal.
func (s *CouponService) Lookup(ctx context.Context, id, code string) (*CouponQuote, error) {
	var (
		coupon *models.Coupon
		err    error
	)
	switch {
	case id != "":
		coupon, err = s.coupons.FindByID(ctx, id)
	case strings.TrimSpace(code) != "":
		coupon, err = s.coupons.FindByCode(ctx, models.NormalizeCouponCode(code))
	default:
		return nil, utils.BadRequestError("Coupon id or code is required", ErrInvalidRequest)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Coupon not found", ErrCouponNotFound)
		}
		return nil, errors.Wrap(err, "lookup coupon")
	}
	return quoteFor(coupon, s.now()), nil
}

// RecordUsage counts one redemption. Callers guarantee at most one call per
// payment.
func (s *CouponService) RecordUsage(ctx context.Context, couponID string) error {
	if err := s.coupons.IncrementUsage(ctx, couponID); err != nil {
		return errors.Wrapf(err, "increment usage of coupon %s", couponID)
	}
	return nil
}

func (s *CouponService) List(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := s.coupons.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list coupons")
	}
	return coupons, nil
}

// CouponInput is the admin payload for creating a coupon
type CouponInput struct {
	Code        string     `json:"code" binding:"required"`
	Type        string     `json:"type" binding:"required,oneof=percent flat"`
	Amount      *float64   `json:"amount" binding:"required"`
	MinSubtotal float64    `json:"minSubtotal"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Active      *bool      `json:"active"`
	UsageLimit  int        `json:"usageLimit"`
}

func (s *CouponService) Create(ctx context.Context, in CouponInput) (*models.Coupon, error) {
	code := models.NormalizeCouponCode(in.Code)
	if code == "" || in.Amount == nil || !models.IsValidCouponType(in.Type) {
		return nil, utils.BadRequestError("Missing fields", ErrInvalidRequest)
	}
	if err := utils.ValidateCouponValue(in.Type, *in.Amount); err != nil {
		return nil, utils.BadRequestError(err.Error(), ErrInvalidRequest)
	}
	if in.MinSubtotal < 0 || in.UsageLimit < 0 {
		return nil, utils.BadRequestError("minSubtotal and usageLimit cannot be negative", ErrInvalidRequest)
	}

	coupon := &models.Coupon{
		Code:        code,
		Type:        in.Type,
		Amount:      *in.Amount,
		MinSubtotal: in.MinSubtotal,
		ExpiresAt:   in.ExpiresAt,
		Active:      in.Active == nil || *in.Active,
		UsageLimit:  in.UsageLimit,
	}
	if err := s.coupons.Create(ctx, coupon); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ConflictError("Coupon code already exists", ErrCouponExists)
		}
		return nil, errors.Wrap(err, "create coupon")
	}
	return coupon, nil
}

// CouponPatch is the admin payload for a partial coupon update
type CouponPatch struct {
	Code        *string    `json:"code"`
	Type        *string    `json:"type"`
	Amount      *float64   `json:"amount"`
	MinSubtotal *float64   `json:"minSubtotal"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	ClearExpiry bool       `json:"clearExpiry"`
	Active      *bool      `json:"active"`
	UsageLimit  *int       `json:"usageLimit"`
}

func (s *CouponService) Update(ctx context.Context, id string, patch CouponPatch) (*models.Coupon, error) {
	current, err := s.coupons.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Not found", ErrCouponNotFound)
		}
		return nil, errors.Wrap(err, "find coupon")
	}

	updates := map[string]interface{}{}
	couponType := current.Type
	amount := current.Amount
	if patch.Code != nil {
		code := models.NormalizeCouponCode(*patch.Code)
		if code == "" {
			return nil, utils.BadRequestError("Coupon code cannot be empty", ErrInvalidRequest)
		}
		updates["code"] = code
	}
	if patch.Type != nil {
		if !models.IsValidCouponType(*patch.Type) {
			return nil, utils.BadRequestError("Invalid coupon type", ErrInvalidRequest)
		}
		couponType = *patch.Type
		updates["type"] = couponType
	}
	if patch.Amount != nil {
		amount = *patch.Amount
		updates["amount"] = amount
	}
	if err := utils.ValidateCouponValue(couponType, amount); err != nil {
		return nil, utils.BadRequestError(err.Error(), ErrInvalidRequest)
	}
	if patch.MinSubtotal != nil {
		if *patch.MinSubtotal < 0 {
			return nil, utils.BadRequestError("minSubtotal cannot be negative", ErrInvalidRequest)
		}
		updates["min_subtotal"] = *patch.MinSubtotal
	}
	if patch.ClearExpiry {
		updates["expires_at"] = nil
	} else if patch.ExpiresAt != nil {
		updates["expires_at"] = *patch.ExpiresAt
	}
	if patch.Active != nil {
		updates["active"] = *patch.Active
	}
	if patch.UsageLimit != nil {
		if *patch.UsageLimit < 0 {
			return nil, utils.BadRequestError("usageLimit cannot be negative", ErrInvalidRequest)
		}
		updates["usage_limit"] = *patch.UsageLimit
	}
	if len(updates) == 0 {
		return current, nil
	}

	coupon, err := s.coupons.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ConflictError("Coupon code already exists", ErrCouponExists)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Not found", ErrCouponNotFound)
		}
		return nil, errors.Wrap(err, "update coupon")
	}
	return coupon, nil
}

func (s *CouponService) Delete(ctx context.Context, id string) error {
	if err := s.coupons.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("Not found", ErrCouponNotFound)
		}
		return errors.Wrap(err, "delete coupon")
	}
	return nil
}
