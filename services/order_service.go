package services

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// OrderQuery is a listing request as read from the query string
type OrderQuery struct {
	Page     int
	PageSize int
	Status   string
	Sort     string
}

// OrderPage is one page of a listing
type OrderPage struct {
	Items    []models.Order `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// OrderService answers order queries and governs status changes
type OrderService struct {
	orders   OrderStore
	notifier OrderNotifier
	now      func() time.Time
}

func NewOrderService(orders OrderStore, notifier OrderNotifier) *OrderService {
	return &OrderService{orders: orders, notifier: notifier, now: time.Now}
}

// ListForArtisan lists orders received by the artisan
func (s *OrderService) ListForArtisan(ctx context.Context, artisanID string, q OrderQuery) (*OrderPage, error) {
	return s.list(ctx, OrderFilter{ArtisanID: artisanID}, q)
}

// ListForCustomer lists orders placed by the customer
func (s *OrderService) ListForCustomer(ctx context.Context, customerID string, q OrderQuery) (*OrderPage, error) {
	return s.list(ctx, OrderFilter{CustomerID: customerID}, q)
}

func (s *OrderService) list(ctx context.Context, filter OrderFilter, q OrderQuery) (*OrderPage, error) {
	page, pageSize := normalizePage(q.Page, q.PageSize)

	status := strings.TrimSpace(q.Status)
	if status != "" && !strings.EqualFold(status, "all") {
		if !models.IsValidOrderStatus(status) {
			return nil, utils.BadRequestError("Invalid status", ErrInvalidStatus)
		}
		filter.Status = status
	}
	filter.Sort = q.Sort
	if !IsValidOrderSort(filter.Sort) {
		filter.Sort = SortPlacedDesc
	}
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	items, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	if items == nil {
		items = []models.Order{}
	}
	return &OrderPage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// AllForArtisan returns every order the artisan received, newest first
func (s *OrderService) AllForArtisan(ctx context.Context, artisanID string) ([]models.Order, error) {
	items, _, err := s.orders.List(ctx, OrderFilter{ArtisanID: artisanID, Sort: SortPlacedDesc})
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return items, nil
}

// FindForParticipant returns the order when userID is its artisan or
// customer.
func (s *OrderService) FindForParticipant(ctx context.Context, orderID, userID string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Order not found", ErrOrderNotFound)
		}
		return nil, errors.Wrapf(err, "find order %s", orderID)
	}
	if ActorFor(*order, userID) == ActorNone {
		return nil, utils.ForbiddenError("Not authorized to view this order", ErrForbidden)
	}
	return order, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize <= 0:
		pageSize = utils.DefaultPageSize
	case pageSize > utils.MaxPageSize:
		pageSize = utils.MaxPageSize
	}
	return page, pageSize
}
