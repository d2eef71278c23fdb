package services

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// Actor is the role a user plays towards one order
type Actor int

const (
	ActorNone Actor = iota
	ActorCustomer
	ActorArtisan
)

// ActorFor returns the role userID plays on order. The artisan role wins
// when a user bought their own product.
func ActorFor(order models.Order, userID string) Actor {
	switch {
	case order.IsArtisan(userID):
		return ActorArtisan
	case order.IsCustomer(userID):
		return ActorCustomer
	}
	return ActorNone
}

// CanTransition reports whether actor may move an order from one status to
// another. Artisans ship, deliver and cancel, and may re-send the current
// status. Customers may only cancel a Pending order.
func CanTransition(actor Actor, from, to string) bool {
	switch actor {
	case ActorArtisan:
		if from == to {
			return true
		}
		switch from {
		case models.OrderStatusPending:
			return to == models.OrderStatusShipped || to == models.OrderStatusCancelled
		case models.OrderStatusShipped:
			return to == models.OrderStatusDelivered
		}
	case ActorCustomer:
		return from == models.OrderStatusPending && to == models.OrderStatusCancelled
	}
	return false
}

// UpdateStatus applies a status change requested by userID. A request for
// the current status succeeds without writing anything.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, userID, status string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Order not found", ErrOrderNotFound)
		}
		return nil, errors.Wrapf(err, "find order %s", orderID)
	}

	actor := ActorFor(*order, userID)
	if actor == ActorNone {
		return nil, utils.ForbiddenError("Not authorized to update this order", ErrForbidden)
	}
	if !models.IsValidOrderStatus(status) {
		return nil, utils.BadRequestError("Invalid status", ErrInvalidStatus)
	}

	current := order.Status
	if !CanTransition(actor, current, status) {
		return nil, utils.BadRequestError(
			fmt.Sprintf("Cannot change status from %s to %s", current, status),
			ErrInvalidTransition,
		)
	}
	if current == status {
		return order, nil
	}

	order.SetStatus(status, s.now())
	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		return nil, errors.Wrapf(err, "update status of order %s", orderID)
	}
	utils.LogInfo("Order %s moved from %s to %s by user %s", order.ID, current, status, userID)

	updated, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrapf(err, "reload order %s", orderID)
	}
	if s.notifier != nil {
		go s.notifier.StatusChanged(*updated)
	}
	return updated, nil
}
