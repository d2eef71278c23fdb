package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badalsingh25/CraftConnect/models"
	"github.com/Badalsingh25/CraftConnect/services"
)

func TestCanTransition(t *testing.T) {
	const (
		pending   = models.OrderStatusPending
		shipped   = models.OrderStatusShipped
		delivered = models.OrderStatusDelivered
		cancelled = models.OrderStatusCancelled
	)
	allowed := map[services.Actor]map[[2]string]bool{
		services.ActorArtisan: {
			{pending, pending}: true, {shipped, shipped}: true,
			{delivered, delivered}: true, {cancelled, cancelled}: true,
			{pending, shipped}: true, {pending, cancelled}: true,
			{shipped, delivered}: true,
		},
		services.ActorCustomer: {
			{pending, cancelled}: true,
		},
		services.ActorNone: {},
	}

	for actor, moves := range allowed {
		for _, from := range models.OrderStatuses {
			for _, to := range models.OrderStatuses {
				assert.Equal(t, moves[[2]string{from, to}], services.CanTransition(actor, from, to),
					"actor %d: %s -> %s", actor, from, to)
			}
		}
	}
}

func TestActorFor(t *testing.T) {
	customer := "cust"
	order := models.Order{ArtisanID: "art", CustomerID: &customer}

	assert.Equal(t, services.ActorArtisan, services.ActorFor(order, "art"))
	assert.Equal(t, services.ActorCustomer, services.ActorFor(order, "cust"))
	assert.Equal(t, services.ActorNone, services.ActorFor(order, "other"))
	assert.Equal(t, services.ActorNone, services.ActorFor(order, ""))

	self := "art"
	ownPurchase := models.Order{ArtisanID: "art", CustomerID: &self}
	assert.Equal(t, services.ActorArtisan, services.ActorFor(ownPurchase, "art"))
}

func TestUpdateStatus_ArtisanLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	notifier := newRecordingNotifier()
	svc := f.orderService(notifier)
	order := f.placeOrder(t, f.product("Vase", 1000), "pay_1", nil)

	_, err := svc.UpdateStatus(ctx, order.ID, f.artisan.ID, models.OrderStatusDelivered)
	appErr := requireAppError(t, err, http.StatusBadRequest, services.ErrInvalidTransition)
	assert.Equal(t, "Cannot change status from Pending to Delivered", appErr.Message)

	shipped, err := svc.UpdateStatus(ctx, order.ID, f.artisan.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, shipped.Status)
	require.NotNil(t, shipped.ShippedAt)
	assert.Nil(t, shipped.DeliveredAt)

	delivered, err := svc.UpdateStatus(ctx, order.ID, f.artisan.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)
	assert.Equal(t, *shipped.ShippedAt, *delivered.ShippedAt)

	// Financial fields never move
	assert.Equal(t, order.Amount, delivered.Amount)
	assert.Equal(t, order.Discount, delivered.Discount)
	assert.Equal(t, order.PaymentID, delivered.PaymentID)

	var notified []string
	for len(notified) < 2 {
		select {
		case changed := <-notifier.changed:
			notified = append(notified, changed.Status)
		case <-time.After(time.Second):
			t.Fatalf("only notified %v", notified)
		}
	}
	assert.ElementsMatch(t, []string{models.OrderStatusShipped, models.OrderStatusDelivered}, notified)

	for _, next := range []string{models.OrderStatusPending, models.OrderStatusShipped, models.OrderStatusCancelled} {
		_, err := svc.UpdateStatus(ctx, order.ID, f.artisan.ID, next)
		requireAppError(t, err, http.StatusBadRequest, services.ErrInvalidTransition)
	}
}

func TestUpdateStatus_Customer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.orderService(nil)
	vase := f.product("Vase", 1000)

	t.Run("cancels a pending order", func(t *testing.T) {
		order := f.placeOrder(t, vase, "pay_c1", nil)
		cancelled, err := svc.UpdateStatus(ctx, order.ID, f.customer.ID, models.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
		assert.NotNil(t, cancelled.CancelledAt)
	})

	t.Run("cannot cancel once shipped", func(t *testing.T) {
		order := f.placeOrder(t, vase, "pay_c2", nil)
		_, err := svc.UpdateStatus(ctx, order.ID, f.artisan.ID, models.OrderStatusShipped)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, order.ID, f.customer.ID, models.OrderStatusCancelled)
		appErr := requireAppError(t, err, http.StatusBadRequest, services.ErrInvalidTransition)
		assert.Equal(t, "Cannot change status from Shipped to Cancelled", appErr.Message)
	})

	t.Run("cannot ship", func(t *testing.T) {
		order := f.placeOrder(t, vase, "pay_c3", nil)
		_, err := svc.UpdateStatus(ctx, order.ID, f.customer.ID, models.OrderStatusShipped)
		requireAppError(t, err, http.StatusBadRequest, services.ErrInvalidTransition)
	})
}

func TestUpdateStatus_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.orderService(nil)
	order := f.placeOrder(t, f.product("Vase", 1000), "pay_r", nil)

	_, err := svc.UpdateStatus(ctx, "missing", f.artisan.ID, models.OrderStatusShipped)
	appErr := requireAppError(t, err, http.StatusNotFound, services.ErrOrderNotFound)
	assert.Equal(t, "Order not found", appErr.Message)

	_, err = svc.UpdateStatus(ctx, order.ID, f.stranger.ID, models.OrderStatusShipped)
	appErr = requireAppError(t, err, http.StatusForbidden, services.ErrForbidden)
	assert.Equal(t, "Not authorized to update this order", appErr.Message)

	// Authorization is checked before the status value
	_, err = svc.UpdateStatus(ctx, order.ID, f.stranger.ID, "Lost")
	requireAppError(t, err, http.StatusForbidden, services.ErrForbidden)

	for _, status := range []string{"Lost", "", "shipped"} {
		_, err = svc.UpdateStatus(ctx, order.ID, f.artisan.ID, status)
		appErr = requireAppError(t, err, http.StatusBadRequest, services.ErrInvalidStatus)
		assert.Equal(t, "Invalid status", appErr.Message)
	}

	stored, err := f.store.Orders().FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
}

func TestUpdateStatus_SameStatusIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	notifier := newRecordingNotifier()
	svc := f.orderService(notifier)
	order := f.placeOrder(t, f.product("Vase", 1000), "pay_n", nil)

	same, err := svc.UpdateStatus(ctx, order.ID, f.artisan.ID, models.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, same.Status)

	select {
	case <-notifier.changed:
		t.Fatal("no-op update must not notify")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestOrderListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.orderService(nil)
	cheap := f.product("Coaster", 100)
	dear := f.product("Carpet", 5000)

	var placed []models.Order
	for i, p := range []models.Product{cheap, dear, cheap} {
		placed = append(placed, f.placeOrder(t, p, "pay_l"+string(rune('a'+i)), nil))
	}
	_, err := svc.UpdateStatus(ctx, placed[0].ID, f.artisan.ID, models.OrderStatusShipped)
	require.NoError(t, err)

	t.Run("artisan sees newest first", func(t *testing.T) {
		page, err := svc.ListForArtisan(ctx, f.artisan.ID, services.OrderQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.PageSize)
		require.Len(t, page.Items, 3)
		assert.Equal(t, placed[2].ID, page.Items[0].ID)
		assert.Equal(t, placed[0].ID, page.Items[2].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		page, err := svc.ListForArtisan(ctx, f.artisan.ID, services.OrderQuery{Status: models.OrderStatusShipped})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, placed[0].ID, page.Items[0].ID)

		page, err = svc.ListForArtisan(ctx, f.artisan.ID, services.OrderQuery{Status: "all"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)

		_, err = svc.ListForArtisan(ctx, f.artisan.ID, services.OrderQuery{Status: "Lost"})
		requireAppError(t, err, http.StatusBadRequest, services.ErrInvalidStatus)
	})

	t.Run("amount sort and paging", func(t *testing.T) {
		page, err := svc.ListForCustomer(ctx, f.customer.ID, services.OrderQuery{Sort: services.SortAmountDesc, Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		require.Len(t, page.Items, 2)
		assert.Equal(t, dear.ID, page.Items[0].ProductID)

		page, err = svc.ListForCustomer(ctx, f.customer.ID, services.OrderQuery{Sort: services.SortAmountDesc, Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, placed[0].ID, page.Items[0].ID)
	})

	t.Run("unknown sort falls back to newest first", func(t *testing.T) {
		page, err := svc.ListForArtisan(ctx, f.artisan.ID, services.OrderQuery{Sort: "price_sideways"})
		require.NoError(t, err)
		require.Len(t, page.Items, 3)
		assert.Equal(t, placed[2].ID, page.Items[0].ID)
		assert.Equal(t, placed[0].ID, page.Items[2].ID)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page, err := svc.ListForCustomer(ctx, f.customer.ID, services.OrderQuery{Page: 9})
		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
	})

	t.Run("page size is capped", func(t *testing.T) {
		page, err := svc.ListForCustomer(ctx, f.customer.ID, services.OrderQuery{PageSize: 500})
		require.NoError(t, err)
		assert.Equal(t, 50, page.PageSize)
	})

	t.Run("strangers see nothing", func(t *testing.T) {
		page, err := svc.ListForCustomer(ctx, f.stranger.ID, services.OrderQuery{})
		require.NoError(t, err)
		assert.Zero(t, page.Total)
		assert.Empty(t, page.Items)
	})

	t.Run("all for artisan", func(t *testing.T) {
		all, err := svc.AllForArtisan(ctx, f.artisan.ID)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("find for participant", func(t *testing.T) {
		_, err := svc.FindForParticipant(ctx, placed[1].ID, f.customer.ID)
		require.NoError(t, err)
		_, err = svc.FindForParticipant(ctx, placed[1].ID, f.artisan.ID)
		require.NoError(t, err)
		_, err = svc.FindForParticipant(ctx, placed[1].ID, f.stranger.ID)
		requireAppError(t, err, http.StatusForbidden, services.ErrForbidden)
		_, err = svc.FindForParticipant(ctx, "missing", f.customer.ID)
		requireAppError(t, err, http.StatusNotFound, services.ErrOrderNotFound)
	})
}
