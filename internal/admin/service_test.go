package admin

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mars_shop/internal/apperr"
	"mars_shop/internal/models"
	"mars_shop/internal/repository"
)

func newService(t *testing.T, orders ...models.Order) (*Service, repository.Repositories) {
	t.Helper()
	repos := repository.NewMemory()
	for _, o := range orders {
		require.NoError(t, repos.Orders.Create(context.Background(), o))
	}
	return NewService(repos), repos
}

func statusPtr(s models.OrderStatus) *models.OrderStatus { return &s }

func TestMarkCompleteAndCancelOverwrite(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t, order("o1", models.StatusCancelled, item("A", 1, 10)))

	got, err := svc.MarkComplete(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, got.Status)

	_, err = svc.MarkCancelled(ctx, "o1")
	require.NoError(t, err)
	stored, err := repos.Orders.Get(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)

	_, err = svc.MarkComplete(ctx, "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusShipped, true},
		{models.StatusShipped, models.StatusConfirmed, false},
		{models.StatusProcessing, models.StatusCancelled, true},
		{models.StatusDelivered, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusPending, models.OrderStatus("lost"), false},
		{models.StatusShipped, models.StatusShipped, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestUpdateOrderRecomputesFromCapturedPrices(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t, order("o1", models.StatusPending, item("A", 2, 100), item("B", 1, 50)))
	require.NoError(t, repos.Products.Create(ctx, models.Product{ID: "A", Name: "A", Price: decimal.NewFromInt(999)}))

	notes := "  livrer le matin "
	got, err := svc.UpdateOrder(ctx, "o1", OrderPatch{
		Status:     statusPtr(models.StatusConfirmed),
		Notes:      &notes,
		Quantities: map[string]int{"A": 3, "B": 0},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Equal(t, "livrer le matin", got.Notes)
	require.Len(t, got.Items, 1)
	assert.True(t, decimal.NewFromInt(300).Equal(got.Total), got.Total.String())
}

func TestUpdateOrderRejections(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t,
		order("o1", models.StatusShipped, item("A", 1, 10)),
		order("o2", models.StatusDelivered, item("A", 1, 10)),
	)

	_, err := svc.UpdateOrder(ctx, "o1", OrderPatch{Status: statusPtr(models.StatusPending)})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.UpdateOrder(ctx, "o2", OrderPatch{Status: statusPtr(models.StatusCancelled)})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.UpdateOrder(ctx, "o1", OrderPatch{Quantities: map[string]int{"A": 0}})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.UpdateOrder(ctx, "o1", OrderPatch{Quantities: map[string]int{"Z": 1}})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.UpdateOrder(ctx, "o1", OrderPatch{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	stored, err := repos.Orders.Get(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, stored.Status)
	assert.Len(t, stored.Items, 1)
}

func TestDashboardAndOrdersFilter(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t,
		order("o1", models.StatusPending, item("A", 1, 10)),
		order("o2", models.StatusCancelled, item("A", 1, 10)),
	)
	require.NoError(t, repos.Users.Create(ctx, models.User{ID: "u1", Email: "a@b.c"}))

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.True(t, decimal.NewFromInt(10).Equal(stats.TotalRevenue))

	pending, err := svc.Orders(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "o1", pending[0].ID)

	_, err = svc.Orders(ctx, "bogus")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
