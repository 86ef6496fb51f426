package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkotelnikov/inventory_service/internal/models"
	"github.com/mkotelnikov/inventory_service/internal/repo"
)

func TestStore_ReserveStock_Atomic(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()

	item := &models.Item{Name: "widget", Price: 1, Size: models.SizeSmall, CategoryID: uuid.New(), StockQuantity: 10}
	require.NoError(t, store.CreateItem(ctx, item))

	const attempts = 50
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = store.ReserveStock(ctx, item.ID, 1)
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range results {
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, repo.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 10, ok)

	after, err := store.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.StockQuantity)
}

func TestStore_GetOrder_ReturnsCopy(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()

	order := &models.Order{
		UserID:      uuid.New(),
		TotalAmount: 2,
		Status:      models.OrderStatusPending,
		Items:       []models.OrderItem{{ItemID: uuid.New(), Name: "a", Price: 2, Quantity: 1}},
	}
	require.NoError(t, store.CreateOrder(ctx, order))

	got, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	got.Items[0].Price = 999

	again, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2, again.Items[0].Price, 1e-9)
}

func TestStore_DeleteAdmin_Guards(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()

	only := store.AddAdmin(models.Admin{Username: "solo"})

	err := store.DeleteAdmin(ctx, only)
	assert.ErrorIs(t, err, repo.ErrConflict)

	second := store.AddAdmin(models.Admin{Username: "pair"})
	require.NoError(t, store.DeleteAdmin(ctx, second))

	err = store.DeleteAdmin(ctx, uuid.New())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
