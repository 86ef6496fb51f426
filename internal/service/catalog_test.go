package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkotelnikov/inventory_service/internal/models"
	"github.com/mkotelnikov/inventory_service/internal/repo"
	"github.com/mkotelnikov/inventory_service/internal/repo/memory"
	"github.com/mkotelnikov/inventory_service/internal/transport"
)

func newCatalogTestEnv(t *testing.T) (*CatalogService, *memory.Store, *models.Category) {
	t.Helper()

	store := memory.New()
	svc := &CatalogService{Repo: store, Categories: store}

	category := &models.Category{CategoryName: "kitchen"}
	require.NoError(t, store.CreateCategory(context.Background(), category))
	return svc, store, category
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string { return &v }

func TestCatalogService_CreateItem(t *testing.T) {
	t.Parallel()

	svc, _, category := newCatalogTestEnv(t)
	ctx := context.Background()
	adminID := uuid.New()

	item, err := svc.CreateItem(ctx, transport.CreateItemRequest{
		Name:          "teapot",
		Price:         floatPtr(18.50),
		Size:          models.SizeSmall,
		CategoryID:    category.ID,
		StockQuantity: 7,
	}, adminID)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, "teapot", item.Name)
	assert.Equal(t, 7, item.StockQuantity)
	require.NotNil(t, item.CreatedByAdminID)
	assert.Equal(t, adminID, *item.CreatedByAdminID)
}

func TestCatalogService_CreateItem_Validation(t *testing.T) {
	t.Parallel()

	svc, _, category := newCatalogTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.CreateItemRequest
	}{
		{name: "missing name", req: transport.CreateItemRequest{Price: floatPtr(1), Size: models.SizeSmall, CategoryID: category.ID}},
		{name: "missing price", req: transport.CreateItemRequest{Name: "x", Size: models.SizeSmall, CategoryID: category.ID}},
		{name: "negative price", req: transport.CreateItemRequest{Name: "x", Price: floatPtr(-1), Size: models.SizeSmall, CategoryID: category.ID}},
		{name: "bad size", req: transport.CreateItemRequest{Name: "x", Price: floatPtr(1), Size: "huge", CategoryID: category.ID}},
		{name: "missing category", req: transport.CreateItemRequest{Name: "x", Price: floatPtr(1), Size: models.SizeSmall}},
		{name: "negative stock", req: transport.CreateItemRequest{Name: "x", Price: floatPtr(1), Size: models.SizeSmall, CategoryID: category.ID, StockQuantity: -2}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item, err := svc.CreateItem(ctx, tt.req, uuid.New())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, item)
		})
	}
}

func TestCatalogService_CreateItem_UnknownCategory(t *testing.T) {
	t.Parallel()

	svc, _, _ := newCatalogTestEnv(t)

	item, err := svc.CreateItem(context.Background(), transport.CreateItemRequest{
		Name:       "orphan",
		Price:      floatPtr(2),
		Size:       models.SizeLarge,
		CategoryID: uuid.New(),
	}, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.Nil(t, item)
}

func TestCatalogService_PatchItem(t *testing.T) {
	t.Parallel()

	svc, _, category := newCatalogTestEnv(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, transport.CreateItemRequest{
		Name:       "tray",
		Price:      floatPtr(5),
		Size:       models.SizeMedium,
		CategoryID: category.ID,
	}, uuid.New())
	require.NoError(t, err)

	patched, err := svc.PatchItem(ctx, transport.PatchItemRequest{Price: floatPtr(6.5), Name: strPtr("serving tray")}, item.ID)
	require.NoError(t, err)
	assert.InDelta(t, 6.5, patched.Price, 1e-9)
	assert.Equal(t, "serving tray", patched.Name)

	_, err = svc.PatchItem(ctx, transport.PatchItemRequest{Price: floatPtr(-3)}, item.ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.PatchItem(ctx, transport.PatchItemRequest{Size: strPtr("giant")}, item.ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.PatchItem(ctx, transport.PatchItemRequest{Name: strPtr("ghost")}, uuid.New())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCatalogService_DeleteItem_KeepsOrderHistory(t *testing.T) {
	t.Parallel()

	svc, store, category := newCatalogTestEnv(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, transport.CreateItemRequest{
		Name:          "candle",
		Price:         floatPtr(3),
		Size:          models.SizeSmall,
		CategoryID:    category.ID,
		StockQuantity: 5,
	}, uuid.New())
	require.NoError(t, err)

	order := &models.Order{
		UserID:      uuid.New(),
		TotalAmount: 3,
		Status:      models.OrderStatusPending,
		Items:       []models.OrderItem{{ItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: 1}},
	}
	require.NoError(t, store.CreateOrder(ctx, order))

	require.NoError(t, svc.DeleteItem(ctx, item.ID))

	_, err = store.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	kept, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, kept.Items, 1)
	assert.Equal(t, item.ID, kept.Items[0].ItemID)
	assert.Equal(t, "candle", kept.Items[0].Name)
}

func TestCatalogService_CreateCategory(t *testing.T) {
	t.Parallel()

	svc, _, _ := newCatalogTestEnv(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{CategoryName: "garden", Description: "outdoor"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, category.ID)

	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{CategoryName: "garden"})
	assert.ErrorIs(t, err, repo.ErrConflict)

	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalogService_SearchItems_NotConfigured(t *testing.T) {
	t.Parallel()

	svc, _, _ := newCatalogTestEnv(t)

	_, _, err := svc.SearchItems(context.Background(), "teapot", 0, 10)
	require.Error(t, err)
}
