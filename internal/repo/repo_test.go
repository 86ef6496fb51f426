package repo

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkotelnikov/inventory_service/internal/models"
	"github.com/mkotelnikov/inventory_service/internal/transport"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Admin{}, &models.Category{},
		&models.Item{}, &models.Order{}, &models.OrderItem{},
	))

	return &GormRepo{DB: db}
}

func createItem(t *testing.T, r *GormRepo, name string, price float64, stock int) *models.Item {
	t.Helper()

	item := &models.Item{
		Name:          name,
		Price:         price,
		Size:          models.SizeMedium,
		CategoryID:    uuid.New(),
		StockQuantity: stock,
	}
	require.NoError(t, r.CreateItem(context.Background(), item))
	return item
}

func TestGormRepo_ReserveStock(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	item := createItem(t, r, "socks", 2.50, 5)

	require.NoError(t, r.ReserveStock(ctx, item.ID, 3))

	after, err := r.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.StockQuantity)

	err = r.ReserveStock(ctx, item.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	after, err = r.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.StockQuantity, "failed reservation must not change stock")

	err = r.ReserveStock(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_ReleaseStock(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	item := createItem(t, r, "gloves", 4.00, 1)

	require.NoError(t, r.ReserveStock(ctx, item.ID, 1))
	require.NoError(t, r.ReleaseStock(ctx, item.ID, 1))

	after, err := r.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.StockQuantity)

	err = r.ReleaseStock(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_CreateAndGetOrder(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	order := &models.Order{
		UserID:      userID,
		TotalAmount: 12.00,
		Status:      models.OrderStatusPending,
		Items: []models.OrderItem{
			{ItemID: uuid.New(), Name: "fork", Price: 2.00, Quantity: 3},
			{ItemID: uuid.New(), Name: "spoon", Price: 3.00, Quantity: 2},
		},
	}
	require.NoError(t, r.CreateOrder(ctx, order))
	require.NotEqual(t, uuid.Nil, order.ID)

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	require.Len(t, got.Items, 2)
	assert.Equal(t, order.ID, got.Items[0].OrderID)

	_, err = r.GetOrder(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_ListOrders(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	for i, userID := range []uuid.UUID{alice, bob, alice} {
		order := &models.Order{
			UserID:      userID,
			TotalAmount: float64(i + 1),
			Status:      models.OrderStatusPending,
			Items:       []models.OrderItem{{ItemID: uuid.New(), Name: "x", Price: 1, Quantity: 1}},
		}
		require.NoError(t, r.CreateOrder(ctx, order))
	}

	own, err := r.ListOrders(ctx, OrderFilter{UserID: &alice})
	require.NoError(t, err)
	assert.Len(t, own, 2)
	for _, o := range own {
		assert.Equal(t, alice, o.UserID)
		assert.NotEmpty(t, o.Items)
	}

	all, err := r.ListOrders(ctx, OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGormRepo_SetOrderStatus(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	order := &models.Order{
		UserID:      uuid.New(),
		TotalAmount: 1,
		Status:      models.OrderStatusPending,
		Items:       []models.OrderItem{{ItemID: uuid.New(), Name: "y", Price: 1, Quantity: 1}},
	}
	require.NoError(t, r.CreateOrder(ctx, order))

	adminID := uuid.New()
	at := time.Now().UTC()

	updated, err := r.SetOrderStatus(ctx, order.ID, models.OrderStatusApproved, adminID, at)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusApproved, updated.Status)
	require.NotNil(t, updated.ApprovedByAdminID)
	assert.Equal(t, adminID, *updated.ApprovedByAdminID)
	require.NotNil(t, updated.ApprovedAt)
	assert.WithinDuration(t, at, *updated.ApprovedAt, time.Second)
	require.Len(t, updated.Items, 1)

	_, err = r.SetOrderStatus(ctx, uuid.New(), models.OrderStatusApproved, adminID, at)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_PatchItem_DoesNotTouchOrderSnapshots(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	item := createItem(t, r, "jar", 8.00, 10)

	order := &models.Order{
		UserID:      uuid.New(),
		TotalAmount: 8.00,
		Status:      models.OrderStatusPending,
		Items:       []models.OrderItem{{ItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: 1}},
	}
	require.NoError(t, r.CreateOrder(ctx, order))

	newPrice := 16.00
	_, err := r.PatchItem(ctx, transport.PatchItemRequest{Price: &newPrice}, item.ID)
	require.NoError(t, err)

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 8.00, got.Items[0].Price, 1e-9)
}

func TestGormRepo_CreateCategory_DuplicateName(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateCategory(ctx, &models.Category{CategoryName: "tools"}))

	err := r.CreateCategory(ctx, &models.Category{CategoryName: "tools"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGormRepo_DeleteUser_CascadesOrders(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	user := models.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, r.DB.Create(&user).Error)

	order := &models.Order{
		UserID:      user.ID,
		TotalAmount: 5,
		Status:      models.OrderStatusPending,
		Items:       []models.OrderItem{{ItemID: uuid.New(), Name: "z", Price: 5, Quantity: 1}},
	}
	require.NoError(t, r.CreateOrder(ctx, order))

	require.NoError(t, r.DeleteUser(ctx, user.ID))

	_, err := r.GetOrder(ctx, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var lines int64
	require.NoError(t, r.DB.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&lines).Error)
	assert.Zero(t, lines)

	err = r.DeleteUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_DeleteAdmin_UnsetsReferences(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	target := models.Admin{ID: uuid.New(), Username: "root", Email: "root@example.com", PasswordHash: "x"}
	other := models.Admin{ID: uuid.New(), Username: "backup", Email: "backup@example.com", PasswordHash: "x"}
	require.NoError(t, r.DB.Create(&target).Error)
	require.NoError(t, r.DB.Create(&other).Error)

	item := &models.Item{
		Name:             "drill",
		Price:            40,
		Size:             models.SizeLarge,
		CategoryID:       uuid.New(),
		StockQuantity:    2,
		CreatedByAdminID: &target.ID,
	}
	require.NoError(t, r.CreateItem(ctx, item))

	order := &models.Order{
		UserID:      uuid.New(),
		TotalAmount: 40,
		Status:      models.OrderStatusPending,
		Items:       []models.OrderItem{{ItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: 1}},
	}
	require.NoError(t, r.CreateOrder(ctx, order))
	_, err := r.SetOrderStatus(ctx, order.ID, models.OrderStatusApproved, target.ID, time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, r.DeleteAdmin(ctx, target.ID))

	gotItem, err := r.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, gotItem.CreatedByAdminID)

	gotOrder, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, gotOrder.ApprovedByAdminID)
	assert.Nil(t, gotOrder.ApprovedAt)
	assert.Equal(t, models.OrderStatusApproved, gotOrder.Status, "order record itself survives")

	admins, err := r.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)

	err = r.DeleteAdmin(ctx, other.ID)
	assert.ErrorIs(t, err, ErrConflict)
}
