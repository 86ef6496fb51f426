package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkotelnikov/inventory_service/internal/models"
	"github.com/mkotelnikov/inventory_service/internal/transport"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConflict          = errors.New("conflict")
)

// Catalog is the store contract the order engine and item handlers run
// against. ReserveStock checks and decrements stock in one indivisible step;
// ReleaseStock is its compensating inverse.
type Catalog interface {
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	PatchItem(ctx context.Context, req transport.PatchItemRequest, id uuid.UUID) (*models.Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error
	ReleaseStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type OrderFilter struct {
	UserID *uuid.UUID
}

type Orders interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	SetOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, adminID uuid.UUID, at time.Time) (*models.Order, error)
}

type Categories interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type Accounts interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListAdmins(ctx context.Context) ([]models.Admin, error)
	DeleteAdmin(ctx context.Context, id uuid.UUID) error
}

// Store bundles every contract, so one backend can be wired in main.
type Store interface {
	Catalog
	Orders
	Categories
	Accounts
}

type GormRepo struct {
	DB *gorm.DB
}

var _ Store = (*GormRepo)(nil)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
