// Package memory provides a map-backed implementation of the store contracts.
// It mirrors the document-store variant of the backend and is also what the
// concurrency tests run against.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkotelnikov/inventory_service/internal/models"
	"github.com/mkotelnikov/inventory_service/internal/repo"
	"github.com/mkotelnikov/inventory_service/internal/transport"
)

type Store struct {
	mu sync.Mutex

	users      map[uuid.UUID]models.User
	admins     map[uuid.UUID]models.Admin
	categories map[uuid.UUID]models.Category
	items      map[uuid.UUID]models.Item
	orders     map[uuid.UUID]models.Order

	nextLineID uint
}

var _ repo.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:      make(map[uuid.UUID]models.User),
		admins:     make(map[uuid.UUID]models.Admin),
		categories: make(map[uuid.UUID]models.Category),
		items:      make(map[uuid.UUID]models.Item),
		orders:     make(map[uuid.UUID]models.Order),
	}
}

func copyOrder(o models.Order) models.Order {
	out := o
	out.Items = append([]models.OrderItem(nil), o.Items...)
	return out
}

// --- Catalog ---

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &item, nil
}

func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	s.items[item.ID] = *item
	return nil
}

func (s *Store) PatchItem(ctx context.Context, req transport.PatchItemRequest, id uuid.UUID) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Size != nil {
		item.Size = *req.Size
	}
	if req.CategoryID != nil {
		item.CategoryID = *req.CategoryID
	}
	if req.StockQuantity != nil {
		item.StockQuantity = *req.StockQuantity
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	item.UpdatedAt = time.Now().UTC()

	s.items[id] = item
	return &item, nil
}

func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// ReserveStock performs the check and the decrement under one lock hold, so
// concurrent reservations cannot both pass the check on a stale read.
func (s *Store) ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return repo.ErrNotFound
	}
	if item.StockQuantity < quantity {
		return repo.ErrInsufficientStock
	}
	item.StockQuantity -= quantity
	item.UpdatedAt = time.Now().UTC()
	s.items[id] = item
	return nil
}

func (s *Store) ReleaseStock(ctx context.Context, id uuid.UUID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return repo.ErrNotFound
	}
	item.StockQuantity += quantity
	item.UpdatedAt = time.Now().UTC()
	s.items[id] = item
	return nil
}

// --- Orders ---

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		s.nextLineID++
		order.Items[i].ID = s.nextLineID
		order.Items[i].OrderID = order.ID
	}
	s.orders[order.ID] = copyOrder(*order)
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	out := copyOrder(order)
	return &out, nil
}

func (s *Store) ListOrders(ctx context.Context, filter repo.OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if filter.UserID != nil && order.UserID != *filter.UserID {
			continue
		}
		orders = append(orders, copyOrder(order))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (s *Store) SetOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, adminID uuid.UUID, at time.Time) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	order.Status = status
	order.ApprovedByAdminID = &adminID
	order.ApprovedAt = &at
	order.UpdatedAt = time.Now().UTC()
	s.orders[id] = order

	out := copyOrder(order)
	return &out, nil
}

// --- Categories ---

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.CategoryName == category.CategoryName {
			return fmt.Errorf("%w: category name already exists", repo.ErrConflict)
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now
	s.categories[category.ID] = *category
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &category, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].CategoryName < categories[j].CategoryName })
	return categories, nil
}

// --- Accounts ---

func (s *Store) AddUser(user models.User) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = user
	return user.ID
}

func (s *Store) AddAdmin(admin models.Admin) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	s.admins[admin.ID] = admin
	return admin.ID
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repo.ErrNotFound
	}
	for orderID, order := range s.orders {
		if order.UserID == id {
			delete(s.orders, orderID)
		}
	}
	delete(s.users, id)
	return nil
}

func (s *Store) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admins := make([]models.Admin, 0, len(s.admins))
	for _, admin := range s.admins {
		admins = append(admins, admin)
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].Username < admins[j].Username })
	return admins, nil
}

func (s *Store) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.admins[id]; !ok {
		return repo.ErrNotFound
	}
	if len(s.admins) == 1 {
		return fmt.Errorf("%w: cannot delete the last remaining admin account", repo.ErrConflict)
	}

	for orderID, order := range s.orders {
		if order.ApprovedByAdminID != nil && *order.ApprovedByAdminID == id {
			order.ApprovedByAdminID = nil
			order.ApprovedAt = nil
			s.orders[orderID] = order
		}
	}
	for itemID, item := range s.items {
		if item.CreatedByAdminID != nil && *item.CreatedByAdminID == id {
			item.CreatedByAdminID = nil
			s.items[itemID] = item
		}
	}
	delete(s.admins, id)
	return nil
}
