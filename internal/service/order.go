package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkotelnikov/inventory_service/internal/events"
	"github.com/mkotelnikov/inventory_service/internal/models"
	"github.com/mkotelnikov/inventory_service/internal/repo"
	"github.com/mkotelnikov/inventory_service/internal/transport"
	"github.com/mkotelnikov/inventory_service/pkg/logging"
	"github.com/mkotelnikov/inventory_service/pkg/tokens"
)

type OrderService struct {
	Catalog repo.Catalog
	Orders  repo.Orders
	Events  events.Publisher
}

// PlaceOrder validates the requested lines in caller order, reserves stock
// per line through the store's atomic decrement, snapshots name/price into
// the line items and persists one pending order. Any failure releases every
// reservation made so far, so either the whole order lands or nothing does.
func (s *OrderService) PlaceOrder(ctx context.Context, caller Identity, req transport.PlaceOrderRequest) (*models.Order, error) {
	if caller.Role != tokens.RoleUser {
		return nil, fmt.Errorf("%w: only regular users can place orders", ErrForbidden)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	var total float64
	var lines []models.OrderItem

	rollback := func() {
		l := logging.FromContext(ctx)
		for _, line := range lines {
			if err := s.Catalog.ReleaseStock(ctx, line.ItemID, line.Quantity); err != nil {
				l.Error("release_stock_failed", "item_id", line.ItemID, "quantity", line.Quantity, "error", err)
			}
		}
	}

	for i := range req.Items {
		requested := req.Items[i]
		if requested.ItemID == uuid.Nil || requested.Quantity <= 0 {
			rollback()
			return nil, fmt.Errorf("%w: each order item must have a valid itemId and quantity > 0", ErrValidation)
		}

		item, err := s.Catalog.GetItem(ctx, requested.ItemID)
		if err != nil {
			rollback()
			if errors.Is(err, repo.ErrNotFound) {
				return nil, fmt.Errorf("%w: item with ID %s", repo.ErrNotFound, requested.ItemID)
			}
			return nil, err
		}

		if item.StockQuantity < requested.Quantity {
			rollback()
			return nil, insufficientStock(item.Name, item.StockQuantity)
		}

		if err := s.Catalog.ReserveStock(ctx, requested.ItemID, requested.Quantity); err != nil {
			rollback()
			if errors.Is(err, repo.ErrInsufficientStock) {
				// A concurrent order won the remaining stock between the read
				// and the reservation; re-read for an accurate count.
				available := item.StockQuantity
				if fresh, ferr := s.Catalog.GetItem(ctx, requested.ItemID); ferr == nil {
					available = fresh.StockQuantity
				}
				return nil, insufficientStock(item.Name, available)
			}
			if errors.Is(err, repo.ErrNotFound) {
				return nil, fmt.Errorf("%w: item with ID %s", repo.ErrNotFound, requested.ItemID)
			}
			return nil, err
		}

		total += item.Price * float64(requested.Quantity)
		lines = append(lines, models.OrderItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: requested.Quantity,
		})
	}

	order := &models.Order{
		UserID:      caller.ID,
		TotalAmount: total,
		Status:      models.OrderStatusPending,
		Items:       lines,
	}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		rollback()
		return nil, err
	}

	s.publish(ctx, events.TypeOrderPlaced, order)
	return order, nil
}

// SetOrderStatus applies an admin decision and records who decided and when.
// A repeat call on an already decided order overwrites the earlier decision;
// there is no terminal-state guard.
func (s *OrderService) SetOrderStatus(ctx context.Context, caller Identity, orderID uuid.UUID, status string) (*models.Order, error) {
	if caller.Role != tokens.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins can update order status", ErrForbidden)
	}
	st := models.OrderStatus(status)
	if !models.ValidDecision(st) {
		return nil, fmt.Errorf(`%w: status must be "approved" or "disapproved"`, ErrValidation)
	}

	order, err := s.Orders.SetOrderStatus(ctx, orderID, st, caller.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeOrderStatusChanged, order)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, caller Identity, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.Orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if caller.Role != tokens.RoleAdmin && order.UserID != caller.ID {
		return nil, fmt.Errorf("%w: order belongs to another user", ErrForbidden)
	}
	return order, nil
}

// ListOrders returns the caller's own orders for regular users and every
// order for admins, most recent first.
func (s *OrderService) ListOrders(ctx context.Context, caller Identity) ([]models.Order, error) {
	filter := repo.OrderFilter{}
	if caller.Role != tokens.RoleAdmin {
		userID := caller.ID
		filter.UserID = &userID
	}
	return s.Orders.ListOrders(ctx, filter)
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	if s.Events == nil {
		return
	}
	event := events.OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		At:          time.Now().UTC(),
	}
	if err := s.Events.Publish(ctx, order.ID.String(), event); err != nil {
		logging.FromContext(ctx).Warn("publish_order_event_failed", "type", eventType, "order_id", order.ID, "error", err)
	}
}

func insufficientStock(name string, available int) error {
	return fmt.Errorf("%w for item %q: available %d", repo.ErrInsufficientStock, name, available)
}
