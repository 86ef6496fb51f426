package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mkotelnikov/inventory_service/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return translate(r.DB.WithContext(ctx).Create(order).Error)
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Preload("Items")
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) SetOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, adminID uuid.UUID, at time.Time) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":               string(status),
			"approved_by_admin_id": adminID,
			"approved_at":          at,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetOrder(ctx, id)
}
