package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkotelnikov/inventory_service/internal/models"
	"github.com/mkotelnikov/inventory_service/internal/transport"
)

func (r *GormRepo) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.DB.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *GormRepo) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return translate(r.DB.WithContext(ctx).Create(item).Error)
}

func (r *GormRepo) PatchItem(ctx context.Context, req transport.PatchItemRequest, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return err
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

		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *GormRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReserveStock is a single conditional UPDATE, so concurrent reservations can
// never drive stock below zero: the WHERE clause re-checks availability in the
// same statement that decrements it.
func (r *GormRepo) ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error {
	res := r.DB.WithContext(ctx).Model(&models.Item{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.DB.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *GormRepo) ReleaseStock(ctx context.Context, id uuid.UUID, quantity int) error {
	res := r.DB.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
