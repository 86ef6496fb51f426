package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/mkotelnikov/inventory_service/internal/models"
)

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return translate(r.DB.WithContext(ctx).Create(category).Error)
}

func (r *GormRepo) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Order("category_name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
