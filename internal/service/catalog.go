package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkotelnikov/inventory_service/internal/models"
	"github.com/mkotelnikov/inventory_service/internal/repo"
	"github.com/mkotelnikov/inventory_service/internal/search"
	"github.com/mkotelnikov/inventory_service/internal/transport"
	"github.com/mkotelnikov/inventory_service/pkg/logging"
)

type CatalogService struct {
	Repo       repo.Catalog
	Categories repo.Categories

	// Search is optional; when set, catalog mutations are mirrored into the
	// items index best-effort.
	Search *search.Client
}

func (s *CatalogService) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.Repo.GetItem(ctx, id)
}

func (s *CatalogService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.Repo.ListItems(ctx)
}

func (s *CatalogService) CreateItem(ctx context.Context, req transport.CreateItemRequest, adminID uuid.UUID) (*models.Item, error) {
	if req.Name == "" || req.Price == nil || req.Size == "" || req.CategoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: name, price, size and categoryId are required", ErrValidation)
	}
	if *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if !models.ValidSize(req.Size) {
		return nil, fmt.Errorf("%w: size must be small, medium or large", ErrValidation)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stockQuantity must be >= 0", ErrValidation)
	}

	if _, err := s.Categories.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: category with ID %s", repo.ErrNotFound, req.CategoryID)
		}
		return nil, err
	}

	item := &models.Item{
		Name:             req.Name,
		Price:            *req.Price,
		Size:             req.Size,
		CategoryID:       req.CategoryID,
		StockQuantity:    req.StockQuantity,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		CreatedByAdminID: &adminID,
	}
	if err := s.Repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.index(ctx, item)
	return item, nil
}

func (s *CatalogService) PatchItem(ctx context.Context, req transport.PatchItemRequest, id uuid.UUID) (*models.Item, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Size != nil && !models.ValidSize(*req.Size) {
		return nil, fmt.Errorf("%w: size must be small, medium or large", ErrValidation)
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stockQuantity must be >= 0", ErrValidation)
	}
	if req.CategoryID != nil {
		if _, err := s.Categories.GetCategory(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, fmt.Errorf("%w: category with ID %s", repo.ErrNotFound, *req.CategoryID)
			}
			return nil, err
		}
	}

	item, err := s.Repo.PatchItem(ctx, req, id)
	if err != nil {
		return nil, err
	}

	s.index(ctx, item)
	return item, nil
}

// DeleteItem removes the catalog record. Historical orders keep their
// snapshot lines; only the live catalog entry goes away.
func (s *CatalogService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteItem(ctx, id); err != nil {
		return err
	}

	if s.Search != nil {
		if err := s.Search.DeleteItem(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_delete_failed", "item_id", id, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) SearchItems(ctx context.Context, query string, from, size int) (int64, []models.Item, error) {
	if s.Search == nil {
		return 0, nil, errors.New("search is not configured")
	}
	return s.Search.SearchItems(ctx, query, from, size)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if req.CategoryName == "" {
		return nil, fmt.Errorf("%w: categoryName is required", ErrValidation)
	}

	category := &models.Category{
		CategoryName: req.CategoryName,
		Description:  req.Description,
	}
	if err := s.Categories.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Categories.ListCategories(ctx)
}

func (s *CatalogService) index(ctx context.Context, item *models.Item) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexItem(ctx, item); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "item_id", item.ID, "error", err)
	}
}
