package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/inventory_service/internal/repo"
	"github.com/mkotelnikov/inventory_service/internal/service"
	"github.com/mkotelnikov/inventory_service/internal/transport"
	"github.com/mkotelnikov/inventory_service/pkg/logging"
)

type CategoryHTTP struct {
	Svc *service.CatalogService
}

func (h *CategoryHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_category_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, repo.ErrConflict):
			l.Warn("create_category_error", "status", 409, "error", err)
			return echo.NewHTTPError(http.StatusConflict, "category name already exists")
		default:
			l.Error("create_category_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create category")
		}
	}

	l.Info("create_category_success", "category_id", category.ID)
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list_categories")

	categories, err := h.Svc.ListCategories(ctx)
	if err != nil {
		l.Error("list_categories_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve categories")
	}

	return c.JSON(http.StatusOK, categories)
}
