package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/inventory_service/internal/middleware/auth"
	"github.com/mkotelnikov/inventory_service/internal/repo"
	"github.com/mkotelnikov/inventory_service/internal/service"
	"github.com/mkotelnikov/inventory_service/internal/transport"
	"github.com/mkotelnikov/inventory_service/internal/util"
	"github.com/mkotelnikov/inventory_service/pkg/logging"
)

type ItemHTTP struct {
	Svc *service.CatalogService
}

func (h *ItemHTTP) GetItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.get_item")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_item_error", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	item, err := h.Svc.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("get_item_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		l.Error("get_item_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve item")
	}

	return c.JSON(http.StatusOK, item)
}

func (h *ItemHTTP) ListItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.list_items")

	items, err := h.Svc.ListItems(ctx)
	if err != nil {
		l.Error("list_items_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve items")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ItemHTTP) SearchItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.search_items")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query param q is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.SearchItems(ctx, q, offset, limit)
	if err != nil {
		l.Error("search_items_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *ItemHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.create_item")

	caller, err := auth.CallerIdentity(c)
	if err != nil {
		return err
	}

	var req transport.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.CreateItem(ctx, req, caller.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_item_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, repo.ErrNotFound):
			l.Warn("create_item_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			l.Error("create_item_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create item")
		}
	}

	l.Info("create_item_success", "item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *ItemHTTP) PatchItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.patch_item")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("patch_item_error", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.PatchItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.PatchItem(ctx, req, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("patch_item_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, repo.ErrNotFound):
			l.Warn("patch_item_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			l.Error("patch_item_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update item")
		}
	}

	l.Info("patch_item_success", "item_id", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *ItemHTTP) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.delete_item")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_item_error", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("delete_item_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		l.Error("delete_item_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete item")
	}

	l.Info("delete_item_success", "item_id", id)
	return c.NoContent(http.StatusNoContent)
}
