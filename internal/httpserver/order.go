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
	"github.com/mkotelnikov/inventory_service/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place_order")

	caller, err := auth.CallerIdentity(c)
	if err != nil {
		return err
	}

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, caller, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			l.Warn("place_order_error", "status", 403, "error", err)
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrValidation):
			l.Warn("place_order_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, repo.ErrNotFound):
			l.Warn("place_order_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, repo.ErrInsufficientStock):
			l.Warn("place_order_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("place_order_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to place order")
		}
	}

	l.Info("place_order_success", "order_id", order.ID, "total_amount", order.TotalAmount)
	return c.JSON(http.StatusCreated, transport.PlaceOrderResponse{
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		Items:       order.Items,
	})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	caller, err := auth.CallerIdentity(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.ListOrders(ctx, caller)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve orders")
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	caller, err := auth.CallerIdentity(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	order, err := h.Svc.GetOrder(ctx, caller, id)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			l.Warn("get_order_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrForbidden):
			l.Warn("get_order_error", "status", 403, "error", err)
			return echo.NewHTTPError(http.StatusForbidden, "access denied")
		default:
			l.Error("get_order_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve order")
		}
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_order_status")

	caller, err := auth.CallerIdentity(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("update_order_status_error", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.SetOrderStatus(ctx, caller, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			l.Warn("update_order_status_error", "status", 403, "error", err)
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_order_status_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, repo.ErrNotFound):
			l.Warn("update_order_status_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		default:
			l.Error("update_order_status_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update order status")
		}
	}

	l.Info("update_order_status_success", "order_id", order.ID, "new_status", order.Status)
	return c.JSON(http.StatusOK, order)
}
