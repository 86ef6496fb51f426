package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/inventory_service/internal/repo"
	"github.com/mkotelnikov/inventory_service/internal/service"
	"github.com/mkotelnikov/inventory_service/pkg/logging"
)

type AccountHTTP struct {
	Svc *service.AccountService
}

func (h *AccountHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.list_users")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		l.Error("list_users_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve users")
	}

	return c.JSON(http.StatusOK, users)
}

func (h *AccountHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.delete_user")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_user_error", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("delete_user_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("delete_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete user")
	}

	l.Info("delete_user_success", "user_id", id)
	return c.JSON(http.StatusOK, map[string]string{"message": "user and associated orders deleted successfully"})
}

func (h *AccountHTTP) ListAdmins(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.list_admins")

	admins, err := h.Svc.ListAdmins(ctx)
	if err != nil {
		l.Error("list_admins_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve admins")
	}

	return c.JSON(http.StatusOK, admins)
}

func (h *AccountHTTP) DeleteAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.delete_admin")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_admin_error", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeleteAdmin(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			l.Warn("delete_admin_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "admin not found")
		case errors.Is(err, repo.ErrConflict):
			l.Warn("delete_admin_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "cannot delete the last remaining admin account")
		default:
			l.Error("delete_admin_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete admin")
		}
	}

	l.Info("delete_admin_success", "admin_id", id)
	return c.JSON(http.StatusOK, map[string]string{"message": "admin account and associated references updated"})
}
