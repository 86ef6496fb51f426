package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/inventory_service/internal/middleware/auth"
	"github.com/mkotelnikov/inventory_service/pkg/tokens"
)

type Deps struct {
	OrderHandler    *OrderHTTP
	ItemHandler     *ItemHTTP
	CategoryHandler *CategoryHTTP
	AccountHandler  *AccountHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := auth.Middleware(d.JWTSecret)
	adminMW := auth.RequireRole(tokens.RoleAdmin)

	api := e.Group("/api")

	items := api.Group("/items")
	items.GET("", d.ItemHandler.ListItems)
	items.GET("/search", d.ItemHandler.SearchItems)
	items.GET("/:id", d.ItemHandler.GetItem)

	itemsAdmin := items.Group("", authMW, adminMW)
	itemsAdmin.POST("", d.ItemHandler.CreateItem)
	itemsAdmin.PATCH("/:id", d.ItemHandler.PatchItem)
	itemsAdmin.DELETE("/:id", d.ItemHandler.DeleteItem)

	categories := api.Group("/categories")
	categories.GET("", d.CategoryHandler.ListCategories)
	categories.POST("", d.CategoryHandler.CreateCategory, authMW, adminMW)

	orders := api.Group("/orders", authMW)
	orders.POST("", d.OrderHandler.PlaceOrder)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.PUT("/:id/status", d.OrderHandler.UpdateOrderStatus, adminMW)

	accounts := api.Group("", authMW, adminMW)
	accounts.GET("/users", d.AccountHandler.ListUsers)
	accounts.DELETE("/users/:id", d.AccountHandler.DeleteUser)
	accounts.GET("/admins", d.AccountHandler.ListAdmins)
	accounts.DELETE("/admins/:id", d.AccountHandler.DeleteAdmin)
}
