package transport

import (
	"github.com/google/uuid"

	"github.com/mkotelnikov/inventory_service/internal/models"
)

type PlaceOrderItem struct {
	ItemID   uuid.UUID `json:"itemId"`
	Quantity int       `json:"quantity"`
}

type PlaceOrderRequest struct {
	Items []PlaceOrderItem `json:"items"`
}

type PlaceOrderResponse struct {
	OrderID     uuid.UUID          `json:"orderId"`
	TotalAmount float64            `json:"totalAmount"`
	Status      models.OrderStatus `json:"status"`
	Items       []models.OrderItem `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type CreateItemRequest struct {
	Name          string    `json:"name"`
	Price         *float64  `json:"price"`
	Size          string    `json:"size"`
	CategoryID    uuid.UUID `json:"categoryId"`
	StockQuantity int       `json:"stockQuantity"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl"`
}

type PatchItemRequest struct {
	Name          *string    `json:"name"`
	Price         *float64   `json:"price"`
	Size          *string    `json:"size"`
	CategoryID    *uuid.UUID `json:"categoryId"`
	StockQuantity *int       `json:"stockQuantity"`
	Description   *string    `json:"description"`
	ImageURL      *string    `json:"imageUrl"`
}

type CreateCategoryRequest struct {
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
}
