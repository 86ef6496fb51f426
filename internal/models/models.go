package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

func ValidSize(s string) bool {
	return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

type OrderStatus string

const (
	OrderStatusPending     OrderStatus = "pending"
	OrderStatusApproved    OrderStatus = "approved"
	OrderStatusDisapproved OrderStatus = "disapproved"
)

// ValidDecision reports whether s is a status an admin may set on an order.
func ValidDecision(s OrderStatus) bool {
	return s == OrderStatusApproved || s == OrderStatusDisapproved
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"       json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"       json:"email"`
	PasswordHash string    `gorm:"not null"                   json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"       json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"       json:"email"`
	PasswordHash string    `gorm:"not null"                   json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Category struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	CategoryName string    `gorm:"uniqueIndex;not null"       json:"categoryName"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Item struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"                      json:"id"`
	Name             string     `gorm:"not null"                                  json:"name"`
	Price            float64    `gorm:"not null"                                  json:"price"`
	Size             string     `gorm:"not null"                                  json:"size"`
	CategoryID       uuid.UUID  `gorm:"type:uuid;index;not null"                  json:"categoryId"`
	StockQuantity    int        `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stockQuantity"`
	Description      string     `json:"description"`
	ImageURL         string     `json:"imageUrl"`
	CreatedByAdminID *uuid.UUID `gorm:"type:uuid"                                 json:"createdByAdminId"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// OrderItem is a line of an order. Name and Price are copied from the catalog
// item at placement time and never updated afterwards, so order history stays
// stable when the item is later repriced or deleted.
type OrderItem struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"    json:"-"`
	OrderID  uuid.UUID `gorm:"type:uuid;index;not null"    json:"-"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null"          json:"itemId"`
	Name     string    `gorm:"not null"                    json:"name"`
	Price    float64   `gorm:"not null"                    json:"price"`
	Quantity int       `gorm:"not null;check:quantity > 0" json:"quantity"`
}

type Order struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID            uuid.UUID   `gorm:"type:uuid;index;not null" json:"userId"`
	TotalAmount       float64     `gorm:"not null"                 json:"totalAmount"`
	Status            OrderStatus `gorm:"not null"                 json:"status"`
	ApprovedByAdminID *uuid.UUID  `gorm:"type:uuid"                json:"approvedByAdminId"`
	ApprovedAt        *time.Time  `json:"approvedAt"`
	Items             []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}
