package models

import "time"

const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

type ShippingMethod struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Order struct {
	ID               int         `json:"id"`
	UserID           int         `json:"user_id"`
	Status           string      `json:"status"`
	ShippingMethodID int         `json:"shipping_method_id"`
	Total            float64     `json:"total"`
	Items            []OrderItem `json:"items,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID               int     `json:"id"`
	OrderID          int     `json:"order_id"`
	ProductID        int     `json:"product_id"`
	MaterialOptionID *int    `json:"material_option_id,omitempty"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
}

type OrderItemRequest struct {
	ProductID        int  `json:"product_id" binding:"required"`
	MaterialOptionID *int `json:"material_option_id"`
	Quantity         int  `json:"quantity" binding:"required,min=1"`
}

type OrderRequest struct {
	ShippingMethodID int                `json:"shipping_method_id" binding:"required"`
	Items            []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderReport aggregates orders placed inside [From, To].
type OrderReport struct {
	From         time.Time          `json:"from"`
	To           time.Time          `json:"to"`
	OrderCount   int                `json:"order_count"`
	Revenue      float64            `json:"revenue"`
	AverageTotal float64            `json:"average_total"`
	ByStatus     map[string]int     `json:"by_status"`
	TopProducts  []ProductSalesLine `json:"top_products,omitempty"`
}

type ProductSalesLine struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}
