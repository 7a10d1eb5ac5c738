package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the order lifecycle enum. Any status may be set to any
// other by an admin; there is no enforced transition order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentMethodBalance is the only accepted tender: the internal wallet.
const PaymentMethodBalance = "Balance"

// OrderItem is an immutable line-item snapshot. Price is the unit price
// captured at purchase time, decoupled from the live catalog price.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Qty       int                `bson:"qty" json:"qty"`
	Price     float64            `bson:"price" json:"price"`
}

// Order is an immutable purchase record. Only Status changes after creation.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     string             `bson:"order_number" json:"order_number"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalPrice      float64            `bson:"total_price" json:"total_price"`
	ShippingAddress string             `bson:"shipping_address" json:"shipping_address"`
	PaymentMethod   string             `bson:"payment_method" json:"payment_method"`
	ShippingPrice   float64            `bson:"shipping_price" json:"shipping_price"`
	TaxPrice        float64            `bson:"tax_price" json:"tax_price"`
	Status          OrderStatus        `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// OrderItemView is a line item with product display fields resolved at read
// time. Qty and Price always come from the stored snapshot.
type OrderItemView struct {
	ProductID primitive.ObjectID `json:"product_id"`
	Qty       int                `json:"qty"`
	Price     float64            `json:"price"`
	Name      string             `json:"name,omitempty"`
	Images    []string           `json:"images,omitempty"`
}

// OrderView is an order with referenced entities resolved for presentation.
type OrderView struct {
	Order
	Items []OrderItemView `json:"items"`
	User  *UserRef        `json:"user,omitempty"`
}

// CheckoutForm is the checkout request body.
type CheckoutForm struct {
	UserID          string  `json:"userId"`
	ShippingAddress string  `json:"shippingAddress"`
	PaymentMethod   string  `json:"paymentMethod"`
	ShippingPrice   float64 `json:"shippingPrice"`
	TaxPrice        float64 `json:"taxPrice"`
}

// OrderStatusForm is the status update request body.
type OrderStatusForm struct {
	Status OrderStatus `json:"status"`
}

// DashboardStats is the admin dashboard summary. TotalSales sums every
// order's total price regardless of status, cancelled orders included.
type DashboardStats struct {
	TotalSales    float64     `json:"totalSales"`
	TotalOrders   int64       `json:"totalOrders"`
	TotalProducts int64       `json:"totalProducts"`
	TotalUsers    int64       `json:"totalUsers"`
	RecentOrders  []OrderView `json:"recentOrders"`
}
